package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/service"
)

var (
	setupName         string
	setupEndpoint     string
	setupUsername     string
	setupPassword     string
	setupExportPath   string
	setupFileFormat   string
	setupAutoSync     bool
	setupSyncInterval uint32
	setupKeepExisting bool
)

var setupCmd = &cobra.Command{
	Use:   "setup [webservice|file_export|hybrid]",
	Short: "Register a 1C integration and make it active",
	Long: `Register a new 1C integration of the given type and mark it active.

Any previously active integration is deactivated so that exports and the
auto-sync scheduler pick up the new one. Pass --keep-existing to leave
other integrations untouched.

Examples:
  onecctl setup file_export --name "local drop" --export-path exports/ --file-format json
  onecctl setup webservice --name "1c prod" --endpoint http://1c.local/exchange --username exchange --password secret
  onecctl setup hybrid --name "1c with fallback" --endpoint http://1c.local/exchange --auto-sync --sync-interval 30`,
	Args: cobra.ExactArgs(1),
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().StringVar(&setupName, "name", "", "Integration name (required)")
	setupCmd.Flags().StringVar(&setupEndpoint, "endpoint", "", "1C web service URL (webservice and hybrid)")
	setupCmd.Flags().StringVar(&setupUsername, "username", "", "Basic auth user for the web service")
	setupCmd.Flags().StringVar(&setupPassword, "password", "", "Basic auth password for the web service")
	setupCmd.Flags().StringVar(&setupExportPath, "export-path", "", "Directory for exported files (default exports/)")
	setupCmd.Flags().StringVar(&setupFileFormat, "file-format", "", "Export file format: json, xml or csv (default json)")
	setupCmd.Flags().BoolVar(&setupAutoSync, "auto-sync", false, "Enable periodic background export")
	setupCmd.Flags().Uint32Var(&setupSyncInterval, "sync-interval", 0, "Auto-sync cadence in minutes (default 60)")
	setupCmd.Flags().BoolVar(&setupKeepExisting, "keep-existing", false, "Do not deactivate other active integrations")
}

func runSetup(cmd *cobra.Command, args []string) error {
	integrationType := domain.IntegrationType(args[0])
	if !integrationType.Valid() {
		return fmt.Errorf("unknown integration type %q (want webservice, file_export or hybrid)", args[0])
	}
	if setupName == "" {
		return fmt.Errorf("--name is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, db, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	svc, err := service.NewService(repo, nil, nil, zap.NewNop())
	if err != nil {
		return err
	}

	if !setupKeepExisting {
		existing, err := repo.ListIntegrations(ctx)
		if err != nil {
			return fmt.Errorf("list integrations: %w", err)
		}
		for _, in := range existing {
			if !in.Active {
				continue
			}
			in.Active = false
			if _, err := repo.UpdateIntegration(ctx, in); err != nil {
				return fmt.Errorf("deactivate integration %d: %w", in.ID, err)
			}
			fmt.Printf("Deactivated integration %d (%s)\n", in.ID, in.Name)
		}
	}

	integration := &domain.Integration{
		Name:         setupName,
		Type:         integrationType,
		EndpointURL:  setupEndpoint,
		Username:     setupUsername,
		Password:     setupPassword,
		ExportPath:   setupExportPath,
		FileFormat:   domain.FileFormat(setupFileFormat),
		AutoSync:     setupAutoSync,
		SyncInterval: setupSyncInterval,
		Active:       true,
	}

	created, err := svc.CreateIntegration(ctx, integration)
	if err != nil {
		return fmt.Errorf("create integration: %w", err)
	}

	fmt.Printf("Created integration %d (%s)\n", created.ID, created.Name)
	printIntegration(created)

	return nil
}

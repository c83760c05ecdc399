package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dibekkz/dibek/internal/adapter/config"
	"github.com/dibekkz/dibek/internal/adapter/storage"
	"github.com/dibekkz/dibek/internal/adapter/storage/repository"
	"github.com/dibekkz/dibek/internal/core/domain"
)

var (
	version = "1.0.0"

	databaseURI string
)

var rootCmd = &cobra.Command{
	Use:   "onecctl",
	Short: "Configure and verify the 1C:Enterprise exchange",
	Long: `onecctl manages the 1C:Enterprise integration used for exporting
business documents (invoices, acts, waybills, tax invoices).

Examples:
  # Register a file-drop integration writing JSON envelopes
  onecctl setup file_export --name "local drop" --export-path exports/

  # Register a web-service integration
  onecctl setup webservice --name "1c prod" --endpoint http://1c.local/exchange --username exchange --password secret

  # Verify the active integration with a sample document
  onecctl check`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURI, "database-uri", "", "PostgreSQL connection string (env: DATABASE_URI)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if databaseURI == "" {
		databaseURI = os.Getenv("DATABASE_URI")
	}
}

func openRepository(ctx context.Context) (*repository.Repository, *storage.DB, error) {
	if databaseURI == "" {
		return nil, nil, fmt.Errorf("database connection string is required (--database-uri or DATABASE_URI)")
	}

	db, err := storage.NewDBStorage(ctx, &config.Database{DSN: databaseURI})
	if err != nil {
		return nil, nil, err
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return repo, db, nil
}

func printIntegration(in *domain.Integration) {
	fmt.Printf("  Type:        %s\n", in.Type)
	if in.EndpointURL != "" {
		fmt.Printf("  Endpoint:    %s\n", in.EndpointURL)
	}
	if in.Username != "" {
		fmt.Printf("  Username:    %s\n", in.Username)
	}
	if in.Type != domain.IntegrationTypeWebService {
		fmt.Printf("  Export path: %s\n", in.ExportPath)
		fmt.Printf("  File format: %s\n", in.FileFormat)
	}
	fmt.Printf("  Auto sync:   %t (every %d minutes)\n", in.AutoSync, in.SyncInterval)
	if in.LastSyncAt != nil {
		fmt.Printf("  Last sync:   %s\n", in.LastSyncAt.Format(time.RFC3339))
	}
	fmt.Printf("  Active:      %t\n", in.Active)
}

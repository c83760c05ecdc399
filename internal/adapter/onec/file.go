package onec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"go.uber.org/zap"
)

const defaultExportPath = "exports/"

type fileExporter struct {
	logger *zap.Logger
}

type fileResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FilePath string `json:"file_path"`
}

// export writes the envelope into the integration's export directory.
func (e *fileExporter) export(env *envelope, integration *domain.Integration) (*port.ExportResult, error) {
	format := integration.FileFormat
	if format == "" {
		format = domain.FileFormatJSON
	}

	data, err := env.encode(format)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", env.DocumentNumber, err)
	}

	dir := integration.ExportPath
	if dir == "" {
		dir = defaultExportPath
	}

	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("export dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, env.fileName(format))

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	e.logger.Debug("Exported document to file",
		zap.String("number", env.DocumentNumber), zap.String("path", path))

	response, err := json.Marshal(fileResult{
		Success:  true,
		Message:  "Document exported to " + path,
		FilePath: path,
	})
	if err != nil {
		return nil, err
	}

	return &port.ExportResult{
		Target:   path,
		Response: response,
	}, nil
}

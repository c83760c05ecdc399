package port

import (
	"context"

	"github.com/dibekkz/dibek/internal/core/domain"
)

// ExportResult is the outcome of one successful delivery to 1C.
// Target names where the document landed (a file path or an endpoint),
// Response keeps the raw reply when the transport produced one.
type ExportResult struct {
	ExternalID string
	Target     string
	Response   []byte
}

//go:generate mockgen -source=exporter.go -destination=mock/exporter.go -package=mock
type DocumentExporter interface {
	ExportDocument(ctx context.Context, document *domain.Document, integration *domain.Integration) (*ExportResult, error)
}

// SyncRunner is implemented by the service layer and driven by the
// background scheduler.
type SyncRunner interface {
	RunAutoSync(ctx context.Context) error
}

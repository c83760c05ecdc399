package onec

import (
	"context"
	"net/http"
	"time"

	"github.com/dibekkz/dibek/internal/adapter/config"
	"github.com/dibekkz/dibek/internal/adapter/metrics"
	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"go.uber.org/zap"
)

// Exporter implements port.DocumentExporter. It dispatches on the
// integration type: web service, file drop, or hybrid, which tries
// the web service and falls back to a file.
type Exporter struct {
	logger *zap.Logger
	files  *fileExporter
	ws     *webServiceClient
}

func NewExporter(cfg *config.OneC, logger *zap.Logger) (*Exporter, error) {
	return &Exporter{
		logger: logger,
		files: &fileExporter{
			logger: logger,
		},
		ws: &webServiceClient{
			client:        &http.Client{Timeout: cfg.WebServiceTimeout},
			logger:        logger,
			retryAttempts: cfg.RetryAttempts,
			retryDelay:    cfg.RetryDelay,
		},
	}, nil
}

func (e *Exporter) ExportDocument(ctx context.Context, document *domain.Document, integration *domain.Integration) (*port.ExportResult, error) {
	result, err := e.export(ctx, document, integration)
	if err != nil {
		metrics.ExportOutcome("failed")
		return nil, err
	}

	metrics.ExportOutcome("success")
	return result, nil
}

func (e *Exporter) export(ctx context.Context, document *domain.Document, integration *domain.Integration) (*port.ExportResult, error) {
	env, err := buildEnvelope(document, time.Now())
	if err != nil {
		return nil, err
	}

	switch integration.Type {
	case domain.IntegrationTypeWebService:
		return e.ws.export(ctx, env, integration)
	case domain.IntegrationTypeFileExport:
		return e.files.export(env, integration)
	case domain.IntegrationTypeHybrid:
		result, err := e.ws.export(ctx, env, integration)
		if err == nil {
			return result, nil
		}
		e.logger.Warn("Web service export failed, falling back to file",
			zap.String("number", document.Number), zap.Error(err))
		return e.files.export(env, integration)
	default:
		return nil, domain.ErrIntegrationBadType
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dibekkz/dibek/internal/core/domain"
	"go.uber.org/zap"
)

// autoSyncBatchSize caps how many documents one auto-sync sweep picks up.
const autoSyncBatchSize = 100

// ExportDocument sends the document to 1C through the active integration.
// The outcome is recorded as a sync log either way.
func (s *Service) ExportDocument(ctx context.Context, documentID uint64) (*domain.SyncLog, error) {
	integration, err := s.activeIntegration(ctx)
	if err != nil {
		return nil, err
	}

	document, err := s.repo.ReadDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read document", zap.Error(err))
		return nil, domain.ErrInternal
	}

	log, err := s.exportOne(ctx, document, integration)
	if err != nil {
		return nil, err
	}

	return log, nil
}

// ExportDocuments exports a batch, continuing past individual failures.
// The returned logs cover every document that was attempted.
func (s *Service) ExportDocuments(ctx context.Context, documentIDs []uint64) ([]*domain.SyncLog, error) {
	if len(documentIDs) == 0 {
		return nil, domain.ErrBadRequest
	}

	integration, err := s.activeIntegration(ctx)
	if err != nil {
		return nil, err
	}

	logs := make([]*domain.SyncLog, 0, len(documentIDs))

	for _, documentID := range documentIDs {
		document, err := s.repo.ReadDocument(ctx, documentID)
		if err != nil {
			s.logger.Warn("Skip document export",
				zap.Uint64("document", documentID), zap.Error(err))
			continue
		}

		log, _ := s.exportOne(ctx, document, integration)
		if log != nil {
			logs = append(logs, log)
		}
	}

	return logs, nil
}

func (s *Service) ListSyncLogs(ctx context.Context, documentID uint64) ([]*domain.SyncLog, error) {
	list, err := s.repo.ListSyncLogs(ctx, documentID)
	if err != nil {
		s.logger.Error("List sync logs", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return list, nil
}

// RunAutoSync exports documents updated since the last sweep.
// It is a no-op without an active integration with auto sync on.
func (s *Service) RunAutoSync(ctx context.Context) error {
	integration, err := s.repo.GetActiveIntegration(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil
		}
		s.logger.Error("Get active integration", zap.Error(err))
		return err
	}

	if !integration.AutoSync {
		return nil
	}

	interval := time.Duration(integration.SyncInterval) * time.Minute
	if integration.LastSyncAt != nil && time.Since(*integration.LastSyncAt) < interval {
		return nil
	}

	since := time.Time{}
	if integration.LastSyncAt != nil {
		since = *integration.LastSyncAt
	}

	startedAt := time.Now()

	documents, err := s.repo.ListDocumentsUpdatedSince(ctx, since, autoSyncBatchSize)
	if err != nil {
		s.logger.Error("List documents for sync", zap.Error(err))
		return err
	}

	var failed int
	for _, document := range documents {
		loaded, err := s.repo.ReadDocument(ctx, document.ID)
		if err != nil {
			s.logger.Warn("Skip document sync",
				zap.Uint64("document", document.ID), zap.Error(err))
			failed++
			continue
		}

		_, err = s.exportOne(ctx, loaded, integration)
		if err != nil {
			failed++
		}
	}

	err = s.repo.UpdateIntegrationSyncTime(ctx, integration.ID, startedAt)
	if err != nil {
		s.logger.Error("Update sync time", zap.Error(err))
		return err
	}

	if len(documents) > 0 {
		s.logger.Info("Auto sync finished",
			zap.Int("exported", len(documents)-failed),
			zap.Int("failed", failed))
	}

	return nil
}

func (s *Service) activeIntegration(ctx context.Context) (*domain.Integration, error) {
	integration, err := s.repo.GetActiveIntegration(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrIntegrationInactive
		}
		s.logger.Error("Get active integration", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if !integration.Active {
		return nil, domain.ErrIntegrationInactive
	}

	return integration, nil
}

// exportOne runs a single export and records its sync log. On failure the
// log is still written and returned together with ErrExportFailed.
func (s *Service) exportOne(ctx context.Context, document *domain.Document, integration *domain.Integration) (*domain.SyncLog, error) {
	result, err := s.exporter.ExportDocument(ctx, document, integration)
	if err != nil {
		s.logger.Error("Export document",
			zap.String("number", document.Number), zap.Error(err))

		failLog := &domain.SyncLog{
			DocumentID:    document.ID,
			IntegrationID: integration.ID,
			Type:          domain.SyncTypeExport,
			Status:        domain.SyncStatusFailed,
			Message:       err.Error(),
		}

		_, logErr := s.repo.CreateSyncLog(ctx, failLog)
		if logErr != nil {
			s.logger.Error("Create sync log", zap.Error(logErr))
		}

		return failLog, domain.ErrExportFailed
	}

	okLog := &domain.SyncLog{
		DocumentID:    document.ID,
		IntegrationID: integration.ID,
		Type:          domain.SyncTypeExport,
		Status:        domain.SyncStatusSuccess,
		Message:       fmt.Sprintf("exported %s to %s", document.Number, result.Target),
		ResponseData:  result.Response,
	}

	_, err = s.repo.CreateSyncLog(ctx, okLog)
	if err != nil {
		s.logger.Error("Create sync log", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return okLog, nil
}

package service

import (
	"context"
	"errors"

	"github.com/dibekkz/dibek/internal/core/domain"
	"go.uber.org/zap"
)

func (s *Service) CreateIntegration(ctx context.Context, integration *domain.Integration) (*domain.Integration, error) {
	err := validateIntegration(integration)
	if err != nil {
		return nil, err
	}

	newIntegration, err := s.repo.CreateIntegration(ctx, integration)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, domain.ErrConflictingData
		}
		s.logger.Error("Create integration", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newIntegration, nil
}

func (s *Service) GetIntegration(ctx context.Context, integrationID uint64) (*domain.Integration, error) {
	integration, err := s.repo.ReadIntegration(ctx, integrationID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read integration", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return integration, nil
}

func (s *Service) ListIntegrations(ctx context.Context) ([]*domain.Integration, error) {
	list, err := s.repo.ListIntegrations(ctx)
	if err != nil {
		s.logger.Error("List integrations", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return list, nil
}

func (s *Service) UpdateIntegration(ctx context.Context, integration *domain.Integration) (*domain.Integration, error) {
	err := validateIntegration(integration)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateIntegration(ctx, integration)
	if err != nil {
		if errors.Is(err, domain.ErrNoUpdatedData) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Update integration", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return updated, nil
}

func validateIntegration(integration *domain.Integration) error {
	if !integration.Type.Valid() {
		return domain.ErrIntegrationBadType
	}

	switch integration.Type {
	case domain.IntegrationTypeWebService, domain.IntegrationTypeHybrid:
		if integration.EndpointURL == "" {
			return domain.ErrBadRequest
		}
	}

	if integration.Type != domain.IntegrationTypeWebService {
		if integration.FileFormat == "" {
			integration.FileFormat = domain.FileFormatJSON
		}
		if !integration.FileFormat.Valid() {
			return domain.ErrIntegrationBadFormat
		}
		if integration.ExportPath == "" {
			integration.ExportPath = "exports/"
		}
	}

	if integration.SyncInterval == 0 {
		integration.SyncInterval = 60
	}

	return nil
}

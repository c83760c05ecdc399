package service

import (
	"github.com/dibekkz/dibek/internal/core/port"
	"go.uber.org/zap"
)

// Service implements port.Service. It validates business rules and
// delegates persistence to the repository and document delivery to
// the 1C exporter.
type Service struct {
	repo         port.Repository
	tokenService port.TokenService
	exporter     port.DocumentExporter
	logger       *zap.Logger
}

func NewService(repo port.Repository, tokenService port.TokenService,
	exporter port.DocumentExporter, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		tokenService: tokenService,
		exporter:     exporter,
		logger:       logger,
	}, nil
}

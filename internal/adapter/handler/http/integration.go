package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IntegrationHandler struct {
	Handler
	service port.Service
}

func NewIntegrationHandler(service port.Service, logger *zap.Logger) (*IntegrationHandler, error) {
	return &IntegrationHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type integrationRequest struct {
	Name         string `json:"name"`
	Type         string `json:"integration_type"`
	EndpointURL  string `json:"endpoint_url"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	ExportPath   string `json:"export_path"`
	FileFormat   string `json:"file_format"`
	AutoSync     bool   `json:"auto_sync"`
	SyncInterval uint32 `json:"sync_interval"`
	Active       *bool  `json:"active"`
}

// integrationResponse leaves the password out.
type integrationResponse struct {
	ID           uint64     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"integration_type"`
	EndpointURL  string     `json:"endpoint_url,omitempty"`
	Username     string     `json:"username,omitempty"`
	ExportPath   string     `json:"export_path,omitempty"`
	FileFormat   string     `json:"file_format,omitempty"`
	AutoSync     bool       `json:"auto_sync"`
	SyncInterval uint32     `json:"sync_interval"`
	LastSyncAt   *time.Time `json:"last_sync_at,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
}

func newIntegrationResponse(integration *domain.Integration) integrationResponse {
	return integrationResponse{
		ID:           integration.ID,
		Name:         integration.Name,
		Type:         string(integration.Type),
		EndpointURL:  integration.EndpointURL,
		Username:     integration.Username,
		ExportPath:   integration.ExportPath,
		FileFormat:   string(integration.FileFormat),
		AutoSync:     integration.AutoSync,
		SyncInterval: integration.SyncInterval,
		LastSyncAt:   integration.LastSyncAt,
		Active:       integration.Active,
		CreatedAt:    integration.CreatedAt,
	}
}

func (req *integrationRequest) toDomain() *domain.Integration {
	integration := &domain.Integration{
		Name:         req.Name,
		Type:         domain.IntegrationType(req.Type),
		EndpointURL:  req.EndpointURL,
		Username:     req.Username,
		Password:     req.Password,
		ExportPath:   req.ExportPath,
		FileFormat:   domain.FileFormat(req.FileFormat),
		AutoSync:     req.AutoSync,
		SyncInterval: req.SyncInterval,
		Active:       true,
	}
	if req.Active != nil {
		integration.Active = *req.Active
	}

	return integration
}

func (ih *IntegrationHandler) CreateIntegration(ctx *gin.Context) {
	req := integrationRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		ih.handleValidationError(ctx, err)
		return
	}

	created, err := ih.service.CreateIntegration(ctx, req.toDomain())
	if err != nil {
		ih.handleError(ctx, err)
		return
	}

	ih.handleSuccessWithStatus(ctx, newIntegrationResponse(created), http.StatusCreated)
}

func (ih *IntegrationHandler) GetIntegration(ctx *gin.Context) {
	integrationID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ih.handleValidationError(ctx, err)
		return
	}

	integration, err := ih.service.GetIntegration(ctx, integrationID)
	if err != nil {
		ih.handleError(ctx, err)
		return
	}

	ih.handleSuccess(ctx, newIntegrationResponse(integration))
}

func (ih *IntegrationHandler) ListIntegrations(ctx *gin.Context) {
	list, err := ih.service.ListIntegrations(ctx)
	if err != nil {
		ih.handleError(ctx, err)
		return
	}

	result := make([]integrationResponse, 0, len(list))
	for _, integration := range list {
		result = append(result, newIntegrationResponse(integration))
	}

	ih.handleSuccess(ctx, result)
}

func (ih *IntegrationHandler) UpdateIntegration(ctx *gin.Context) {
	integrationID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ih.handleValidationError(ctx, err)
		return
	}

	req := integrationRequest{}
	err = ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		ih.handleValidationError(ctx, err)
		return
	}

	integration := req.toDomain()
	integration.ID = integrationID

	updated, err := ih.service.UpdateIntegration(ctx, integration)
	if err != nil {
		ih.handleError(ctx, err)
		return
	}

	ih.handleSuccess(ctx, newIntegrationResponse(updated))
}

package http

import (
	"fmt"
	"net/http"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrInvalidCredentials:         http.StatusUnauthorized,
	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrNoUpdatedData: http.StatusBadRequest,
	domain.ErrBadRequest:    http.StatusBadRequest,

	domain.ErrBINInvalid:      http.StatusUnprocessableEntity,
	domain.ErrCompanyNotFound: http.StatusNotFound,

	domain.ErrCartEmpty:       http.StatusBadRequest,
	domain.ErrCartBadQuantity: http.StatusUnprocessableEntity,

	domain.ErrOrderAlreadyPaid:    http.StatusConflict,
	domain.ErrOrderNotPayable:     http.StatusConflict,
	domain.ErrPaymentBadAmount:    http.StatusUnprocessableEntity,
	domain.ErrOrderTotalsMismatch: http.StatusConflict,

	domain.ErrDocumentBadType:       http.StatusUnprocessableEntity,
	domain.ErrDocumentBadStatus:     http.StatusUnprocessableEntity,
	domain.ErrDocumentBadTransition: http.StatusConflict,

	domain.ErrIntegrationInactive:  http.StatusBadRequest,
	domain.ErrIntegrationBadType:   http.StatusUnprocessableEntity,
	domain.ErrIntegrationBadFormat: http.StatusUnprocessableEntity,
	domain.ErrExportFailed:         http.StatusBadGateway,
}

// jsonDecimal renders a decimal as a JSON number instead of a string.
type jsonDecimal decimal.Decimal

func (j jsonDecimal) MarshalJSON() ([]byte, error) {
	s := fmt.Sprintf("%f", decimal.Decimal(j))
	return []byte(s), nil
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.Status(http.StatusBadRequest)
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.Status(statusCode)
}

// handleSuccessWithStatus sends a success response with the given status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}

package http

import (
	"net/http"
	"time"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Handler
	service port.Service
}

func NewPaymentHandler(service port.Service, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: Handler{logger: logger},
		service: service,
	}, nil
}

type paymentRequest struct {
	OrderID uint64  `json:"order_id"`
	Amount  float64 `json:"amount"`
}

type paymentResponse struct {
	ID        uint64      `json:"id"`
	OrderID   uint64      `json:"order_id"`
	Amount    jsonDecimal `json:"amount"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

func newPaymentResponse(payment *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:        payment.ID,
		OrderID:   payment.OrderID,
		Amount:    jsonDecimal(payment.Amount),
		Status:    string(payment.Status),
		CreatedAt: payment.CreatedAt,
	}
}

func (ph *PaymentHandler) CreatePayment(ctx *gin.Context) {
	req := paymentRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	userID := getAuthPayload(ctx).UserID

	amount, err := decimal.NewFromFloat64(req.Amount)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	payment, err := ph.service.CreatePayment(ctx, userID, req.OrderID, amount)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, newPaymentResponse(payment), http.StatusCreated)
}

func (ph *PaymentHandler) ListPaymentsByUser(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := ph.service.ListPaymentsByUser(ctx, userID)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	result := make([]paymentResponse, 0, len(list))
	for _, payment := range list {
		result = append(result, newPaymentResponse(payment))
	}

	ph.handleSuccess(ctx, result)
}

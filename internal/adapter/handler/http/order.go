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

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type orderItemResponse struct {
	ItemID    uint64      `json:"item_id"`
	Title     string      `json:"title"`
	Quantity  uint32      `json:"quantity"`
	UnitPrice jsonDecimal `json:"unit_price"`
	LineTotal jsonDecimal `json:"line_total"`
}

type orderResponse struct {
	ID        uint64              `json:"id"`
	Status    string              `json:"status"`
	Total     jsonDecimal         `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []orderItemResponse `json:"items,omitempty"`
}

func newOrderResponse(order *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ItemID:    item.ItemID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: jsonDecimal(item.UnitPrice),
			LineTotal: jsonDecimal(item.LineTotal),
		})
	}

	return orderResponse{
		ID:        order.ID,
		Status:    string(order.Status),
		Total:     jsonDecimal(order.Total),
		CreatedAt: order.CreatedAt,
		Items:     items,
	}
}

// CreateOrder converts the current cart into an order.
func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	order, err := oh.service.CreateOrder(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResponse(order), http.StatusCreated)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.GetOrder(ctx, userID, orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := oh.service.ListOrdersByUser(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, order := range list {
		result = append(result, newOrderResponse(order))
	}

	oh.handleSuccess(ctx, result)
}

package http

import (
	"strconv"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	Handler
	service port.Service
}

func NewCartHandler(service port.Service, logger *zap.Logger) (*CartHandler, error) {
	return &CartHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type cartItemResponse struct {
	ItemID   uint64      `json:"item_id"`
	Title    string      `json:"title"`
	Price    jsonDecimal `json:"price"`
	Quantity uint32      `json:"quantity"`
}

type cartResponse struct {
	ID    uint64             `json:"id"`
	Items []cartItemResponse `json:"items"`
}

func newCartResponse(cart *domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, ci := range cart.Items {
		item := cartItemResponse{
			ItemID:   ci.ItemID,
			Quantity: ci.Quantity,
		}
		if ci.Item != nil {
			item.Title = ci.Item.Title
			item.Price = jsonDecimal(ci.Item.Price)
		}
		items = append(items, item)
	}

	return cartResponse{
		ID:    cart.ID,
		Items: items,
	}
}

func (ch *CartHandler) GetCart(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	cart, err := ch.service.GetCart(ctx, userID)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, newCartResponse(cart))
}

type addCartItemRequest struct {
	ItemID   uint64 `json:"item_id"`
	Quantity uint32 `json:"quantity"`
}

func (ch *CartHandler) AddCartItem(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	req := addCartItemRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	cart, err := ch.service.AddCartItem(ctx, userID, req.ItemID, req.Quantity)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, newCartResponse(cart))
}

func (ch *CartHandler) RemoveCartItem(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	itemID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	cart, err := ch.service.RemoveCartItem(ctx, userID, itemID)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, newCartResponse(cart))
}

package http

import (
	"net/http"
	"strconv"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type ItemHandler struct {
	Handler
	service port.Service
}

func NewItemHandler(service port.Service, logger *zap.Logger) (*ItemHandler, error) {
	return &ItemHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type itemRequest struct {
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	CompanyID uint64  `json:"company_id"`
	Category  string  `json:"category"`
}

type itemResponse struct {
	ID        uint64      `json:"id"`
	Title     string      `json:"title"`
	Price     jsonDecimal `json:"price"`
	CompanyID uint64      `json:"company_id"`
	Category  string      `json:"category,omitempty"`
}

func newItemResponse(item *domain.Item) itemResponse {
	return itemResponse{
		ID:        item.ID,
		Title:     item.Title,
		Price:     jsonDecimal(item.Price),
		CompanyID: item.CompanyID,
		Category:  item.Category,
	}
}

func (ih *ItemHandler) CreateItem(ctx *gin.Context) {
	req := itemRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		ih.handleValidationError(ctx, err)
		return
	}

	price, err := decimal.NewFromFloat64(req.Price)
	if err != nil {
		ih.handleValidationError(ctx, err)
		return
	}

	item := &domain.Item{
		Title:     req.Title,
		Price:     price,
		CompanyID: req.CompanyID,
		Category:  req.Category,
	}

	created, err := ih.service.CreateItem(ctx, item)
	if err != nil {
		ih.handleError(ctx, err)
		return
	}

	ih.handleSuccessWithStatus(ctx, newItemResponse(created), http.StatusCreated)
}

func (ih *ItemHandler) GetItem(ctx *gin.Context) {
	itemID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ih.handleValidationError(ctx, err)
		return
	}

	item, err := ih.service.GetItem(ctx, itemID)
	if err != nil {
		ih.handleError(ctx, err)
		return
	}

	ih.handleSuccess(ctx, newItemResponse(item))
}

func (ih *ItemHandler) ListItems(ctx *gin.Context) {
	var companyID uint64
	if raw := ctx.Query("company"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			ih.handleValidationError(ctx, err)
			return
		}
		companyID = parsed
	}

	category := ctx.Query("category")

	list, err := ih.service.ListItems(ctx, companyID, category)
	if err != nil {
		ih.handleError(ctx, err)
		return
	}

	result := make([]itemResponse, 0, len(list))
	for _, item := range list {
		result = append(result, newItemResponse(item))
	}

	ih.handleSuccess(ctx, result)
}

package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	Handler
	service port.Service
}

func NewDocumentHandler(service port.Service, logger *zap.Logger) (*DocumentHandler, error) {
	return &DocumentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type documentItemResponse struct {
	Title     string      `json:"title"`
	Quantity  uint32      `json:"quantity"`
	UnitPrice jsonDecimal `json:"unit_price"`
	Total     jsonDecimal `json:"total"`
}

type documentResponse struct {
	ID        uint64                 `json:"id"`
	Type      string                 `json:"document_type"`
	Number    string                 `json:"number"`
	OrderID   uint64                 `json:"order_id"`
	Seller    *companyResponse       `json:"seller,omitempty"`
	Buyer     *companyResponse       `json:"buyer,omitempty"`
	IssuedAt  time.Time              `json:"issued_at"`
	DueAt     *time.Time             `json:"due_at,omitempty"`
	Subtotal  jsonDecimal            `json:"subtotal"`
	VATRate   jsonDecimal            `json:"vat_rate"`
	VATAmount jsonDecimal            `json:"vat_amount"`
	Total     jsonDecimal            `json:"total"`
	Status    string                 `json:"status"`
	Notes     string                 `json:"notes,omitempty"`
	Items     []documentItemResponse `json:"items,omitempty"`
}

func newDocumentResponse(document *domain.Document) documentResponse {
	items := make([]documentItemResponse, 0, len(document.Items))
	for _, item := range document.Items {
		items = append(items, documentItemResponse{
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: jsonDecimal(item.UnitPrice),
			Total:     jsonDecimal(item.Total),
		})
	}

	resp := documentResponse{
		ID:        document.ID,
		Type:      string(document.Type),
		Number:    document.Number,
		OrderID:   document.OrderID,
		IssuedAt:  document.IssuedAt,
		DueAt:     document.DueAt,
		Subtotal:  jsonDecimal(document.Subtotal),
		VATRate:   jsonDecimal(document.VATRate),
		VATAmount: jsonDecimal(document.VATAmount),
		Total:     jsonDecimal(document.Total),
		Status:    string(document.Status),
		Notes:     document.Notes,
		Items:     items,
	}

	if document.Seller != nil {
		seller := newCompanyResponse(document.Seller)
		resp.Seller = &seller
	}
	if document.Buyer != nil {
		buyer := newCompanyResponse(document.Buyer)
		resp.Buyer = &buyer
	}

	return resp
}

type createDocumentRequest struct {
	OrderID  uint64     `json:"order_id"`
	Type     string     `json:"document_type"`
	SellerID uint64     `json:"seller_id"`
	BuyerID  uint64     `json:"buyer_id"`
	VATRate  *float64   `json:"vat_rate"`
	DueAt    *time.Time `json:"due_at"`
	Notes    string     `json:"notes"`
}

func (dh *DocumentHandler) CreateDocument(ctx *gin.Context) {
	req := createDocumentRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	userID := getAuthPayload(ctx).UserID

	input := port.CreateDocumentInput{
		UserID:   userID,
		OrderID:  req.OrderID,
		Type:     domain.DocumentType(req.Type),
		SellerID: req.SellerID,
		BuyerID:  req.BuyerID,
		DueAt:    req.DueAt,
		Notes:    req.Notes,
	}

	if req.VATRate != nil {
		rate, err := decimal.NewFromFloat64(*req.VATRate)
		if err != nil {
			dh.handleValidationError(ctx, err)
			return
		}
		input.VATRate = &rate
	}

	document, err := dh.service.CreateDocumentFromOrder(ctx, input)
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	dh.handleSuccessWithStatus(ctx, newDocumentResponse(document), http.StatusCreated)
}

func (dh *DocumentHandler) GetDocument(ctx *gin.Context) {
	documentID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	document, err := dh.service.GetDocument(ctx, documentID)
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	dh.handleSuccess(ctx, newDocumentResponse(document))
}

func (dh *DocumentHandler) ListDocuments(ctx *gin.Context) {
	filter := port.DocumentFilter{
		Type:   domain.DocumentType(ctx.Query("type")),
		Status: domain.DocumentStatus(ctx.Query("status")),
	}

	for query, target := range map[string]*uint64{
		"order":  &filter.OrderID,
		"seller": &filter.SellerID,
		"limit":  &filter.Limit,
	} {
		raw := ctx.Query(query)
		if raw == "" {
			continue
		}
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			dh.handleValidationError(ctx, err)
			return
		}
		*target = parsed
	}

	list, err := dh.service.ListDocuments(ctx, filter)
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	result := make([]documentResponse, 0, len(list))
	for _, document := range list {
		result = append(result, newDocumentResponse(document))
	}

	dh.handleSuccess(ctx, result)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (dh *DocumentHandler) UpdateDocumentStatus(ctx *gin.Context) {
	documentID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	req := updateStatusRequest{}
	err = ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	document, err := dh.service.UpdateDocumentStatus(ctx, documentID, domain.DocumentStatus(req.Status))
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	dh.handleSuccess(ctx, newDocumentResponse(document))
}

type syncLogResponse struct {
	ID            uint64    `json:"id"`
	DocumentID    uint64    `json:"document_id"`
	IntegrationID uint64    `json:"integration_id"`
	Type          string    `json:"sync_type"`
	Status        string    `json:"status"`
	Message       string    `json:"message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func newSyncLogResponse(log *domain.SyncLog) syncLogResponse {
	return syncLogResponse{
		ID:            log.ID,
		DocumentID:    log.DocumentID,
		IntegrationID: log.IntegrationID,
		Type:          string(log.Type),
		Status:        string(log.Status),
		Message:       log.Message,
		CreatedAt:     log.CreatedAt,
	}
}

func (dh *DocumentHandler) ExportDocument(ctx *gin.Context) {
	documentID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	log, err := dh.service.ExportDocument(ctx, documentID)
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	dh.handleSuccess(ctx, struct {
		Message string          `json:"message"`
		Result  syncLogResponse `json:"result"`
	}{
		Message: "Document exported successfully",
		Result:  newSyncLogResponse(log),
	})
}

type bulkExportRequest struct {
	DocumentIDs []uint64 `json:"document_ids"`
}

func (dh *DocumentHandler) BulkExportDocuments(ctx *gin.Context) {
	req := bulkExportRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		dh.handleValidationError(ctx, err)
		return
	}

	logs, err := dh.service.ExportDocuments(ctx, req.DocumentIDs)
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	results := make([]syncLogResponse, 0, len(logs))
	for _, log := range logs {
		results = append(results, newSyncLogResponse(log))
	}

	dh.handleSuccess(ctx, struct {
		Message string            `json:"message"`
		Results []syncLogResponse `json:"results"`
	}{
		Message: "Bulk export completed",
		Results: results,
	})
}

// ListSyncLogs serves both the per-document and the global listing,
// documentID stays zero for the latter.
func (dh *DocumentHandler) ListSyncLogs(ctx *gin.Context) {
	var documentID uint64
	if raw := ctx.Param("id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			dh.handleValidationError(ctx, err)
			return
		}
		documentID = parsed
	}

	logs, err := dh.service.ListSyncLogs(ctx, documentID)
	if err != nil {
		dh.handleError(ctx, err)
		return
	}

	result := make([]syncLogResponse, 0, len(logs))
	for _, log := range logs {
		result = append(result, newSyncLogResponse(log))
	}

	dh.handleSuccess(ctx, result)
}

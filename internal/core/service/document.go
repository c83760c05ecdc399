package service

import (
	"context"
	"errors"
	"time"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"github.com/dibekkz/dibek/internal/core/utils"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// CreateDocumentFromOrder assembles a statutory document from an order.
// The order's stored total is re-checked against its item snapshot before
// any numbers go on paper.
func (s *Service) CreateDocumentFromOrder(ctx context.Context, input port.CreateDocumentInput) (*domain.Document, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrDocumentBadType
	}

	order, err := s.GetOrder(ctx, input.UserID, input.OrderID)
	if err != nil {
		return nil, err
	}

	err = verifyOrderTotals(order)
	if err != nil {
		return nil, err
	}

	seller, err := s.repo.ReadCompany(ctx, input.SellerID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		s.logger.Error("Read seller", zap.Error(err))
		return nil, domain.ErrInternal
	}

	buyer, err := s.repo.ReadCompany(ctx, input.BuyerID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		s.logger.Error("Read buyer", zap.Error(err))
		return nil, domain.ErrInternal
	}

	vatRate := utils.DefaultVATRate
	if input.VATRate != nil {
		vatRate = *input.VATRate
	}

	subtotal := order.Total

	vatAmount, total, err := utils.ComputeVAT(subtotal, vatRate)
	if err != nil {
		s.logger.Error("Compute VAT", zap.Error(err))
		return nil, domain.ErrInternal
	}

	items := make([]domain.DocumentItem, 0, len(order.Items))
	for _, oi := range order.Items {
		items = append(items, domain.DocumentItem{
			Title:     oi.Title,
			Quantity:  oi.Quantity,
			UnitPrice: oi.UnitPrice,
			Total:     oi.LineTotal,
		})
	}

	document := &domain.Document{
		Type:      input.Type,
		OrderID:   order.ID,
		SellerID:  seller.ID,
		BuyerID:   buyer.ID,
		IssuedAt:  time.Now(),
		DueAt:     input.DueAt,
		Subtotal:  subtotal,
		VATRate:   vatRate,
		VATAmount: vatAmount,
		Total:     total,
		Status:    domain.DocumentStatusDraft,
		Notes:     input.Notes,
		Items:     items,
	}

	newDocument, err := s.repo.CreateDocument(ctx, document)
	if err != nil {
		s.logger.Error("Create document", zap.Error(err))
		return nil, domain.ErrInternal
	}

	newDocument.Seller = seller
	newDocument.Buyer = buyer

	return newDocument, nil
}

// verifyOrderTotals recomputes the order total from its item snapshot.
func verifyOrderTotals(order *domain.Order) error {
	sum := decimal.Zero

	for _, item := range order.Items {
		var err error
		sum, err = sum.Add(item.LineTotal)
		if err != nil {
			return err
		}
	}

	sum, err := sum.Rescale(2)
	if err != nil {
		return err
	}

	if sum.Cmp(order.Total) != 0 {
		return domain.ErrOrderTotalsMismatch
	}

	return nil
}

func (s *Service) GetDocument(ctx context.Context, documentID uint64) (*domain.Document, error) {
	document, err := s.repo.ReadDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read document", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return document, nil
}

func (s *Service) ListDocuments(ctx context.Context, filter port.DocumentFilter) ([]*domain.Document, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.ErrDocumentBadType
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.ErrDocumentBadStatus
	}

	list, err := s.repo.ListDocuments(ctx, filter)
	if err != nil {
		s.logger.Error("List documents", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return list, nil
}

// UpdateDocumentStatus moves the document along the
// draft, sent, confirmed, paid/cancelled flow.
func (s *Service) UpdateDocumentStatus(ctx context.Context, documentID uint64, status domain.DocumentStatus) (*domain.Document, error) {
	if !status.Valid() {
		return nil, domain.ErrDocumentBadStatus
	}

	document, err := s.repo.ReadDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read document", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if !document.Status.CanTransition(status) {
		return nil, domain.ErrDocumentBadTransition
	}

	updated, err := s.repo.UpdateDocumentStatus(ctx, documentID, document.Status, status)
	if err != nil {
		if errors.Is(err, domain.ErrNoUpdatedData) {
			return nil, domain.ErrDocumentBadTransition
		}
		s.logger.Error("Update document status", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return updated, nil
}

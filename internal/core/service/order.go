package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// CreateOrder turns the user's cart into an order. Item titles and
// prices are snapshotted so later catalog edits leave the order intact.
func (s *Service) CreateOrder(ctx context.Context, userID uint64) (*domain.Order, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, domain.ErrCartEmpty
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(cart.Items))

	for _, ci := range cart.Items {
		line, err := lineTotal(ci.Item.Price, ci.Quantity)
		if err != nil {
			s.logger.Error("Order total", zap.Error(err))
			return nil, domain.ErrInternal
		}

		total, err = total.Add(line)
		if err != nil {
			s.logger.Error("Order total", zap.Error(err))
			return nil, domain.ErrInternal
		}

		items = append(items, domain.OrderItem{
			ItemID:    ci.ItemID,
			Title:     ci.Item.Title,
			Quantity:  ci.Quantity,
			UnitPrice: ci.Item.Price,
			LineTotal: line,
		})
	}

	total, err = total.Rescale(2)
	if err != nil {
		s.logger.Error("Order total", zap.Error(err))
		return nil, domain.ErrInternal
	}

	order := &domain.Order{
		UserID: userID,
		Status: domain.OrderStatusPending,
		Total:  total,
		Items:  items,
	}

	newOrder, err := s.repo.CreateOrder(ctx, order, cart.ID)
	if err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newOrder, nil
}

func lineTotal(price decimal.Decimal, quantity uint32) (decimal.Decimal, error) {
	qty, err := decimal.New(int64(quantity), 0)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("quantity: %w", err)
	}

	line, err := price.Mul(qty)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("line total: %w", err)
	}

	return line.Rescale(2)
}

func (s *Service) GetOrder(ctx context.Context, userID, orderID uint64) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}

	return order, nil
}

func (s *Service) ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("List orders for user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return list, nil
}

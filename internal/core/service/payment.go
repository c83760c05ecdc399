package service

import (
	"context"
	"errors"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// CreatePayment pays the order in full. The order is locked for the
// duration of the check so two payments cannot both pass it.
func (s *Service) CreatePayment(ctx context.Context, userID, orderID uint64, amount decimal.Decimal) (*domain.Payment, error) {
	if amount.Cmp(decimal.Zero) <= 0 {
		return nil, domain.ErrPaymentBadAmount
	}

	payment := &domain.Payment{
		UserID:  userID,
		OrderID: orderID,
		Amount:  amount,
		Status:  domain.PaymentStatusCompleted,
	}

	newPayment, err := s.repo.ApplyPayment(ctx, payment,
		func(p *domain.Payment, o *domain.Order) error {
			if o.UserID != p.UserID {
				return domain.ErrForbidden
			}

			switch o.Status {
			case domain.OrderStatusPaid:
				return domain.ErrOrderAlreadyPaid
			case domain.OrderStatusPending:
			default:
				return domain.ErrOrderNotPayable
			}

			if p.Amount.Cmp(o.Total) != 0 {
				return domain.ErrPaymentBadAmount
			}

			o.Status = domain.OrderStatusPaid

			return nil
		})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDataNotFound),
			errors.Is(err, domain.ErrForbidden),
			errors.Is(err, domain.ErrOrderAlreadyPaid),
			errors.Is(err, domain.ErrOrderNotPayable),
			errors.Is(err, domain.ErrPaymentBadAmount):
			return nil, err
		}
		s.logger.Error("Apply payment", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newPayment, nil
}

func (s *Service) ListPaymentsByUser(ctx context.Context, userID uint64) ([]*domain.Payment, error) {
	list, err := s.repo.ListPaymentsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("List payments for user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return list, nil
}

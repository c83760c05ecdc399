package service

import (
	"context"
	"errors"

	"github.com/dibekkz/dibek/internal/core/domain"
	"go.uber.org/zap"
)

// GetCart returns the user's cart, creating it when missing.
// Carts are normally created at registration, so the create path
// only fires for accounts predating the cart table.
func (s *Service) GetCart(ctx context.Context, userID uint64) (*domain.Cart, error) {
	cart, err := s.repo.ReadCartByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Read cart", zap.Error(err))
		return nil, domain.ErrInternal
	}

	cart, err = s.repo.CreateCart(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return s.repo.ReadCartByUser(ctx, userID)
		}
		s.logger.Error("Create cart", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return cart, nil
}

func (s *Service) AddCartItem(ctx context.Context, userID, itemID uint64, quantity uint32) (*domain.Cart, error) {
	if quantity == 0 {
		return nil, domain.ErrCartBadQuantity
	}

	_, err := s.repo.ReadItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read item", zap.Error(err))
		return nil, domain.ErrInternal
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.repo.UpsertCartItem(ctx, cart.ID, itemID, quantity)
	if err != nil {
		s.logger.Error("Upsert cart item", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return s.repo.ReadCartByUser(ctx, userID)
}

func (s *Service) RemoveCartItem(ctx context.Context, userID, itemID uint64) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.repo.DeleteCartItem(ctx, cart.ID, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Delete cart item", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return s.repo.ReadCartByUser(ctx, userID)
}

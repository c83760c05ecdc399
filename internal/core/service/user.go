package service

import (
	"context"
	"errors"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/utils"
	"go.uber.org/zap"
)

// RegisterUser stores a new user keyed by company BIN.
// The password is expected to be hashed already.
func (s *Service) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if !utils.ValidateBIN(user.BIN) {
		return nil, domain.ErrBINInvalid
	}

	exUser, err := s.repo.GetUserByBIN(ctx, user.BIN)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if exUser != nil {
		return nil, domain.ErrConflictingData
	}

	newUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, domain.ErrConflictingData
		}
		s.logger.Error("Create user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newUser, nil
}

func (s *Service) LoginUser(ctx context.Context, bin string, password string) (string, error) {
	user, err := s.repo.GetUserByBIN(ctx, bin)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, user.Password)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}

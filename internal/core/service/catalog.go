package service

import (
	"context"
	"errors"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/utils"
	"go.uber.org/zap"
)

func (s *Service) CreateCompany(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	if !utils.ValidateBIN(company.BIN) {
		return nil, domain.ErrBINInvalid
	}

	if company.RegStatus == "" {
		company.RegStatus = domain.CompanyRegStatusActive
	}

	newCompany, err := s.repo.CreateCompany(ctx, company)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, domain.ErrConflictingData
		}
		s.logger.Error("Create company", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newCompany, nil
}

func (s *Service) GetCompany(ctx context.Context, companyID uint64) (*domain.Company, error) {
	company, err := s.repo.ReadCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		s.logger.Error("Read company", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return company, nil
}

// LookupCompanyByBIN reports whether the BIN passes the checksum and
// whether a registered company carries it.
func (s *Service) LookupCompanyByBIN(ctx context.Context, bin string) (*domain.CompanyLookup, error) {
	lookup := &domain.CompanyLookup{
		BIN:         bin,
		ValidFormat: utils.ValidateBIN(bin),
	}

	if !lookup.ValidFormat {
		return lookup, nil
	}

	company, err := s.repo.GetCompanyByBIN(ctx, bin)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return lookup, nil
		}
		s.logger.Error("Get company by BIN", zap.Error(err))
		return nil, domain.ErrInternal
	}

	lookup.Company = company

	return lookup, nil
}

func (s *Service) ListCompanies(ctx context.Context, search string) ([]*domain.Company, error) {
	list, err := s.repo.ListCompanies(ctx, search)
	if err != nil {
		s.logger.Error("List companies", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return list, nil
}

func (s *Service) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item.Price.IsNeg() {
		return nil, domain.ErrBadRequest
	}

	_, err := s.repo.ReadCompany(ctx, item.CompanyID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		s.logger.Error("Read company", zap.Error(err))
		return nil, domain.ErrInternal
	}

	newItem, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		s.logger.Error("Create item", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newItem, nil
}

func (s *Service) GetItem(ctx context.Context, itemID uint64) (*domain.Item, error) {
	item, err := s.repo.ReadItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read item", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return item, nil
}

func (s *Service) ListItems(ctx context.Context, companyID uint64, category string) ([]*domain.Item, error) {
	list, err := s.repo.ListItems(ctx, companyID, category)
	if err != nil {
		s.logger.Error("List items", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return list, nil
}

package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenDuration              = errors.New("invalid token duration format")
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid bin or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrBINInvalid            = errors.New("bin format or control digit is not valid")
	ErrCompanyNotFound       = errors.New("company is not registered")
	ErrCartEmpty             = errors.New("cart has no items")
	ErrCartBadQuantity       = errors.New("cart item quantity must be positive")
	ErrOrderAlreadyPaid      = errors.New("order is already paid")
	ErrOrderNotPayable       = errors.New("order does not accept payments")
	ErrPaymentBadAmount      = errors.New("payment amount does not cover the order")
	ErrOrderTotalsMismatch   = errors.New("order total does not match its line items")
	ErrDocumentBadType       = errors.New("document type is not valid")
	ErrDocumentBadStatus     = errors.New("document status is not valid")
	ErrDocumentBadTransition = errors.New("document status transition is not allowed")

	// * Integration errors.
	ErrIntegrationInactive  = errors.New("no active 1c integration is configured")
	ErrIntegrationBadType   = errors.New("integration type is not valid")
	ErrIntegrationBadFormat = errors.New("integration file format is not valid")
	ErrExportFailed         = errors.New("document export to 1c failed")
)

package port

import (
	"context"
	"time"

	"github.com/dibekkz/dibek/internal/core/domain"
)

// DocumentFilter narrows document listings. Zero values mean no filter,
// Limit zero means no limit.
type DocumentFilter struct {
	Type     domain.DocumentType
	Status   domain.DocumentStatus
	OrderID  uint64
	SellerID uint64
	Limit    uint64
}

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByBIN(ctx context.Context, bin string) (*domain.User, error)

	// Company
	CreateCompany(ctx context.Context, company *domain.Company) (*domain.Company, error)
	ReadCompany(ctx context.Context, companyID uint64) (*domain.Company, error)
	GetCompanyByBIN(ctx context.Context, bin string) (*domain.Company, error)
	ListCompanies(ctx context.Context, search string) ([]*domain.Company, error)

	// Item
	CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	ReadItem(ctx context.Context, itemID uint64) (*domain.Item, error)
	ListItems(ctx context.Context, companyID uint64, category string) ([]*domain.Item, error)

	// Cart
	CreateCart(ctx context.Context, userID uint64) (*domain.Cart, error)
	ReadCartByUser(ctx context.Context, userID uint64) (*domain.Cart, error)
	UpsertCartItem(ctx context.Context, cartID uint64, itemID uint64, quantity uint32) error
	DeleteCartItem(ctx context.Context, cartID uint64, itemID uint64) error

	// Order
	CreateOrder(ctx context.Context, order *domain.Order, cartID uint64) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)

	// Payment
	ApplyPayment(ctx context.Context, payment *domain.Payment, applyFn ApplyPaymentFn) (*domain.Payment, error)
	ListPaymentsByUser(ctx context.Context, userID uint64) ([]*domain.Payment, error)

	// Document
	CreateDocument(ctx context.Context, document *domain.Document) (*domain.Document, error)
	ReadDocument(ctx context.Context, documentID uint64) (*domain.Document, error)
	ReadDocumentByNumber(ctx context.Context, number string) (*domain.Document, error)
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]*domain.Document, error)
	ListDocumentsUpdatedSince(ctx context.Context, since time.Time, limit uint64) ([]*domain.Document, error)
	UpdateDocumentStatus(ctx context.Context, documentID uint64, from, to domain.DocumentStatus) (*domain.Document, error)

	// Integration
	CreateIntegration(ctx context.Context, integration *domain.Integration) (*domain.Integration, error)
	ReadIntegration(ctx context.Context, integrationID uint64) (*domain.Integration, error)
	GetActiveIntegration(ctx context.Context) (*domain.Integration, error)
	ListIntegrations(ctx context.Context) ([]*domain.Integration, error)
	UpdateIntegration(ctx context.Context, integration *domain.Integration) (*domain.Integration, error)
	UpdateIntegrationSyncTime(ctx context.Context, integrationID uint64, syncedAt time.Time) error

	// Sync log
	CreateSyncLog(ctx context.Context, entry *domain.SyncLog) (*domain.SyncLog, error)
	ListSyncLogs(ctx context.Context, documentID uint64) ([]*domain.SyncLog, error)
}

// ApplyPaymentFn mutates the payment and its order inside the repository
// transaction. Returning an error rolls the whole payment back.
type ApplyPaymentFn func(*domain.Payment, *domain.Order) error

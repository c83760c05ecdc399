package port

import (
	"context"
	"time"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/govalues/decimal"
)

// CreateDocumentInput carries everything needed to assemble a business
// document from an order. VATRate nil means the default rate.
type CreateDocumentInput struct {
	UserID   uint64
	OrderID  uint64
	Type     domain.DocumentType
	SellerID uint64
	BuyerID  uint64
	VATRate  *decimal.Decimal
	DueAt    *time.Time
	Notes    string
}

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, bin string, password string) (string, error)

	CreateCompany(ctx context.Context, company *domain.Company) (*domain.Company, error)
	GetCompany(ctx context.Context, companyID uint64) (*domain.Company, error)
	LookupCompanyByBIN(ctx context.Context, bin string) (*domain.CompanyLookup, error)
	ListCompanies(ctx context.Context, search string) ([]*domain.Company, error)

	CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetItem(ctx context.Context, itemID uint64) (*domain.Item, error)
	ListItems(ctx context.Context, companyID uint64, category string) ([]*domain.Item, error)

	GetCart(ctx context.Context, userID uint64) (*domain.Cart, error)
	AddCartItem(ctx context.Context, userID uint64, itemID uint64, quantity uint32) (*domain.Cart, error)
	RemoveCartItem(ctx context.Context, userID uint64, itemID uint64) (*domain.Cart, error)

	CreateOrder(ctx context.Context, userID uint64) (*domain.Order, error)
	GetOrder(ctx context.Context, userID uint64, orderID uint64) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)

	CreatePayment(ctx context.Context, userID uint64, orderID uint64, amount decimal.Decimal) (*domain.Payment, error)
	ListPaymentsByUser(ctx context.Context, userID uint64) ([]*domain.Payment, error)

	CreateDocumentFromOrder(ctx context.Context, input CreateDocumentInput) (*domain.Document, error)
	GetDocument(ctx context.Context, documentID uint64) (*domain.Document, error)
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]*domain.Document, error)
	UpdateDocumentStatus(ctx context.Context, documentID uint64, status domain.DocumentStatus) (*domain.Document, error)

	ExportDocument(ctx context.Context, documentID uint64) (*domain.SyncLog, error)
	ExportDocuments(ctx context.Context, documentIDs []uint64) ([]*domain.SyncLog, error)
	ListSyncLogs(ctx context.Context, documentID uint64) ([]*domain.SyncLog, error)

	CreateIntegration(ctx context.Context, integration *domain.Integration) (*domain.Integration, error)
	GetIntegration(ctx context.Context, integrationID uint64) (*domain.Integration, error)
	ListIntegrations(ctx context.Context) ([]*domain.Integration, error)
	UpdateIntegration(ctx context.Context, integration *domain.Integration) (*domain.Integration, error)
}

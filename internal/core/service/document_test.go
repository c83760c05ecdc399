package service_test

import (
	"context"
	"testing"

	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"github.com/dibekkz/dibek/internal/core/port/mock"
	"github.com/dibekkz/dibek/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestService_CreateDocumentFromOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	seller := domain.Company{ID: 1, Name: "Dibek Trade LLP", BIN: "100340000179"}
	buyer := domain.Company{ID: 2, Name: "Qazaq Retail LLP", BIN: "940140000385"}

	order := domain.Order{
		ID:     7,
		UserID: 1,
		Status: domain.OrderStatusPaid,
		Total:  decimal.MustParse("300.00"),
		Items: []domain.OrderItem{
			{ItemID: 5, Title: "Paper A4", Quantity: 2,
				UnitPrice: decimal.MustParse("150.00"), LineTotal: decimal.MustParse("300.00")},
		},
	}

	createDocumentCall := func(repo *mock.MockRepository) {
		repo.EXPECT().CreateDocument(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *domain.Document) (*domain.Document, error) {
				d.ID = 10
				d.Number = "INV-2024-12-0001"
				return d, nil
			})
	}

	zeroRate := decimal.Zero

	type createDocumentTest struct {
		name         string
		input        port.CreateDocumentInput
		mock         prepareMocks
		expError     error
		expVATAmount string
		expTotal     string
	}

	tests := []createDocumentTest{
		{
			name: "Create invoice default rate",
			input: port.CreateDocumentInput{
				UserID: 1, OrderID: 7, Type: domain.DocumentTypeInvoice,
				SellerID: 1, BuyerID: 2,
			},
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(7)).Return(&order, nil)
				repo.EXPECT().ReadCompany(gomock.Any(), uint64(1)).Return(&seller, nil)
				repo.EXPECT().ReadCompany(gomock.Any(), uint64(2)).Return(&buyer, nil)
				createDocumentCall(repo)
			},
			expError:     nil,
			expVATAmount: "36.00",
			expTotal:     "336.00",
		},
		{
			name: "Create act zero rate",
			input: port.CreateDocumentInput{
				UserID: 1, OrderID: 7, Type: domain.DocumentTypeAct,
				SellerID: 1, BuyerID: 2, VATRate: &zeroRate,
			},
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(7)).Return(&order, nil)
				repo.EXPECT().ReadCompany(gomock.Any(), uint64(1)).Return(&seller, nil)
				repo.EXPECT().ReadCompany(gomock.Any(), uint64(2)).Return(&buyer, nil)
				createDocumentCall(repo)
			},
			expError:     nil,
			expVATAmount: "0.00",
			expTotal:     "300.00",
		},
		{
			name: "Create bad type",
			input: port.CreateDocumentInput{
				UserID: 1, OrderID: 7, Type: "memo", SellerID: 1, BuyerID: 2,
			},
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
			},
			expError: domain.ErrDocumentBadType,
		},
		{
			name: "Create foreign order",
			input: port.CreateDocumentInput{
				UserID: 1, OrderID: 7, Type: domain.DocumentTypeInvoice,
				SellerID: 1, BuyerID: 2,
			},
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				foreign := order
				foreign.UserID = 2
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(7)).Return(&foreign, nil)
			},
			expError: domain.ErrForbidden,
		},
		{
			name: "Create totals mismatch",
			input: port.CreateDocumentInput{
				UserID: 1, OrderID: 7, Type: domain.DocumentTypeInvoice,
				SellerID: 1, BuyerID: 2,
			},
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				tampered := order
				tampered.Total = decimal.MustParse("999.00")
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(7)).Return(&tampered, nil)
			},
			expError: domain.ErrOrderTotalsMismatch,
		},
		{
			name: "Create unknown seller",
			input: port.CreateDocumentInput{
				UserID: 1, OrderID: 7, Type: domain.DocumentTypeInvoice,
				SellerID: 99, BuyerID: 2,
			},
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(7)).Return(&order, nil)
				repo.EXPECT().ReadCompany(gomock.Any(), uint64(99)).Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrCompanyNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			exporter := mock.NewMockDocumentExporter(mockCtrl)
			test.mock(repo, exporter)

			s, err := service.NewService(repo, ts, exporter, logger)
			assert.NoError(t, err)

			result, err := s.CreateDocumentFromOrder(context.Background(), test.input)

			assert.Equal(t, test.expError, err)
			if test.expError != nil {
				assert.Nil(t, result)
				return
			}

			assert.NotNil(t, result)
			assert.Equal(t, uint64(10), result.ID)
			assert.Equal(t, test.input.Type, result.Type)
			assert.Equal(t, domain.DocumentStatusDraft, result.Status)
			assert.Equal(t, "300.00", result.Subtotal.String())
			assert.Equal(t, test.expVATAmount, result.VATAmount.String())
			assert.Equal(t, test.expTotal, result.Total.String())
			assert.Equal(t, &seller, result.Seller)
			assert.Equal(t, &buyer, result.Buyer)
			assert.Len(t, result.Items, 1)
		})
	}
}

func TestService_UpdateDocumentStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	draft := domain.Document{ID: 10, Type: domain.DocumentTypeInvoice,
		Number: "INV-2024-12-0001", Status: domain.DocumentStatusDraft}
	sent := domain.Document{ID: 10, Type: domain.DocumentTypeInvoice,
		Number: "INV-2024-12-0001", Status: domain.DocumentStatusSent}
	paid := domain.Document{ID: 10, Type: domain.DocumentTypeInvoice,
		Number: "INV-2024-12-0001", Status: domain.DocumentStatusPaid}

	type updateStatusTest struct {
		name      string
		status    domain.DocumentStatus
		mock      prepareMocks
		expError  error
		expResult *domain.Document
	}

	tests := []updateStatusTest{
		{
			name:   "Send draft",
			status: domain.DocumentStatusSent,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ReadDocument(gomock.Any(), uint64(10)).Return(&draft, nil)
				repo.EXPECT().UpdateDocumentStatus(gomock.Any(), uint64(10),
					domain.DocumentStatusDraft, domain.DocumentStatusSent).Return(&sent, nil)
			},
			expError:  nil,
			expResult: &sent,
		},
		{
			name:   "Unknown status",
			status: "melted",
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
			},
			expError:  domain.ErrDocumentBadStatus,
			expResult: nil,
		},
		{
			name:   "Paid is terminal",
			status: domain.DocumentStatusSent,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ReadDocument(gomock.Any(), uint64(10)).Return(&paid, nil)
			},
			expError:  domain.ErrDocumentBadTransition,
			expResult: nil,
		},
		{
			name:   "Concurrent transition",
			status: domain.DocumentStatusSent,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ReadDocument(gomock.Any(), uint64(10)).Return(&draft, nil)
				repo.EXPECT().UpdateDocumentStatus(gomock.Any(), uint64(10),
					domain.DocumentStatusDraft, domain.DocumentStatusSent).
					Return(nil, domain.ErrNoUpdatedData)
			},
			expError:  domain.ErrDocumentBadTransition,
			expResult: nil,
		},
		{
			name:   "Document missing",
			status: domain.DocumentStatusSent,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ReadDocument(gomock.Any(), uint64(10)).
					Return(nil, domain.ErrDataNotFound)
			},
			expError:  domain.ErrDataNotFound,
			expResult: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			exporter := mock.NewMockDocumentExporter(mockCtrl)
			test.mock(repo, exporter)

			s, err := service.NewService(repo, ts, exporter, logger)
			assert.NoError(t, err)

			result, err := s.UpdateDocumentStatus(context.Background(), 10, test.status)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

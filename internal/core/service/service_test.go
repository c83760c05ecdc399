package service_test

import (
	"context"
	"testing"

	"github.com/dibekkz/dibek/internal/adapter/auth"
	"github.com/dibekkz/dibek/internal/core/domain"
	"github.com/dibekkz/dibek/internal/core/port"
	"github.com/dibekkz/dibek/internal/core/port/mock"
	"github.com/dibekkz/dibek/internal/core/service"
	"github.com/dibekkz/dibek/internal/core/utils"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter)

func TestService_UserRegister(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type userRegisterTest struct {
		name      string
		user      domain.User
		mock      prepareMocks
		expError  error
		expResult *domain.User
	}

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		ID:       1,
		BIN:      "940140000385",
		Email:    "user@dibek.kz",
		Password: hashedPass,
	}

	tests := []userRegisterTest{
		{
			name: "Register good",
			user: domain.User{BIN: user.BIN, Email: user.Email, Password: hashedPass},
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().GetUserByBIN(gomock.Any(), user.BIN).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(&user, nil)
			},
			expError:  nil,
			expResult: &user,
		},
		{
			name: "Register already exists",
			user: domain.User{BIN: user.BIN, Email: user.Email, Password: hashedPass},
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().GetUserByBIN(gomock.Any(), user.BIN).Return(&user, nil)
			},
			expError:  domain.ErrConflictingData,
			expResult: nil,
		},
		{
			name: "Register bad check digit",
			user: domain.User{BIN: "940140000384", Email: user.Email, Password: hashedPass},
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
			},
			expError:  domain.ErrBINInvalid,
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

			result, err := s.RegisterUser(context.Background(), &test.user)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_UserLogin(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type userLoginTest struct {
		name     string
		bin      string
		password string
		mock     prepareMocks
		expError error
	}

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		ID:       1,
		BIN:      "940140000385",
		Email:    "user@dibek.kz",
		Password: hashedPass,
	}

	tests := []userLoginTest{
		{
			name:     "Login good",
			bin:      user.BIN,
			password: "test",
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().GetUserByBIN(gomock.Any(), user.BIN).Return(&user, nil)
			},
			expError: nil,
		},
		{
			name:     "Password bad",
			bin:      user.BIN,
			password: "hacker",
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().GetUserByBIN(gomock.Any(), user.BIN).Return(&user, nil)
			},
			expError: domain.ErrInvalidCredentials,
		},
		{
			name:     "BIN unknown",
			bin:      "100340000179",
			password: "test",
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().GetUserByBIN(gomock.Any(), "100340000179").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrInvalidCredentials,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts, err := auth.New()
			assert.NoError(t, err)

			exporter := mock.NewMockDocumentExporter(mockCtrl)
			test.mock(repo, exporter)

			s, err := service.NewService(repo, ts, exporter, logger)
			assert.NoError(t, err)

			token, err := s.LoginUser(context.Background(), test.bin, test.password)
			assert.Equal(t, test.expError, err)

			if token != "" {
				payload, err := ts.VerifyToken(token)
				assert.NoError(t, err)
				assert.Equal(t, payload.UserID, user.ID)
			}
		})
	}
}

func TestService_CreateCompany(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type createCompanyTest struct {
		name      string
		company   domain.Company
		mock      prepareMocks
		expError  error
		expResult *domain.Company
	}

	tests := []createCompanyTest{
		{
			name:    "Create good",
			company: domain.Company{Name: "Dibek Trade LLP", BIN: "100340000179"},
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *domain.Company) (*domain.Company, error) {
						cc := *c
						cc.ID = 1
						return &cc, nil
					})
			},
			expError: nil,
			expResult: &domain.Company{
				ID:        1,
				Name:      "Dibek Trade LLP",
				BIN:       "100340000179",
				RegStatus: domain.CompanyRegStatusActive,
			},
		},
		{
			name:    "Create bad BIN",
			company: domain.Company{Name: "Dibek Trade LLP", BIN: "100340000170"},
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
			},
			expError:  domain.ErrBINInvalid,
			expResult: nil,
		},
		{
			name:    "Create duplicate BIN",
			company: domain.Company{Name: "Dibek Trade LLP", BIN: "100340000179"},
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrConflictingData)
			},
			expError:  domain.ErrConflictingData,
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

			result, err := s.CreateCompany(context.Background(), &test.company)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_LookupCompanyByBIN(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	company := domain.Company{ID: 1, Name: "Dibek Trade LLP", BIN: "100340000179"}

	type lookupTest struct {
		name      string
		bin       string
		mock      prepareMocks
		expError  error
		expResult *domain.CompanyLookup
	}

	tests := []lookupTest{
		{
			name: "Lookup registered",
			bin:  company.BIN,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().GetCompanyByBIN(gomock.Any(), company.BIN).Return(&company, nil)
			},
			expError: nil,
			expResult: &domain.CompanyLookup{
				BIN:         company.BIN,
				ValidFormat: true,
				Company:     &company,
			},
		},
		{
			name: "Lookup unregistered",
			bin:  "940140000385",
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().GetCompanyByBIN(gomock.Any(), "940140000385").
					Return(nil, domain.ErrDataNotFound)
			},
			expError: nil,
			expResult: &domain.CompanyLookup{
				BIN:         "940140000385",
				ValidFormat: true,
			},
		},
		{
			name: "Lookup malformed",
			bin:  "12345",
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
			},
			expError: nil,
			expResult: &domain.CompanyLookup{
				BIN:         "12345",
				ValidFormat: false,
			},
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

			result, err := s.LookupCompanyByBIN(context.Background(), test.bin)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_AddCartItem(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	item := domain.Item{ID: 5, Title: "Paper A4", Price: decimal.MustParse("150.00"), CompanyID: 1}
	cart := domain.Cart{ID: 3, UserID: 1}
	filledCart := domain.Cart{ID: 3, UserID: 1, Items: []domain.CartItem{
		{CartID: 3, ItemID: 5, Quantity: 2, Item: &item},
	}}

	type addCartItemTest struct {
		name      string
		itemID    uint64
		quantity  uint32
		mock      prepareMocks
		expError  error
		expResult *domain.Cart
	}

	tests := []addCartItemTest{
		{
			name:     "Add good",
			itemID:   5,
			quantity: 2,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ReadItem(gomock.Any(), uint64(5)).Return(&item, nil)
				repo.EXPECT().ReadCartByUser(gomock.Any(), uint64(1)).Return(&cart, nil)
				repo.EXPECT().UpsertCartItem(gomock.Any(), uint64(3), uint64(5), uint32(2)).Return(nil)
				repo.EXPECT().ReadCartByUser(gomock.Any(), uint64(1)).Return(&filledCart, nil)
			},
			expError:  nil,
			expResult: &filledCart,
		},
		{
			name:     "Add creates missing cart",
			itemID:   5,
			quantity: 2,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ReadItem(gomock.Any(), uint64(5)).Return(&item, nil)
				repo.EXPECT().ReadCartByUser(gomock.Any(), uint64(1)).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateCart(gomock.Any(), uint64(1)).Return(&cart, nil)
				repo.EXPECT().UpsertCartItem(gomock.Any(), uint64(3), uint64(5), uint32(2)).Return(nil)
				repo.EXPECT().ReadCartByUser(gomock.Any(), uint64(1)).Return(&filledCart, nil)
			},
			expError:  nil,
			expResult: &filledCart,
		},
		{
			name:     "Add zero quantity",
			itemID:   5,
			quantity: 0,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
			},
			expError:  domain.ErrCartBadQuantity,
			expResult: nil,
		},
		{
			name:     "Add unknown item",
			itemID:   99,
			quantity: 1,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ReadItem(gomock.Any(), uint64(99)).Return(nil, domain.ErrDataNotFound)
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

			result, err := s.AddCartItem(context.Background(), 1, test.itemID, test.quantity)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_CreateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	item := domain.Item{ID: 5, Title: "Paper A4", Price: decimal.MustParse("150.00"), CompanyID: 1}
	filledCart := domain.Cart{ID: 3, UserID: 1, Items: []domain.CartItem{
		{CartID: 3, ItemID: 5, Quantity: 2, Item: &item},
	}}
	emptyCart := domain.Cart{ID: 3, UserID: 1}

	order := domain.Order{
		ID:     7,
		UserID: 1,
		Status: domain.OrderStatusPending,
		Total:  decimal.MustParse("300.00"),
		Items: []domain.OrderItem{
			{ItemID: 5, Title: "Paper A4", Quantity: 2,
				UnitPrice: decimal.MustParse("150.00"), LineTotal: decimal.MustParse("300.00")},
		},
	}

	type createOrderTest struct {
		name      string
		mock      prepareMocks
		expError  error
		expResult *domain.Order
	}

	tests := []createOrderTest{
		{
			name: "Create good order",
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ReadCartByUser(gomock.Any(), uint64(1)).Return(&filledCart, nil)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), uint64(3)).Return(&order, nil)
			},
			expError:  nil,
			expResult: &order,
		},
		{
			name: "Create from empty cart",
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ReadCartByUser(gomock.Any(), uint64(1)).Return(&emptyCart, nil)
			},
			expError:  domain.ErrCartEmpty,
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

			result, err := s.CreateOrder(context.Background(), 1)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_CreatePayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	total := decimal.MustParse("300.00")

	// applyPaymentCall runs the payment callback against a copy of the
	// order the way the real repository does inside its transaction.
	applyPaymentCall := func(repo *mock.MockRepository, order domain.Order) {
		repo.EXPECT().ApplyPayment(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Payment, fn port.ApplyPaymentFn) (*domain.Payment, error) {
				o := order
				if err := fn(p, &o); err != nil {
					return nil, err
				}
				p.ID = 1
				p.Order = &o
				return p, nil
			})
	}

	type createPaymentTest struct {
		name     string
		orderID  uint64
		amount   decimal.Decimal
		mock     prepareMocks
		expError error
	}

	tests := []createPaymentTest{
		{
			name:    "Payment good",
			orderID: 7,
			amount:  total,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				applyPaymentCall(repo, domain.Order{ID: 7, UserID: 1, Status: domain.OrderStatusPending, Total: total})
			},
			expError: nil,
		},
		{
			name:    "Payment zero amount",
			orderID: 7,
			amount:  decimal.Zero,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
			},
			expError: domain.ErrPaymentBadAmount,
		},
		{
			name:    "Payment foreign order",
			orderID: 7,
			amount:  total,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				applyPaymentCall(repo, domain.Order{ID: 7, UserID: 2, Status: domain.OrderStatusPending, Total: total})
			},
			expError: domain.ErrForbidden,
		},
		{
			name:    "Payment already paid",
			orderID: 7,
			amount:  total,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				applyPaymentCall(repo, domain.Order{ID: 7, UserID: 1, Status: domain.OrderStatusPaid, Total: total})
			},
			expError: domain.ErrOrderAlreadyPaid,
		},
		{
			name:    "Payment cancelled order",
			orderID: 7,
			amount:  total,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				applyPaymentCall(repo, domain.Order{ID: 7, UserID: 1, Status: domain.OrderStatusCancelled, Total: total})
			},
			expError: domain.ErrOrderNotPayable,
		},
		{
			name:    "Payment wrong amount",
			orderID: 7,
			amount:  decimal.MustParse("100.00"),
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				applyPaymentCall(repo, domain.Order{ID: 7, UserID: 1, Status: domain.OrderStatusPending, Total: total})
			},
			expError: domain.ErrPaymentBadAmount,
		},
		{
			name:    "Payment order missing",
			orderID: 99,
			amount:  total,
			mock: func(repo *mock.MockRepository, exporter *mock.MockDocumentExporter) {
				repo.EXPECT().ApplyPayment(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrDataNotFound,
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

			result, err := s.CreatePayment(context.Background(), 1, test.orderID, test.amount)

			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				assert.NotNil(t, result)
				assert.Equal(t, domain.PaymentStatusCompleted, result.Status)
				assert.Equal(t, domain.OrderStatusPaid, result.Order.Status)
			} else {
				assert.Nil(t, result)
			}
		})
	}
}

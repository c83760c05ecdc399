package http

import (
	"github.com/dibekkz/dibek/internal/adapter/config"
	"github.com/dibekkz/dibek/internal/adapter/metrics"
	"github.com/dibekkz/dibek/internal/adapter/ratelimit"
	"github.com/dibekkz/dibek/internal/core/port"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

type Handlers struct {
	User        *UserHandler
	Company     *CompanyHandler
	Item        *ItemHandler
	Cart        *CartHandler
	Order       *OrderHandler
	Payment     *PaymentHandler
	Document    *DocumentHandler
	Integration *IntegrationHandler
	Health      *HealthHandler
}

func NewRouter(
	conf *config.HTTP,
	logger *zap.Logger,
	tokenService port.TokenService,
	limiter *ratelimit.Limiter,
	h Handlers) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(logger), metrics.Middleware())

	router.GET("/healthz", h.Health.Healthz)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		user := api.Group("/user")
		{
			user.POST("/register", rateLimit(limiter), h.User.RegisterUser)
			user.POST("/login", rateLimit(limiter), h.User.LoginUser)

			cart := user.Group("/cart")
			{
				cart.Use(authCheck(tokenService))
				cart.GET("", h.Cart.GetCart)
				cart.POST("/items", h.Cart.AddCartItem)
				cart.DELETE("/items/:id", h.Cart.RemoveCartItem)
			}

			orders := user.Group("/orders")
			{
				orders.Use(authCheck(tokenService))
				orders.POST("", h.Order.CreateOrder)
				orders.GET("", h.Order.ListOrdersByUser)
				orders.GET("/:id", h.Order.GetOrder)
			}

			payments := user.Group("/payments")
			{
				payments.Use(authCheck(tokenService))
				payments.POST("", h.Payment.CreatePayment)
				payments.GET("", h.Payment.ListPaymentsByUser)
			}
		}

		companies := api.Group("/companies")
		{
			companies.GET("", h.Company.ListCompanies)
			companies.GET("/:id", h.Company.GetCompany)
			companies.GET("/bin/:bin", h.Company.LookupCompanyByBIN)
			companies.POST("", authCheck(tokenService), h.Company.CreateCompany)
		}

		items := api.Group("/items")
		{
			items.GET("", h.Item.ListItems)
			items.GET("/:id", h.Item.GetItem)
			items.POST("", authCheck(tokenService), h.Item.CreateItem)
		}

		documents := api.Group("/documents")
		{
			documents.Use(authCheck(tokenService))
			documents.POST("", h.Document.CreateDocument)
			documents.GET("", h.Document.ListDocuments)
			documents.GET("/:id", h.Document.GetDocument)
			documents.PATCH("/:id/status", h.Document.UpdateDocumentStatus)
			documents.POST("/:id/export", h.Document.ExportDocument)
			documents.POST("/export", h.Document.BulkExportDocuments)
			documents.GET("/:id/sync-logs", h.Document.ListSyncLogs)
		}

		api.GET("/sync-logs", authCheck(tokenService), h.Document.ListSyncLogs)

		integrations := api.Group("/integrations")
		{
			integrations.Use(authCheck(tokenService))
			integrations.POST("", h.Integration.CreateIntegration)
			integrations.GET("", h.Integration.ListIntegrations)
			integrations.GET("/:id", h.Integration.GetIntegration)
			integrations.PUT("/:id", h.Integration.UpdateIntegration)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}

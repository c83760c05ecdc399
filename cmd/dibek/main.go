package main

import (
	"context"
	"fmt"

	"github.com/dibekkz/dibek/internal/adapter/auth"
	"github.com/dibekkz/dibek/internal/adapter/config"
	"github.com/dibekkz/dibek/internal/adapter/handler/http"
	"github.com/dibekkz/dibek/internal/adapter/logger"
	"github.com/dibekkz/dibek/internal/adapter/onec"
	"github.com/dibekkz/dibek/internal/adapter/ratelimit"
	"github.com/dibekkz/dibek/internal/adapter/storage"
	"github.com/dibekkz/dibek/internal/adapter/storage/repository"
	"github.com/dibekkz/dibek/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repo creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	exporter, err := onec.NewExporter(conf.OneC, log.Named("OneC"))
	if err != nil {
		log.Error("1c exporter creating error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, tokenService, exporter, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	if conf.OneC.AutoSync {
		onec.NewScheduler(svc, log.Named("Scheduler")).Start(ctx)
	}

	var limiter *ratelimit.Limiter
	if conf.Redis.URL != "" {
		limiter, err = ratelimit.New(conf.Redis.URL)
		if err != nil {
			log.Error("rate limiter creating error", zap.Error(err))
			return
		}
	}

	userHandler, err := http.NewUserHandler(svc, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	companyHandler, err := http.NewCompanyHandler(svc, log.Named("Company handler"))
	if err != nil {
		log.Error("company handler creating error", zap.Error(err))
		return
	}
	itemHandler, err := http.NewItemHandler(svc, log.Named("Item handler"))
	if err != nil {
		log.Error("item handler creating error", zap.Error(err))
		return
	}
	cartHandler, err := http.NewCartHandler(svc, log.Named("Cart handler"))
	if err != nil {
		log.Error("cart handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	paymentHandler, err := http.NewPaymentHandler(svc, log.Named("Payment handler"))
	if err != nil {
		log.Error("payment handler creating error", zap.Error(err))
		return
	}
	documentHandler, err := http.NewDocumentHandler(svc, log.Named("Document handler"))
	if err != nil {
		log.Error("document handler creating error", zap.Error(err))
		return
	}
	integrationHandler, err := http.NewIntegrationHandler(svc, log.Named("Integration handler"))
	if err != nil {
		log.Error("integration handler creating error", zap.Error(err))
		return
	}
	healthHandler, err := http.NewHealthHandler(db, log.Named("Health handler"))
	if err != nil {
		log.Error("health handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, log.Named("Router"), tokenService, limiter, http.Handlers{
		User:        userHandler,
		Company:     companyHandler,
		Item:        itemHandler,
		Cart:        cartHandler,
		Order:       orderHandler,
		Payment:     paymentHandler,
		Document:    documentHandler,
		Integration: integrationHandler,
		Health:      healthHandler,
	})
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}

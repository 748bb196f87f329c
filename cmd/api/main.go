package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/ratelimit"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/payment"
	"app/internal/server"
	"app/internal/tax"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional outside local dev
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Service: "yardsigns-api",
		Env:     cfg.GoEnv,
		Level:   cfg.LogLevel,
	})

	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Order{},
		&model.OrderItem{},
		&model.PromoCode{},
		&model.PromoCodeUsage{},
		&model.InventoryItem{},
		&model.ServiceRequest{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	promoRepo := infraRepo.NewPromoCodeGormRepository(gormDB)
	promoUsageRepo := infraRepo.NewPromoCodeUsageGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	serviceReqRepo := infraRepo.NewServiceRequestGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	oracle := tax.NewStripeTaxClient(cfg.TaxOracleURL, cfg.TaxOracleAPIKey, log)
	charger := payment.NewHTTPClient(cfg.PaymentURL, cfg.PaymentAPIKey, log)
	limiter := ratelimit.NewRedisLimiter(cfg.RedisAddr, log)

	authValidator := validator.NewAuthValidator(userRepo)

	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, authValidator, limiter)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, oracle, charger, cfg, log)
	promoUC := usecase.NewPromoUsecase(promoRepo, promoUsageRepo)
	taxUC := usecase.NewTaxUsecase(oracle)
	inventoryUC := usecase.NewInventoryUsecase(inventoryRepo)
	serviceReqUC := usecase.NewServiceRequestUsecase(serviceReqRepo, orderRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, orderItemRepo, auditRepo, log)
	adminPromoUC := usecase.NewAdminPromoUsecase(promoRepo, promoUsageRepo, auditRepo, log)

	refreshTTL := 30 * 24 * time.Hour

	handlers := server.Handlers{
		Cfg:            cfg,
		Auth:           handler.NewAuthHandler(authUC, refreshTTL),
		Order:          handler.NewOrderHandler(orderUC),
		Promo:          handler.NewPromoHandler(promoUC),
		Tax:            handler.NewTaxHandler(taxUC),
		Inventory:      handler.NewInventoryHandler(inventoryUC),
		ServiceRequest: handler.NewServiceRequestHandler(serviceReqUC),
		AdminOrder:     handler.NewAdminOrderHandler(adminOrderUC),
		AdminPromo:     handler.NewAdminPromoHandler(adminPromoUC),
	}

	log.Info("starting api", "port", cfg.Port)

	if err := server.Start(":"+cfg.Port, handlers); err != nil {
		panic(err)
	}
}

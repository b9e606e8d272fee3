package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/fixitnow-backend/internal/config"
	"github.com/ignatzorin/fixitnow-backend/internal/db"
	httpHandlers "github.com/ignatzorin/fixitnow-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/fixitnow-backend/internal/http/router"
	"github.com/ignatzorin/fixitnow-backend/internal/logger"
	"github.com/ignatzorin/fixitnow-backend/internal/payments/stripe"
	"github.com/ignatzorin/fixitnow-backend/internal/repository"
	"github.com/ignatzorin/fixitnow-backend/internal/service"
	"github.com/ignatzorin/fixitnow-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	stripeClient := stripe.NewClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	jobRepo := repository.NewJobRepository(dbConn)
	quoteRepo := repository.NewQuoteRepository(dbConn)
	reviewRepo := repository.NewReviewRepository(dbConn)
	paymentRepo := repository.NewPaymentRepository(dbConn)
	messageRepo := repository.NewMessageRepository(dbConn)
	categoryRepo := repository.NewCategoryRepository(dbConn)
	adminRepo := repository.NewAdminRepository(dbConn)

	// Вебсокеты.
	hub := ws.NewHub()
	go hub.Run()

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	profileService := service.NewProfileService(userRepo)
	jobService := service.NewJobService(jobRepo, userRepo)
	ledgerService := service.NewLedgerService(quoteRepo, userRepo, reviewRepo, paymentRepo,
		service.LedgerConfig{LeadFee: cfg.LeadFee})
	checkoutService := service.NewCheckoutService(paymentRepo, userRepo, stripeClient,
		service.CheckoutConfig{Packages: cfg.PaymentPackages, Currency: "usd", Timeout: cfg.CheckoutTimeout})
	messageService := service.NewMessageService(messageRepo, userRepo, hub)
	adminService := service.NewAdminService(adminRepo, categoryRepo)

	// Еженедельный сброс трат включается только на одном инстансе.
	if cfg.BudgetResetEnabled {
		service.NewBudgetResetter(userRepo).Start(ctx)
	}

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	profileHandler := httpHandlers.NewProfileHandler(profileService, ledgerService)
	jobHandler := httpHandlers.NewJobHandler(jobService)
	quoteHandler := httpHandlers.NewQuoteHandler(ledgerService)
	reviewHandler := httpHandlers.NewReviewHandler(ledgerService)
	messageHandler := httpHandlers.NewMessageHandler(messageService)
	paymentHandler := httpHandlers.NewPaymentHandler(checkoutService, ledgerService)
	webhookHandler := httpHandlers.NewWebhookHandler(checkoutService)
	categoryHandler := httpHandlers.NewCategoryHandler(adminService)
	adminHandler := httpHandlers.NewAdminHandler(adminService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager, cfg.AllowedOrigins)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	var seedHandler *httpHandlers.SeedHandler
	if cfg.Env == "development" {
		seedService := service.NewSeedService(userRepo, userRepo, jobRepo, categoryRepo)
		seedHandler = httpHandlers.NewSeedHandler(seedService)
	}

	// Роутер.
	engine := httpRouter.SetupRouter(cfg,
		authHandler, profileHandler, jobHandler, quoteHandler, reviewHandler,
		messageHandler, paymentHandler, webhookHandler, categoryHandler, adminHandler,
		wsHandler, healthHandler, seedHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}

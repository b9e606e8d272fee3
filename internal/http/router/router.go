package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fixitnow-backend/internal/config"
	"github.com/ignatzorin/fixitnow-backend/internal/http/handlers"
	"github.com/ignatzorin/fixitnow-backend/internal/http/middleware"
	"github.com/ignatzorin/fixitnow-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	jobHandler *handlers.JobHandler,
	quoteHandler *handlers.QuoteHandler,
	reviewHandler *handlers.ReviewHandler,
	messageHandler *handlers.MessageHandler,
	paymentHandler *handlers.PaymentHandler,
	webhookHandler *handlers.WebhookHandler,
	categoryHandler *handlers.CategoryHandler,
	adminHandler *handlers.AdminHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	// Вебхук провайдера живёт вне /api: путь фиксируется в настройках Stripe.
	r.POST("/webhook/stripe", webhookHandler.Stripe)

	api := r.Group("/api")

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/dev/seed", seedHandler.Seed)
	}

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.GET("/me", authHandler.Me)
	}

	// Публичные маршруты
	api.GET("/ws", wsHandler.Handle)
	api.GET("/jobs", jobHandler.List)
	api.GET("/jobs/:id", middleware.UUIDValidator("id"), jobHandler.Get)
	api.GET("/pros", profileHandler.Search)
	api.GET("/pros/:id", middleware.UUIDValidator("id"), profileHandler.Get)
	api.GET("/reviews/pro/:proId", middleware.UUIDValidator("proId"), reviewHandler.ListByPro)
	api.GET("/categories", categoryHandler.List)
	api.GET("/payments/packages", paymentHandler.Packages)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.POST("/jobs", jobHandler.Create)
		protected.PUT("/jobs/:id/status", middleware.UUIDValidator("id"), jobHandler.UpdateStatus)

		protected.POST("/quotes", quoteHandler.Create)
		protected.GET("/quotes", quoteHandler.List)
		protected.GET("/quotes/:id", middleware.UUIDValidator("id"), quoteHandler.Get)
		protected.PUT("/quotes/:id/status", middleware.UUIDValidator("id"), quoteHandler.UpdateStatus)

		protected.PUT("/pros/profile", profileHandler.UpdateProfile)
		protected.PUT("/pros/:id/budget", middleware.UUIDValidator("id"), profileHandler.SetBudget)

		protected.POST("/reviews", reviewHandler.Create)

		protected.POST("/messages", messageHandler.Send)
		protected.GET("/messages/:conversationId", messageHandler.GetConversation)
		protected.GET("/conversations", messageHandler.ListConversations)

		protected.POST("/payments/create-checkout", paymentHandler.CreateCheckout)
		protected.GET("/payments/checkout-status/:sessionId", paymentHandler.CheckoutStatus)
		protected.GET("/payments/history", paymentHandler.History)
	}

	// Админка
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireAdmin())
	{
		admin.GET("/analytics", adminHandler.Analytics)
		admin.GET("/settings", adminHandler.GetSettings)
		admin.PUT("/settings", adminHandler.UpdateSettings)
		admin.GET("/categories", adminHandler.ListCategories)
		admin.POST("/categories", adminHandler.CreateCategory)
		admin.PUT("/categories/:id", middleware.UUIDValidator("id"), adminHandler.UpdateCategory)
		admin.DELETE("/categories/:id", middleware.UUIDValidator("id"), adminHandler.DeleteCategory)
	}

	return r
}

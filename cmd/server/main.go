package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/automation"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/config"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/handler"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/mercadopago"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/middleware"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/repository"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/service"
	"github.com/darksanctum/umbra-coaching-platform--sub000/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	// Redis is optional: without it the dashboard just skips caching
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Payment provider client
	mpClient := mercadopago.NewClient(cfg.MercadoPago.BaseURL, cfg.MercadoPago.AccessToken)

	// Create services
	planSvc := service.NewPlanService(repo)
	couponSvc := service.NewCouponService(repo)
	paymentSvc := service.NewPaymentService(repo, mpClient, cfg)
	promotionSvc := service.NewPromotionService(repo)
	webhookSvc := service.NewWebhookService(repo, mpClient)
	metricsSvc := service.NewMetricsService(repo, mpClient, rdb, cfg)

	// Link coupon redemption into the webhook fulfillment path
	webhookSvc.SetCouponService(couponSvc)

	// Create Telegram notifier
	if cfg.Telegram.BotToken != "" {
		bot, err := telegram.NewBot(cfg)
		if err != nil {
			log.Printf("Warning: Failed to create Telegram bot: %v", err)
		} else {
			webhookSvc.SetNotifier(bot)
			log.Printf("Telegram bot @%s initialized", bot.GetBotUsername())
		}
	}

	// Create downstream automation client
	if cfg.Automation.WebhookURL != "" {
		webhookSvc.SetAutomation(automation.NewClient(cfg.Automation.WebhookURL))
	}

	// Create handlers
	h := handler.New(cfg, planSvc, couponSvc, paymentSvc, promotionSvc, webhookSvc, metricsSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", h.Health)

	// Webhooks (no auth) - provider payment notifications
	app.Post("/webhook/payments", h.PaymentWebhook)

	// Public API
	api := app.Group("/api")
	api.Get("/plans", h.GetPlans)
	api.Post("/payments", h.CreatePayment)
	api.Post("/coupons/validate", h.ValidateCoupon)
	api.Get("/promotions/active", h.GetActivePromotions)

	// Dashboard (bearer-token auth)
	dashboard := app.Group("/api/dashboard", middleware.DashboardAuth(cfg))
	dashboard.Get("/metrics", h.GetDashboardMetrics)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

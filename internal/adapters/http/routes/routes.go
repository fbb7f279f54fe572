package routes

import (
	"imc-donations/internal/adapters/http/handlers"
	"imc-donations/internal/adapters/http/middleware"
	"imc-donations/internal/adapters/persistence/repositories"
	"imc-donations/internal/config"
	"imc-donations/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Dependencies holds the services shared by the HTTP layer and the
// background sweeper
type Dependencies struct {
	Auth      *services.AuthService
	Users     *services.UserService
	Donations *services.DonationService
	Webhook   *services.WebhookService
	Reports   *services.ReportService
	Cron      *services.CronService
}

// NewDependencies wires repositories and services around one database
func NewDependencies(db *gorm.DB, cfg *config.Config, gateway services.PaymentGateway, mailer services.Mailer) *Dependencies {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	eventRepo := repositories.NewWebhookEventRepository(db)

	// Initialize services
	notifyService := services.NewNotificationService(mailer)
	webhookService := services.NewWebhookService(paymentRepo, eventRepo, gateway, notifyService, cfg.MercadoPago.WebhookSecret)

	return &Dependencies{
		Auth:      services.NewAuthService(userRepo, cfg),
		Users:     services.NewUserService(userRepo),
		Donations: services.NewDonationService(paymentRepo, userRepo, gateway, cfg),
		Webhook:   webhookService,
		Reports:   services.NewReportService(paymentRepo),
		Cron:      services.NewCronService(paymentRepo, gateway, webhookService, cfg.Reconcile),
	}
}

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, deps *Dependencies) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.Auth)
	userHandler := handlers.NewUserHandler(deps.Users)
	paymentHandler := handlers.NewPaymentHandler(deps.Donations)
	webhookHandler := handlers.NewWebhookHandler(deps.Webhook)
	reportHandler := handlers.NewReportHandler(deps.Reports)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	userRoutes := api.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	paymentRoutes := api.Group("/pagamento")
	setupPaymentRoutes(paymentRoutes, paymentHandler, reportHandler, webhookHandler, cfg)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupUserRoutes configures user management routes. Static paths are
// registered before /:id.
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", middleware.StaffOnly(), handler.ListUsers)
	router.Get("/me", handler.Me)
	router.Get("/stats", middleware.StaffOnly(), handler.Stats)
	router.Get("/:id", middleware.StaffOnly(), handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
	router.Put("/:id/role", middleware.AdminOnly(), handler.UpdateRole)
	// Self-delete is refused (400) before the admin check, in the service
	router.Delete("/:id", handler.DeleteUser)
}

// setupPaymentRoutes configures checkout, webhook and report routes
func setupPaymentRoutes(
	router fiber.Router,
	payment *handlers.PaymentHandler,
	report *handlers.ReportHandler,
	webhook *handlers.WebhookHandler,
	cfg *config.Config,
) {
	// Provider callback (public)
	router.Post("/webhook", webhook.Receive)

	auth := middleware.AuthMiddleware(cfg)

	// Any authenticated user may donate
	router.Post("/criar-preferencia", auth, payment.CreatePreference)
	router.Get("/me", auth, middleware.NoStore(), payment.MyDonations)

	// Reports (Administrator, Collaborator)
	router.Get("/relatorio-arrecadacao", auth, middleware.StaffOnly(), middleware.NoStore(), report.PeriodTotals)
	router.Get("/lista-doacoes", auth, middleware.StaffOnly(), middleware.NoStore(), report.ApprovedDonations)
	router.Get("/anos-disponiveis", auth, middleware.StaffOnly(), middleware.NoStore(), report.AvailableYears)
	router.Get("/webhook-events", auth, middleware.StaffOnly(), middleware.NoStore(), webhook.RecentEvents)

	router.Get("/:userId", auth, middleware.StaffOnly(), middleware.NoStore(), payment.DonationsByUser)
}

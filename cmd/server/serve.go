package main

import (
	"os"
	"os/signal"
	"syscall"

	"imc-donations/internal/adapters/http/middleware"
	"imc-donations/internal/adapters/http/routes"
	"imc-donations/internal/config"
	"imc-donations/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate, seed and start the HTTP API with the pending payment sweeper",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := migrate(db); err != nil {
		return err
	}

	if err := config.NewSeeder(db, cfg.Admin).Run(); err != nil {
		logger.Log.Warn("⚠️ Failed to seed database", zap.Error(err))
	}

	deps, err := buildDependencies(cfg, db)
	if err != nil {
		return err
	}

	// Start the pending payment sweeper
	if err := deps.Cron.Start(); err != nil {
		return err
	}
	defer deps.Cron.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "IMC Donations API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, cfg, deps)

	// Graceful shutdown
	go gracefulShutdown(app)

	logger.Log.Info("🚀 Server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	return app.Listen(":" + cfg.Port)
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logger.Log.Error("❌ Error during shutdown", zap.Error(err))
	}
	logger.Log.Info("✅ Server stopped gracefully")
}

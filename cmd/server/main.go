package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"koperasi-adminhub/internal/adapters/http/middleware"
	"koperasi-adminhub/internal/adapters/http/routes"
	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/config"
	"koperasi-adminhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title Koperasi AdminHub API
// @version 1.0
// @description Backend administrasi simpan pinjam koperasi v1.0 API

// @contact.name API Support
// @contact.email support@koperasi.example.id

// @host admin.koperasi.example.id
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed admin user and master data
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Koperasi AdminHub API v1.0",
		BodyLimit:    cfg.Upload.MaxSizeMB * 1024 * 1024,
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)
	app.Use(middleware.MethodOverride())

	// Setup routes (pass db and cfg for dependency injection)
	closingService, autoDebitService := routes.Setup(app, db, cfg)

	// Scheduled jobs: daily auto debit and month-end closing
	cronService := services.NewCronService(closingService, autoDebitService, cfg)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron jobs: %v", err)
	}
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}

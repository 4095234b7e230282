package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/events"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "") // PostgreSQL DSN; empty runs on SQLite
	viper.SetDefault("SQLITE_PATH", "catalog.db")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.AutomaticEnv()

	log := config.NewLogger(config.LoggerConfig{
		Level:  viper.GetString("LOG_LEVEL"),
		Format: viper.GetString("LOG_FORMAT"),
	})

	// --- Database ---
	var dialector gorm.Dialector
	if dsn := viper.GetString("DATABASE_DSN"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(viper.GetString("SQLITE_PATH"))
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// --- Event Publisher (optional) ---
	var publisher *events.Publisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		publisher, err = events.NewPublisher(events.Config{URL: mqURL})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize event publisher")
		}
		defer publisher.Close()
		log.Info().Msg("product event publisher connected")
	}

	// --- Wiring ---
	productRepo := repositories.NewGORMProductRepository(db)
	productService := services.NewProductService(productRepo, publisher, log)
	productHandler := handlers.NewProductHandler(productService, log)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(fiberlogger.New())

	// Landing page
	app.Static("/", "./static")

	// API routes
	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	appPort := viper.GetString("APP_PORT")
	log.Info().Str("port", appPort).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

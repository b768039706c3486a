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
	"github.com/spf13/viper"

	"gudang/internal/handlers"
	"gudang/internal/middleware"
	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"
	"gudang/pkg/database"
	"gudang/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("PORT", "4000")
	viper.AutomaticEnv()

	port := viper.GetString("PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Optional Event Publishing ---
	// The service skips publishing when the client is nil.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Backend Selection ---
	// A configured DATABASE_URL selects the relational backend;
	// otherwise products live in memory for the process lifetime.
	var productRepo repositories.ProductRepository
	mode := "mock"
	if databaseURL != "" {
		db, err := database.Connect(databaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		productRepo = repositories.NewGORMProductRepository(db)
		mode = "db"
	} else {
		log.Println("Warning: DATABASE_URL not set, running with in-memory storage")
		productRepo = repositories.NewMemoryProductRepository()
	}

	productService := services.NewProductService(productRepo, mqClient)
	app := buildApp(productService, mode)

	// --- Start HTTP Server ---
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()
	log.Printf("Server listening on port %s (%s mode)", port, mode)

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// buildApp assembles the Fiber app: middleware, health route, and the
// identity-guarded product API.
func buildApp(productService *services.ProductService, mode string) *fiber.App {
	app := fiber.New()

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // The web frontend is served from another origin

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":   true,
			"mode": mode,
		})
	})

	api := app.Group("/api", middleware.RequireUser())

	productHandler := handlers.NewProductHandler(productService)
	productHandler.RegisterRoutes(api)

	// JSON 404 for unknown API routes.
	app.Use("/api", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})

	return app
}

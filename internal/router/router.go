package router

import (
	"log"

	"github.com/haribidda/TECHIEFOLIO/internal/auth"
	"github.com/haribidda/TECHIEFOLIO/internal/handlers"
	"github.com/haribidda/TECHIEFOLIO/internal/middleware"
	"github.com/haribidda/TECHIEFOLIO/internal/models"
	"github.com/haribidda/TECHIEFOLIO/internal/repositories"
	"github.com/haribidda/TECHIEFOLIO/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}, &models.OwnedPost{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database("techiefolio"))

	// --- Sessions & federated auth ---
	sessions := auth.NewSessions(cfg.SessionSecret)
	google := auth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	// Every request carries its viewer identity; pages decide what a
	// visitor vs an owner is allowed to see.
	e.Use(middleware.LoadSession(sessions))
	log.Println("Session middleware applied.")

	// Auth routes
	authHandler := handlers.NewAuthHandler(userRepo, sessions, google)
	authHandler.RegisterAuthRoutes(e)
	log.Println("Auth routes configured.")

	// Blog page routes
	pageHandler := handlers.NewPageHandler(postRepo, userRepo)
	pageHandler.RegisterPageRoutes(e)
	log.Println("Page routes configured.")

	log.Println("All routes configured.")
}

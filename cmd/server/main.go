package main

import (
	"log"

	"github.com/haribidda/TECHIEFOLIO/internal/render"
	"github.com/haribidda/TECHIEFOLIO/internal/router"
	"github.com/haribidda/TECHIEFOLIO/pkg/config"
	"github.com/haribidda/TECHIEFOLIO/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Initialize database connections (this also loads .env)
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Load configuration
	cfg := config.Load()
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET environment variable not set")
	}

	// Create Echo instance
	e := echo.New()

	// Page templates
	renderer, err := render.New()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	e.Renderer = renderer

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"notebook_forms_go/config"
	"notebook_forms_go/db"
	"notebook_forms_go/handlers"
	"notebook_forms_go/middleware"
	"notebook_forms_go/models"
	"notebook_forms_go/services"
	"notebook_forms_go/services/i18n"
	"notebook_forms_go/services/jobs"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load locales: %v", err)
	}

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Generation{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	services.InitializeStorage(cfg)
	middleware.InitAssetVersions()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  cfg.AllowedOrigins,
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))
	e.Use(middleware.SecurityHeaders())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSRF(cfg))

	// Static files
	e.Static("/static", "static")

	e.GET("/healthz", handlers.HealthHandler)
	e.GET("/", handlers.FormHandler)
	e.POST("/generate", handlers.GenerateHandler, middleware.GenerateRateLimiter.Middleware(), middleware.HistoryContext())
	e.POST("/preview", handlers.PreviewHandler, middleware.PreviewRateLimiter.Middleware())
	e.GET("/generations/:id/download", handlers.DownloadGenerationHandler)

	api := e.Group("/api")
	{
		api.GET("/templates", handlers.TemplatesAPIHandler)
		api.GET("/layout", handlers.LayoutAPIHandler, middleware.PreviewRateLimiter.Middleware())
	}

	// Prune archived files past retention (runs every hour)
	jobs.StartArchivePruner(context.Background(), 1*time.Hour, db.DB, services.Storage, cfg)

	// Start server
	log.Printf("[INFO] Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"log"
	"net/http"
	"os"

	"restaurant-site-api/config"
	"restaurant-site-api/handlers"
	"restaurant-site-api/routes"
	"restaurant-site-api/services"
	"restaurant-site-api/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load()

	docs, files, err := storage.Open(cfg)
	if err != nil {
		log.Fatal("Failed to open storage:", err)
	}

	menuSvc := services.NewMenuService(docs)
	specialsSvc := services.NewSpecialsService(docs)
	gallerySvc := services.NewGalleryService(docs, files)
	feedbackSvc := services.NewFeedbackService(docs)
	accountSvc := services.NewAccountService(docs, &services.LogMailer{})

	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(cfg),
		Menu:     handlers.NewMenuHandler(menuSvc),
		Specials: handlers.NewSpecialsHandler(specialsSvc),
		Gallery:  handlers.NewGalleryHandler(gallerySvc),
		Feedback: handlers.NewFeedbackHandler(feedbackSvc),
		Account:  handlers.NewAccountHandler(accountSvc, cfg),
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.BaseURL)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Restaurant Site API",
			"backend": cfg.StorageBackend,
		})
	})

	// Uploaded images are served locally unless the object store hosts them.
	if cfg.StorageBackend != config.BackendObjectStore {
		r.Static("/uploads", cfg.UploadsDir)
	}

	routes.SetupRoutes(r, h, cfg)

	log.Printf("Server running on http://localhost:%s (storage: %s)", cfg.Port, cfg.StorageBackend)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

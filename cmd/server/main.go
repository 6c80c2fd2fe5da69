// vinscout API
// @title vinscout API
// @version 1.0
// @description Vehicle-listing acquisition and VIN-verification pipeline
// @host localhost:8080
// @BasePath /

package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	_ "vinscout/docs"
	"vinscout/internal/analysis"
	"vinscout/internal/cache"
	"vinscout/internal/config"
	"vinscout/internal/handlers"
	"vinscout/internal/history"
	"vinscout/internal/middleware"
	"vinscout/internal/scraper"
	"vinscout/internal/vin"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	// A missing cache degrades to always-miss; analysis must run uncached
	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		log.Printf("Cache unavailable, analyses will run uncached: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	launcher := history.NewLauncher(cfg.BrowserMode, cfg.ChromeBin)
	engine := analysis.NewEngine(
		vin.NewDecoder(cfg.DecodeTimeout),
		vin.NewRecallClient(cfg.RecallTimeout),
		history.NewRunner(launcher),
		store,
	)
	registry := scraper.DefaultRegistry(cfg.FetchTimeout)

	handler := handlers.NewHandler(registry, engine, cfg.AnalysisBudget)

	r := gin.Default()

	r.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
		"172.16.0.0/12",  // Docker networks
		"10.0.0.0/8",     // Private networks
		"192.168.0.0/16", // Private networks
	})

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.SecurityHeaders())
	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)
	r.Use(middleware.RateLimitMiddleware(limiter))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.POST("/vin", handler.AnalyzeVIN)
		api.POST("/import-url", handler.ImportURL)
		api.POST("/import-urls", handler.ImportURLBatch)
		api.GET("/health", handler.Health)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	"github.com/rinkside/rinkside/pkg/rinkside/blob"
	"github.com/rinkside/rinkside/pkg/rinkside/groups"
	"github.com/rinkside/rinkside/pkg/rinkside/history"
	"github.com/rinkside/rinkside/pkg/rinkside/middleware"
	"github.com/rinkside/rinkside/pkg/rinkside/roster"
	"github.com/rinkside/rinkside/pkg/rinkside/shares"
)

// @title Rinkside API
// @version 1.0
// @description Group sharing, storage delegation and roster management for the Rinkside scoreboard.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	store, err := newBlobStore(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize blob storage")
	}

	// Services are constructed once here and live for the process lifetime.
	groupService := groups.NewService(store)
	shareService := shares.NewService(store)
	rosterService := roster.NewService()

	baseURL := getEnv("RINKSIDE_BASE_URL", "http://localhost:8080")

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	api.Use(middleware.RateLimit(rate.Limit(10), 30))
	{
		groupsHandler := groups.NewHandler(groupService)
		groupsHandler.RegisterRoutes(api.Group("/groups"))

		sharesHandler := shares.NewHandler(shareService, baseURL)
		sharesHandler.RegisterRoutes(api)

		rosterHandler := roster.NewHandler(rosterService)
		rosterHandler.RegisterRoutes(api.Group("/default-players"))

		historyHandler := history.NewHandler(store)
		historyHandler.RegisterRoutes(api)
	}

	port := getEnv("PORT", "8080")
	log.Info().Str("port", port).Msg("starting rinkside server")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// newBlobStore connects to Azure Blob Storage when a connection string is
// configured, otherwise falls back to the in-memory store for local work.
func newBlobStore(ctx context.Context) (blob.Store, error) {
	connStr := os.Getenv("RINKSIDE_STORAGE_CONNECTION_STRING")
	containerName := getEnv("RINKSIDE_CONTAINER", "scoreboard")

	if connStr == "" {
		log.Warn().Msg("RINKSIDE_STORAGE_CONNECTION_STRING not set; using in-memory storage, nothing will survive a restart")
		return blob.NewMemoryStore(), nil
	}
	return blob.NewAzureStore(ctx, connStr, containerName)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package server

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/vaultkit/delegate-registry/internal/auth"
	"github.com/vaultkit/delegate-registry/internal/events"
	"github.com/vaultkit/delegate-registry/internal/handlers"
	"github.com/vaultkit/delegate-registry/internal/logger"
	"github.com/vaultkit/delegate-registry/internal/registry"
	"github.com/vaultkit/delegate-registry/internal/service"
	"github.com/vaultkit/delegate-registry/internal/store/postgres"
)

// Handler definitions
var (
	delegationHandler *handlers.DelegationHandler

	// Database
	dbPool *pgxpool.Pool
)

// InitializeHandlers wires the store, service and handlers. With DATABASE_URL
// set the registry is Postgres-backed; otherwise it runs on the in-memory
// store, which is enough for local development.
func InitializeHandlers() {
	var store registry.Store
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		poolConfig, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			logger.Fatal("Unable to parse database connection string", zap.Error(err))
		}

		poolConfig.MaxConns = 20
		poolConfig.MinConns = 5
		poolConfig.MaxConnLifetime = time.Hour
		poolConfig.MaxConnIdleTime = time.Minute * 30

		dbPool, err = pgxpool.NewWithConfig(context.Background(), poolConfig)
		if err != nil {
			logger.Fatal("Unable to create connection pool", zap.Error(err))
		}
		store = postgres.NewStore(dbPool)
		logger.Info("Using Postgres delegation store")
	} else {
		store = registry.NewMemoryStore()
		logger.Warn("DATABASE_URL not set, using in-memory delegation store")
	}

	delegationService := service.NewDelegationService(store, events.NewLogEmitter(logger.Log))
	commonServices := handlers.NewCommonServices(delegationService)
	delegationHandler = handlers.NewDelegationHandler(commonServices)
}

// InitializeRoutes registers middleware and the API routes on the router.
func InitializeRoutes(router *gin.Engine) {
	router.Use(configureCORS())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	if os.Getenv("GIN_MODE") != "release" {
		router.Use(handlers.LogRequest())
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Read surface, open to any caller
		v1.GET("/delegations/outgoing/:vault", delegationHandler.GetOutgoingDelegations)
		v1.GET("/delegations/:identity", delegationHandler.GetDelegation)
		v1.GET("/check", delegationHandler.CheckDelegation)

		// Mutations require the authenticated vault identity
		protected := v1.Group("/")
		protected.Use(auth.RequireCallerAddress())
		{
			protected.POST("/delegations", delegationHandler.SetDelegation)
		}
	}
}

// Shutdown releases server-held resources.
func Shutdown() {
	if dbPool != nil {
		dbPool.Close()
	}
}

func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		// Default to localhost if not set
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", auth.CallerHeader}
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uppi/backend/internal/api/handlers"
	"github.com/uppi/backend/internal/api/routes"
	"github.com/uppi/backend/internal/config"
	"github.com/uppi/backend/internal/repository/postgres"
	"github.com/uppi/backend/internal/service/account"
	"github.com/uppi/backend/internal/service/geo"
	"github.com/uppi/backend/internal/service/negotiation"
	"github.com/uppi/backend/internal/service/notify"
	"github.com/uppi/backend/internal/service/payments"
	"github.com/uppi/backend/internal/service/presence"
	"github.com/uppi/backend/internal/service/ratings"
	"github.com/uppi/backend/pkg/auth"
	"github.com/uppi/backend/pkg/cache"
	"github.com/uppi/backend/pkg/database"
	"github.com/uppi/backend/pkg/logger"
	"github.com/uppi/backend/pkg/monitoring"
	"github.com/uppi/backend/pkg/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Uppi backend",
		logger.String("env", cfg.Server.Env),
		logger.String("port", cfg.Server.Port),
	)

	// Initialize New Relic
	nrApp, err := monitoring.New(monitoring.Config{
		LicenseKey: cfg.NewRelic.LicenseKey,
		AppName:    cfg.NewRelic.AppName,
		Enabled:    cfg.NewRelic.Enabled,
		LogLevel:   cfg.NewRelic.LogLevel,
	})
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
		nrApp, _ = monitoring.New(monitoring.Config{})
	}
	defer nrApp.Shutdown(10 * time.Second)

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cache.Config{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		MaxRetries:  cfg.Redis.MaxRetries,
		PoolSize:    cfg.Redis.PoolSize,
		MinIdleConn: cfg.Redis.MinIdleConn,
		DialTimeout: cfg.Redis.DialTimeout,
		ReadTimeout: cfg.Redis.ReadTimeout,
	})
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer cache.Close(redisClient)

	appLogger.Info("Connected to Redis successfully")

	// Initialize PostgreSQL
	db, err := database.NewPostgresDB(database.Config{
		Host:        cfg.Database.Host,
		Port:        cfg.Database.Port,
		User:        cfg.Database.User,
		Password:    cfg.Database.Password,
		DBName:      cfg.Database.Name,
		SSLMode:     cfg.Database.SSLMode,
		MaxConns:    cfg.Database.MaxConnections,
		MaxIdle:     cfg.Database.MaxIdleConns,
		MaxLifetime: cfg.Database.MaxLifetime,
	})
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer db.Close()

	appLogger.Info("Connected to PostgreSQL successfully")

	// Repositories
	store := postgres.NewNegotiationStore(db)
	users := postgres.NewUserRepo(db)
	ratingRepo := postgres.NewRatingRepo(db)
	wallets := postgres.NewWalletRepo(db)
	notifications := postgres.NewNotificationRepo(db)
	favorites := postgres.NewFavoriteRepo(db)

	// WebSocket hub
	wsHub := websocket.NewHub(appLogger)
	go wsHub.Run()

	// Services
	tokens := auth.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	notifier := notify.NewService(notifications, wsHub, appLogger)
	estimator := geo.NewEstimator(geo.Config{
		RoadFactor:  cfg.Geo.RoadFactor,
		AvgSpeedKMH: cfg.Geo.AvgSpeedKMH,
	})
	coordinator := negotiation.NewCoordinator(store, users, notifier, notifier, estimator, appLogger,
		negotiation.Config{OfferTTL: cfg.Offers.TTL})
	accounts := account.NewService(users, tokens, appLogger)
	ratingsSvc := ratings.NewService(ratingRepo, store, notifier, appLogger)
	paymentsSvc := payments.NewService(wallets, redisClient, notifier, appLogger, cfg.Cache.TTLIdempotency)
	presenceSvc := presence.NewService(redisClient, users, appLogger, presence.Config{
		DefaultRadiusKM: cfg.Presence.DefaultRadiusKM,
		MaxCandidates:   cfg.Presence.MaxCandidates,
	})

	// Background offer expiry sweep
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go coordinator.RunExpirySweeper(sweepCtx, cfg.Offers.SweepInterval)

	appLogger.Info("Offer expiry sweeper started",
		logger.Duration("interval", cfg.Offers.SweepInterval),
	)

	// Handlers and routes
	h := handlers.NewHandlers(accounts, coordinator, ratingsSvc, paymentsSvc, presenceSvc,
		notifications, favorites, tokens, wsHub, nrApp, appLogger)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	if nrApp.IsEnabled() {
		routes.SetupRoutes(router, h, nrApp.Application)
	} else {
		routes.SetupRoutes(router, h, nil)
	}

	appLogger.Info("Routes configured successfully")

	// Create HTTP server
	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Server starting", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	stopSweep()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	appLogger.Info("Server stopped gracefully")
}

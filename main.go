package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/edu2job/edu2job-server/internal/api"
	"github.com/edu2job/edu2job-server/internal/auth"
	"github.com/edu2job/edu2job-server/internal/config"
	"github.com/edu2job/edu2job-server/internal/database"
	"github.com/edu2job/edu2job-server/internal/logger"
	"github.com/edu2job/edu2job-server/internal/metrics"
	"github.com/edu2job/edu2job-server/internal/monitoring"
	"github.com/edu2job/edu2job-server/internal/repositories/users"
	"github.com/edu2job/edu2job-server/internal/services"
	"github.com/edu2job/edu2job-server/internal/web"
)

func main() {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel, cfg.IsProduction())

	ctx := context.Background()

	// Set up credential store
	repo, closeStore, err := openUserStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to initialize credential store")
	}
	defer closeStore()

	// Set up auth
	tokens, err := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token service")
	}
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	// Set up services
	m := metrics.New()
	userService := services.NewUserService(repo, hasher, tokens)
	predictionService := services.NewPredictionService(cfg.PredictionURL, cfg.PredictionTimeout, nil)
	dashboardService := services.NewDashboardService()

	// Set up and run the keep-warm scheduler
	var scheduler *monitoring.Scheduler
	if cfg.KeepWarmSchedule != "" {
		scheduler, err = monitoring.NewScheduler(cfg.KeepWarmSchedule, cfg.KeepWarmURL, cfg.PredictionTimeout, m)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize keep-warm scheduler")
		}
		scheduler.Start()
	}

	// Set up router
	router := api.NewRouter(api.Deps{
		Users:          userService,
		Predictions:    predictionService,
		Dashboard:      dashboardService,
		Tokens:         tokens,
		Metrics:        m,
		AllowedOrigins: cfg.AllowedOrigins,
		Static:         web.Handler(),
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("store", cfg.StoreDriver).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if scheduler != nil {
		select {
		case <-scheduler.Stop().Done():
		case <-shutdownCtx.Done():
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// openUserStore connects the configured credential store and returns it with
// a function that releases its resources.
func openUserStore(ctx context.Context, cfg *config.Config) (users.Repository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return users.NewSQLiteRepository(db), func() { db.Close() }, nil

	case config.DriverPostgres:
		pool, err := database.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return users.NewPostgresRepository(pool), pool.Close, nil

	case config.DriverFirestore:
		client, err := database.NewFirestore(ctx, database.FirestoreOptions{
			CredentialsJSON: cfg.FirebaseServiceAccount,
			CredentialsFile: cfg.FirebaseServiceAccountFile,
			ProjectID:       cfg.FirestoreProjectID,
		})
		if err != nil {
			return nil, nil, err
		}
		return users.NewFirestoreRepository(client), func() { client.Close() }, nil

	case config.DriverMemory:
		log.Warn().Msg("Using in-memory credential store; accounts are lost on restart")
		return users.NewMemoryRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

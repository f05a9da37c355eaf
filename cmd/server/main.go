package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/musitech/crm-api/internal/api"
	"github.com/musitech/crm-api/internal/core/service"
	"github.com/musitech/crm-api/internal/core/token"
	"github.com/musitech/crm-api/internal/infrastructure/config"
	mongodb "github.com/musitech/crm-api/internal/infrastructure/db/mongo"
	redisdb "github.com/musitech/crm-api/internal/infrastructure/db/redis"
	"github.com/musitech/crm-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Stores (hard startup dependencies) ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	logg.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	codec, err := token.NewCodec(cfg.JWTSecret)
	if err != nil {
		logg.Fatal().Err(err).Msg("token codec initialisation failed")
	}

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		logg.Fatal().Err(err).Msg("failed to create user indexes")
	}

	authService := service.NewAuthService(users, codec, cfg.TokenTTL, logg)
	statusService := service.NewStatusService(mongodb.NewStatusRepository(db))

	// --- Bootstrap admin (idempotent, serialized across replicas) ---
	lock := redisdb.NewBootstrapLock(rdb)
	acquired, err := lock.Acquire(ctx)
	if err != nil {
		logg.Warn().Err(err).Msg("bootstrap lock unavailable, proceeding without it")
	}
	admin, err := authService.EnsureAdmin(ctx)
	if acquired {
		_ = lock.Release(ctx)
	}
	if err != nil {
		logg.Fatal().Err(err).Msg("admin bootstrap failed")
	}
	logg.Info().Str("email", admin.Email).Msg("admin user ensured")

	// --- HTTP server ---
	e := api.NewRouter(authService, statusService, codec, cfg.CORSOrigins, db, rdb, logg)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server stopped")
		}
	}()
	logg.Info().Str("port", cfg.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown failed")
	}
	logg.Info().Msg("server stopped")
}

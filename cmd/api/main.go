package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/auth"
	"github.com/pageza/recipebook/backend/internal/database"
	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/metrics"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/repository"
	"github.com/pageza/recipebook/backend/internal/router"
	"github.com/pageza/recipebook/backend/internal/server"
	"github.com/pageza/recipebook/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.MustNewLogger("text", "info").Fatal("failed to load configuration", zap.Error(err))
	}

	log := logger.MustNewLogger(cfg.LogFormat, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg, log)
		if err != nil {
			// Rate limiting is skipped without redis.
			log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer func() { _ = redisClient.Close() }()
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewPrometheus(reg, log)

	recipeStore := repository.NewRecipeStore(db)
	if n, err := recipeStore.Count(ctx); err == nil {
		recorder.RecipeCount(n)
	}

	authService := service.NewAuthService(repository.NewUserStore(db), cfg.JWTSecret, cfg.JWTExpiration, log)
	recipeService := service.NewRecipeService(
		recipeStore,
		auth.NewGuard(auth.HasRole(cfg.ElevatedRole)),
		recorder,
		log.With(zap.String("component", "recipes")),
	)

	var creationLimiter, modificationLimiter *middleware.RateLimiter
	if redisClient != nil {
		creationLimiter = middleware.NewRecipeCreationRateLimiter(redisClient, cfg.RateLimitCreate, log)
		modificationLimiter = middleware.NewRecipeModificationRateLimiter(redisClient, cfg.RateLimitModify, log)
	}

	engine := router.SetupRouter(router.Dependencies{
		AuthService:         authService,
		RecipeService:       recipeService,
		CreationLimiter:     creationLimiter,
		ModificationLimiter: modificationLimiter,
		HTTPMetrics:         metrics.NewHTTP(reg),
		Logger:              log,
		CORSOrigins:         cfg.CORSOrigins,
	})
	srv := server.New(cfg, db, engine, reg, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
		return
	case <-ctx.Done():
		log.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}

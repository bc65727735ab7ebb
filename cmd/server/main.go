package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/study-planner-go/pkg/auth"
	"github.com/arnavshah/study-planner-go/pkg/cache"
	"github.com/arnavshah/study-planner-go/pkg/config"
	"github.com/arnavshah/study-planner-go/pkg/database"
	"github.com/arnavshah/study-planner-go/pkg/handlers"
	"github.com/arnavshah/study-planner-go/pkg/logger"
	"github.com/arnavshah/study-planner-go/pkg/middleware"
)

func main() {
	// Load .env if it exists, trying root and parent directories
	envFile := config.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	zlog, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}
	defer zlog.Sync()
	if envFile != "" {
		zlog.Info("loaded env file", zap.String("path", envFile))
	}

	if cfg.Server.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.Server.GinMode)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		zlog.Fatal("database unavailable", zap.Error(err))
	}
	if created, err := auth.EnsureAdminExists(db, &cfg.Auth); err != nil {
		zlog.Error("could not create admin user", zap.Error(err))
	} else if created {
		zlog.Info("default admin user created", zap.String("username", cfg.Auth.AdminUsername))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	planCache, err := cache.New(ctx, &cfg.Redis)
	if err != nil {
		// the planner is cheap enough to run without the cache
		zlog.Warn("plan cache disabled", zap.Error(err))
	}
	defer planCache.Close()

	h := &handlers.Handler{
		DB:               db,
		Auth:             auth.New(&cfg.Auth),
		Cache:            planCache,
		Logger:           zlog,
		DefaultRateLimit: cfg.Limits.DefaultRateLimit,
		Limiter:          middleware.NewKeyRateLimiter(cfg.Limits.DefaultRateLimit, zlog),
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(zlog), middleware.CORS(cfg.Server.CORSOrigins))
	h.Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("version", handlers.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("could not run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
}

package handler

import (
	"context"
	"log"
	"net/http"

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

var r *gin.Engine

func init() {
	// .env only exists for local testing with vercel dev
	config.LoadEnvFile(".env", "../.env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	zlog, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		zlog.Fatal("database unavailable", zap.Error(err))
	}
	if _, err := auth.EnsureAdminExists(db, &cfg.Auth); err != nil {
		zlog.Error("could not create admin user", zap.Error(err))
	}

	planCache, err := cache.New(context.Background(), &cfg.Redis)
	if err != nil {
		zlog.Warn("plan cache disabled", zap.Error(err))
	}

	h := &handlers.Handler{
		DB:               db,
		Auth:             auth.New(&cfg.Auth),
		Cache:            planCache,
		Logger:           zlog,
		DefaultRateLimit: cfg.Limits.DefaultRateLimit,
		Limiter:          middleware.NewKeyRateLimiter(cfg.Limits.DefaultRateLimit, zlog),
	}

	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(zlog), middleware.CORS(cfg.Server.CORSOrigins))
	h.Register(r)
}

// Handler is the entry point for the Vercel Go runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}

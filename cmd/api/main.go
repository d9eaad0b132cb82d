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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/bookmylook-auth/internal/audit"
	"github.com/BruksfildServices01/bookmylook-auth/internal/cache"
	"github.com/BruksfildServices01/bookmylook-auth/internal/config"
	dbpkg "github.com/BruksfildServices01/bookmylook-auth/internal/db"
	infraRepo "github.com/BruksfildServices01/bookmylook-auth/internal/infra/repository"
	"github.com/BruksfildServices01/bookmylook-auth/internal/logging"
	"github.com/BruksfildServices01/bookmylook-auth/internal/metrics"
	"github.com/BruksfildServices01/bookmylook-auth/internal/middleware"
	"github.com/BruksfildServices01/bookmylook-auth/internal/notify"
	"github.com/BruksfildServices01/bookmylook-auth/internal/routes"
	"github.com/BruksfildServices01/bookmylook-auth/internal/security"
)

const shutdownTimeout = 10 * time.Second

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	for _, key := range cfg.InsecureSecrets() {
		logger.Warn("signing secret falls back to the development default", zap.String("key", key))
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}

	m := metrics.New()
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger, m.AuditDropped)

	hasher := security.NewHasher(cfg.BcryptCost)
	hasher.VerifyDummy("")

	var limiter middleware.Limiter
	if cfg.RateLimitEnabled {
		rdb, err := cache.NewRedis(cfg.RedisURL)
		if err != nil {
			logger.Fatal("failed to configure redis", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()

		limiter = cache.NewFixedWindowLimiter(
			rdb,
			"bookmylook:auth",
			cfg.RateLimitMax,
			cfg.RateLimitWindow,
			cfg.RateLimitBlock,
		)
	} else {
		logger.Warn("rate limiting is disabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Dependencies{
		Config:   cfg,
		Repo:     infraRepo.NewAccountGormRepository(db),
		Hasher:   hasher,
		Tokens:   security.NewTokenIssuer(cfg.Auth()),
		Audit:    auditDispatcher,
		Notifier: notify.NewLogDispatcher(logger, !cfg.IsProduction()),
		Metrics:  m,
		Log:      logger,

		AuditLogs: auditLogger,
		Limiter:   limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := auditDispatcher.Close(ctx); err != nil {
		logger.Error("audit drain", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

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
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/barber-timeline/internal/audit"
	"github.com/BruksfildServices01/barber-timeline/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-timeline/internal/db"
	"github.com/BruksfildServices01/barber-timeline/internal/logs"
	"github.com/BruksfildServices01/barber-timeline/internal/metrics"
	"github.com/BruksfildServices01/barber-timeline/internal/middleware"
	"github.com/BruksfildServices01/barber-timeline/internal/notify"
	"github.com/BruksfildServices01/barber-timeline/internal/routes"
	"github.com/BruksfildServices01/barber-timeline/internal/timezone"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logs.New(cfg.Log)
	timezone.SetDefault(cfg.DefaultTimezone)

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}

	// ------------------------------
	// Métricas
	// ------------------------------
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.DefaultRegisterer)
	}

	// ------------------------------
	// Auditoria + eventos
	// ------------------------------
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	var publisher notify.Publisher = notify.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = notify.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info("appointment events enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	} else {
		logger.Warn("appointment events disabled (no kafka brokers configured)")
	}
	events := notify.NewDispatcher(publisher, logger)

	// ------------------------------
	// Rate limit (opcional)
	// ------------------------------
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RateLimit.RedisAddr})
		defer rdb.Close()
		limiter = middleware.NewRateLimiter(rdb, cfg.RateLimit.PerMinute, logger)
	}

	// ------------------------------
	// HTTP
	// ------------------------------
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Logger:      logger,
		AuditLogger: auditLogger,
		Audit:       auditDispatcher,
		Events:      events,
		Metrics:     m,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "err", err)
			os.Exit(1)
		}
	}()

	// ------------------------------
	// Graceful shutdown
	// ------------------------------
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "err", err)
	}

	auditDispatcher.Close()
	if err := events.Close(); err != nil {
		logger.Error("events shutdown", "err", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

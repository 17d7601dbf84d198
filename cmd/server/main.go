package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	"licensure/internal/audit"
	"licensure/internal/job"
	"licensure/internal/license"
	"licensure/internal/platform/config"
	"licensure/internal/platform/httpserver"
	"licensure/internal/platform/logger"
	platformredis "licensure/internal/platform/redis"
	httpapi "licensure/internal/transport/http"
	"licensure/internal/verify"
	"licensure/internal/verify/cache"
	"licensure/internal/verify/metrics"
	"licensure/internal/verify/profile"
	"licensure/internal/verify/session"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	ctx := context.Background()

	var store license.Store = license.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		pgStore := license.NewPostgresStore(db)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Error("ensure schema", "error", err)
			os.Exit(1)
		}
		store = pgStore
	}

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var sink *audit.KafkaSink
	if len(cfg.KafkaBrokers) > 0 {
		sink, err = audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
	}
	publisher := audit.NewPublisher(audit.NewMemoryStore(0), sink, log)

	siteProfile := profile.Utah()
	sessions := session.NewManager(session.Config{
		ExecutablePath: cfg.BrowserPath,
		Headless:       cfg.Headless,
		ActionTimeout:  siteProfile.Timing.ActionTimeout,
	}, log)
	defer sessions.Close()

	verifier := verify.New(
		sessions,
		siteProfile,
		cache.New(redisClient, cfg.CacheTTL, log),
		log,
		metrics.New(),
	)
	runner := job.NewRunner(verifier, store, publisher, log, cfg.JobConcurrency)

	handler := httpapi.NewHandler(runner, store, log)
	srv := httpserver.New(cfg.Addr, httpapi.NewRouter(handler))

	log.Info("starting licensure", "addr", cfg.Addr, "state", siteProfile.State)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// Command server runs the subdomain provisioning API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"subguard/internal/audit"
	kafkasink "subguard/internal/audit/sink/kafka"
	auditmem "subguard/internal/audit/store/memory"
	auditpg "subguard/internal/audit/store/postgres"
	"subguard/internal/certauth"
	"subguard/internal/deploy"
	"subguard/internal/platform/config"
	"subguard/internal/platform/httpserver"
	"subguard/internal/platform/logger"
	platformredis "subguard/internal/platform/redis"
	"subguard/internal/provisioning"
	provmetrics "subguard/internal/provisioning/metrics"
	regmem "subguard/internal/registry/store/memory"
	regpg "subguard/internal/registry/store/postgres"
	regports "subguard/internal/registry/ports"
	rlmetrics "subguard/internal/ratelimit/metrics"
	rlports "subguard/internal/ratelimit/ports"
	rlservice "subguard/internal/ratelimit/service"
	"subguard/internal/ratelimit/store/bucket"
	transport "subguard/internal/transport/http"
	"subguard/internal/validation"
)

func main() {
	log := logger.New()
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage. Postgres backs the registry and audit trail when configured;
	// otherwise everything lives in process memory.
	var (
		registry   regports.Store
		auditStore audit.Store
	)
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Error("ping postgres", "error", err)
			os.Exit(1)
		}
		registry = regpg.New(pool)
		auditStore = auditpg.New(pool)
		log.Info("using postgres storage")
	} else {
		registry = regmem.NewInMemoryStore()
		auditStore = auditmem.NewInMemoryStore()
		log.Info("using in-memory storage")
	}

	// Rate limit buckets. Redis makes the budget hold across replicas.
	var buckets rlports.BucketStore = bucket.NewInMemoryBucketStore()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		buckets = bucket.NewRedisBucketStore(redisClient.Client)
		log.Info("using redis rate limit store")
	}

	promRegistry := prometheus.NewRegistry()

	// Audit trail with optional Kafka mirror.
	auditOpts := []audit.Option{audit.WithLogger(log)}
	var (
		mirror chan audit.Event
		sink   *kafkasink.Sink
	)
	if len(cfg.Audit.KafkaBrokers) > 0 {
		sink, err = kafkasink.New(cfg.Audit.KafkaBrokers, cfg.Audit.KafkaTopic)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		mirror = make(chan audit.Event, 256)
		auditOpts = append(auditOpts, audit.WithMirror(mirror))
		log.Info("mirroring audit events to kafka", "topic", cfg.Audit.KafkaTopic)
	}
	auditLog := audit.NewLog(auditStore, auditOpts...)

	limiter := rlservice.NewLimiter(
		buckets,
		auditLog,
		rlservice.WithLogger(log),
		rlservice.WithMetrics(rlmetrics.New(promRegistry)),
		rlservice.WithBudget(cfg.RateLimit.Attempts, cfg.RateLimit.Window),
	)

	service := provisioning.NewService(
		limiter,
		validation.NewValidator(),
		registry,
		auditLog,
		certauth.NewVerifier(),
		deploy.NewExecutor(),
		cfg.BaseDomain,
		provisioning.WithLogger(log),
		provisioning.WithMetrics(provmetrics.New(promRegistry)),
		provisioning.WithRecentLimit(cfg.Audit.RecentLimit),
	)

	handler := transport.NewHandler(service, log)
	router := transport.NewRouter(handler, log, promRegistry)
	server := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr, "base_domain", cfg.BaseDomain)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if mirror != nil {
		worker := audit.NewWorker(sink, mirror, log)
		group.Go(func() error {
			if err := worker.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	onboardinghandler "carehub/internal/onboarding/handler"
	"carehub/internal/onboarding/lock"
	onboardingmetrics "carehub/internal/onboarding/metrics"
	"carehub/internal/onboarding/service"
	"carehub/internal/onboarding/store/drafts"
	"carehub/internal/platform/config"
	"carehub/internal/platform/httpserver"
	"carehub/internal/platform/logger"
	"carehub/internal/platform/metrics"
	"carehub/internal/platform/otel"
	"carehub/internal/platform/postgres"
	redisclient "carehub/internal/platform/redis"
	"carehub/internal/staffapi"
	audit "carehub/pkg/platform/audit"
	auditpublisher "carehub/pkg/platform/audit/publisher"
	auditkafka "carehub/pkg/platform/audit/store/kafka"
	auditmemory "carehub/pkg/platform/audit/store/memory"
	"carehub/pkg/platform/httputil"
	"carehub/pkg/platform/middleware/logging"
	"carehub/pkg/platform/middleware/metadata"
	"carehub/pkg/platform/middleware/requestid"
	"carehub/pkg/platform/middleware/requesttime"
)

// draftStore is what the service needs plus a health probe.
type draftStore interface {
	service.DraftStore
	Ping(ctx context.Context) error
}

// main wires dependencies, exposes the HTTP router and owns the server
// lifecycle. Business logic lives in internal/onboarding.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	rdb, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var db *sql.DB
	if cfg.Draft.Backend == config.DraftBackendPostgres {
		db, err = postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	store, err := buildDraftStore(ctx, cfg, rdb, db)
	if err != nil {
		return err
	}

	auditStore, closeAudit, err := buildAuditStore(ctx, cfg.Audit, log)
	if err != nil {
		return err
	}
	publisher := auditpublisher.NewPublisher(auditStore,
		auditpublisher.WithLogger(log),
		auditpublisher.WithMetrics(auditpublisher.NewMetrics()),
		auditpublisher.WithAsyncBuffer(cfg.Audit.BufferSize),
	)
	defer closeAudit()
	defer publisher.Close()

	staff, err := staffapi.New(cfg.StaffAPI.BaseURL,
		staffapi.WithToken(cfg.StaffAPI.Token),
		staffapi.WithTimeout(cfg.StaffAPI.Timeout),
	)
	if err != nil {
		return fmt.Errorf("staff api client: %w", err)
	}

	var locker lock.Locker = lock.NewLocal()
	if rdb != nil {
		locker = lock.NewRedis(rdb.Client)
	}

	svc, err := service.New(staff, store,
		service.WithLogger(log),
		service.WithMetrics(onboardingmetrics.New()),
		service.WithAuditPublisher(publisher),
		service.WithLocker(locker, cfg.FinalizeLockTTL),
	)
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(requestid.Middleware)
	router.Use(requesttime.Middleware)
	router.Use(metadata.ClientMetadata)
	router.Use(logging.Middleware(log, metrics.New()))
	router.Use(chimw.Recoverer)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", healthHandler(store))
	onboardinghandler.New(svc, log).Register(router)

	srv := httpserver.New(cfg.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting carehub", "addr", cfg.Addr, "draft_backend", cfg.Draft.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func buildDraftStore(ctx context.Context, cfg config.Config, rdb *redisclient.Client, db *sql.DB) (draftStore, error) {
	switch cfg.Draft.Backend {
	case config.DraftBackendRedis:
		return drafts.NewRedis(rdb.Client,
			drafts.WithKeyPrefix(cfg.Draft.KeyPrefix),
			drafts.WithTTL(cfg.Draft.TTL),
		), nil
	case config.DraftBackendPostgres:
		store := drafts.NewPostgres(db,
			drafts.WithTable(cfg.Draft.Table),
			drafts.WithPostgresKeyPrefix(cfg.Draft.KeyPrefix),
		)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure draft schema: %w", err)
		}
		return store, nil
	default:
		return drafts.NewInMemory(), nil
	}
}

// buildAuditStore publishes to Kafka when brokers are configured and keeps
// events in memory otherwise.
func buildAuditStore(ctx context.Context, cfg config.AuditConfig, log *slog.Logger) (audit.Store, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info("audit events kept in memory; set CAREHUB_AUDIT_KAFKA_BROKERS to publish them")
		return auditmemory.NewInMemoryStore(), func() {}, nil
	}
	store, err := auditkafka.New(cfg.KafkaBrokers, cfg.Topic)
	if err != nil {
		return nil, nil, fmt.Errorf("audit kafka: %w", err)
	}
	if err := store.EnsureTopic(ctx, cfg.Partitions, cfg.Replication); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, store.Close, nil
}

func healthHandler(store draftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

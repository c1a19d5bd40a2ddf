package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"adequa/internal/assessment/answerset"
	answermemory "adequa/internal/assessment/answerset/store/memory"
	answerpostgres "adequa/internal/assessment/answerset/store/postgres"
	"adequa/internal/assessment/remediation"
	taskmemory "adequa/internal/assessment/remediation/store/memory"
	taskpostgres "adequa/internal/assessment/remediation/store/postgres"
	"adequa/internal/assessment/service"
	"adequa/internal/audit"
	"adequa/internal/audit/report"
	auditmemory "adequa/internal/audit/store/memory"
	auditpostgres "adequa/internal/audit/store/postgres"
	"adequa/internal/organization"
	orgmemory "adequa/internal/organization/store/memory"
	orgpostgres "adequa/internal/organization/store/postgres"
	"adequa/internal/platform/config"
	"adequa/internal/platform/httpserver"
	"adequa/internal/platform/logger"
	"adequa/internal/platform/metrics"
	platformredis "adequa/internal/platform/redis"
	ratelimitmetrics "adequa/internal/ratelimit/metrics"
	"adequa/internal/ratelimit/ports"
	ratelimitservice "adequa/internal/ratelimit/service"
	"adequa/internal/ratelimit/store/fallback"
	ratelimitmemory "adequa/internal/ratelimit/store/memory"
	ratelimitredis "adequa/internal/ratelimit/store/redis"
	httptransport "adequa/internal/transport/http"
	"adequa/pkg/platform/middleware/auth"
)

const (
	auditBreakerThreshold = 5
	auditBreakerCooldown  = 30 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// stores groups the persistence backends selected at startup.
type stores struct {
	profiles organization.Store
	answers  answerset.Store
	tasks    remediation.Store
	audit    audit.Store
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	var healthChecks []httptransport.RouterOption

	st, db, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		healthChecks = append(healthChecks, httptransport.WithHealthCheck("database", db.PingContext))
	}

	recorder, err := audit.NewRecorder(st.audit,
		audit.WithLogger(log),
		audit.WithMetrics(audit.NewMetrics()),
		audit.WithCircuitBreaker(audit.NewCircuitBreaker(auditBreakerThreshold, auditBreakerCooldown)),
	)
	if err != nil {
		return err
	}

	counters, redisClient, err := openCounterStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		healthChecks = append(healthChecks, httptransport.WithHealthCheck("redis", redisClient.Health))
	}

	limiter, err := ratelimitservice.New(counters,
		ratelimitservice.WithLogger(log),
		ratelimitservice.WithAuditRecorder(recorder),
		ratelimitservice.WithMetrics(ratelimitmetrics.New()),
		ratelimitservice.WithLimits(ratelimitservice.LimitsFromConfig(cfg.RateLimits)),
	)
	if err != nil {
		return err
	}

	reporter, err := report.New(st.audit, report.WithThresholds(report.ThresholdsFromConfig(cfg.Report)), report.WithLogger(log))
	if err != nil {
		return err
	}

	engineOpts := []remediation.EngineOption{remediation.WithLogger(log)}
	if tx, ok := st.tasks.(remediation.Transactor); ok {
		engineOpts = append(engineOpts, remediation.WithTransactor(tx))
	}
	engine, err := remediation.NewEngine(st.tasks, engineOpts...)
	if err != nil {
		return err
	}

	assessment, err := service.New(st.profiles, st.answers, engine, limiter, recorder,
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithSecurityReporter(reporter),
	)
	if err != nil {
		return err
	}

	validator := auth.NewHMACValidator([]byte(cfg.Auth.JWTSigningKey), cfg.Auth.JWTIssuer)
	router := httptransport.NewRouter(httptransport.New(assessment, log), validator, log, healthChecks...)
	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting adequa", "addr", cfg.Addr, "postgres", db != nil, "redis", redisClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStores selects Postgres when DATABASE_URL is set and in-memory stores
// otherwise.
func openStores(ctx context.Context, cfg config.Server, log *slog.Logger) (stores, *sql.DB, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		return stores{
			profiles: orgmemory.New(),
			answers:  answermemory.New(),
			tasks:    taskmemory.New(),
			audit:    auditmemory.New(),
		}, nil, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return stores{}, nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return stores{}, nil, err
	}
	return stores{
		profiles: orgpostgres.New(db),
		answers:  answerpostgres.New(db),
		tasks:    taskpostgres.New(db),
		audit:    auditpostgres.New(db),
	}, db, nil
}

// openCounterStore keeps rate limit windows in memory, or in Redis with the
// in-memory store as fallback when REDIS_URL is set.
func openCounterStore(ctx context.Context, cfg config.Server, log *slog.Logger) (ports.CounterStore, *platformredis.Client, error) {
	local := ratelimitmemory.New()
	go local.RunSweeper(ctx, cfg.RateLimits.SweepInterval, log)

	client, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return local, nil, nil
	}

	store, err := fallback.New(ratelimitredis.New(client.Client), local, fallback.WithLogger(log))
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return store, client, nil
}

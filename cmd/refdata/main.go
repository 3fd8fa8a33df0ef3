package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/trbngr/refdata/internal/adapter/cached"
	"github.com/trbngr/refdata/internal/adapter/guarded"
	rdhttp "github.com/trbngr/refdata/internal/adapter/http"
	"github.com/trbngr/refdata/internal/adapter/memory"
	rdnats "github.com/trbngr/refdata/internal/adapter/nats"
	"github.com/trbngr/refdata/internal/adapter/natskv"
	rdotel "github.com/trbngr/refdata/internal/adapter/otel"
	"github.com/trbngr/refdata/internal/adapter/postgres"
	"github.com/trbngr/refdata/internal/adapter/ristretto"
	"github.com/trbngr/refdata/internal/adapter/tiered"
	"github.com/trbngr/refdata/internal/config"
	"github.com/trbngr/refdata/internal/logger"
	"github.com/trbngr/refdata/internal/middleware"
	"github.com/trbngr/refdata/internal/port/cache"
	"github.com/trbngr/refdata/internal/port/lookup"
	"github.com/trbngr/refdata/internal/resilience"
	"github.com/trbngr/refdata/internal/service"
)

func main() {
	bootstrap := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(bootstrap)

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	flags, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	cfg, cfgPath, err := config.LoadWithCLI(flags)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	holder := config.NewHolder(cfg, cfgPath)

	log, logCloser := logger.New(cfg.Logging)
	slog.SetDefault(log)
	defer logCloser.Close()

	slog.Info("config loaded",
		"path", cfgPath,
		"port", cfg.Server.Port,
		"driver", cfg.Storage.Driver,
		"cache", cfg.Cache.Enabled,
	)

	ctx := context.Background()

	// --- Telemetry ---

	endpoint := ""
	if cfg.Telemetry.Enabled {
		endpoint = cfg.Telemetry.OTLPEndpoint
	}
	shutdownOtel, err := rdotel.Setup(ctx, cfg.Logging.Service, endpoint)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(shutdownCtx); err != nil {
			slog.Error("otel shutdown", "error", err)
		}
	}()

	metrics, err := rdotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Storage ---

	var source lookup.Lookup
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Storage.Postgres)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer pool.Close()
		slog.Info("postgres connected")

		if err := postgres.RunMigrations(ctx, cfg.Storage.Postgres.DSN); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		slog.Info("migrations applied")

		source = postgres.NewStore(pool)
	case "memory":
		source = memory.NewStore()
		slog.Info("memory store seeded")
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	// --- Guard ---

	if cfg.Guard.MaxConcurrent > 0 {
		var breaker *resilience.Breaker
		if cfg.Guard.Breaker.MaxFailures > 0 {
			breaker = resilience.NewBreaker(cfg.Guard.Breaker.MaxFailures, cfg.Guard.Breaker.Timeout)
		}
		g := guarded.New(source, cfg.Guard.MaxConcurrent, breaker)
		g.SetMetrics(metrics)
		source = g
	}

	// --- Cache ---

	if cfg.Cache.Enabled {
		l1, err := ristretto.New(cfg.Cache.L1MaxSizeMB << 20)
		if err != nil {
			return fmt.Errorf("ristretto: %w", err)
		}
		defer l1.Close()

		var store cache.Cache = l1
		if cfg.NATS.URL != "" {
			conn, err := rdnats.Connect(ctx, cfg.NATS.URL, cfg.Cache.L2Bucket, cfg.Cache.L2TTL)
			if err != nil {
				return fmt.Errorf("nats: %w", err)
			}
			defer func() { _ = conn.Close() }()

			store = tiered.New(l1, natskv.New(conn.KV()), cfg.Cache.EntryTTL)
		}

		c := cached.New(source, store, cfg.Cache.EntryTTL, cfg.Cache.NegativeTTL)
		c.SetMetrics(metrics)
		source = c
	}

	// --- Services ---

	lookups := service.NewLookupService(source)
	lookups.SetMetrics(metrics)

	// --- HTTP ---

	handlers := &rdhttp.Handlers{Lookups: lookups}

	r := chi.NewRouter()

	r.Use(rdhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(middleware.RequestID)
	r.Use(rdhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(rdhttp.SecurityHeaders)
	if cfg.Telemetry.Enabled {
		r.Use(rdotel.HTTPMiddleware(cfg.Logging.Service))
	}

	r.Get("/health", healthHandler(holder))

	rdhttp.MountRoutes(r, handlers)

	// Reload config on SIGHUP. Wiring is fixed at startup; the reload only
	// refreshes what the health endpoint reports.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			if err := holder.Reload(); err != nil {
				slog.Error("config reload failed", "error", err)
				continue
			}
			slog.Info("config reloaded", "path", cfgPath)
		}
	}()

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// healthHandler returns an http.HandlerFunc that reports service health.
func healthHandler(holder *config.Holder) http.HandlerFunc {
	type healthStatus struct {
		Status string `json:"status"`
		Driver string `json:"driver"`
		Cache  bool   `json:"cache"`
		NATS   string `json:"nats,omitempty"`
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		cfg := holder.Get()
		status := healthStatus{
			Status: "ok",
			Driver: cfg.Storage.Driver,
			Cache:  cfg.Cache.Enabled,
			NATS:   cfg.NATS.URL,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(status)
	}
}

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"salarydash/internal/domain/audit"
	"salarydash/internal/domain/auth"
	"salarydash/internal/domain/core"
	"salarydash/internal/domain/payroll"
	"salarydash/internal/platform/config"
	"salarydash/internal/platform/db"
	"salarydash/internal/platform/metrics"
	"salarydash/internal/platform/render"
	"salarydash/internal/platform/tables"
	"salarydash/internal/transport/http/api"
	audithandler "salarydash/internal/transport/http/handlers/audit"
	authhandler "salarydash/internal/transport/http/handlers/auth"
	corehandler "salarydash/internal/transport/http/handlers/core"
	payrollhandler "salarydash/internal/transport/http/handlers/payroll"
	"salarydash/internal/transport/http/middleware"
)

const maxBodyBytes = 1 << 20

type App struct {
	Config  config.Config
	Store   tables.Provider
	DB      *pgxpool.Pool
	Metrics *metrics.Collector
	Router  http.Handler
}

// New opens the configured table backend and builds the router.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	store, pool, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app, err := NewWithStore(ctx, cfg, store, logger)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}
	app.DB = pool
	return app, nil
}

// NewWithStore builds the app over an already opened store.
func NewWithStore(ctx context.Context, cfg config.Config, store tables.Provider, logger *slog.Logger) (*App, error) {
	creds, err := auth.ParseCredentials(cfg.AuthUsers)
	if err != nil {
		return nil, err
	}
	gate, err := auth.NewGate(creds)
	if err != nil {
		return nil, err
	}

	payrollService := payroll.NewService(store, render.NewPDF(), render.NewXLSX())
	if err := payrollService.Loader().Bootstrap(ctx); err != nil {
		slog.Warn("source collections not ready", "err", err)
	}
	coreService := core.NewService(store)
	recorder := audit.NewRecorder(store)
	collector := metrics.New()

	app := &App{Config: cfg, Store: store, Metrics: collector}
	app.Router = app.routes(logger, gate, payrollService, coreService, recorder)
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func (a *App) routes(logger *slog.Logger, gate *auth.Gate, payrollService *payroll.Service, coreService *core.Service, recorder *audit.Recorder) http.Handler {
	cfg := a.Config
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID", "X-Total-Count"},
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RequestLogger(logger, cfg.LogLevel))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(a.Metrics))
	}
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(maxBodyBytes))
	if cfg.RequestTimeout > 0 {
		router.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := a.Store.Ping(ctx); err != nil {
			slog.Warn("readiness check failed", "err", err)
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(gate, cfg.JWTSecret, cfg.TokenTTL, recorder)
		authHandler.LoginLimit = middleware.LoginRateLimit(cfg.LoginRatePerMinute, cfg.LoginBurst, cfg.TrustedProxies)
		authHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)

			payrollHandler := payrollhandler.NewHandler(payrollService, coreService, a.Metrics)
			payrollHandler.RegisterRoutes(r)

			coreHandler := corehandler.NewHandler(coreService)
			coreHandler.RegisterRoutes(r)

			auditHandler := audithandler.NewHandler(recorder)
			auditHandler.RegisterRoutes(r)
		})
	})

	return router
}

func openStore(ctx context.Context, cfg config.Config) (tables.Provider, *pgxpool.Pool, error) {
	switch cfg.TableBackend {
	case config.BackendMemory:
		return tables.NewMemory(), nil, nil
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, &tables.ConnectionError{Op: "connect", Err: err}
		}
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("migrations failed: %w", err)
			}
		}
		return tables.NewPostgres(pool), pool, nil
	case config.BackendSheets:
		store, err := tables.NewSheets(ctx, cfg.SheetsCredentialsFile, cfg.SheetsSpreadsheetID)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown table backend %q", cfg.TableBackend)
}

// NewLogger returns the process logger in ECS shape.
func NewLogger(cfg config.Config) *slog.Logger {
	format := httplog.SchemaECS.Concise(cfg.Environment != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: format.ReplaceAttr,
	})).With(
		slog.String("app", "salarydash"),
		slog.String("env", cfg.Environment),
	)
}

func Run() {
	cfg := config.Load()
	logger := NewLogger(cfg)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg, logger)
	if err != nil {
		slog.Error("startup failed", "backend", cfg.TableBackend, "err", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("shutdown failed", "err", err)
		}
	}()

	slog.Info("salary dashboard listening", "addr", cfg.Addr, "backend", cfg.TableBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workforce/internal/app/bootstrap"
	"workforce/internal/domain/auth"
	"workforce/internal/platform/config"
	"workforce/internal/platform/logger"
	"workforce/internal/transport/http/api"
	authhandler "workforce/internal/transport/http/handlers/auth"
	employeeshandler "workforce/internal/transport/http/handlers/employees"
	reportshandler "workforce/internal/transport/http/handlers/reports"
	"workforce/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Runtime *bootstrap.Runtime
	Auth    *auth.Service
	Router  http.Handler
}

// New opens the store, seeds it when empty and builds the router.
func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	rt, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if seeded, err := rt.EnsureSeeded(ctx, cfg.SeedEmployees); err != nil {
		rt.Close()
		return nil, err
	} else if seeded {
		rt.Log.Info("empty store populated with sample data", "employees", cfg.SeedEmployees)
	}
	return NewWithRuntime(rt), nil
}

func NewWithRuntime(rt *bootstrap.Runtime) *App {
	cfg := rt.Config
	authSvc := auth.NewService(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.TokenTTL)
	if !authSvc.Enabled() {
		rt.Log.Warn("JWT_SECRET not set, API runs without authentication")
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(rt.Log, rt.Metrics))
	router.Use(middleware.Recoverer(rt.Log))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(authSvc))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := rt.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, rt.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	window := time.Minute
	limiterLog := middleware.WithLimiterLogger(rt.Log)
	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authSvc, rt.Log)
		r.With(middleware.LoginRateLimit(cfg.RateLimitPerMinute, window, limiterLog)).Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireOperator(authSvc))
			r.Get("/auth/me", authHandler.HandleMe)

			writes := middleware.RateLimit(cfg.RateLimitPerMinute, window, limiterLog)
			employeesHandler := employeeshandler.NewHandler(rt.DB.Store, rt.Log)
			employeesHandler.RegisterRoutes(r, writes)

			reportsHandler := reportshandler.NewHandler(rt.Builder, rt.Charts, rt.Log)
			reportsHandler.RegisterRoutes(r)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})

	return &App{Config: cfg, Runtime: rt, Auth: authSvc, Router: router}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Runtime.Log.Info("workforce server listening", "addr", a.Config.Addr, "backend", a.Runtime.DB.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.Runtime.Log.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

func (a *App) Close() {
	a.Runtime.Close()
}

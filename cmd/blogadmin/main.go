// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olegiv/blogadmin/internal/api"
	"github.com/olegiv/blogadmin/internal/config"
	"github.com/olegiv/blogadmin/internal/handler"
	"github.com/olegiv/blogadmin/internal/i18n"
	"github.com/olegiv/blogadmin/internal/logging"
	"github.com/olegiv/blogadmin/internal/middleware"
	"github.com/olegiv/blogadmin/internal/preview"
	"github.com/olegiv/blogadmin/internal/render"
	"github.com/olegiv/blogadmin/internal/scheduler"
	"github.com/olegiv/blogadmin/internal/session"
	"github.com/olegiv/blogadmin/internal/store"
	"github.com/olegiv/blogadmin/internal/version"
	"github.com/olegiv/blogadmin/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "blogadmin - web console for the blog backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGADMIN_SESSION_SECRET    Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGADMIN_API_BASE_URL      Backend base URL (default: %s)\n", config.DefaultAPIBaseURL)
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGADMIN_DB_PATH           SQLite session database (default: ./data/blogadmin.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGADMIN_REDIS_URL         Keep sessions in Redis instead (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGADMIN_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGADMIN_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOGADMIN_LOG_LEVEL         debug|info|warn|error (default: info)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo.Long("blogadmin"))
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo *version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	ctx := context.Background()
	checks := map[string]handler.Pinger{}

	// Session storage: Redis when configured, SQLite otherwise.
	var sessionManager *scs.SessionManager
	if cfg.UseRedisSessions() {
		rs, err := session.NewRedisStoreFromURL(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() {
			if err := rs.Close(); err != nil {
				slog.Error("error closing redis connection", "error", err)
			}
		}()
		sessionManager = session.NewWithStore(rs, cfg.IsDevelopment(), cfg.SessionLifetime)
		checks["sessions"] = rs.Ping
		slog.Info("session store ready", "backend", "redis")
	} else {
		slog.Info("initializing database", "path", cfg.DBPath)
		db, err := store.NewDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		}()

		if err := store.Migrate(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		sessionManager = session.New(db, cfg.IsDevelopment(), cfg.SessionLifetime)
		checks["sessions"] = func(ctx context.Context) error { return store.Health(ctx, db) }
		slog.Info("session store ready", "backend", "sqlite")
	}

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	backend := api.New(cfg.APIBaseURL,
		api.WithLogger(logger),
		api.WithMetrics(api.NewMetrics(registry)),
	)
	slog.Info("backend configured", "base_url", backend.BaseURL())

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	sched := scheduler.New(logger)
	if err := sched.Add("login-protection-cleanup", "@every 5m", loginProtection.Cleanup); err != nil {
		return fmt.Errorf("scheduling cleanup: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	authHandler := handler.NewAuthHandler(backend, sessionManager, renderer, loginProtection, logger)
	adminHandler := handler.NewAdminHandler(backend, sessionManager, renderer, preview.New(), logger)
	healthHandler := handler.NewHealthHandler(checks, versionInfo)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	// Endpoints outside the session and CSRF stack.
	r.Get(handler.RouteHealth, healthHandler.Health)
	if cfg.MetricsEnabled {
		r.Handle(handler.RouteMetrics, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	sessionStore := session.NewStore(sessionManager)
	csrfCfg := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret)[:32], cfg.IsDevelopment(), cfg.ServerAddr())

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(middleware.Language(sessionManager))
		r.Use(middleware.CSRF(csrfCfg))

		handler.Routes{
			Auth:       authHandler,
			Admin:      adminHandler,
			Sessions:   sessionStore,
			LoginLimit: loginProtection.Middleware(),
		}.Register(r)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      75 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

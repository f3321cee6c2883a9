package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"campusleave/internal/domain/auth"
	"campusleave/internal/domain/course"
	"campusleave/internal/domain/leave"
	"campusleave/internal/domain/notifications"
	"campusleave/internal/platform/config"
	"campusleave/internal/platform/db"
	"campusleave/internal/platform/email"
	"campusleave/internal/platform/storage"
	authhandler "campusleave/internal/transport/http/handlers/auth"
	coursehandler "campusleave/internal/transport/http/handlers/course"
	leavehandler "campusleave/internal/transport/http/handlers/leave"
	notificationshandler "campusleave/internal/transport/http/handlers/notifications"
	"campusleave/internal/transport/http/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	files := storage.NewDisk(cfg.StorageDir, cfg.StorageBaseURL)
	mailer := email.New(cfg)

	authStore := auth.NewStore(pool)
	authService := auth.NewService(authStore, cfg.JWTSecret)
	perms := auth.Permissions{}

	notifyService := notifications.New(notifications.NewStore(pool), mailer, cfg.EmailFrom)
	courseService := course.NewService(course.NewStore(pool))
	leaveService := leave.NewService(leave.NewStore(pool), files, notifyService, leave.RoleAuthorizer{}, cfg.MaxLeaveSpan)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)
		leavehandler.NewHandler(leaveService, courseService, perms).RegisterRoutes(r)
		coursehandler.NewHandler(courseService, perms).RegisterRoutes(r)
		notificationshandler.NewHandler(notifyService, perms).RegisterRoutes(r)
	})

	// Uploaded attachments are served straight from disk.
	router.Handle(cfg.StorageBaseURL+"/*", http.StripPrefix(cfg.StorageBaseURL+"/", http.FileServer(http.Dir(files.FileServerRoot()))))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "err", err)
	}
}

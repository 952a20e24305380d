package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/halcyonlabs/userdir/internal/auth"
	"github.com/halcyonlabs/userdir/internal/config"
	"github.com/halcyonlabs/userdir/internal/database"
	"github.com/halcyonlabs/userdir/internal/handlers"
	custommw "github.com/halcyonlabs/userdir/internal/middleware"
	"github.com/halcyonlabs/userdir/internal/models"
	"github.com/halcyonlabs/userdir/internal/repositories"
	"github.com/halcyonlabs/userdir/internal/routes"
	"github.com/halcyonlabs/userdir/internal/services"
	"github.com/halcyonlabs/userdir/internal/task"
	"github.com/halcyonlabs/userdir/pkg/hash"
	pkglogger "github.com/halcyonlabs/userdir/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repositories.NewUserRepository(db)
	hasher := hash.NewPBKDF2Hasher(cfg.Hash.Salt)

	pool := task.NewPool(task.Config{
		MinWorkers: cfg.Workers.Min,
		MaxWorkers: cfg.Workers.Max,
	}, logger)

	userService := services.NewUserService(userRepo, hasher, pool, logger)
	authService := services.NewAuthService(userRepo, hasher, logger)

	auditLogger := pkglogger.NewAuditLogger(logger)
	userHandler := handlers.NewUserHandler(userService, auditLogger)
	searchHandler := handlers.NewSearchHandler(userService)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminUser(ctx, userRepo, hasher, logger); err != nil {
		logger.Error("failed to ensure admin user", slog.Any("error", err))
	}
	cancel()

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(custommw.RequestLogger(logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, userHandler, searchHandler, authService, auth.DefaultPolicy)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.HealthCheck(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// In-flight units of work finish before the pool stops.
	pool.Stop()

	logger.Info("server stopped gracefully")
}

// ensureAdminUser creates the first admin account when ADMIN_NAME,
// ADMIN_EMAIL and ADMIN_PASSWORD are set. Without it a fresh deployment has
// nobody allowed to create users.
func ensureAdminUser(ctx context.Context, userRepo *repositories.UserRepository, hasher hash.PasswordHasher, logger *slog.Logger) error {
	adminName := os.Getenv("ADMIN_NAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminName == "" || adminEmail == "" || adminPassword == "" {
		logger.Info("no ADMIN_NAME/ADMIN_EMAIL/ADMIN_PASSWORD set, skipping admin bootstrap")
		return nil
	}

	existing, err := userRepo.FindByName(ctx, adminName)
	if err != nil {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}
	if existing != nil {
		logger.Info("admin user already exists")
		return nil
	}

	admin := &models.User{
		Profile:  models.ProfileAdmin,
		Name:     adminName,
		Email:    adminEmail,
		Password: hasher.Hash(adminPassword),
	}

	if _, err := userRepo.Save(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("admin user created", slog.String("email", pkglogger.SanitizedEmail(adminEmail)))
	return nil
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"islandproperties-backend/internal/api"
	"islandproperties-backend/internal/audit"
	"islandproperties-backend/internal/auth"
	"islandproperties-backend/internal/config"
	"islandproperties-backend/internal/database"
	"islandproperties-backend/internal/models"
	"islandproperties-backend/internal/session"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("Warning: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	store, sqlStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	// Create the configured super admin if no admin exists
	if err := createDefaultAdminIfNeeded(ctx, store, cfg); err != nil {
		log.Printf("Warning: failed to create default admin: %v", err)
	}

	if cfg.SeedSampleData {
		if err := database.SeedSampleData(ctx, store); err != nil {
			log.Printf("Warning: failed to seed sample data: %v", err)
		}
	}

	sessions, closeSessions, err := openSessions(ctx, cfg, sqlStore)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	defer closeSessions()

	auditLogger := audit.NewLogger(store)
	authSvc := auth.NewService(store, sessions, auditLogger)

	var limiter *auth.RateLimiter
	if cfg.LoginRateLimit > 0 {
		limiter = auth.NewRateLimiter(cfg.LoginRateLimit, 15*time.Minute, 15*time.Minute)
		defer limiter.Stop()
	}

	e := api.NewServer(api.Options{
		Store:        store,
		Auth:         authSvc,
		Audit:        auditLogger,
		CookieSecure: cfg.CookieSecure,
		LoginLimiter: limiter,
		CORSOrigins:  cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Starting Island Properties backend on port %s (store=%s, sessions=%s)", cfg.Port, cfg.Store, cfg.SessionStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// openStore returns the configured repository. The SQL store is also
// returned when it backs the repository so sessions can share it.
func openStore(cfg *config.Config) (database.Store, *database.SQLStore, error) {
	if cfg.Store != config.BackendSQLite {
		log.Println("Using in-memory storage; data is lost on restart")
		return database.NewMemStore(), nil, nil
	}

	dbPath := cfg.DBPath
	if !filepath.IsAbs(dbPath) {
		cwd, _ := os.Getwd()
		dbPath = filepath.Join(cwd, dbPath)
	}
	log.Printf("Initializing database at %s", dbPath)
	sqlStore, err := database.Open(database.Config{Path: dbPath})
	if err != nil {
		return nil, nil, err
	}
	return sqlStore, sqlStore, nil
}

func openSessions(ctx context.Context, cfg *config.Config, sqlStore *database.SQLStore) (session.Store, func(), error) {
	switch cfg.SessionStore {
	case config.BackendSQLite:
		repo := sqlStore.Sessions()
		if cfg.SessionSweep <= 0 {
			return repo, func() {}, nil
		}
		sweepCtx, cancel := context.WithCancel(ctx)
		go func() {
			ticker := time.NewTicker(cfg.SessionSweep)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if _, err := repo.DeleteExpired(sweepCtx); err != nil && sweepCtx.Err() == nil {
						log.Printf("Session sweep failed: %v", err)
					}
				case <-sweepCtx.Done():
					return
				}
			}
		}()
		return repo, cancel, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		log.Printf("Using Redis session store at %s", cfg.RedisAddr)
		rs := session.NewRedisStore(client)
		return rs, func() { rs.Close() }, nil
	default:
		ms := session.NewMemoryStore(session.WithSweepInterval(cfg.SessionSweep))
		return ms, func() { ms.Close() }, nil
	}
}

// createDefaultAdminIfNeeded creates the configured super admin if no admin exists
func createDefaultAdminIfNeeded(ctx context.Context, store database.Store, cfg *config.Config) error {
	count, err := store.CountAdminUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if cfg.AdminEmail == "" {
		log.Println("No admin users exist; set ISLAND_ADMIN_EMAIL and ISLAND_ADMIN_PASSWORD to create one")
		return nil
	}

	passwordHash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	log.Printf("Creating super admin %s", cfg.AdminEmail)
	return store.CreateAdminUser(ctx, &models.AdminUser{
		Email:        cfg.AdminEmail,
		PasswordHash: passwordHash,
		Role:         models.RoleSuperAdmin,
	})
}

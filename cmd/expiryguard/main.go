// Package main is the entry point for the ExpiryGuard service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"expiryguard/internal/config"
	"expiryguard/internal/handler"
	"expiryguard/internal/notify"
	"expiryguard/internal/pkg/db"
	"expiryguard/internal/repository"
	"expiryguard/internal/service"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	snapshotRepo := repository.NewSnapshotRepository(dbPool.Pool)
	productRepo := repository.NewProductRepository(dbPool.Pool)
	ledgerRepo := repository.NewPointLedgerRepository(dbPool.Pool)

	// Initialize services
	gamificationService := service.NewGamificationService(snapshotRepo, productRepo, ledgerRepo)
	reminderService := service.NewReminderService(productRepo, cfg.Reminder.CheckInterval)
	notifier := notify.NewNotifier(log.Logger)

	// Start the reminder loop in a goroutine
	go func() {
		log.Info().
			Dur("check_interval", cfg.Reminder.CheckInterval).
			Msg("Reminder loop starting")
		reminderService.Run(ctx)
	}()

	// Initialize HTTP server
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})
	handler.New(gamificationService, notifier).Register(app)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info().Str("addr", addr).Msg("HTTP server starting")
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	log.Info().Msg("ExpiryGuard stopped gracefully")
}

// runMigrations executes database migrations.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: Create gamification snapshots table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS gamification_snapshots (
			user_id TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: gamification_snapshots table created")

	// Migration 2: Create products table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(50) NOT NULL,
			expiry_date TIMESTAMPTZ NOT NULL,
			quantity INT NOT NULL DEFAULT 1,
			notes TEXT NOT NULL DEFAULT '',
			reminder_days BIGINT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_products_user_expiry ON products(user_id, expiry_date ASC);
		CREATE INDEX IF NOT EXISTS idx_products_expiry ON products(expiry_date ASC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: products table created")

	// Migration 3: Create point transactions table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS point_transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			action VARCHAR(50) NOT NULL,
			points INT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_point_transactions_user_time ON point_transactions(user_id, created_at DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 3: point_transactions table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockbot/internal/config"
	"stockbot/internal/handler"
	"stockbot/internal/repository/postgres"
	"stockbot/internal/service"
	"stockbot/internal/state"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/line/line-bot-sdk-go/v7/linebot"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting stock bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// The interaction log is optional; without DATABASE_URL every message
	// is handled purely in memory
	var recorder handler.Recorder = service.NopRecorder{}
	var historyService *service.HistoryService

	if cfg.DatabaseURL != "" {
		db, err := connectDatabase(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		logger.Info("Database migrations completed")

		interactionRepo := postgres.NewInteractionRepo(db)
		historyService = service.NewHistoryService(interactionRepo, logger)
		recorder = historyService
	}

	// Conversation state store with TTL eviction
	states, err := state.NewMemoryStore(cfg.StateTTL)
	if err != nil {
		logger.Fatal("Failed to create state store", zap.Error(err))
	}
	defer states.Close()

	// Initialize LINE SDK client
	bot, err := linebot.New(
		cfg.ChannelSecret,
		cfg.ChannelAccessToken,
		linebot.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)
	if err != nil {
		logger.Fatal("Failed to create LINE client", zap.Error(err))
	}

	logger.Info("LINE client initialized")

	// Initialize services
	newsService := service.NewNewsService(cfg.NewsURL, cfg.HTTPTimeout, logger)
	stockService := service.NewStockService(cfg.QuoteURL, cfg.HistoryURL, cfg.HTTPTimeout, logger)
	backtestService := service.NewBacktestService(stockService, logger)

	// Initialize handler
	h := handler.NewHandler(
		bot,
		handler.NewLineClient(bot),
		states,
		newsService,
		stockService,
		backtestService,
		recorder,
		logger,
	)

	mux := http.NewServeMux()
	h.Register(mux)

	logger.Info("Handlers registered")

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Start cleanup job in background when the interaction log is on
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if historyService != nil {
		go runCleanupJob(ctx, historyService, logger)
	}

	// Start server in background
	go func() {
		logger.Info("Webhook server started", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Webhook server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down server gracefully", zap.Error(err))
	}
	cancel()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runCleanupJob prunes old interaction log rows once a day
func runCleanupJob(ctx context.Context, historyService *service.HistoryService, logger *zap.Logger) {
	// Run cleanup once at startup
	if err := historyService.CleanupOldData(); err != nil {
		logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			logger.Info("Running scheduled cleanup")
			if err := historyService.CleanupOldData(); err != nil {
				logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
		}
	}
}

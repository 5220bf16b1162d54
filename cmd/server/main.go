package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"banking-ledger/internal/config"
	"banking-ledger/internal/handler"
	"banking-ledger/internal/ledger"
	"banking-ledger/internal/logger"
	"banking-ledger/internal/repository"
	"banking-ledger/internal/service"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "banking-ledger: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ledgerCfg, err := cfg.Ledger.ToLedger()
	if err != nil {
		return fmt.Errorf("invalid ledger configuration: %w", err)
	}
	l := ledger.New(ledgerCfg)

	// The journal is optional; without it the ledger runs purely in memory
	var (
		sink    service.EntrySink
		checker handler.JournalChecker
	)
	if cfg.Journal.Enabled {
		db, err := initJournal(cfg.Journal)
		if err != nil {
			return fmt.Errorf("failed to initialize journal: %w", err)
		}
		defer db.Close()

		journal := repository.NewJournalRepository(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = journal.EnsureSchema(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to prepare journal schema: %w", err)
		}

		sink, checker = journal, journal
		log.Info("journal enabled",
			zap.String("host", cfg.Journal.Host),
			zap.String("database", cfg.Journal.Database),
		)
	}

	// Initialize services
	clientService := service.NewClientService(l, log)
	accountService := service.NewAccountService(l, log)
	transactionService := service.NewTransactionService(l, sink, cfg.Journal.WriteTimeout, log)

	router := handler.NewRouter(handler.Handlers{
		Health:       handler.NewHealthHandler(l, checker, version),
		Clients:      handler.NewClientHandler(clientService),
		Accounts:     handler.NewAccountHandler(accountService),
		Transactions: handler.NewTransactionHandler(transactionService),
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("branch_code", l.BranchCode()),
			zap.String("version", version),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}

func initJournal(cfg config.JournalConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

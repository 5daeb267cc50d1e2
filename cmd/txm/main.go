package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isnorttestingpipelines/txm-web/internal/authapi"
	"github.com/isnorttestingpipelines/txm-web/internal/config"
	"github.com/isnorttestingpipelines/txm-web/internal/executor"
	"github.com/isnorttestingpipelines/txm-web/internal/gateway"
	"github.com/isnorttestingpipelines/txm-web/internal/logger"
	"github.com/isnorttestingpipelines/txm-web/internal/quotes"
	"github.com/isnorttestingpipelines/txm-web/internal/scheduler"
	"github.com/isnorttestingpipelines/txm-web/internal/session"
	"github.com/isnorttestingpipelines/txm-web/internal/storage"
	"github.com/isnorttestingpipelines/txm-web/internal/telegram"
	"github.com/isnorttestingpipelines/txm-web/internal/trading"
	"github.com/isnorttestingpipelines/txm-web/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dbPath := flag.String("db", "data/txm.db", "path to SQLite database")
	mockOnly := flag.Bool("mock", false, "serve mock quotes only, skip the quote vendor")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Init logger
	log := logger.New(cfg.Logging.Level)

	mode := "ALPACA"
	if cfg.IsSimulated() {
		mode = "SIMULATED"
	}
	log.Info("starting txm", "gateway", mode)

	// Init persistence
	db, err := storage.NewDatabase(*dbPath)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	repo := storage.NewRepository(db)

	// Context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stores
	sessions := session.NewStore(repo, log)
	sessions.Restore()
	store := trading.NewStore()

	// Quote source, fail-open to mock data
	var quoteClient *quotes.Client
	if !*mockOnly {
		quoteClient = quotes.NewClient(cfg, log)
	}
	source := quotes.NewSource(quoteClient, log)

	// Order gateway
	var gw gateway.Gateway
	if cfg.IsSimulated() {
		gw = gateway.NewSimulated(log)
	} else {
		gw = gateway.NewAlpaca(cfg, log)
	}

	// Services
	notifier := telegram.NewNotifier(cfg, log)
	exec := executor.NewExecutor(gw, store, notifier, log)
	authClient := authapi.NewClient(cfg, log)
	sched := scheduler.NewScheduler(source, store, cfg, log)
	webServer := web.NewServer(sessions, store, source, authClient, exec, cfg, log)

	// Start quote refresher in goroutine
	go sched.Run(ctx)

	// Start web server in goroutine
	go func() {
		if err := webServer.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()

	notifier.NotifyStatus(fmt.Sprintf("txm started (%s gateway)", mode))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutdown signal received", "signal", sig.String())

	// Graceful shutdown
	cancel() // stop refresher

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Error("web server shutdown error", "error", err)
	}

	notifier.NotifyStatus("txm stopped")
	log.Info("txm stopped")
}

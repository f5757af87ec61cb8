package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nahidhasan98/changelog-viewer/internal/config"
	"github.com/nahidhasan98/changelog-viewer/internal/github"
	"github.com/nahidhasan98/changelog-viewer/internal/handlers"
	"github.com/nahidhasan98/changelog-viewer/internal/logger"
	"github.com/nahidhasan98/changelog-viewer/internal/server"
	"github.com/nahidhasan98/changelog-viewer/internal/session"
)

// Global variables for configuration and services
var (
	cfg      *config.Config
	log      *logger.Logger
	client   *github.Client
	registry *session.Registry
	errChan  = make(chan error, 2)
)

func main() {
	// Create a context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create a wait group for graceful shutdown
	var wg sync.WaitGroup

	// Initialize configuration and services
	if err := initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Initialization error: %v\n", err)
		os.Exit(1)
	}

	// Evict idle sessions in the background
	startSessionJanitor(ctx, &wg)

	// Start the web server
	startWebServer(ctx, &wg)

	// Handle shutdown signals
	waitForShutdown(cancel, &wg)
}

func initialize() error {
	var err error

	// Load configuration
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log = logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info("Starting changelog viewer")

	// Initialize GitHub client
	client, err = github.NewClient(github.Config{
		BaseURL:    cfg.GitHub.APIURL,
		UserAgent:  cfg.GitHub.UserAgent,
		HTTPClient: &http.Client{Timeout: cfg.GitHub.Timeout},
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	// Every session shares the client, and with it the ETag cache and quota view
	registry = session.NewRegistry(func() *session.Session {
		return session.New(client, client, log.With("component", "session"))
	}, cfg.Sessions.TTL, cfg.Sessions.Max, log)

	return nil
}

func startSessionJanitor(ctx context.Context, wg *sync.WaitGroup) {
	wg.Go(func() {
		registry.Run(ctx, cfg.Sessions.SweepInterval)
		log.Info("Session janitor stopped")
	})
}

func startWebServer(ctx context.Context, wg *sync.WaitGroup) {
	wg.Go(func() {
		log.Info("Starting HTTP server...")

		// Initialize HTTP handlers
		httpHandler := handlers.New(registry, client, cfg.Changelog, log)

		// Initialize and start HTTP server
		httpServer := server.New(cfg, httpHandler, log)
		if err := httpServer.Start(cfg); err != nil {
			errChan <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}

		// Keep the server running until shutdown
		<-ctx.Done()
		log.Info("HTTP server shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Error during HTTP server shutdown", err)
		}
	})
}

func waitForShutdown(cancel context.CancelFunc, wg *sync.WaitGroup) {
	// Wait for either service to fail or for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Error("Service failed", err)
	case <-sigChan:
		log.Info("Received shutdown signal")
	}

	// Cancel context to signal goroutines to shutdown
	cancel()

	// Wait for all goroutines to finish
	wg.Wait()

	log.Info("Application stopped")
}

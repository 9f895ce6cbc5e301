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

	"github.com/shamikhan005/astrotrack/app/api"
	"github.com/shamikhan005/astrotrack/app/cfg"
	"github.com/shamikhan005/astrotrack/app/feed"
	"github.com/shamikhan005/astrotrack/app/reminder"
	"github.com/shamikhan005/astrotrack/app/sources"
	"github.com/shamikhan005/astrotrack/app/storage"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting astrotrack server", "version", appCfg.Version)

	db, err := storage.Open(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := storage.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	almanac, err := sources.LoadAlmanac()
	if err != nil {
		slog.Error("Failed to load almanac", "error", err)
		os.Exit(1)
	}

	client := sources.NewClient(&http.Client{Timeout: 30 * time.Second}, almanac, sources.ClientOptions{
		UserAgent:     appCfg.UserAgent,
		NasaAPIKey:    appCfg.NASAAPIKey,
		NeoWsURL:      appCfg.NeoWsURL,
		LaunchLibURL:  appCfg.LaunchLibURL,
		OpenNotifyURL: appCfg.OpenNotifyURL,
	})
	aggregator := feed.NewAggregator(client, appCfg.Latitude, appCfg.Longitude)

	// Reminder scheduler with persisted state
	store := reminder.NewStore(storage.NewKVStore(db))
	gateway := reminder.NewLogGateway(true)
	scheduler := reminder.NewScheduler(store, gateway)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Reminder scheduler started", "active", len(scheduler.List()))

	handler := api.NewHandler(aggregator, scheduler, gateway)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		slog.Info("Endpoints available",
			"events", fmt.Sprintf("http://localhost:%s/events", appCfg.Port),
			"export", fmt.Sprintf("http://localhost:%s/export", appCfg.Port),
			"reminders", fmt.Sprintf("http://localhost:%s/reminders", appCfg.Port),
			"health", fmt.Sprintf("http://localhost:%s/health", appCfg.Port))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}

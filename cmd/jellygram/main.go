package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"jellygram/pkg/config"
	"jellygram/pkg/handlers"
	"jellygram/pkg/jellyfin"
	"jellygram/pkg/ledger"
	"jellygram/pkg/services"
	"jellygram/pkg/telegram"
	"jellygram/pkg/trailer"
)

func main() {
	// Setup logging
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
	log.Info("Starting Jellygram application")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	// Initialize the notification ledger
	ledgerPath := filepath.Join(cfg.DataDir, "notified_items.json")
	store := ledger.NewFileStore(ledgerPath)
	led := ledger.New(store)
	log.WithFields(log.Fields{
		"path":    ledgerPath,
		"entries": led.Len(),
	}).Info("Loaded notification ledger")

	// Initialize Jellyfin client
	jellyfinClient, err := jellyfin.NewClient(&jellyfin.Config{
		BaseURL: cfg.JellyfinBaseURL,
		APIKey:  cfg.JellyfinAPIKey,
		Client:  &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second},
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create Jellyfin client")
	}

	// Initialize Telegram sender
	sender, err := telegram.New(&telegram.Config{
		Token:  cfg.TelegramBotToken,
		ChatID: cfg.TelegramChatID,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create Telegram sender")
	}

	// Initialize trailer lookup
	trailerService := trailer.NewService(cfg.TraktAPIKey)
	if !cfg.TrailerLookupEnabled() {
		log.Info("TRAKT_API_KEY not set, trailer lookup disabled")
	}

	// Initialize services
	filterService := services.NewFilterService(led, jellyfinClient, cfg.EpisodePremieredWithinDays, cfg.SeasonAddedWithinDays)
	notificationService := services.NewNotificationService(led, jellyfinClient, jellyfinClient, trailerService, sender)
	appService := services.NewAppService(led, filterService, notificationService, cfg.EpisodePremieredWithinDays, cfg.SeasonAddedWithinDays)

	// Initialize HTTP handlers
	handler := handlers.NewHandler(appService)

	// Start periodic ledger persistence
	go startBackgroundTasks(appService)

	// Start HTTP server
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      handler.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("address", server.Addr).Info("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	waitForShutdown(server, appService)
}

// startBackgroundTasks periodically re-persists the ledger so a crash
// between a send and its persist call heals on the next tick
func startBackgroundTasks(appService *services.AppService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		appService.PersistLedger()
	}
}

// waitForShutdown waits for shutdown signals and gracefully shuts down
func waitForShutdown(server *http.Server, appService *services.AppService) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.WithField("signal", sig).Info("Received shutdown signal, initiating graceful shutdown")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	} else {
		log.Info("HTTP server shut down successfully")
	}

	// Flush application state
	if err := appService.Close(); err != nil {
		log.WithError(err).Error("Failed to flush notification ledger")
	} else {
		log.Info("Notification ledger flushed successfully")
	}

	log.Info("Graceful shutdown completed")
}

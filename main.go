// Copyright (c) 2025 readlytics
// Licensed under the MIT License

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"readlytics/internal/analytics"
	"readlytics/internal/api"
	"readlytics/internal/cache"
	"readlytics/internal/config"
	"readlytics/internal/dataset"
	"readlytics/internal/refresher"

	_ "readlytics/docs"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize cache for the dataset snapshot
	cacheManager := cache.NewManager(cfg.CacheTTL)

	// Initialize the dataset source (csv or sqlite)
	source, err := dataset.New(cfg)
	if err != nil {
		log.Fatal("Failed to initialize dataset source:", err)
	}
	defer source.Close()

	// Initialize the analytics engine
	engine := analytics.New(cacheManager, source, cfg.TopicKeywords, cfg.Stopwords)

	// Perform the initial load so a bad dataset fails fast
	log.Printf("Loading initial dataset snapshot...")
	if err := engine.Refresh(); err != nil {
		log.Fatal("Failed to load dataset:", err)
	}
	log.Printf("Initial dataset snapshot loaded")

	// Initialize background reloader
	backgroundRefresher := refresher.New(engine, cfg.ReloadInterval)
	backgroundRefresher.Start()

	// Initialize API server
	server := api.NewServer(engine, backgroundRefresher, cfg)

	log.Printf("Starting Readlytics server on port %d", cfg.Port)
	log.Printf("Data directory: %s", cfg.DataDir)
	log.Printf("Dataset source: %s", cfg.DatasetSource)
	log.Printf("Cache TTL: %v", cfg.CacheTTL)
	log.Printf("Background reload interval: %v", cfg.ReloadInterval)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Create a context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start signal handler in goroutine
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping services...")
		backgroundRefresher.Stop()
		cancel() // Cancel the context to stop the server
	}()

	// Start the server with context for graceful shutdown
	if err := server.StartWithContext(ctx); err != nil && err != context.Canceled {
		log.Fatal("Failed to start server:", err)
	}
}

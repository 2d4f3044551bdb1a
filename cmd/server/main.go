package main

import (
	"fmt"
	"log"
	"os"

	"github.com/greenthumb/backend/config"
	httpDelivery "github.com/greenthumb/backend/internal/delivery/http"
	"github.com/greenthumb/backend/internal/domain"
	"github.com/greenthumb/backend/internal/infrastructure/catalogstore"
	"github.com/greenthumb/backend/internal/infrastructure/feeds"
	"github.com/greenthumb/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Green Thumb Catalog Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store Type: %s", cfg.Store.Type)

	// Initialize run persistence
	var store domain.RunStore
	switch cfg.Store.Type {
	case "sqlite":
		sqliteStore, err := catalogstore.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to open run store %s: %v", cfg.Store.Path, err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
		log.Printf("Run store: sqlite at %s", cfg.Store.Path)
	default:
		store = catalogstore.NewMemoryStore()
		log.Printf("Run store: in-memory (runs are lost on restart)")
	}

	// Load the curated category index and the learned assignments
	entries, err := feeds.LoadCategoryIndex(cfg.Feeds.CategoryIndex)
	if err != nil {
		log.Printf("WARNING: category index %s unavailable (%v) - exact and fuzzy tiers disabled", cfg.Feeds.CategoryIndex, err)
	}
	log.Printf("Category index: %d entries", len(entries))

	learned, err := feeds.LoadLearnedMap(cfg.Feeds.LearnedMap)
	if err != nil {
		log.Printf("WARNING: learned category map %s unreadable: %v", cfg.Feeds.LearnedMap, err)
	}
	log.Printf("Learned categories: %d entries", len(learned))

	// Initialize the consolidation engine
	index := usecase.NewCategoryIndex(entries)
	service := usecase.NewConsolidationService(index, learned, usecase.ConsolidationConfig{
		SKUPrefix:           cfg.Consolidation.SKUPrefix,
		FuzzyOverlapRatio:   cfg.Consolidation.FuzzyOverlapRatio,
		ImageScoreThreshold: cfg.Consolidation.ImageScoreThreshold,
		ImageMatchCap:       cfg.Consolidation.ImageMatchCap,
		EnableDebugLogging:  cfg.Consolidation.EnableDebugLogging,
	})

	log.Printf("Engine: sku_prefix=%s, fuzzy_ratio=%.2f, image_threshold=%.2f, debug=%v",
		cfg.Consolidation.SKUPrefix,
		cfg.Consolidation.FuzzyOverlapRatio,
		cfg.Consolidation.ImageScoreThreshold,
		cfg.Consolidation.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(service, store, cfg)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/myskyn/backend/config"
	httpDelivery "github.com/myskyn/backend/internal/delivery/http"
	"github.com/myskyn/backend/internal/infrastructure/cache"
	"github.com/myskyn/backend/internal/infrastructure/firebase"
	"github.com/myskyn/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting MySkyn Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store: %s", cfg.Firebase.DatabaseURL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Snapshot cache TTL: %s", cfg.Cache.TTL)

	storeClient := firebase.NewClient(cfg.Firebase.DatabaseURL, cfg.Firebase.AuthToken)
	storeClient.SetPaths(cfg.Firebase.ProductsPath, cfg.Firebase.RulesPath)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		storeClient.SetDebug(true)
		log.Printf("Store client debug mode enabled")
	}

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(storeClient, memoryCache, cfg.Cache.TTL)
	ruleService := usecase.NewRuleService(storeClient, memoryCache, cfg.Cache.TTL, nil)
	pairingService := usecase.NewPairingService(
		catalogService,
		ruleService,
		usecase.PairingServiceConfig{
			Scorer: usecase.ScorerConfig{
				IncompatiblePenalty: cfg.Pairing.IncompatiblePenalty,
				CautionPenalty:      cfg.Pairing.CautionPenalty,
				EnableDebugLogging:  cfg.Pairing.EnableDebugLogging,
			},
		},
	)

	log.Printf("Pairing: incompatible=-%d, caution=-%d, debug=%v",
		cfg.Pairing.IncompatiblePenalty,
		cfg.Pairing.CautionPenalty,
		cfg.Pairing.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService, pairingService)

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

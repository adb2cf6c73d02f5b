package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"mutuel/app"
	"mutuel/catalog"
	"mutuel/config"
	"mutuel/database"
	"mutuel/metrics"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting wagering engine...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Wire the engine against the external race catalog
	raceCatalog := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)
	engine := app.New(db, raceCatalog)
	log.Println("Services initialized successfully")

	// Metrics follow the domain event bus
	metrics.SubscribeToBus(engine.Bus)
	metricsServer := metrics.StartServer(cfg.MetricsPort, func(ctx context.Context) error {
		return db.Ping(ctx)
	})
	log.Printf("Metrics server listening on :%s", cfg.MetricsPort)

	// Bootstrap the wallet so the first placement finds a balance
	balance, err := engine.Wallet.Balance(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize wallet: %w", err)
	}
	log.Printf("Wallet balance: %s", balance)

	// Run the settlement scheduler until shutdown
	log.Printf("Engine is running in %s mode, settling every %s...", cfg.Environment, cfg.SettlementInterval)
	runSettlementLoop(ctx, engine, cfg.SettlementInterval)

	// Cleanup resources
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down metrics server: %v", err)
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}

// runSettlementLoop resolves pending tickets on a fixed interval until the
// context is cancelled. A run may be safely aborted between tickets.
func runSettlementLoop(ctx context.Context, engine *app.App, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runOnce := func() {
		resolved, err := engine.RunSettlement(ctx)
		if err != nil {
			log.Printf("Settlement run error: %v", err)
			return
		}
		if resolved > 0 {
			log.Printf("Settlement resolved %d tickets", resolved)
		}
	}

	// Run immediately on start
	runOnce()

	for {
		select {
		case <-ticker.C:
			runOnce()
		case <-ctx.Done():
			return
		}
	}
}

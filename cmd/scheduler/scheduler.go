package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abelzeko/mionjo/internal/app"
	"github.com/abelzeko/mionjo/internal/config"
	"github.com/abelzeko/mionjo/internal/usecases"
	"github.com/robfig/cron/v3"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting MIONJO scheduler...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	// Run the jobs immediately on startup
	refreshPredictions(ctx, application.Services)
	if cfg.RegisterURL != "" {
		syncRegister(ctx, application.Services)
	}

	c := cron.New()
	if err := registerJobs(ctx, c, cfg, application.Services); err != nil {
		log.Fatalf("Failed to set up cron jobs: %v", err)
	}
	c.Start()

	<-ctx.Done()
	log.Println("Stopping scheduler...")
	<-c.Stop().Done()
}

// registerJobs schedules the prediction refresh and, when a register is
// configured, the register synchronization
func registerJobs(ctx context.Context, c *cron.Cron, cfg config.Config, services *usecases.Services) error {
	if _, err := c.AddFunc(cfg.PredictionsSchedule, func() { refreshPredictions(ctx, services) }); err != nil {
		return fmt.Errorf("invalid predictions schedule %q: %w", cfg.PredictionsSchedule, err)
	}
	log.Printf("Prediction refresh scheduled with '%s'", cfg.PredictionsSchedule)

	if cfg.RegisterURL == "" {
		return nil
	}
	if _, err := c.AddFunc(cfg.SyncSchedule, func() { syncRegister(ctx, services) }); err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", cfg.SyncSchedule, err)
	}
	log.Printf("Register synchronization scheduled with '%s'", cfg.SyncSchedule)
	return nil
}

func refreshPredictions(ctx context.Context, services *usecases.Services) {
	if _, err := services.Predictions.RefreshPredictions(ctx); err != nil {
		log.Printf("Scheduled prediction refresh failed: %v", err)
	}
}

func syncRegister(ctx context.Context, services *usecases.Services) {
	if _, err := services.WaterPoints.SyncRegister(ctx); err != nil {
		log.Printf("Scheduled register synchronization failed: %v", err)
	}
}

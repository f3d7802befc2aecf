// Package app wires the MIONJO components from the configuration
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/abelzeko/mionjo/internal/config"
	"github.com/abelzeko/mionjo/internal/fixtures"
	"github.com/abelzeko/mionjo/internal/integration"
	"github.com/abelzeko/mionjo/internal/integration/openai"
	"github.com/abelzeko/mionjo/internal/repository"
	"github.com/abelzeko/mionjo/internal/storage"
	"github.com/abelzeko/mionjo/internal/usecases"
)

// App holds the handles shared by every binary
type App struct {
	Config   config.Config
	Repo     *repository.Repository
	Services *usecases.Services
}

// New opens the store, seeds missing collections and builds the use cases
func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := storage.NewSQLiteStore(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return NewWithStore(ctx, cfg, store)
}

// NewWithStore builds the application over an already opened store
func NewWithStore(ctx context.Context, cfg config.Config, store storage.Store) (*App, error) {
	ds, err := fixtures.Load()
	if err != nil {
		store.Close()
		return nil, err
	}

	repo := repository.New(store, ds)
	if err := repo.Seed(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to seed collections: %w", err)
	}

	return &App{
		Config:   cfg,
		Repo:     repo,
		Services: usecases.NewServices(repo, dependencies(cfg)),
	}, nil
}

// dependencies enables the optional integrations that are configured
func dependencies(cfg config.Config) usecases.Dependencies {
	var deps usecases.Dependencies

	if cfg.RegisterURL != "" {
		deps.Register = integration.NewRegisterScraper(cfg.RegisterURL)
	} else {
		log.Println("MIONJO_REGISTER_URL is not set, register synchronization disabled")
	}

	if cfg.OpenAIAPIKey == "" {
		log.Println("OPENAI_API_KEY is not set, using heuristic predictions and command-only chat")
		return deps
	}
	if predictor, err := openai.NewPredictor(cfg.OpenAIAPIKey); err != nil {
		log.Printf("Warning: OpenAI predictor unavailable: %v", err)
	} else {
		deps.Predictor = predictor
	}
	if agent, err := openai.NewQueryAgent(cfg.OpenAIAPIKey); err != nil {
		log.Printf("Warning: OpenAI agent unavailable: %v", err)
	} else {
		deps.Agent = agent
	}
	return deps
}

// Close releases the store
func (a *App) Close() error {
	return a.Repo.Close()
}

package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/seyio/leadpilot/internal/ai"
	"github.com/seyio/leadpilot/internal/config"
	"github.com/seyio/leadpilot/internal/enrichment"
	"github.com/seyio/leadpilot/internal/store"
	"github.com/seyio/leadpilot/pkg/models"
)

// App is the dependency container for the CLI application
type App struct {
	Store      *store.Store
	Config     *config.Config
	AI         *ai.Client
	Enrichment *enrichment.Client
	HTTPClient *http.Client
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context) (*App, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	st, err := store.OpenDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// Generous timeout: drafting calls can be slow on local providers
	httpClient := &http.Client{
		Timeout: 120 * time.Second,
	}

	return &App{
		Store:      st,
		Config:     config.AppConfig,
		AI:         ai.NewClient(config.AppConfig, httpClient),
		Enrichment: enrichment.NewClient(config.AppConfig, httpClient),
		HTTPClient: httpClient,
	}, nil
}

// Close closes all resources
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// CurrentRun fetches the current run, failing with ErrNoCurrentRun when
// none is selected.
func (a *App) CurrentRun() (*models.WorkflowRun, error) {
	run, err := a.Store.CurrentRun()
	if err != nil {
		return nil, fmt.Errorf("fetch current run: %w", err)
	}
	if run == nil {
		return nil, ErrNoCurrentRun
	}
	return run, nil
}

// SaveRun persists a mutated run. Called after every successful state
// transition so no update is ever lost.
func (a *App) SaveRun(run models.WorkflowRun) error {
	if err := a.Store.SaveRun(run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

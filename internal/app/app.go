// Package app wires configuration, services and handlers into one
// application instance owned by main.
package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/probo/internal/common"
	"github.com/ternarybob/probo/internal/handlers"
	"github.com/ternarybob/probo/internal/interfaces"
	"github.com/ternarybob/probo/internal/services/integrations"
	"github.com/ternarybob/probo/internal/services/llm"
	"github.com/ternarybob/probo/internal/services/playwright"
	"github.com/ternarybob/probo/internal/services/state"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Services
	ChatService        interfaces.ChatService
	TestService        interfaces.TestService
	StateStore         interfaces.StateTokenStore
	IntegrationService interfaces.IntegrationService

	// HTTP handlers
	APIHandler         *handlers.APIHandler
	ChatHandler        *handlers.ChatHandler
	TestHandler        *handlers.TestHandler
	IntegrationHandler *handlers.IntegrationHandler
}

// New creates the application and starts its background workers.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: config,
		Logger: logger,
	}

	// Services
	a.ChatService = llm.NewService(&config.LLM, logger)
	a.TestService = playwright.NewService(logger)
	a.IntegrationService = integrations.NewService(logger)

	stateStore := state.NewStore(config.State.TTL, config.State.SweepInterval, logger)
	if err := stateStore.Start(); err != nil {
		return nil, fmt.Errorf("failed to start state token store: %w", err)
	}
	a.StateStore = stateStore

	// HTTP handlers
	a.APIHandler = handlers.NewAPIHandler(config, logger)
	a.ChatHandler = handlers.NewChatHandler(a.ChatService, config, logger)
	a.TestHandler = handlers.NewTestHandler(a.TestService, logger)
	a.IntegrationHandler = handlers.NewIntegrationHandler(a.IntegrationService, a.StateStore, logger)

	logger.Info().
		Str("environment", config.Environment).
		Str("llm_configured", fmt.Sprintf("%v", a.ChatService.IsConfigured())).
		Msg("Application initialized")

	return a, nil
}

// Close releases application resources in reverse dependency order.
func (a *App) Close() {
	if a.StateStore != nil {
		a.StateStore.Shutdown()
	}

	a.Logger.Info().Msg("Application closed")
}

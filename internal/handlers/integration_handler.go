package handlers

import (
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/probo/internal/interfaces"
)

// oauthNextSteps lists the remaining work for the scaffolded OAuth flow.
// Returned verbatim from the authorize endpoint.
var oauthNextSteps = []string{
	"Configure OAuth client ID and secret in environment variables",
	"Implement OAuth authorization URL generation",
	"Handle OAuth callback",
}

// IntegrationHandler handles integration catalog and OAuth handshake requests
type IntegrationHandler struct {
	integrationService interfaces.IntegrationService
	stateStore         interfaces.StateTokenStore
	logger             arbor.ILogger
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(
	integrationService interfaces.IntegrationService,
	stateStore interfaces.StateTokenStore,
	logger arbor.ILogger,
) *IntegrationHandler {
	return &IntegrationHandler{
		integrationService: integrationService,
		stateStore:         stateStore,
		logger:             logger,
	}
}

// ListHandler handles GET /integrations
func (h *IntegrationHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"integrations": h.integrationService.List(),
	})
}

// AuthorizeHandler handles POST /integrations/{type}/authorize.
// Issues the CSRF state token the callback must return.
func (h *IntegrationHandler) AuthorizeHandler(w http.ResponseWriter, r *http.Request, integrationType string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if !h.requireKnownType(w, integrationType) {
		return
	}

	state, err := h.stateStore.Issue(integrationType)
	if err != nil {
		h.logger.Error().Err(err).
			Str("integration", integrationType).
			Msg("Failed to issue state token")
		WriteError(w, http.StatusInternalServerError, "Failed to initialize OAuth flow")
		return
	}

	h.logger.Info().
		Str("integration", integrationType).
		Msg("OAuth flow initialized")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "OAuth flow not yet implemented",
		"type":      integrationType,
		"state":     state,
		"nextSteps": oauthNextSteps,
	})
}

// CallbackHandler handles POST /integrations/{type}/callback.
// The state token is validated and consumed before anything else runs.
func (h *IntegrationHandler) CallbackHandler(w http.ResponseWriter, r *http.Request, integrationType string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if !h.requireKnownType(w, integrationType) {
		return
	}

	body, ok := DecodeBody(w, r)
	if !ok {
		return
	}

	state, _ := body["state"].(string)
	if err := h.stateStore.Consume(state, integrationType); err != nil {
		h.logger.Warn().
			Str("integration", integrationType).
			Str("reason", err.Error()).
			Msg("OAuth callback rejected")
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "OAuth callback not yet implemented",
		"type":           integrationType,
		"receivedCode":   isTruthy(body["code"]),
		"stateValidated": true,
	})
}

// DisconnectHandler handles DELETE /integrations/{type}.
// No stored connection exists yet, so this only acknowledges.
func (h *IntegrationHandler) DisconnectHandler(w http.ResponseWriter, r *http.Request, integrationType string) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}
	if !h.requireKnownType(w, integrationType) {
		return
	}

	h.logger.Info().
		Str("integration", integrationType).
		Msg("Integration disconnected")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Integration %s disconnected", integrationType),
		"type":    integrationType,
	})
}

func (h *IntegrationHandler) requireKnownType(w http.ResponseWriter, integrationType string) bool {
	if !h.integrationService.Exists(integrationType) {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Unknown integration type: %s", integrationType))
		return false
	}
	return true
}

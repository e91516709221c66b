package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/probo/internal/common"
)

// ServiceName identifies this service in health responses.
const ServiceName = "probo"

// APIHandler handles system-level HTTP requests
type APIHandler struct {
	config *common.Config
	logger arbor.ILogger
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(config *common.Config, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		config: config,
		logger: logger,
	}
}

// HealthHandler handles GET /health
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
	})
}

// StatusHandler handles GET /status
func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Probo Testing Tool API",
		"version": common.GetVersion(),
		"features": map[string]interface{}{
			"integrations": []string{
				"TestRail", "Jira", "Jam.dev", "Figma", "Notion", "GitHub", "Confluence",
			},
			"capabilities": []string{
				"Natural Language Chat", "Playwright Test Authoring", "Agentic Coding",
			},
		},
	})
}

// VersionHandler handles GET /version
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// NotFoundHandler handles unmatched routes.
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found")
}

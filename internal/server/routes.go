package server

import (
	"net/http"
	"strings"

	"github.com/ternarybob/probo/internal/handlers"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Chat
	mux.HandleFunc("/chat", s.app.ChatHandler.ChatHandler)          // POST - send a message
	mux.HandleFunc("/chat/status", s.app.ChatHandler.StatusHandler) // GET - LLM configuration status

	// Test generation
	mux.HandleFunc("/tests/generate", s.app.TestHandler.GenerateHandler) // POST - generate a test stub
	mux.HandleFunc("/tests/validate", s.app.TestHandler.ValidateHandler) // POST - validate test code

	// Integrations
	mux.HandleFunc("/integrations", s.app.IntegrationHandler.ListHandler) // GET - list catalog
	mux.HandleFunc("/integrations/", s.handleIntegrationRoutes)           // /{type}, /{type}/authorize, /{type}/callback

	// System
	mux.HandleFunc("/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/status", s.app.APIHandler.StatusHandler)
	mux.HandleFunc("/version", s.app.APIHandler.VersionHandler)

	mux.HandleFunc("/", s.handleRoot)

	return mux
}

// handleRoot serves the mux fallback. Anything but the exact root path
// is an unknown route.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}
	s.app.APIHandler.StatusHandler(w, r)
}

// handleIntegrationRoutes dispatches /integrations/{type} subpaths:
//
//	POST   /integrations/{type}/authorize
//	POST   /integrations/{type}/callback
//	DELETE /integrations/{type}
func (s *Server) handleIntegrationRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/integrations/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 0 || parts[0] == "" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}

	integrationType := parts[0]

	switch {
	case len(parts) == 1:
		s.app.IntegrationHandler.DisconnectHandler(w, r, integrationType)
	case len(parts) == 2 && parts[1] == "authorize":
		s.app.IntegrationHandler.AuthorizeHandler(w, r, integrationType)
	case len(parts) == 2 && parts[1] == "callback":
		s.app.IntegrationHandler.CallbackHandler(w, r, integrationType)
	default:
		handlers.WriteError(w, http.StatusNotFound, "Not found")
	}
}

package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/probo/internal/common"
	"github.com/ternarybob/probo/internal/interfaces"
	"github.com/ternarybob/probo/internal/services/validation"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatService interfaces.ChatService
	config      *common.Config
	logger      arbor.ILogger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService interfaces.ChatService, config *common.Config, logger arbor.ILogger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		config:      config,
		logger:      logger,
	}
}

// ChatHandler handles POST /chat
func (h *ChatHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	body, ok := DecodeBody(w, r)
	if !ok {
		return
	}

	if fieldErr := validation.ChatMessage(body["message"]); fieldErr != nil {
		WriteError(w, http.StatusBadRequest, fieldErr.Message)
		return
	}
	message := body["message"].(string)

	chatContext, _ := body["context"].(map[string]interface{})

	h.logger.Info().
		Int("message_length", len(message)).
		Msg("Processing chat request")

	response, err := h.chatService.Chat(r.Context(), message, chatContext)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to generate chat response")

		errBody := map[string]interface{}{
			"error": "Failed to process chat message",
		}
		// Internal detail never leaves the service in production.
		if !h.config.IsProduction() {
			errBody["details"] = err.Error()
		}
		WriteJSON(w, http.StatusInternalServerError, errBody)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"response":        response,
		"isLLMConfigured": h.chatService.IsConfigured(),
	})
}

// StatusHandler handles GET /chat/status
func (h *ChatHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	configured := h.chatService.IsConfigured()

	message := "LLM is not configured. Set LLM_ENDPOINT and LLM_MODEL environment variables."
	if configured {
		message = "LLM is configured and ready"
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"configured": configured,
		"message":    message,
	})
}

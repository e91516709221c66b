package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/probo/internal/interfaces"
	"github.com/ternarybob/probo/internal/services/validation"
	"github.com/ternarybob/probo/pkg/models"
)

// TestHandler handles test generation and validation HTTP requests
type TestHandler struct {
	testService interfaces.TestService
	logger      arbor.ILogger
}

// NewTestHandler creates a new test handler
func NewTestHandler(testService interfaces.TestService, logger arbor.ILogger) *TestHandler {
	return &TestHandler{
		testService: testService,
		logger:      logger,
	}
}

// GenerateHandler handles POST /tests/generate
func (h *TestHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	body, ok := DecodeBody(w, r)
	if !ok {
		return
	}

	if fieldErr := validation.TestDescription(body["description"]); fieldErr != nil {
		WriteError(w, http.StatusBadRequest, fieldErr.Message)
		return
	}
	if fieldErr := validation.TestSourceType(body["sourceType"]); fieldErr != nil {
		WriteError(w, http.StatusBadRequest, fieldErr.Message)
		return
	}

	req := &models.TestGenerationRequest{
		Description: body["description"].(string),
	}
	if sourceType, ok := body["sourceType"].(string); ok {
		req.SourceType = sourceType
	}
	if sourceID, ok := body["sourceId"].(string); ok {
		req.SourceID = sourceID
	}
	if genContext, ok := body["context"].(map[string]interface{}); ok {
		req.Context = genContext
	}

	artifact, err := h.testService.GenerateTest(r.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to generate test")
		WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Failed to generate test",
			"message": err.Error(),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"test":    artifact,
	})
}

// ValidateHandler handles POST /tests/validate
func (h *TestHandler) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	body, ok := DecodeBody(w, r)
	if !ok {
		return
	}

	if fieldErr := validation.TestCode(body["code"]); fieldErr != nil {
		WriteError(w, http.StatusBadRequest, fieldErr.Message)
		return
	}

	code, _ := body["code"].(string)
	result := h.testService.ValidateTest(code)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"validation": result,
	})
}

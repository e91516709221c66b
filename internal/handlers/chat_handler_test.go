package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/probo/internal/common"
	"github.com/ternarybob/probo/internal/services/llm"
)

func newChatHandler(config *common.Config) *ChatHandler {
	logger := common.GetLogger()
	return NewChatHandler(llm.NewService(&config.LLM, logger), config, logger)
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler(rec, req)

	decoded := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestChatReturnsMockResponse(t *testing.T) {
	h := newChatHandler(common.NewDefaultConfig())

	rec, body := doJSON(t, h.ChatHandler, http.MethodPost, "/chat", `{"message":"Hello LLM"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["isLLMConfigured"])
	assert.Contains(t, body["response"], "Mock LLM response")
	assert.Contains(t, body["response"], "Hello LLM")
}

func TestChatValidation(t *testing.T) {
	h := newChatHandler(common.NewDefaultConfig())

	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"missing message", `{}`, "Message is required"},
		{"empty message", `{"message":""}`, "Message is required"},
		{"non-string message", `{"message":42}`, "Message must be a string"},
		{"too long", `{"message":"` + strings.Repeat("a", 5001) + `"}`, "Message must not exceed 5000 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doJSON(t, h.ChatHandler, http.MethodPost, "/chat", tt.payload)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantErr, body["error"])
		})
	}
}

func TestChatRejectsInvalidJSON(t *testing.T) {
	h := newChatHandler(common.NewDefaultConfig())

	rec, body := doJSON(t, h.ChatHandler, http.MethodPost, "/chat", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestChatRejectsWrongMethod(t *testing.T) {
	h := newChatHandler(common.NewDefaultConfig())

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rec := httptest.NewRecorder()
	h.ChatHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestChatBackendFailureDevelopmentIncludesDetails(t *testing.T) {
	config := common.NewDefaultConfig()
	config.LLM.Endpoint = "http://127.0.0.1:1"
	config.LLM.Model = "llama3"
	h := newChatHandler(config)

	rec, body := doJSON(t, h.ChatHandler, http.MethodPost, "/chat", `{"message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to process chat message", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestChatBackendFailureProductionHidesDetails(t *testing.T) {
	config := common.NewDefaultConfig()
	config.Environment = "production"
	config.LLM.Endpoint = "http://127.0.0.1:1"
	config.LLM.Model = "llama3"
	h := newChatHandler(config)

	rec, body := doJSON(t, h.ChatHandler, http.MethodPost, "/chat", `{"message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to process chat message", body["error"])
	assert.NotContains(t, body, "details")
}

func TestChatStatusUnconfigured(t *testing.T) {
	h := newChatHandler(common.NewDefaultConfig())

	rec, body := doJSON(t, h.StatusHandler, http.MethodGet, "/chat/status", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["configured"])
	assert.Equal(t, "LLM is not configured. Set LLM_ENDPOINT and LLM_MODEL environment variables.", body["message"])
}

func TestChatStatusConfigured(t *testing.T) {
	config := common.NewDefaultConfig()
	config.LLM.Endpoint = "http://localhost:11434"
	config.LLM.Model = "llama3"
	h := newChatHandler(config)

	rec, body := doJSON(t, h.StatusHandler, http.MethodGet, "/chat/status", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["configured"])
	assert.Equal(t, "LLM is configured and ready", body["message"])
}

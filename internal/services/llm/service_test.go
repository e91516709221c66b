package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/probo/internal/common"
)

func newTestService(endpoint, model string) *Service {
	return NewService(&common.LLMConfig{
		Endpoint: endpoint,
		Model:    model,
		Timeout:  5 * time.Second,
	}, common.GetLogger())
}

func TestIsConfigured(t *testing.T) {
	assert.False(t, newTestService("", "").IsConfigured())
	assert.False(t, newTestService("http://localhost:11434", "").IsConfigured())
	assert.False(t, newTestService("", "llama3").IsConfigured())
	assert.True(t, newTestService("http://localhost:11434", "llama3").IsConfigured())
}

func TestChatUnconfiguredReturnsMock(t *testing.T) {
	svc := newTestService("", "")

	response, err := svc.Chat(context.Background(), "Hello LLM", nil)
	require.NoError(t, err)

	assert.Contains(t, response, `Mock LLM response for: "Hello LLM"`)
	assert.Contains(t, response, "Configure LLM_ENDPOINT and LLM_MODEL")
}

func TestChatConfiguredDelegatesToBackend(t *testing.T) {
	var gotPayload map[string]string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"response": "backend answer"})
	}))
	defer backend.Close()

	svc := newTestService(backend.URL, "llama3")

	response, err := svc.Chat(context.Background(), "what is probo", nil)
	require.NoError(t, err)

	assert.Equal(t, "backend answer", response)
	assert.Equal(t, "llama3", gotPayload["model"])
	assert.Equal(t, "what is probo", gotPayload["prompt"])
}

func TestChatReturnsRawBodyWithoutResponseField(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain text answer"))
	}))
	defer backend.Close()

	svc := newTestService(backend.URL, "llama3")

	response, err := svc.Chat(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain text answer", response)
}

func TestChatBackendErrorStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	svc := newTestService(backend.URL, "llama3")

	_, err := svc.Chat(context.Background(), "hi", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestChatBackendUnreachable(t *testing.T) {
	svc := newTestService("http://127.0.0.1:1", "llama3")

	_, err := svc.Chat(context.Background(), "hi", nil)
	require.Error(t, err)
}

func TestChatContextCancellation(t *testing.T) {
	started := make(chan struct{})
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer backend.Close()

	svc := newTestService(backend.URL, "llama3")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := svc.Chat(ctx, "hi", nil)
	require.Error(t, err)
}

func TestGenerateCodeMockPromptStructure(t *testing.T) {
	svc := newTestService("", "")

	response, err := svc.GenerateCode(context.Background(), "Test login functionality", nil)
	require.NoError(t, err)

	assert.Contains(t, response, "Generate a Playwright test for the following requirement:")
	assert.Contains(t, response, "Test login functionality")
	assert.Contains(t, response, "Please provide a complete Playwright test using TypeScript syntax.")
	assert.NotContains(t, response, "Context:")
}

func TestGenerateCodeIncludesContext(t *testing.T) {
	svc := newTestService("", "")

	response, err := svc.GenerateCode(context.Background(), "Test checkout", map[string]interface{}{
		"page": "checkout",
		"user": "guest",
	})
	require.NoError(t, err)

	assert.Contains(t, response, "Context:")
	assert.Contains(t, response, `"page": "checkout"`)
	assert.Contains(t, response, `"user": "guest"`)
}

func TestBuildCodePromptFiltersSensitiveKeys(t *testing.T) {
	prompt := buildCodePrompt("Test auth", map[string]interface{}{
		"page":         "login",
		"apiToken":     "tok_123",
		"clientSecret": "sec_456",
		"PASSWORD":     "hunter2",
		"api_key":      "k_789",
		"nested": map[string]interface{}{
			"refreshToken": "tok_000",
			"field":        "value",
		},
	})

	assert.Contains(t, prompt, `"page": "login"`)
	assert.Contains(t, prompt, `"field": "value"`)
	for _, leaked := range []string{"tok_123", "sec_456", "hunter2", "k_789", "tok_000"} {
		assert.NotContains(t, prompt, leaked)
	}
}

func TestBuildCodePromptOmitsFullyFilteredContext(t *testing.T) {
	prompt := buildCodePrompt("Test auth", map[string]interface{}{
		"token": "tok_123",
	})

	assert.NotContains(t, prompt, "Context:")
}

func TestRenderContextDepthBound(t *testing.T) {
	deep := map[string]interface{}{"value": "leaf"}
	for i := 0; i < 10; i++ {
		deep = map[string]interface{}{"level": deep}
	}

	rendered := renderContext(deep)
	assert.NotContains(t, rendered, "leaf")
}

func TestRenderContextUnserializable(t *testing.T) {
	rendered := renderContext(map[string]interface{}{
		"fn": func() {},
	})

	assert.Equal(t, "", rendered)
}

func TestMockResponsePreservesMessageVerbatim(t *testing.T) {
	message := strings.Repeat("long message ", 50)
	assert.Contains(t, mockResponse(message), message)
}

// Package llm is the chat adapter for the external LLM backend. The
// backend is an opaque HTTP dependency: when no endpoint and model are
// configured the adapter answers with a deterministic mock response.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/probo/internal/common"
)

// Service implements interfaces.ChatService.
type Service struct {
	endpoint string
	model    string
	timeout  time.Duration
	client   *http.Client
	logger   arbor.ILogger
}

// NewService creates a chat adapter from the LLM configuration.
func NewService(cfg *common.LLMConfig, logger arbor.ILogger) *Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Service{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// IsConfigured reports whether both an endpoint and a model were supplied.
func (s *Service) IsConfigured() bool {
	return s.endpoint != "" && s.model != ""
}

// Chat sends a message and returns the response text. Unconfigured
// services return a mock response that echoes the message; configured
// services delegate to the HTTP backend with a cancelable timeout.
func (s *Service) Chat(ctx context.Context, message string, chatContext map[string]interface{}) (string, error) {
	if !s.IsConfigured() {
		return mockResponse(message), nil
	}

	return s.callBackend(ctx, message)
}

// GenerateCode builds a test-generation prompt from the requirement and
// a sanitized view of the supplied context, then delegates to Chat.
func (s *Service) GenerateCode(ctx context.Context, description string, genContext map[string]interface{}) (string, error) {
	prompt := buildCodePrompt(description, genContext)
	return s.Chat(ctx, prompt, genContext)
}

// callBackend posts the prompt to the configured endpoint. The wire
// contract is free text: a JSON body with a "response" field is
// unwrapped, anything else is returned verbatim.
func (s *Service) callBackend(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{
		"model":  s.model,
		"prompt": prompt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode LLM request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build LLM request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	s.logger.Debug().
		Str("endpoint", s.endpoint).
		Str("model", s.model).
		Int("prompt_length", len(prompt)).
		Msg("Calling LLM backend")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM backend call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read LLM response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM backend returned status %d", resp.StatusCode)
	}

	var wrapped struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Response != "" {
		return wrapped.Response, nil
	}

	return string(body), nil
}

// buildCodePrompt assembles the structured test-generation prompt. The
// context block is omitted entirely when sanitization or serialization
// leaves nothing usable.
func buildCodePrompt(description string, genContext map[string]interface{}) string {
	var b strings.Builder

	b.WriteString("Generate a Playwright test for the following requirement:\n\n")
	b.WriteString(description)
	b.WriteString("\n\n")

	if rendered := renderContext(genContext); rendered != "" {
		b.WriteString("Context: ")
		b.WriteString(rendered)
		b.WriteString("\n\n")
	}

	b.WriteString("Please provide a complete Playwright test using TypeScript syntax.")

	return b.String()
}

func mockResponse(message string) string {
	return fmt.Sprintf("Mock LLM response for: \"%s\"\n\nNote: Configure LLM_ENDPOINT and LLM_MODEL environment variables to use actual LLM.", message)
}

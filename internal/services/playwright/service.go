// Package playwright generates Playwright test stubs from natural
// language descriptions. Generation is string templating, not LLM
// output: the artifact is deterministic apart from its identifier.
package playwright

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/probo/internal/common"
	"github.com/ternarybob/probo/pkg/models"
)

// Service implements interfaces.TestService.
type Service struct {
	logger arbor.ILogger
}

// NewService creates a new test generation service.
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// GenerateTest builds a test artifact from a natural-language description.
// The description must already be validated; sanitization here only
// protects the generated string literal, it is not input validation.
func (s *Service) GenerateTest(ctx context.Context, req *models.TestGenerationRequest) (*models.TestArtifact, error) {
	name := sanitizeForLiteral(req.Description)
	now := time.Now()

	artifact := &models.TestArtifact{
		ID:          common.NewTestID(),
		Name:        name,
		Description: req.Description,
		Code:        buildTestCode(name),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.logger.Debug().
		Str("test_id", artifact.ID).
		Str("source_type", req.SourceType).
		Int("description_length", len(req.Description)).
		Msg("Generated test artifact")

	return artifact, nil
}

// ValidateTest reports every input as valid, including empty and
// malformed code. This is a documented stub: no static or runtime
// analysis runs, and callers depend on that contract.
func (s *Service) ValidateTest(code string) *models.ValidationResult {
	return &models.ValidationResult{Valid: true}
}

// sanitizeForLiteral makes a description safe to embed inside a
// single-quoted source string. Backslashes are escaped before quotes so
// the quote escapes are not themselves double-escaped; newlines become
// single spaces so the test name stays on one line.
func sanitizeForLiteral(description string) string {
	sanitized := strings.ReplaceAll(description, `\`, `\\`)
	sanitized = strings.ReplaceAll(sanitized, `'`, `\'`)
	sanitized = strings.ReplaceAll(sanitized, "\r\n", " ")
	sanitized = strings.ReplaceAll(sanitized, "\n", " ")
	sanitized = strings.ReplaceAll(sanitized, "\r", " ")
	return sanitized
}

// buildTestCode renders the test source template around the sanitized name.
func buildTestCode(name string) string {
	return fmt.Sprintf(`import { test, expect } from '@playwright/test';

test('%s', async ({ page }) => {
  // TODO: implement steps for: %s
});
`, name, name)
}

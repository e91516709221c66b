package interfaces

import (
	"context"

	"github.com/ternarybob/probo/pkg/models"
)

// TestService generates and validates Playwright test stubs.
type TestService interface {
	// GenerateTest builds a test artifact from a natural-language description.
	GenerateTest(ctx context.Context, req *models.TestGenerationRequest) (*models.TestArtifact, error)

	// ValidateTest checks test code. The current implementation is a
	// documented stub that reports every input as valid.
	ValidateTest(code string) *models.ValidationResult
}

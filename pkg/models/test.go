package models

import "time"

// TestGenerationRequest is a natural-language request for test generation.
// Transient: validated, used to build an artifact, never persisted.
type TestGenerationRequest struct {
	Description string                 `json:"description"`
	SourceType  string                 `json:"sourceType,omitempty"` // figma, jira, testrail or manual
	SourceID    string                 `json:"sourceId,omitempty"`
	Context     map[string]interface{} `json:"context,omitempty"`
}

// TestArtifact is a generated Playwright test stub. Ownership passes to
// the caller on return; the server keeps no copy.
type TestArtifact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Code        string    `json:"code"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidationResult reports the outcome of test code validation.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

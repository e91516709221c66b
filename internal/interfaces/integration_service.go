package interfaces

import "github.com/ternarybob/probo/pkg/models"

// IntegrationService exposes the static integration catalog.
type IntegrationService interface {
	// List returns the descriptors of all known integrations.
	List() []models.IntegrationDescriptor

	// Exists reports whether the given type names a known integration.
	Exists(integrationType string) bool
}

// Package integrations exposes the static catalog of third-party
// platforms and the OAuth provider scaffolding for them. No provider
// completes a real OAuth flow yet; the handlers return a scaffold
// response describing the remaining work.
package integrations

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/probo/pkg/models"
)

// Service implements interfaces.IntegrationService over a fixed catalog.
type Service struct {
	logger  arbor.ILogger
	catalog []models.IntegrationDescriptor
	byType  map[string]models.IntegrationDescriptor
}

// NewService creates the integration catalog service.
func NewService(logger arbor.ILogger) *Service {
	catalog := []models.IntegrationDescriptor{
		{
			Type:          models.IntegrationTestRail,
			Name:          "TestRail",
			Description:   "Test case management platform",
			Status:        "available",
			RequiresOAuth: true,
		},
		{
			Type:          models.IntegrationJira,
			Name:          "Atlassian Jira",
			Description:   "Issue and project tracking",
			Status:        "available",
			RequiresOAuth: true,
		},
		{
			Type:          models.IntegrationJamDev,
			Name:          "Jam.dev",
			Description:   "Bug reporting and debugging",
			Status:        "available",
			RequiresOAuth: true,
		},
		{
			Type:          models.IntegrationFigma,
			Name:          "Figma",
			Description:   "Design mockups and prototypes",
			Status:        "available",
			RequiresOAuth: true,
		},
		{
			Type:          models.IntegrationNotion,
			Name:          "Notion",
			Description:   "Documentation and knowledge base",
			Status:        "available",
			RequiresOAuth: true,
		},
		{
			Type:          models.IntegrationGitHub,
			Name:          "GitHub",
			Description:   "Code repository and CI/CD",
			Status:        "available",
			RequiresOAuth: true,
		},
		{
			Type:          models.IntegrationConfluence,
			Name:          "Confluence",
			Description:   "Team documentation",
			Status:        "available",
			RequiresOAuth: true,
		},
	}

	byType := make(map[string]models.IntegrationDescriptor, len(catalog))
	for _, d := range catalog {
		byType[string(d.Type)] = d
	}

	return &Service{
		logger:  logger,
		catalog: catalog,
		byType:  byType,
	}
}

// List returns the descriptors of all known integrations in a stable order.
func (s *Service) List() []models.IntegrationDescriptor {
	out := make([]models.IntegrationDescriptor, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Exists reports whether the given type names a known integration.
// Matching is exact: types are lowercase identifiers, not display names.
func (s *Service) Exists(integrationType string) bool {
	_, ok := s.byType[integrationType]
	return ok
}

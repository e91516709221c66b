package models

// IntegrationType identifies a third-party platform the service can
// connect to via OAuth.
type IntegrationType string

const (
	IntegrationTestRail   IntegrationType = "testrail"
	IntegrationJira       IntegrationType = "jira"
	IntegrationJamDev     IntegrationType = "jamdev"
	IntegrationFigma      IntegrationType = "figma"
	IntegrationNotion     IntegrationType = "notion"
	IntegrationGitHub     IntegrationType = "github"
	IntegrationConfluence IntegrationType = "confluence"
)

// IntegrationDescriptor is a static, read-only description of one
// integration kind. Purely informational, no lifecycle.
type IntegrationDescriptor struct {
	Type          IntegrationType `json:"type"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	RequiresOAuth bool            `json:"requiresOAuth"`
}

// OAuthTokens holds tokens returned by a completed OAuth exchange.
// Reserved for concrete providers; no provider issues them yet.
type OAuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresAt    int64  `json:"expiresAt,omitempty"`
}

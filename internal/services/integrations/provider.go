package integrations

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/probo/internal/common"
	"github.com/ternarybob/probo/pkg/models"
	"golang.org/x/oauth2"
)

// ErrProviderNotImplemented marks an OAuth operation whose provider
// exists only as scaffolding.
var ErrProviderNotImplemented = errors.New("oauth provider not implemented")

// Provider is the contract a concrete OAuth integration will satisfy.
// Every current provider is a scaffold that carries configured
// credentials but fails all flow operations.
type Provider interface {
	// Type returns the integration type this provider serves.
	Type() models.IntegrationType

	// AuthorizationURL builds the redirect URL carrying the state token.
	AuthorizationURL(state string) (string, error)

	// ExchangeCode trades an authorization code for tokens.
	ExchangeCode(ctx context.Context, code string) (*models.OAuthTokens, error)

	// RefreshToken obtains fresh tokens from a refresh token.
	RefreshToken(ctx context.Context, refreshToken string) (*models.OAuthTokens, error)

	// ValidateConnection checks whether stored credentials still work.
	ValidateConnection(ctx context.Context) error
}

// scaffoldProvider holds an oauth2 client configuration for one
// integration without implementing the flow.
type scaffoldProvider struct {
	integrationType models.IntegrationType
	config          *oauth2.Config
}

// NewProvider creates the scaffold provider for an integration type.
// Credentials come from configuration; missing credentials produce a
// provider whose config is empty, not an error, since no operation
// succeeds either way yet.
func NewProvider(integrationType models.IntegrationType, oauthConfig common.OAuthConfig) Provider {
	client := oauthConfig.ClientFor(string(integrationType))

	return &scaffoldProvider{
		integrationType: integrationType,
		config: &oauth2.Config{
			ClientID:     client.ClientID,
			ClientSecret: client.ClientSecret,
		},
	}
}

func (p *scaffoldProvider) Type() models.IntegrationType {
	return p.integrationType
}

func (p *scaffoldProvider) AuthorizationURL(state string) (string, error) {
	return "", fmt.Errorf("%s: %w", p.integrationType, ErrProviderNotImplemented)
}

func (p *scaffoldProvider) ExchangeCode(ctx context.Context, code string) (*models.OAuthTokens, error) {
	return nil, fmt.Errorf("%s: %w", p.integrationType, ErrProviderNotImplemented)
}

func (p *scaffoldProvider) RefreshToken(ctx context.Context, refreshToken string) (*models.OAuthTokens, error) {
	return nil, fmt.Errorf("%s: %w", p.integrationType, ErrProviderNotImplemented)
}

func (p *scaffoldProvider) ValidateConnection(ctx context.Context) error {
	return fmt.Errorf("%s: %w", p.integrationType, ErrProviderNotImplemented)
}

package adapthttp

import (
	"context"
	"fmt"

	"axisconv/internal/config"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig holds the provider state single sign-on needs.
type OIDCConfig struct {
	OAuth2Config oauth2.Config
	Verifier     *oidc.IDTokenVerifier
}

// NewOIDCConfig discovers the issuer and returns a ready OIDCConfig, or nil
// when SSO is not configured.
func NewOIDCConfig(ctx context.Context, cfg config.OIDC) (*OIDCConfig, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	return &OIDCConfig{
		OAuth2Config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		Verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

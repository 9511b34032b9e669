package resolver

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/ryancicak/trino-databricks-authentication/internal/core"
)

// OIDCConfig is the inline resolver configuration for type "oidc".
type OIDCConfig struct {
	IssuerURL string `mapstructure:"issuer_url"`
	ClientID  string `mapstructure:"client_id"`
}

// OIDCResolver treats the presented token as an OIDC ID token and resolves
// the owner identity from its claims. Useful when the gateway hands out
// provider-issued ID tokens instead of opaque API tokens.
type OIDCResolver struct {
	name     string
	verifier *oidc.IDTokenVerifier
}

var _ core.Resolver = (*OIDCResolver)(nil)

func NewOIDCResolver(ctx context.Context, name string, cfg OIDCConfig) (*OIDCResolver, error) {
	if cfg.IssuerURL == "" {
		return nil, fmt.Errorf("oidc resolver %q: 'issuer_url' is required", name)
	}
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("oidc resolver %q: 'client_id' is required", name)
	}

	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("creating oidc provider for resolver %q: %w", name, err)
	}

	return &OIDCResolver{
		name:     name,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func (o *OIDCResolver) Name() string {
	return o.name
}

func (o *OIDCResolver) Resolve(ctx context.Context, token string) (string, error) {
	idToken, err := o.verifier.Verify(ctx, token)
	if err != nil {
		return "", core.RejectWrap(core.KindInvalidToken, "oidc verification failed", err)
	}

	var claims struct {
		Email   string `json:"email"`
		Subject string `json:"sub"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", core.RejectWrap(core.KindMalformedResponse, "extracting oidc claims", err)
	}

	identity := claims.Email
	if identity == "" {
		identity = claims.Subject
	}
	if identity == "" {
		return "", core.Reject(core.KindMalformedResponse, "token carries neither 'email' nor 'sub'")
	}

	return identity, nil
}

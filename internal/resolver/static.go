package resolver

import (
	"context"

	"github.com/ryancicak/trino-databricks-authentication/internal/core"
)

// StaticConfig is the inline resolver configuration for type "static".
type StaticConfig struct {
	// Tokens maps raw tokens to their owner identity.
	Tokens map[string]string `mapstructure:"tokens"`
}

// StaticResolver resolves tokens from a fixed map. For development and
// tests only; production setups should use the databricks or oidc resolver.
type StaticResolver struct {
	name   string
	tokens map[string]string
}

var _ core.Resolver = (*StaticResolver)(nil)

func NewStaticResolver(name string, cfg StaticConfig) *StaticResolver {
	return &StaticResolver{
		name:   name,
		tokens: cfg.Tokens,
	}
}

func (s *StaticResolver) Name() string {
	return s.name
}

func (s *StaticResolver) Resolve(_ context.Context, token string) (string, error) {
	identity, ok := s.tokens[token]
	if !ok {
		return "", core.Reject(core.KindInvalidToken, "unknown token")
	}
	return identity, nil
}

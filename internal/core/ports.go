package core

import "context"

// Resolver maps an opaque token to the identity that owns it.
// Implementations: Databricks SCIM Resolver, OIDC Resolver, Static/Stub Resolver.
type Resolver interface {
	// Name returns the identifier of this resolver (as used in config).
	Name() string

	// Resolve takes a raw token string, asks the identity provider who it
	// belongs to, and returns the owner's identity. It performs exactly one
	// lookup and never caches.
	Resolve(ctx context.Context, token string) (string, error)
}

// Authenticator decides whether a claimed username matches the identity
// proven by the supplied token.
type Authenticator interface {
	// Authenticate returns the verified Principal if the token belongs to
	// the claimed user, or a *Rejection describing why not.
	Authenticate(ctx context.Context, username, token string) (*Principal, error)
}

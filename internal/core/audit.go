package core

import "time"

type AuditEntry struct {
	// ID is the unique request ID (X-Correlation-ID)
	ID string `json:"id"`

	// Time is the timestamp of the event
	Time time.Time `json:"time"`

	// Action describing what happened (e.g. "auth.verify")
	Action string `json:"action"`

	// Username is the identity the connecting user claimed.
	Username string `json:"username,omitempty"`

	// ResolvedIdentity is the identity the provider proved for the token,
	// if resolution got that far.
	ResolvedIdentity string `json:"resolved_identity,omitempty"`

	// TokenFingerprint is a non-reversible fingerprint of the presented
	// token. The raw token is never written anywhere.
	TokenFingerprint string `json:"token_fingerprint,omitempty"`

	// Resolver names the resolver that handled the lookup.
	Resolver string `json:"resolver,omitempty"`

	// CacheHit indicates the identity came from the cache.
	CacheHit bool `json:"cache_hit"`

	// Decision details
	Granted    bool   `json:"granted"`
	Rejection  string `json:"rejection,omitempty"` // RejectionKind, if any
	Error      string `json:"error,omitempty"`
	Stacktrace string `json:"stacktrace,omitempty"`
}

type Auditor interface {
	Log(entry AuditEntry) error
	Close() error
}

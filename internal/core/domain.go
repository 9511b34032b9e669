package core

import "time"

// Principal represents the authenticated identity of a connecting user.
// It is produced by the Authenticator after the token owner has been
// verified against the claimed username.
type Principal struct {
	// ID is the verified identity (e.g., alice@company.com), in the exact
	// casing the identity provider reported it.
	ID string `json:"id"`

	// VerifiedAt is the time the underlying token resolution happened.
	// For cache hits this is the time of the original resolution.
	VerifiedAt time.Time `json:"verified_at"`

	// FromCache indicates whether the identity was served from the token
	// cache (no round trip to the identity provider).
	FromCache bool `json:"from_cache"`
}

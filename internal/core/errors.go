package core

import (
	"errors"
	"fmt"
)

// RejectionKind classifies why an authentication attempt was rejected.
type RejectionKind string

const (
	// KindMissingToken means no token was supplied at all.
	// Detected before any network access.
	KindMissingToken RejectionKind = "missing_token"

	// KindInvalidToken means the identity provider explicitly rejected the
	// token (HTTP 401/403). Terminal, never retried.
	KindInvalidToken RejectionKind = "invalid_token"

	// KindProviderUnavailable means the identity provider could not be
	// reached or answered with an unexpected status. The token itself may
	// still be valid.
	KindProviderUnavailable RejectionKind = "provider_unavailable"

	// KindMalformedResponse means the provider reported success but the
	// identity field could not be located in its response.
	KindMalformedResponse RejectionKind = "malformed_response"

	// KindIdentityMismatch means the token is valid but belongs to someone
	// other than the claimed user. This is the security check firing
	// correctly, not a system error.
	KindIdentityMismatch RejectionKind = "identity_mismatch"
)

// Rejection is a typed authentication failure. Reason is safe to show to
// the connecting user; Err carries operator-facing detail and must never
// contain the raw token.
type Rejection struct {
	Kind   RejectionKind
	Reason string
	Err    error
}

func (r *Rejection) Error() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Reason, r.Err)
	}
	return r.Reason
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

func Reject(kind RejectionKind, reason string) *Rejection {
	return &Rejection{Kind: kind, Reason: reason}
}

func RejectWrap(kind RejectionKind, reason string, err error) *Rejection {
	return &Rejection{Kind: kind, Reason: reason, Err: err}
}

// KindOf extracts the RejectionKind from an error chain.
// It returns "" if the error is not a Rejection.
func KindOf(err error) RejectionKind {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Kind
	}
	return ""
}

package audit

import (
	"crypto/sha256"
	"encoding/base64"
)

// Fingerprint returns a non-reversible identifier for a token, safe to put
// into logs and audit entries. The raw token must never be written anywhere.
func Fingerprint(token string) string {
	if token == "" {
		return "(none)"
	}
	hash := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(hash[:])
}

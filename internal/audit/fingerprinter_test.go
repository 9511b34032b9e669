package audit

import (
	"strings"
	"testing"
)

func TestFingerprint(t *testing.T) {
	const token = "dapi-super-secret"

	fp := Fingerprint(token)
	if fp == "" {
		t.Fatal("fingerprint must not be empty")
	}
	if strings.Contains(fp, token) {
		t.Error("fingerprint must not contain the raw token")
	}
	if got := Fingerprint(token); got != fp {
		t.Error("fingerprint must be stable for the same token")
	}
	if got := Fingerprint("other-token"); got == fp {
		t.Error("different tokens must not share a fingerprint")
	}
	if got := Fingerprint(""); got != "(none)" {
		t.Errorf("Fingerprint(\"\") = %q, want \"(none)\"", got)
	}
}

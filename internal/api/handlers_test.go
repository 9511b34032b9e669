package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ryancicak/trino-databricks-authentication/internal/audit"
	"github.com/ryancicak/trino-databricks-authentication/internal/cache"
	"github.com/ryancicak/trino-databricks-authentication/internal/resolver"
)

var testSigningKey = []byte("test-signing-key")

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	res := resolver.NewStaticResolver("dev", resolver.StaticConfig{
		Tokens: map[string]string{"tok-alice": "alice@co.com"},
	})
	srv := NewServer(res, cache.NewTokenCache(300*time.Second, 1000), audit.NewInMemoryAuditor())

	ts := httptest.NewServer(srv.Routes(testSigningKey))
	t.Cleanup(ts.Close)
	return ts
}

func postVerify(t *testing.T, ts *httptest.Server, user, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest("POST", ts.URL+VerifyRoute, strings.NewReader(`{"user":"`+user+`"}`))
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("performing request: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHandleVerify(t *testing.T) {
	ts := newTestServer(t)

	t.Run("Approved", func(t *testing.T) {
		resp := postVerify(t, ts, "alice@co.com", "tok-alice")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var body VerifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if body.Principal == nil || body.Principal.ID != "alice@co.com" {
			t.Errorf("principal = %+v, want alice@co.com", body.Principal)
		}
	})

	t.Run("Case Insensitive Claim", func(t *testing.T) {
		resp := postVerify(t, ts, "Alice@Co.com", "tok-alice")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("Identity Mismatch", func(t *testing.T) {
		resp := postVerify(t, ts, "bob@co.com", "tok-alice")
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("status = %d, want 403", resp.StatusCode)
		}
	})

	t.Run("Unknown Token", func(t *testing.T) {
		resp := postVerify(t, ts, "alice@co.com", "tok-nope")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("Missing Token", func(t *testing.T) {
		resp := postVerify(t, ts, "alice@co.com", "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("Missing User", func(t *testing.T) {
		resp := postVerify(t, ts, "", "tok-alice")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func adminToken(t *testing.T, roles []string) string {
	t.Helper()

	anyRoles := make([]any, 0, len(roles))
	for _, r := range roles {
		anyRoles = append(anyRoles, r)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"roles": anyRoles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSigningKey)
	if err != nil {
		t.Fatalf("signing admin token: %v", err)
	}
	return signed
}

func getWithBearer(t *testing.T, url, bearer string) *http.Response {
	t.Helper()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("performing request: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestAdminEndpoints(t *testing.T) {
	ts := newTestServer(t)

	t.Run("Requires Login", func(t *testing.T) {
		resp := getWithBearer(t, ts.URL+ListAuditsRoute, "")
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("Requires Admin Role", func(t *testing.T) {
		resp := getWithBearer(t, ts.URL+ListAuditsRoute, adminToken(t, []string{"viewer"}))
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("Audit Log", func(t *testing.T) {
		// produce one audit entry first
		postVerify(t, ts, "alice@co.com", "tok-alice")

		resp := getWithBearer(t, ts.URL+ListAuditsRoute, adminToken(t, []string{"admin"}))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var entries []map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(entries) == 0 {
			t.Error("expected at least one audit entry")
		}
	})

	t.Run("Cache Stats", func(t *testing.T) {
		resp := getWithBearer(t, ts.URL+CacheStatsRoute, adminToken(t, []string{"admin"}))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var stats CacheStats
		if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if stats.Capacity != 1000 || stats.TTLSeconds != 300 {
			t.Errorf("stats = %+v, want capacity 1000 / ttl 300", stats)
		}
	})
}

func TestAdminDisabledWithoutSigningKey(t *testing.T) {
	res := resolver.NewStaticResolver("dev", resolver.StaticConfig{})
	srv := NewServer(res, cache.NewTokenCache(time.Minute, 10), nil)

	ts := httptest.NewServer(srv.Routes(nil))
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + ListAuditsRoute)
	if err != nil {
		t.Fatalf("performing request: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

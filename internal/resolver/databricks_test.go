package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ryancicak/trino-databricks-authentication/internal/cache"
	"github.com/ryancicak/trino-databricks-authentication/internal/core"
	"github.com/ryancicak/trino-databricks-authentication/internal/service"
)

// scimBody mimics the relevant slice of a Databricks SCIM /Me response:
// lots of structure, one field that matters.
const scimBody = `{
  "schemas": ["urn:ietf:params:scim:schemas:core:2.0:User"],
  "id": "8935371614423446",
  "userName": "alice@co.com",
  "emails": [{"value": "alice@co.com", "primary": true}],
  "groups": [{"display": "analysts", "value": "123"}],
  "active": true
}`

func newTestResolver(t *testing.T, handler http.HandlerFunc) (*DatabricksResolver, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	res, err := NewDatabricksResolver("dbx", DatabricksConfig{Host: srv.URL})
	if err != nil {
		t.Fatalf("NewDatabricksResolver: %v", err)
	}
	return res, srv
}

func TestResolveSuccess(t *testing.T) {
	var gotAuth, gotPath string
	res, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(scimBody))
	})

	identity, err := res.Resolve(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if identity != "alice@co.com" {
		t.Errorf("identity = %q, want %q", identity, "alice@co.com")
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotPath != DefaultLookupPath {
		t.Errorf("path = %q, want %q", gotPath, DefaultLookupPath)
	}
}

func TestResolveStatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   core.RejectionKind
	}{
		{name: "Unauthorized", status: http.StatusUnauthorized, want: core.KindInvalidToken},
		{name: "Forbidden", status: http.StatusForbidden, want: core.KindInvalidToken},
		{name: "Server Error", status: http.StatusInternalServerError, body: "boom", want: core.KindProviderUnavailable},
		{name: "Rate Limited", status: http.StatusTooManyRequests, want: core.KindProviderUnavailable},
		{name: "Missing Field", status: http.StatusOK, body: `{"id": "123"}`, want: core.KindMalformedResponse},
		{name: "Empty Field", status: http.StatusOK, body: `{"userName": ""}`, want: core.KindMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _ := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := res.Resolve(context.Background(), "tok-1")
			if got := core.KindOf(err); got != tt.want {
				t.Errorf("kind = %q, want %q (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestResolveUnreachableProvider(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore

	res, err := NewDatabricksResolver("dbx", DatabricksConfig{Host: srv.URL})
	if err != nil {
		t.Fatalf("NewDatabricksResolver: %v", err)
	}

	_, err = res.Resolve(context.Background(), "tok-1")
	if got := core.KindOf(err); got != core.KindProviderUnavailable {
		t.Errorf("kind = %q, want %q", got, core.KindProviderUnavailable)
	}
}

func TestResolveErrorNeverContainsToken(t *testing.T) {
	res, _ := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream maintenance"))
	})

	const token = "dapi-super-secret-token"
	_, err := res.Resolve(context.Background(), token)
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), token) {
		t.Errorf("error %q leaks the raw token", err)
	}
}

func TestResolverConstruction(t *testing.T) {
	if _, err := NewDatabricksResolver("dbx", DatabricksConfig{}); err == nil {
		t.Error("missing host must fail at construction time")
	}

	res, err := NewDatabricksResolver("dbx", DatabricksConfig{Host: "https://ws.cloud.databricks.com/"})
	if err != nil {
		t.Fatalf("NewDatabricksResolver: %v", err)
	}
	if res.baseURL != "https://ws.cloud.databricks.com" {
		t.Errorf("baseURL = %q, trailing slash should be trimmed", res.baseURL)
	}
}

func TestCustomIdentityField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"preferred_username": "bob@co.com"}`))
	}))
	t.Cleanup(srv.Close)

	res, err := NewDatabricksResolver("dbx", DatabricksConfig{
		Host:          srv.URL,
		IdentityField: "preferred_username",
	})
	if err != nil {
		t.Fatalf("NewDatabricksResolver: %v", err)
	}

	identity, err := res.Resolve(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if identity != "bob@co.com" {
		t.Errorf("identity = %q, want %q", identity, "bob@co.com")
	}
}

// TestEndToEndVerification wires the real resolver into the authenticator:
// first attempt hits the provider, a second attempt right after is served
// from the cache.
func TestEndToEndVerification(t *testing.T) {
	var hits atomic.Int64
	res, _ := newTestResolver(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"userName":"alice@co.com"}`))
	})

	auth := service.NewAuthenticator(res, cache.NewTokenCache(300*time.Second, 1000), nil)

	p1, err := auth.Authenticate(context.Background(), "alice@co.com", "tok-1")
	if err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	if p1.ID != "alice@co.com" {
		t.Errorf("principal = %q, want %q", p1.ID, "alice@co.com")
	}

	p2, err := auth.Authenticate(context.Background(), "alice@co.com", "tok-1")
	if err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	if !p2.FromCache {
		t.Error("second attempt should be a cache hit")
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("provider hit %d times, want 1", got)
	}
}

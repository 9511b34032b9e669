package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ryancicak/trino-databricks-authentication/internal/core"
)

const (
	// DefaultLookupPath is the Databricks SCIM endpoint that answers
	// "who does this token belong to".
	DefaultLookupPath = "/api/2.0/preview/scim/v2/Me"

	// DefaultIdentityField is the SCIM field carrying the owner's identity.
	DefaultIdentityField = "userName"

	// DefaultTimeoutSeconds bounds the whole lookup (connect + response).
	// A trade-off between user-perceived connection latency and provider
	// slowness.
	DefaultTimeoutSeconds = 10

	// maxDiagnosticBody limits how much of an error response body is
	// carried into logs and audit entries.
	maxDiagnosticBody = 512

	// maxResponseBody caps how much of a success response is read. The SCIM
	// document can be large; the identity field sits well within this.
	maxResponseBody = 1 << 20
)

// DatabricksConfig is the inline resolver configuration for type "databricks".
type DatabricksConfig struct {
	// Host is the workspace base URL, e.g. https://myworkspace.cloud.databricks.com.
	// Required.
	Host string `mapstructure:"host"`

	// LookupPath overrides the SCIM lookup path.
	LookupPath string `mapstructure:"lookup_path"`

	// IdentityField overrides the response field holding the owner identity.
	IdentityField string `mapstructure:"identity_field"`

	// TimeoutSeconds overrides the per-lookup timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// DatabricksResolver proves token ownership by calling the workspace SCIM
// API with the token itself as the bearer credential. One round trip per
// Resolve, no retries, no caching.
type DatabricksResolver struct {
	name         string
	baseURL      string
	lookupPath   string
	fieldName    string
	fieldPattern *regexp.Regexp
	httpClient   *http.Client
}

var _ core.Resolver = (*DatabricksResolver)(nil)

func NewDatabricksResolver(name string, cfg DatabricksConfig) (*DatabricksResolver, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("databricks resolver %q: 'host' is required", name)
	}
	if cfg.LookupPath == "" {
		cfg.LookupPath = DefaultLookupPath
	}
	if cfg.IdentityField == "" {
		cfg.IdentityField = DefaultIdentityField
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}

	// we only care about a single field of the (potentially huge) SCIM
	// document, so a pattern match beats parsing the whole thing
	pattern, err := regexp.Compile(`"` + regexp.QuoteMeta(cfg.IdentityField) + `"\s*:\s*"([^"]+)"`)
	if err != nil {
		return nil, fmt.Errorf("databricks resolver %q: building field pattern: %w", name, err)
	}

	return &DatabricksResolver{
		name:         name,
		baseURL:      strings.TrimSuffix(cfg.Host, "/"),
		lookupPath:   cfg.LookupPath,
		fieldName:    cfg.IdentityField,
		fieldPattern: pattern,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}, nil
}

func (r *DatabricksResolver) Name() string {
	return r.name
}

func (r *DatabricksResolver) Resolve(ctx context.Context, token string) (string, error) {
	url := r.baseURL + r.lookupPath
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		// timeouts and transport failures are the provider's problem,
		// not the user's
		return "", core.RejectWrap(core.KindProviderUnavailable,
			"identity provider unreachable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", core.Reject(core.KindInvalidToken,
			fmt.Sprintf("identity provider rejected the token (HTTP %d)", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", core.RejectWrap(core.KindProviderUnavailable,
			"reading identity provider response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", core.RejectWrap(core.KindProviderUnavailable,
			"unexpected status from identity provider",
			fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(string(body), maxDiagnosticBody)))
	}

	match := r.fieldPattern.FindSubmatch(body)
	if match == nil || len(match[1]) == 0 {
		return "", core.Reject(core.KindMalformedResponse,
			fmt.Sprintf("could not locate %q in identity provider response", r.fieldName))
	}

	return string(match[1]), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

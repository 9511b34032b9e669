package client

import (
	"context"

	"github.com/ryancicak/trino-databricks-authentication/internal/api"
	"github.com/ryancicak/trino-databricks-authentication/internal/core"
)

// ListAudits retrieves the latest audit entries from the server, limited to the specified number.
func (c *Client) ListAudits(ctx context.Context, limit uint) ([]core.AuditEntry, string, error) {
	var resp []core.AuditEntry
	correlation, err := c.get(ctx, c.url().
		setPath(api.ListAuditsRoute).
		addQueryParam("limit", limit).
		build(), &resp)
	return resp, correlation, err
}

// CacheStats retrieves cache statistics from the server.
func (c *Client) CacheStats(ctx context.Context) (*api.CacheStats, string, error) {
	var resp api.CacheStats
	correlation, err := c.get(ctx, c.url().
		setPath(api.CacheStatsRoute).
		build(), &resp)
	return &resp, correlation, err
}

package client

import (
	"context"

	"github.com/ryancicak/trino-databricks-authentication/internal/api"
	"github.com/ryancicak/trino-databricks-authentication/internal/buildinfo"
)

// Info retrieves build information from the server.
func (c *Client) Info(ctx context.Context) (*buildinfo.Info, string, error) {
	var resp buildinfo.Info
	correlation, err := c.get(ctx, c.url().
		setPath(api.AboutRoute).
		build(), &resp)
	return &resp, correlation, err
}

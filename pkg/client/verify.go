package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ryancicak/trino-databricks-authentication/internal/api"
	"github.com/ryancicak/trino-databricks-authentication/internal/core"
)

// Verify asks the server whether the token belongs to the claimed user.
// It returns the verified principal and the request's correlation ID.
func (c *Client) Verify(
	ctx context.Context,
	user, token string,
) (*core.Principal, string, error) {
	payload := api.VerifyPayload{User: user}
	marshalled, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("marshalling payload: %w", err)
	}

	// we do this request manually because the Authorization header carries
	// the token under test, not the admin session token.
	req, err := http.NewRequestWithContext(ctx, "POST", c.url().
		setPath(api.VerifyRoute).
		build(), bytes.NewReader(marshalled))
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, correlationFromResponse(resp), fmt.Errorf("connection failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode >= 400 {
		return nil, correlationFromResponse(resp), parseErrorResponse(resp)
	}

	var result api.VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, correlationFromResponse(resp), fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Principal, correlationFromResponse(resp), nil
}

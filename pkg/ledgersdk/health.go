package ledgersdk

import (
	"context"
	"net/http"
)

// Liveness checks that the service is up.
func (c *Client) Liveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// Readiness checks that the service can serve requests (database reachable,
// token signing configured).
func (c *Client) Readiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	r, _ := jsonRequest(http.MethodGet, path, nil, false)

	var out HealthResponse
	if err := c.call(ctx, r, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

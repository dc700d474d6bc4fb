package ledgersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// request describes one logical call. The body is kept as bytes so every
// retry sends exactly the same payload.
type request struct {
	method string
	path   string
	body   []byte
	authed bool
	accept string
}

func jsonRequest(method, path string, payload any, authed bool) (request, error) {
	r := request{method: method, path: path, authed: authed, accept: "application/json"}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return request{}, fmt.Errorf("encode request: %w", err)
		}
		r.body = b
	}
	return r, nil
}

// do sends r, retrying transport errors and 5xx responses. The returned
// response has a 2xx-4xx status and an unread body the caller must close.
// A 401 on an authenticated call clears the stored credentials and yields
// ErrUnauthenticated.
func (c *Client) do(ctx context.Context, r request) (*http.Response, error) {
	var token string
	if r.authed {
		token = c.Token()
		if token == "" {
			return nil, ErrUnauthenticated
		}
	}

	b := c.backOff()
	b = backoff.WithMaxRetries(b, c.MaxRetries)
	bctx := backoff.WithContext(b, ctx)

	var (
		resp    *http.Response
		attempt int
	)
	op := func() error {
		attempt++

		req, err := c.newHTTPRequest(ctx, r, token)
		if err != nil {
			return backoff.Permanent(err)
		}

		res, err := c.httpClient().Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("send request: %w", err)
		}

		if res.StatusCode >= http.StatusInternalServerError {
			body, _ := io.ReadAll(res.Body)
			res.Body.Close()
			return parseErrorResponse(res.StatusCode, body)
		}

		resp = res
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger().Debug("ledgersdk: retrying request",
			"method", r.method,
			"path", r.path,
			"attempt", attempt,
			"wait", wait,
			"err", err,
		)
	}

	var err error
	if c.NewTimer != nil {
		err = backoff.RetryNotifyWithTimer(op, bctx, notify, c.NewTimer())
	} else {
		err = backoff.RetryNotify(op, bctx, notify)
	}
	if err != nil {
		return nil, err
	}

	if r.authed && resp.StatusCode == http.StatusUnauthorized {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if c.Credentials != nil {
			if err := c.Credentials.Clear(); err != nil {
				// the stale token stays put and will be sent again
				c.logger().Warn("ledgersdk: failed to clear credentials",
					slog.String("path", r.path),
					slog.Any("err", err),
				)
			}
		}
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, parseErrorResponse(resp.StatusCode, body))
	}

	return resp, nil
}

func (c *Client) backOff() backoff.BackOff {
	if c.NewBackOff != nil {
		return c.NewBackOff()
	}
	return DefaultBackOff()
}

func (c *Client) newHTTPRequest(ctx context.Context, r request, token string) (*http.Request, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r.path), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.accept != "" {
		req.Header.Set("Accept", r.accept)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// call sends r and decodes a response with status want into target.
func (c *Client) call(ctx context.Context, r request, want int, target any) error {
	resp, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, want)
}

// decodeJSON reads the body once, returning an *APIError for any status
// other than want.
func decodeJSON(resp *http.Response, target any, want ...int) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	ok := false
	for _, code := range want {
		if resp.StatusCode == code {
			ok = true
			break
		}
	}
	if !ok {
		return parseErrorResponse(resp.StatusCode, body)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

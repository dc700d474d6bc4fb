package ledgersdk

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultMaxRetries is how many times a failed request is retried after the
// first attempt.
const DefaultMaxRetries = 3

// Client talks to the ledger service. Authenticated calls attach the token
// from Credentials; transient failures are retried with exponential backoff.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Credentials holds the session token. A 401 on an authenticated call
	// clears it.
	Credentials CredentialStore

	// MaxRetries bounds retries after the first attempt. Zero disables retries.
	MaxRetries uint64

	// NewBackOff returns the delay schedule for one logical request.
	// Defaults to DefaultBackOff (1s, 2s, 4s, ...).
	NewBackOff func() backoff.BackOff

	// NewTimer returns the timer used to wait between attempts. Nil uses a
	// real timer; tests swap in one that records delays.
	NewTimer func() backoff.Timer

	// Logger receives retry and credential warnings. Nil uses slog.Default().
	Logger *slog.Logger
}

// NewClient returns a client for baseURL that keeps credentials in memory.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Credentials: &MemoryCredentials{},
		MaxRetries:  DefaultMaxRetries,
		NewBackOff:  DefaultBackOff,
	}
}

// DefaultBackOff doubles from one second with no jitter and no overall
// deadline, so the waits are exactly 1s, 2s, 4s.
func DefaultBackOff() backoff.BackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     time.Second,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         time.Minute,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return b
}

// Token returns the stored session token, or "" when logged out.
func (c *Client) Token() string {
	if c.Credentials == nil {
		return ""
	}
	creds, err := c.Credentials.Load()
	if err != nil {
		return ""
	}
	return creds.Token
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

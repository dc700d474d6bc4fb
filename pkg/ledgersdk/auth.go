package ledgersdk

import (
	"context"
	"net/http"
)

// Signup creates an account and stores the returned session.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/signup", req, http.StatusCreated)
}

// Login exchanges email and password for a session token and stores it.
// A wrong password and an unknown email fail the same way.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, http.StatusOK)
}

// Logout forgets the stored session. Tokens are stateless, so there is
// nothing to tell the server.
func (c *Client) Logout() error {
	if c.Credentials == nil {
		return nil
	}
	return c.Credentials.Clear()
}

// CurrentUser returns the user of the stored session, if any.
func (c *Client) CurrentUser() (*User, bool) {
	if c.Credentials == nil {
		return nil, false
	}
	creds, err := c.Credentials.Load()
	if err != nil || creds.Token == "" || creds.User == nil {
		return nil, false
	}
	return creds.User, true
}

func (c *Client) authenticate(ctx context.Context, path string, payload any, want int) (*AuthResponse, error) {
	r, err := jsonRequest(http.MethodPost, path, payload, false)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := c.call(ctx, r, want, &out); err != nil {
		return nil, err
	}

	if c.Credentials != nil {
		user := out.User
		if err := c.Credentials.Save(Credentials{Token: out.Token, User: &user}); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

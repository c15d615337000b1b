package gateway

import (
	"context"
	"net/http"

	"santiice/internal/domain"
)

// AuthClient talks to the /auth endpoints and keeps the shared token current.
type AuthClient struct {
	rest restClient
}

// NewAuthClient creates an auth client. creds is shared with the other clients.
func NewAuthClient(baseURL string, httpClient *http.Client, creds *Credentials) *AuthClient {
	return &AuthClient{rest: newRESTClient(baseURL, httpClient, creds)}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token and starts using it.
func (c *AuthClient) Login(ctx context.Context, username, password string) (*domain.AuthToken, error) {
	var out domain.AuthToken
	if err := c.rest.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.AccessToken)
	return &out, nil
}

// Me returns the user the current token belongs to.
func (c *AuthClient) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.rest.doJSON(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the session on the backend and drops the token.
func (c *AuthClient) Logout(ctx context.Context) error {
	defer c.SetToken("")
	return c.rest.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// SetToken installs a previously persisted token.
func (c *AuthClient) SetToken(token string) {
	if c.rest.creds != nil {
		c.rest.creds.SetToken(token)
	}
}

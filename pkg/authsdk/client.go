package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the public endpoints of the gateway and creates
// authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new gateway client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AuthenticateWithPassword logs in and wraps the issued token in a Session.
func (c *SDKClient) AuthenticateWithPassword(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.Login(ctx, LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	return newSession(c, resp.Token, resp.User), nil
}

// NewSessionFromToken wraps an existing bearer token, e.g. one kept by a CLI
// between invocations.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return newSession(c, token, User{})
}

package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Greeting calls GET /.
func (c *SDKClient) Greeting(ctx context.Context) (*MessageResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a user and returns its public record.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	resp, err := c.postJSON(ctx, "/register", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp, err := c.postJSON(ctx, "/login", req)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	return c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(raw), map[string]string{
		"Content-Type": "application/json",
	})
}

package authsdk

import (
	"context"
	"net/http"
)

// Session is a client bound to one bearer token. Tokens are not refreshed;
// once the token expires every call fails with ErrUnauthorized and the
// caller must log in again.
type Session struct {
	client *SDKClient
	token  string
	user   User
}

func newSession(client *SDKClient, token string, user User) *Session {
	return &Session{client: client, token: token, user: user}
}

// Token returns the raw bearer token.
func (s *Session) Token() string { return s.token }

// User returns the user the session was created for. It is empty for
// sessions built with NewSessionFromToken.
func (s *Session) User() User { return s.user }

// ListUsers calls GET /users. The token must belong to an admin.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/users", nil, nil)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

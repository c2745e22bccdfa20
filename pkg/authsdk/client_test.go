package authsdk

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]User{{ID: "1", Email: "a@b.com", Role: "admin"}})
	}))
	defer srv.Close()

	users, err := NewSDKClient(srv.URL+"/").NewSessionFromToken("tok").ListUsers(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok", gotAuth)
	require.Len(t, users, 1)
	require.Equal(t, "a@b.com", users[0].Email)
}

func TestClient_LoginDecodesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		ErrInvalidCredentials.WriteError(w)
	}))
	defer srv.Close()

	_, err := NewSDKClient(srv.URL).AuthenticateWithPassword(t.Context(), "nobody@b.com", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

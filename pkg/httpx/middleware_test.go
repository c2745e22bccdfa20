package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/authgate/pkg/authsdk"
	"github.com/aussiebroadwan/authgate/pkg/httpx"
	"github.com/aussiebroadwan/authgate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	called bool
	claims jwtx.Claims
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.claims, _ = httpx.ClaimsFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func newVerifier(t *testing.T) *jwtx.HS256 {
	t.Helper()
	v, err := jwtx.NewHS256([]byte("middleware-secret"), time.Hour)
	require.NoError(t, err)
	return v
}

func requireAPIError(t *testing.T, rec *httptest.ResponseRecorder, want *authsdk.APIError) {
	t.Helper()

	require.Equal(t, want.StatusCode, rec.Code)

	var body authsdk.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, want.Code, body.Error)
	require.Equal(t, want.Message, body.Message)
}

func TestAuthnMiddleware(t *testing.T) {
	v := newVerifier(t)
	good, err := v.Issue("u1", "a@b.com", "admin")
	require.NoError(t, err)
	expired, err := v.IssueAt("u1", "a@b.com", "admin", time.Now().Add(-3*time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + good, http.StatusUnauthorized},
		{"bearer without token", "Bearer ", http.StatusUnauthorized},
		{"token with spaces", "Bearer abc def", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"valid token", "Bearer " + good, http.StatusOK},
		{"lowercase scheme", "bearer " + good, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &recordingHandler{}
			h := httpx.Chain(next, httpx.AuthnMiddleware(v))

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				require.False(t, next.called, "downstream handler must not run")
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
				requireAPIError(t, rec, authsdk.ErrUnauthorized)
				return
			}

			require.True(t, next.called)
			require.Equal(t, "u1", next.claims.UserID)
			require.Equal(t, "a@b.com", next.claims.Email)
			require.Equal(t, "admin", next.claims.Role)
		})
	}
}

func TestRequireRole(t *testing.T) {
	v := newVerifier(t)

	call := func(t *testing.T, header string) (*httptest.ResponseRecorder, *recordingHandler) {
		t.Helper()
		next := &recordingHandler{}
		h := httpx.Chain(next, httpx.AuthnMiddleware(v), httpx.RequireRole("admin"))

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec, next
	}

	t.Run("admin passes", func(t *testing.T) {
		token, err := v.Issue("u1", "a@b.com", "admin")
		require.NoError(t, err)

		rec, next := call(t, "Bearer "+token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, next.called)
	})

	t.Run("user is forbidden", func(t *testing.T) {
		token, err := v.Issue("u2", "u@b.com", "user")
		require.NoError(t, err)

		rec, next := call(t, "Bearer "+token)
		require.False(t, next.called)
		requireAPIError(t, rec, authsdk.ErrForbidden)
	})

	t.Run("missing token is unauthorized, not forbidden", func(t *testing.T) {
		rec, next := call(t, "")
		require.False(t, next.called)
		requireAPIError(t, rec, authsdk.ErrUnauthorized)
	})

	t.Run("gate without authn is unauthorized", func(t *testing.T) {
		next := &recordingHandler{}
		rec := httptest.NewRecorder()
		httpx.RequireRole("admin")(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

		require.False(t, next.called)
		requireAPIError(t, rec, authsdk.ErrUnauthorized)
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("first"), mw("second"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestCORS(t *testing.T) {
	t.Run("preflight short-circuits", func(t *testing.T) {
		next := &recordingHandler{}
		req := httptest.NewRequest(http.MethodOptions, "/register", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "content-type,authorization")

		rec := httptest.NewRecorder()
		httpx.Chain(next, httpx.CORS()).ServeHTTP(rec, req)

		require.False(t, next.called)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
		require.Equal(t, "content-type,authorization", rec.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("simple request passes through", func(t *testing.T) {
		next := &recordingHandler{}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")

		rec := httptest.NewRecorder()
		httpx.Chain(next, httpx.CORS()).ServeHTTP(rec, req)

		require.True(t, next.called)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

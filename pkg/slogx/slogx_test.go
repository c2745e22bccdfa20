package slogx

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSONAttributes(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger := New(Config{
		Service: "authgate",
		Version: "test",
		Env:     "test",
		Level:   "info",
		Format:  "json",
		Output:  &buf,
	})
	logger.Debug("hidden")
	logger.Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["msg"])
	require.Equal(t, "authgate", line["service"])
	require.Equal(t, "test", line["env"])
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	require.Equal(t, slog.Default(), FromContext(context.Background()))

	l := Discard()
	require.Equal(t, l, FromContext(WithContext(context.Background(), l)))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var sawLogger bool
	h := HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = FromContext(r.Context()) != slog.Default()
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	t.Run("generates request id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

		require.True(t, sawLogger)
		require.NotEmpty(t, rec.Header().Get(RequestIDHeader))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		require.Equal(t, "http_request", line["msg"])
		require.EqualValues(t, http.StatusTeapot, line["status"])
		require.EqualValues(t, len("short and stout"), line["bytes"])
		require.Equal(t, "/users", line["path"])
	})

	t.Run("propagates caller request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
		require.Contains(t, buf.String(), `"req_id":"abc-123"`)
	})
}

//go:build e2e

package authgate_test

import (
	"testing"

	"github.com/aussiebroadwan/authgate/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	client := setupGateway(t, nil)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}

func TestRegisterLoginListFlow(t *testing.T) {
	ctx := t.Context()
	client := setupGateway(t, nil)

	greeting, err := client.Greeting(ctx)
	require.NoError(t, err)
	require.Equal(t, "Hallo. Port: 3333", greeting.Message)

	_, err = client.Register(ctx, authsdk.RegisterRequest{
		FirstName: "Admin", LastName: "User", Email: "admin@example.com", Password: "Admin123!", Role: "admin",
	})
	require.NoError(t, err)

	_, err = client.Register(ctx, authsdk.RegisterRequest{
		FirstName: "Plain", LastName: "User", Email: "plain@example.com", Password: "Plain123!", Role: "user",
	})
	require.NoError(t, err)

	admin, err := client.AuthenticateWithPassword(ctx, "admin@example.com", "Admin123!")
	require.NoError(t, err)

	users, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	plain, err := client.AuthenticateWithPassword(ctx, "plain@example.com", "Plain123!")
	require.NoError(t, err)

	_, err = plain.ListUsers(ctx)
	require.ErrorIs(t, err, authsdk.ErrForbidden)

	_, err = client.NewSessionFromToken("bogus").ListUsers(ctx)
	require.ErrorIs(t, err, authsdk.ErrUnauthorized)
}

func TestDemoSeeding(t *testing.T) {
	ctx := t.Context()
	client := setupGateway(t, map[string]string{"SEED_DEMO_USERS": "true"})

	session, err := client.AuthenticateWithPassword(ctx, "john@example.com", "1234")
	require.NoError(t, err)
	require.Equal(t, "John", session.User().FirstName)
}

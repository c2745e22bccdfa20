/*
Package authsdk is the Go client and wire contract of the authgate
authentication gateway.

Create an SDKClient for the public endpoints:

	client := authsdk.NewSDKClient("http://localhost:3333")

	user, err := client.Register(ctx, authsdk.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "pw123",
		Role:      "admin",
	})

Log in to get a Session, which carries the bearer token:

	session, err := client.AuthenticateWithPassword(ctx, "ada@example.com", "pw123")
	users, err := session.ListUsers(ctx) // admin only

# Errors

Every failure returned by the gateway decodes into an *APIError. The
predefined values (ErrBadRequest, ErrConflict, ErrInvalidCredentials,
ErrUnauthorized, ErrForbidden, ErrInternal, ErrRouteNotFound) can be matched
with errors.Is:

	if errors.Is(err, authsdk.ErrConflict) {
		// email already registered
	}

The server writes the same values, so the body of an error is always
{"error": code, "message": text} and never contains internal detail.
*/
package authsdk

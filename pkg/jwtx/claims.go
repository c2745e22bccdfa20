package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the lifetime of a bearer token when the issuer is
// not given one explicitly.
const DefaultAccessTokenTTL = time.Hour

// Claims carried by every bearer token. On the wire the payload is exactly
// {"id", "email", "role", "exp"}.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`

	jwt.RegisteredClaims
}

// NewClaims builds the claims for a token issued at now.
func NewClaims(userID, email, role string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// ValidateExpiry ensures the token hasn’t expired at the given instant.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}

	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}

	return nil
}

// HasRole reports whether the claims carry exactly the given role.
func (c *Claims) HasRole(role string) bool {
	return c.Role == role
}

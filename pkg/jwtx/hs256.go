package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256 issues and verifies tokens signed with a shared HMAC-SHA256 secret.
// It implements both Signer and Verifier.
type HS256 struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var (
	_ Signer   = (*HS256)(nil)
	_ Verifier = (*HS256)(nil)
)

// NewHS256 creates an HS256 issuer/verifier. A zero ttl falls back to
// DefaultAccessTokenTTL.
func NewHS256(secret []byte, ttl time.Duration) (*HS256, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	return &HS256{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *HS256) Alg() string        { return jwt.SigningMethodHS256.Alg() }
func (s *HS256) TTL() time.Duration { return s.ttl }

// Issue signs a token for the user that expires TTL() from now.
func (s *HS256) Issue(userID, email, role string) (string, error) {
	return s.IssueAt(userID, email, role, s.now())
}

// IssueAt signs a token as if it were issued at the given instant.
func (s *HS256) IssueAt(userID, email, role string, issuedAt time.Time) (string, error) {
	claims := NewClaims(userID, email, role, s.ttl, issuedAt)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and the expiry of tokenStr. Claims are only
// returned when both hold; every failure wraps ErrInvalidToken.
func (s *HS256) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrAlgMismatch
		}
		return s.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, classify(err))
	}
	if !token.Valid {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, ErrInvalidClaim)
	}

	if err := claims.ValidateExpiry(s.now()); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return *claims, nil
}

// classify maps jwt library errors onto the package sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	default:
		return ErrInvalidClaim
	}
}

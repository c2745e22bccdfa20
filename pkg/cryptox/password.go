package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor used for every stored credential.
const PasswordCost = 10

// MaxPasswordLength is the longest input bcrypt will accept.
const MaxPasswordLength = 72

var (
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
	ErrInvalidHash      = errors.New("cryptox: invalid password hash")
	ErrPasswordTooLong  = errors.New("cryptox: password exceeds 72 bytes")
)

// HashPassword returns a bcrypt hash of password. Every call draws a fresh
// salt so the same input never produces the same string twice.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword compares password against a hash produced by HashPassword.
// The salt and cost are read from the hash itself; the comparison runs in
// constant time.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}

// CheckPassword is the boolean form of VerifyPassword.
func CheckPassword(password, encodedHash string) bool {
	return VerifyPassword(password, encodedHash) == nil
}

func GeneratePassword() (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 12
	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random password: %w", err)
		}
		password[i] = charset[n.Int64()]
	}
	return string(password), nil
}

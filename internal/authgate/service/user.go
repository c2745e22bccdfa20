package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/authgate/internal/authgate/domain"
	"github.com/aussiebroadwan/authgate/internal/authgate/store"
	"github.com/aussiebroadwan/authgate/pkg/cryptox"
	"github.com/aussiebroadwan/authgate/pkg/idx"
	"github.com/aussiebroadwan/authgate/pkg/jwtx"
	"github.com/aussiebroadwan/authgate/pkg/slogx"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// verifyPassword is swapped out in tests.
var verifyPassword = cryptox.VerifyPassword

// unknownUserHash is compared against on logins for unknown emails so that
// both failure paths pay for one bcrypt comparison.
var unknownUserHash = sync.OnceValue(func() string {
	hash, err := cryptox.HashPassword("authgate-unknown-user")
	if err != nil {
		return ""
	}
	return hash
})

// UserService owns registration, login and user listing.
type UserService struct {
	Store  store.Store
	Signer jwtx.Signer

	// Now is used for timestamps; defaults to time.Now.
	Now func() time.Time
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token string
	User  domain.User
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Register validates the input, hashes the password and stores a new user.
// The email lookup and insert run in one transaction; a unique violation that
// still slips through is reported as ErrEmailTaken too.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return domain.User{}, ErrMissingFields
	}
	if len(in.Password) > cryptox.MaxPasswordLength {
		return domain.User{}, ErrPasswordTooLong
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, in.Email)
		switch {
		case err == nil:
			return ErrEmailTaken
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("lookup user: %w", err)
		}

		if err := tx.Users().CreateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", u.ID), slog.String("role", u.Role))
	return u, nil
}

// Login checks the credentials and issues a bearer token. An unknown email
// and a wrong password both yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	if email == "" || password == "" {
		return LoginResult{}, ErrMissingFields
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = verifyPassword(password, unknownUserHash())
			l.Info("login failed", slog.String("reason", "unknown_email"))
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := verifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Warn("stored password hash unusable", slog.String("user_id", u.ID), slog.Any("error", err))
		}
		l.Info("login failed", slog.String("reason", "bad_password"), slog.String("user_id", u.ID))
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.Signer.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	l.Info("login succeeded", slog.String("user_id", u.ID))
	return LoginResult{Token: token, User: u}, nil
}

// ListUsers returns every stored user. Never nil.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

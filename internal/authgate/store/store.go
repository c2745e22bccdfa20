package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/authgate/internal/authgate/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it. Sub-repositories hang off it so that a Tx can hand
// out the same repositories bound to the transaction.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is the transaction-scoped view handed to WithTx callbacks.
type Tx interface {
	Users() Users
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used by login and by the duplicate check on register.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// A duplicate email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns every user ordered by creation time.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/authgate/internal/authgate/store"
	"github.com/aussiebroadwan/authgate/internal/authgate/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*sqlite.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlite.NewStoreFromDB(db), mock
}

func TestUsers_QueryFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockStore(t)
	dbErr := errors.New("disk I/O error")

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
		WithArgs("john@example.com").
		WillReturnError(dbErr)

	_, err := s.Users().GetUserByEmail(ctx, "john@example.com")
	require.ErrorIs(t, err, dbErr)
	require.NotErrorIs(t, err, store.ErrNotFound)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY created_at").
		WillReturnError(dbErr)

	_, err = s.Users().ListUsers(ctx)
	require.ErrorIs(t, err, dbErr)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithTxBeginFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin().WillReturnError(errors.New("locked"))

	called := false
	err := s.WithTx(context.Background(), func(store.Tx) error {
		called = true
		return nil
	})
	require.Error(t, err)
	require.False(t, called)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_PingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectPing().WillReturnError(errors.New("gone"))

	s := sqlite.NewStoreFromDB(db)
	require.Error(t, s.Ping(context.Background()))
}

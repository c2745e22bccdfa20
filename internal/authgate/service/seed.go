package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/authgate/pkg/slogx"
)

// DemoPassword is the password given to every demo account.
const DemoPassword = "1234"

// DemoUsers are the accounts inserted by SeedDemoUsers.
var DemoUsers = []RegisterInput{
	{FirstName: "John", LastName: "Doe", Email: "john@example.com", Password: DemoPassword, Role: "user"},
	{FirstName: "Jane", LastName: "Smith", Email: "jane@example.com", Password: DemoPassword, Role: "user"},
}

// SeedDemoUsers registers the demo accounts that are not present yet and
// returns how many were created. Running it twice is harmless.
func (s *UserService) SeedDemoUsers(ctx context.Context) (int, error) {
	l := slogx.FromContext(ctx)

	created := 0
	for _, in := range DemoUsers {
		_, err := s.Register(ctx, in)
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrEmailTaken):
			l.Debug("demo user already present", slog.String("email", in.Email))
		default:
			return created, err
		}
	}

	l.Info("demo users seeded", slog.Int("created", created))
	return created, nil
}

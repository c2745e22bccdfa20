package postgres

import (
	"errors"

	"github.com/aussiebroadwan/authgate/internal/authgate/store/drivers/postgres/migrations"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/stdlib"
)

// ApplyMigrations applies any pending migrations embedded in the binary. The
// migrate driver works on database/sql, so the pool is bridged through the
// pgx stdlib adapter. The bridge holds a pooled connection until the migrate
// instance is closed.
func (s *Store) ApplyMigrations() (err error) {
	db := stdlib.OpenDBFromPool(s.pool)

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		_ = db.Close()
		return err
	}

	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		_ = driver.Close()
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return err
	}
	defer func() {
		srcErr, dbErr := instance.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

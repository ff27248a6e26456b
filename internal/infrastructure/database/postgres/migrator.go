package postgres

import (
	"embed"
	stderrors "errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func newMigrate(c *Connection) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSinkMigrate, "failed to open embedded migrations")
	}
	driver, err := postgres.WithInstance(c.db, &postgres.Config{})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSinkMigrate, "failed to create migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSinkMigrate, "failed to create migrate instance")
	}
	return m, nil
}

// Migrate applies all pending migrations. No pending migration is not an
// error.
func (c *Connection) Migrate() error {
	m, err := newMigrate(c)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		version, _, _ := m.Version()
		return errors.Wrap(err, errors.CodeSinkMigrate, "failed to run migrations").
			WithDetailf("current version: %d", version)
	}

	version, dirty, err := m.Version()
	if err != nil && !stderrors.Is(err, migrate.ErrNilVersion) {
		c.logger.Warn("Failed to get migration version", logging.Err(err))
	}
	c.logger.Info("Database migrations completed",
		logging.Int64("version", int64(version)),
		logging.Bool("dirty", dirty),
	)
	return nil
}

// MigrationStatus returns the applied version and whether a previous
// migration left the schema dirty. A database with no migrations reports 0.
func (c *Connection) MigrationStatus() (version uint, dirty bool, err error) {
	m, err := newMigrate(c)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err = m.Version()
	if err != nil {
		if stderrors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, errors.CodeSinkMigrate, "failed to get migration version")
	}
	return version, dirty, nil
}

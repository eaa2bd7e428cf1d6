package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/krishnashakula/LeaseIQ/internal/config"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/logging"
)

// Migrate applies all pending schema migrations.  An already up-to-date
// schema is not an error.
func Migrate(cfg config.DatabaseConfig, logger logging.Logger) error {
	m, err := migrate.New(cfg.MigrationPath, cfg.DSN())
	if err != nil {
		return fmt.Errorf("postgres: open migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("closing migration source", logging.Err(srcErr))
		}
		if dbErr != nil {
			logger.Warn("closing migration database", logging.Err(dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("database schema already up to date")
			return nil
		}
		return fmt.Errorf("postgres: apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("postgres: read schema version: %w", err)
	}
	logger.Info("database schema migrated",
		logging.Int("version", int(version)),
		logging.Bool("dirty", dirty),
	)
	return nil
}

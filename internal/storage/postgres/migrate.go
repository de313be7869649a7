package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/cory-johannsen/armory/migrations"
)

// Migration directions accepted by Migrate.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// MigrateResult reports the schema state after Migrate.
type MigrateResult struct {
	Version  uint
	Dirty    bool
	NoChange bool
}

// Migrate applies the embedded schema migrations to the database at dsn.
// A steps value of zero migrates all the way in direction.
//
// Precondition: direction is DirectionUp or DirectionDown; steps >= 0.
// Postcondition: On success the schema is at the reported version.
func Migrate(dsn, direction string, steps int) (MigrateResult, error) {
	if steps < 0 {
		return MigrateResult{}, fmt.Errorf("postgres: Migrate: steps must be >= 0, got %d", steps)
	}
	if direction != DirectionUp && direction != DirectionDown {
		return MigrateResult{}, fmt.Errorf("postgres: Migrate: invalid direction %q: must be %q or %q", direction, DirectionUp, DirectionDown)
	}
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return MigrateResult{}, fmt.Errorf("postgres: Migrate: opening embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return MigrateResult{}, fmt.Errorf("postgres: Migrate: creating migrator: %w", err)
	}
	defer m.Close()

	switch direction {
	case DirectionUp:
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	default:
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	}

	var res MigrateResult
	if errors.Is(err, migrate.ErrNoChange) {
		res.NoChange = true
	} else if err != nil {
		return MigrateResult{}, fmt.Errorf("postgres: Migrate: %s: %w", direction, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return MigrateResult{}, fmt.Errorf("postgres: Migrate: reading version: %w", verr)
	}
	res.Version = version
	res.Dirty = dirty
	return res, nil
}

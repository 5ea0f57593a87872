package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	// Registers the "pgx" database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"
	// Registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Dialect captures the driver specific SQL differences
type Dialect struct {
	// Driver is the registered database/sql driver name
	Driver string

	// Numbered marks drivers using $N placeholders instead of ?
	Numbered bool
}

var (
	SQLite   = Dialect{Driver: "sqlite"}
	Postgres = Dialect{Driver: "pgx", Numbered: true}
)

// Placeholder returns the bind placeholder for the n-th (1-based) argument
func (d Dialect) Placeholder(n int) string {
	if d.Numbered {
		return "$" + strconv.Itoa(n)
	}

	return "?"
}

// DialectFor resolves the dialect for the given driver name
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case SQLite.Driver:
		return SQLite, nil
	case Postgres.Driver:
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Open opens and pings the database for the given driver and DSN
func Open(ctx context.Context, driver, dsn string) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, Dialect{}, err
	}

	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("unable to open DB: %w", err)
	}

	// SQLite allows a single writer, and every in-memory
	// connection would otherwise be a separate database
	if dialect == SQLite {
		db.SetMaxOpenConns(1)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, Dialect{}, fmt.Errorf("unable to ping DB: %w", err)
	}

	return db, dialect, nil
}

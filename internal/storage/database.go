package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/portalroom/internal/dbx"
	"github.com/dmitrijs2005/portalroom/internal/filex"
	"github.com/dmitrijs2005/portalroom/internal/logging"
	"github.com/dmitrijs2005/portalroom/internal/storage/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for driver.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	var dialect, dir string
	switch driver {
	case DriverSQLite:
		dialect, dir = "sqlite3", "sqlite"
	case DriverPostgres:
		dialect, dir = "pgx", "postgres"
	default:
		return fmt.Errorf("migrations: unsupported driver %q", driver)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// OpenDB opens and migrates the database for driver. SQLite is limited to a
// single connection so that ":memory:" databases are shared by every query
// and writers never contend for the file lock.
func OpenDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var sqlDriver string
	switch driver {
	case DriverSQLite:
		sqlDriver = "sqlite"
	case DriverPostgres:
		sqlDriver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// repositoryFor returns the constructor matching driver's SQL dialect.
func repositoryFor(driver string) func(dbx.DBTX) Repository {
	if driver == DriverPostgres {
		return func(db dbx.DBTX) Repository { return NewPostgresRepository(db) }
	}
	return func(db dbx.DBTX) Repository { return NewSQLiteRepository(db) }
}

// Open returns a snapshot store for driver together with a function that
// releases the underlying database.
func Open(ctx context.Context, driver, dsn string, log logging.Logger) (*SnapshotStore, func() error, error) {
	if driver == DriverMemory {
		return NewMemorySnapshotStore(log), func() error { return nil }, nil
	}
	if path, ok := sqliteFile(driver, dsn); ok {
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, nil, err
		}
	}
	db, err := OpenDB(ctx, driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	return NewSQLSnapshotStore(db, driver, log), db.Close, nil
}

// sqliteFile returns the file behind a plain SQLite DSN. URIs and in-memory
// databases are left alone.
func sqliteFile(driver, dsn string) (string, bool) {
	if driver != DriverSQLite || dsn == "" || strings.Contains(dsn, ":memory:") || strings.HasPrefix(dsn, "file:") {
		return "", false
	}
	return dsn, true
}

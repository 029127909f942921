// Package migrations embeds the postgres schema and applies it with golang-migrate
package migrations

import (
	"embed"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// registers the postgres:// and pgx-compatible database driver
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
)

//go:embed sql/*.sql
var files embed.FS

// Migrator wraps a golang-migrate instance bound to the embedded files
type Migrator struct {
	m *migrate.Migrate
}

// New opens a migrator for dsn. postgresql:// is normalised to postgres://
func New(dsn string) (*Migrator, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, normalize(dsn))
	if err != nil {
		return nil, err
	}
	return &Migrator{m: m}, nil
}

// Up applies all pending migrations; no change is not an error
func (x *Migrator) Up() error { return ignoreNoChange(x.m.Up()) }

// Down reverts all migrations; no change is not an error
func (x *Migrator) Down() error { return ignoreNoChange(x.m.Down()) }

// Steps applies n migrations, negative n goes down
func (x *Migrator) Steps(n int) error { return ignoreNoChange(x.m.Steps(n)) }

// Force sets the version without running anything
func (x *Migrator) Force(v int) error { return x.m.Force(v) }

// Version reports the applied version; a fresh database is version 0
func (x *Migrator) Version() (uint, bool, error) {
	v, dirty, err := x.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close releases the source and database handles
func (x *Migrator) Close() error {
	srcErr, dbErr := x.m.Close()
	return errors.Join(srcErr, dbErr)
}

// Up is the one-shot helper used by tests and the CLI
func Up(dsn string) error {
	m, err := New(dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func normalize(dsn string) string {
	if rest, ok := strings.CutPrefix(dsn, "postgresql://"); ok {
		return "postgres://" + rest
	}
	return dsn
}

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"introspect/internal/platform/config"
	"introspect/internal/platform/logger"
	"introspect/internal/platform/store/migrations"
)

const usage = `usage: introspect-migrate [-dsn url] <command>

commands:
  up          apply all pending migrations
  down        revert all migrations
  steps N     apply (N>0) or revert (N<0) N migrations
  force V     set the version without running anything
  version     print the current version
`

func main() {
	l := logger.Get()
	fDSN := flag.String("dsn", "", "postgres url (default SERVICE_PGSQL_DBURL)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	dsn := *fDSN
	if dsn == "" {
		dsn = config.New().Prefix("SERVICE_PGSQL_").MustString("DBURL")
	}
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	m, err := migrations.New(dsn)
	if err != nil {
		l.Fatal().Err(err).Msg("migrator open failed")
	}
	defer func() {
		if err := m.Close(); err != nil {
			l.Error().Err(err).Msg("migrator close failed")
		}
	}()

	if err := run(m, args); err != nil {
		l.Error().Err(err).Str("command", args[0]).Msg("migration failed")
		_ = m.Close()
		os.Exit(1)
	}
	v, dirty, err := m.Version()
	if err != nil {
		l.Error().Err(err).Msg("version lookup failed")
		return
	}
	l.Info().Uint("version", v).Bool("dirty", dirty).Str("command", args[0]).Msg("migrations done")
}

func run(m *migrations.Migrator, args []string) error {
	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "version":
		return nil
	case "steps", "force":
		if len(args) != 2 {
			return fmt.Errorf("%s needs one integer argument", args[0])
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if args[0] == "steps" {
			return m.Steps(n)
		}
		return m.Force(n)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

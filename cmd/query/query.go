package query

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/bankcaps/cmd/env"
	"github.com/sig-0/bankcaps/config"
	"github.com/sig-0/bankcaps/etl"
	dbpkg "github.com/sig-0/bankcaps/storage/sql"
)

// queryCfg wraps the query configuration
type queryCfg struct {
	config *config.Config
}

// NewQueryCmd creates the query subcommand
func NewQueryCmd() *ffcli.Command {
	cfg := &queryCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("query", flag.ExitOnError)
	env.RegisterDBFlags(fs, cfg.config)

	return &ffcli.Command{
		Name:       "query",
		ShortUsage: "query [flags]",
		LongHelp:   "Runs the fixed queries against a loaded database",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

// exec executes the query command
func (c *queryCfg) exec(ctx context.Context, _ []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	env.ApplyDSN(c.config)

	db, dialect, err := dbpkg.Open(ctx, c.config.DBDriver, c.config.DBDSN)
	if err != nil {
		return err
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error(
				"unable to gracefully close DB connection",
				"err", err,
			)
		}
	}()

	if err = etl.RunQueries(ctx, dbpkg.NewStorage(db, dialect), os.Stdout, nil); err != nil {
		return fmt.Errorf("unable to run queries: %w", err)
	}

	return nil
}

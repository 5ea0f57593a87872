package run

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/bankcaps/cmd/env"
	"github.com/sig-0/bankcaps/config"
	"github.com/sig-0/bankcaps/etl"
	"github.com/sig-0/bankcaps/progress"
	"github.com/sig-0/bankcaps/provider/banks"
	dbpkg "github.com/sig-0/bankcaps/storage/sql"
)

// runCfg wraps the run configuration
type runCfg struct {
	config *config.Config

	configPath string
}

// NewRunCmd creates the run subcommand
func NewRunCmd() *ffcli.Command {
	cfg := &runCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "run",
		ShortUsage: "run [flags]",
		LongHelp:   "Runs the largest banks ETL process once",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *runCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the ETL TOML configuration, if any",
	)

	fs.StringVar(
		&c.config.SourceURL,
		"url",
		c.config.SourceURL,
		"the URL of the largest banks page",
	)

	fs.StringVar(
		&c.config.ExchangeRatePath,
		"rates",
		c.config.ExchangeRatePath,
		"the path to the Currency,Rate exchange rate CSV",
	)

	fs.StringVar(
		&c.config.CSVPath,
		"csv",
		c.config.CSVPath,
		"the output CSV path",
	)

	fs.StringVar(
		&c.config.XLSXPath,
		"xlsx",
		c.config.XLSXPath,
		"the output Excel workbook path, if any",
	)

	fs.StringVar(
		&c.config.LogPath,
		"log",
		c.config.LogPath,
		"the progress log path",
	)

	fs.IntVar(
		&c.config.FetchTimeoutSeconds,
		"timeout",
		c.config.FetchTimeoutSeconds,
		"the page fetch timeout, in seconds",
	)

	fs.IntVar(
		&c.config.MaxRecords,
		"max-records",
		c.config.MaxRecords,
		"the maximum number of banks to extract",
	)

	env.RegisterDBFlags(fs, c.config)
}

// exec executes the ETL run command
func (c *runCfg) exec(ctx context.Context, _ []string) error {
	// Read the ETL configuration, if any
	if c.configPath != "" {
		etlCfg, err := config.Read(c.configPath)
		if err != nil {
			return fmt.Errorf("unable to read ETL config, %w", err)
		}

		c.config = etlCfg
	}

	// Create a new logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	env.ApplyDSN(c.config)

	if err := config.ValidateConfig(c.config); err != nil {
		return err
	}

	// Open the progress log, truncating the previous run
	progressLog, err := progress.Open(c.config.LogPath, progress.WithLogger(logger))
	if err != nil {
		return err
	}

	defer func() {
		if err := progressLog.Close(); err != nil {
			logger.Error(
				"unable to close progress log",
				"err", err,
			)
		}
	}()

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	progressLog.Log("Initiating database connection")

	db, dialect, err := dbpkg.Open(runCtx, c.config.DBDriver, c.config.DBDSN)
	if err != nil {
		return err
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error(
				"unable to gracefully close DB connection",
				"err", err,
			)

			return
		}

		progressLog.Log("Database connection closed")
	}()

	progressLog.Log("SQL Connection initiated successfully")

	var (
		scanner = banks.NewScanner(
			banks.WithLogger(logger),
			banks.WithMaxRecords(c.config.MaxRecords),
		)

		provider = banks.NewProvider(
			c.config.SourceURL,
			c.config.FetchTimeout(),
			scanner,
		)
	)

	pipeline := etl.New(
		provider,
		dbpkg.NewStorage(db, dialect),
		etl.WithLogger(logger),
		etl.WithProgress(progressLog),
		etl.WithConfig(c.config),
		etl.WithOutput(os.Stdout),
	)

	return pipeline.Run(runCtx)
}

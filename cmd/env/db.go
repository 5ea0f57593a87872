package env

import (
	"flag"
	"os"

	"github.com/sig-0/bankcaps/config"
)

// RegisterDBFlags registers the database flags shared by all subcommands
func RegisterDBFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(
		&cfg.DBDriver,
		"db-driver",
		cfg.DBDriver,
		"the database driver (sqlite or pgx)",
	)

	fs.StringVar(
		&cfg.DBDSN,
		"db-dsn",
		cfg.DBDSN,
		"the database DSN (file path for sqlite)",
	)
}

// ApplyDSN overrides the configured DSN with the env var, if set
func ApplyDSN(cfg *config.Config) {
	if dsn := os.Getenv(Prefix + DBDSNSuffix); dsn != "" {
		cfg.DBDSN = dsn
	}
}

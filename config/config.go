package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml"

	"github.com/sig-0/bankcaps/provider/banks"
	dbpkg "github.com/sig-0/bankcaps/storage/sql"
)

const (
	DefaultFetchTimeoutSeconds = 30
	DefaultExchangeRatePath    = "./exchange_rate.csv"
	DefaultCSVPath             = "./Largest_banks_data.csv"
	DefaultDBPath              = "Banks.db"
	DefaultLogPath             = "./code_log.txt"
)

var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config defines the ETL run configuration
type Config struct {
	// The page holding the largest banks table
	SourceURL string `toml:"source_url" validate:"required,url"`

	// The CSV file with the Currency,Rate exchange rates
	ExchangeRatePath string `toml:"exchange_rate_path" validate:"required"`

	// The output CSV file
	CSVPath string `toml:"csv_path" validate:"required"`

	// The output Excel workbook, if any
	XLSXPath string `toml:"xlsx_path"`

	// The database/sql driver, sqlite or pgx
	DBDriver string `toml:"db_driver" validate:"oneof=sqlite pgx"`

	// The database DSN (file path for sqlite)
	DBDSN string `toml:"db_dsn" validate:"required"`

	// The progress log file, truncated on every run
	LogPath string `toml:"log_path" validate:"required"`

	// The page fetch timeout, in seconds
	FetchTimeoutSeconds int `toml:"fetch_timeout_seconds" validate:"min=1"`

	// The maximum number of banks kept from the table
	MaxRecords int `toml:"max_records" validate:"min=1"`
}

// DefaultConfig returns the default ETL configuration
func DefaultConfig() *Config {
	return &Config{
		SourceURL:           banks.DefaultURL,
		ExchangeRatePath:    DefaultExchangeRatePath,
		CSVPath:             DefaultCSVPath,
		DBDriver:            dbpkg.SQLite.Driver,
		DBDSN:               DefaultDBPath,
		LogPath:             DefaultLogPath,
		FetchTimeoutSeconds: DefaultFetchTimeoutSeconds,
		MaxRecords:          banks.DefaultMaxRecords,
	}
}

// FetchTimeout returns the page fetch timeout
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// ValidateConfig validates the ETL configuration
func ValidateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Read reads the configuration from the given path.
// Keys missing from the file keep their default values
func Read(path string) (*Config, error) {
	// Read the config file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse it on top of the defaults
	cfg := DefaultConfig()

	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

package env

const (
	// Prefix is the env var prefix for every flag (BANKCAPS_<FLAG>)
	Prefix = "BANKCAPS"

	// DBDSNSuffix is the suffix of the database DSN env var,
	// read after the .env file is loaded
	DBDSNSuffix = "_DB_DSN"
)

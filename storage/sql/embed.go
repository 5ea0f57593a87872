package sql

import "embed"

// QueriesFS contains the fixed read-only queries under queries/
//
//go:embed queries/*.sql
var QueriesFS embed.FS

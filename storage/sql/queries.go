package sql

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Query is a single fixed read-only query
type Query struct {
	Name      string
	Statement string
}

// FixedQueries returns the embedded queries, in file name order
func FixedQueries() ([]Query, error) {
	names, err := fs.Glob(QueriesFS, "queries/*.sql")
	if err != nil {
		return nil, fmt.Errorf("unable to list queries: %w", err)
	}

	sort.Strings(names)

	queries := make([]Query, 0, len(names))

	for _, name := range names {
		content, err := QueriesFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("unable to read query %q: %w", name, err)
		}

		queries = append(queries, Query{
			Name:      strings.TrimSuffix(path.Base(name), ".sql"),
			Statement: strings.TrimSpace(string(content)),
		})
	}

	return queries, nil
}

package storage

import (
	"context"

	"github.com/sig-0/bankcaps/storage/types"
)

// Storage is an abstraction over the relational bank data store
type Storage interface {
	// SaveBanks replaces the given table with the bank records
	SaveBanks(context.Context, string, []*types.EnrichedBank) error

	// ListBanks fetches all bank records from the given table
	ListBanks(context.Context, string) ([]*types.EnrichedBank, error)

	// Query runs the read-only query and returns its tabular result
	Query(context.Context, string) (*types.Table, error)
}

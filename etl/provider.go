package etl

import (
	"context"

	"github.com/sig-0/bankcaps/storage/types"
)

// Provider is the bank data source of the pipeline
type Provider interface {
	// Name returns the human-readable name of the provider
	Name() string

	// Fetch is the provider's main fetch job, yielding ranked bank records
	Fetch(context.Context) ([]*types.Bank, error)
}

// Progress is the append-only progress log of a run
type Progress interface {
	// Log appends a single progress message
	Log(string)
}

type noopProgress struct{}

func (noopProgress) Log(string) {}

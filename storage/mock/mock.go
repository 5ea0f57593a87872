package mock

import (
	"context"

	"github.com/sig-0/bankcaps/storage/types"
)

type (
	SaveBanksDelegate func(context.Context, string, []*types.EnrichedBank) error
	ListBanksDelegate func(context.Context, string) ([]*types.EnrichedBank, error)
	QueryDelegate     func(context.Context, string) (*types.Table, error)
)

type Storage struct {
	SaveBanksFn SaveBanksDelegate
	ListBanksFn ListBanksDelegate
	QueryFn     QueryDelegate
}

func (m *Storage) SaveBanks(ctx context.Context, table string, banks []*types.EnrichedBank) error {
	if m.SaveBanksFn != nil {
		return m.SaveBanksFn(ctx, table, banks)
	}

	return nil
}

func (m *Storage) ListBanks(ctx context.Context, table string) ([]*types.EnrichedBank, error) {
	if m.ListBanksFn != nil {
		return m.ListBanksFn(ctx, table)
	}

	return nil, nil
}

func (m *Storage) Query(ctx context.Context, query string) (*types.Table, error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, query)
	}

	return &types.Table{}, nil
}

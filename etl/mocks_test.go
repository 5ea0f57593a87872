package etl

import (
	"context"
	"sync"

	"github.com/sig-0/bankcaps/storage/types"
)

type (
	nameDelegate  func() string
	fetchDelegate func(context.Context) ([]*types.Bank, error)
)

type mockProvider struct {
	nameFn  nameDelegate
	fetchFn fetchDelegate
}

func (m *mockProvider) Name() string {
	if m.nameFn != nil {
		return m.nameFn()
	}

	return ""
}

func (m *mockProvider) Fetch(ctx context.Context) ([]*types.Bank, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx)
	}

	return nil, nil
}

type recordingProgress struct {
	messages []string

	mu sync.Mutex
}

func (r *recordingProgress) Log(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, message)
}

func (r *recordingProgress) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.messages...)
}

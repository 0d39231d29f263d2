package storage

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryRepository keeps values in a map. It is used for ephemeral stores
// and tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = slices.Clone(value)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.data)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		out[k] = slices.Clone(v)
	}
	return out, nil
}

// batch runs fn against a staging copy and publishes it only when fn
// succeeds, giving the in-memory medium the same all-or-nothing saves as
// the SQL ones.
func (r *MemoryRepository) batch(ctx context.Context, fn func(Repository) error) error {
	r.mu.RLock()
	staging := &MemoryRepository{data: maps.Clone(r.data)}
	r.mu.RUnlock()

	if err := fn(staging); err != nil {
		return err
	}

	r.mu.Lock()
	r.data = staging.data
	r.mu.Unlock()
	return nil
}

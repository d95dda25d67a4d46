package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

// MemoryStore keeps carts in process memory. Carts are lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*domain.Cart
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[uuid.UUID]*domain.Cart)}
}

// Get returns a copy of the cart, or domain.ErrNotFound.
func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(c), nil
}

// Update applies fn to a working copy and stores it only if fn succeeds.
func (m *MemoryStore) Update(_ context.Context, id uuid.UUID, fn func(*domain.Cart) error) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var work *domain.Cart
	if c, ok := m.carts[id]; ok {
		work = clone(c)
	} else {
		work = domain.NewCart(id, time.Time{})
	}

	if err := fn(work); err != nil {
		return nil, err
	}
	m.carts[id] = work
	return clone(work), nil
}

// DeleteStale drops carts last updated before the given time.
func (m *MemoryStore) DeleteStale(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, c := range m.carts {
		if c.UpdatedAt.Before(before) {
			delete(m.carts, id)
			n++
		}
	}
	return n, nil
}

func clone(c *domain.Cart) *domain.Cart {
	out := *c
	out.Items = append([]domain.CartItem{}, c.Items...)
	return &out
}

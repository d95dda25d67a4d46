// Package dataloader provides per-request DataLoaders that batch catalog
// product lookups into single backend calls (products?include=...).
package dataloader

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// productSource is satisfied by the catalog service.
type productSource interface {
	ProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

// Loaders contains the per-request DataLoaders. Created per-request via NewLoaders.
type Loaders struct {
	// ProductByID yields nil for products the backend does not know.
	ProductByID *dataloader.Loader[string, *domain.Product]
}

// NewLoaders creates a new set of DataLoaders backed by the catalog.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(src productSource) *Loaders {
	return &Loaders{
		ProductByID: newLoader(newProductBatchFn(src)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[string, V]) *dataloader.Loader[string, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[string, V](wait),
		dataloader.WithBatchCapacity[string, V](maxBatch),
	)
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
func FromContext(ctx context.Context) (*Loaders, bool) {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	return l, ok && l != nil
}

package dataloader

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

func newProductBatchFn(src productSource) dataloader.BatchFunc[string, *domain.Product] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[*domain.Product] {
		products, err := src.ProductsByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.Product](len(keys), err)
		}

		byID := make(map[string]*domain.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		results := make([]*dataloader.Result[*domain.Product], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.Product]{Data: byID[key]}
		}
		return results
	}
}

func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// Pricer resolves products through the request's loader when one is present
// and straight from the source otherwise.
type Pricer struct {
	src productSource
}

// NewPricer creates a Pricer over the catalog.
func NewPricer(src productSource) *Pricer {
	return &Pricer{src: src}
}

// ProductsByIDs returns the known products among ids. Unknown ids are absent.
func (p *Pricer) ProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	l, ok := FromContext(ctx)
	if !ok {
		return p.src.ProductsByIDs(ctx, ids)
	}

	found, errs := l.ProductByID.LoadMany(ctx, ids)()
	out := make([]domain.Product, 0, len(found))
	for i, prod := range found {
		if i < len(errs) && errs[i] != nil {
			return nil, errs[i]
		}
		if prod != nil {
			out = append(out, *prod)
		}
	}
	return out, nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/storefront-backend/internal/cache"
	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/normalize"
)

func productKey(id string) string { return "id:" + id }

// FetchProducts returns the product listing, optionally narrowed to one
// category. Products have no sample fallback: a backend failure yields a
// Failed result carrying ErrProductsUnavailable.
func (s *Service) FetchProducts(ctx context.Context, categoryID string) domain.Result[[]domain.Product] {
	key := categoryID
	if key == "" {
		key = cache.DefaultKey
	}

	if cached, ok := cache.Lookup[[]domain.Product](s.cache, domain.ContentProducts, key); ok {
		return domain.Live(cached)
	}

	recs, err := s.backend.Products(ctx, categoryID)
	if err != nil {
		s.log.ErrorContext(ctx, "fetch products failed",
			slog.String("category", categoryID),
			slog.String("error", err.Error()),
		)
		return domain.Failed[[]domain.Product](fmt.Errorf("%w: %w", ErrProductsUnavailable, err))
	}

	products := normalize.Products(recs)
	s.cache.Set(domain.ContentProducts, key, products)
	return domain.Live(products)
}

// FetchFeaturedProducts returns the products flagged as featured.
func (s *Service) FetchFeaturedProducts(ctx context.Context) domain.Result[[]domain.Product] {
	if cached, ok := cache.Lookup[[]domain.Product](s.cache, domain.ContentFeaturedProducts, cache.DefaultKey); ok {
		return domain.Live(cached)
	}

	recs, err := s.backend.FeaturedProducts(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "fetch featured products failed", slog.String("error", err.Error()))
		return domain.Failed[[]domain.Product](fmt.Errorf("%w: %w", ErrProductsUnavailable, err))
	}

	products := normalize.Products(recs)
	s.cache.Set(domain.ContentFeaturedProducts, cache.DefaultKey, products)
	return domain.Live(products)
}

// FetchProduct returns a single product. A product the backend does not know
// yields domain.ErrNotFound; any other failure yields ErrProductUnavailable.
func (s *Service) FetchProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "required")
	}

	if p, ok := s.cachedProduct(id); ok {
		return &p, nil
	}

	rec, err := s.backend.Product(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.log.ErrorContext(ctx, "fetch product failed",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrProductUnavailable, err)
	}

	p := normalize.Product(*rec)
	s.cache.Set(domain.ContentProducts, productKey(id), p)
	return &p, nil
}

// cachedProduct looks for the product under its own key, then in a cached
// full listing.
func (s *Service) cachedProduct(id string) (domain.Product, bool) {
	if p, ok := cache.Lookup[domain.Product](s.cache, domain.ContentProducts, productKey(id)); ok {
		return p, true
	}
	if all, ok := cache.Lookup[[]domain.Product](s.cache, domain.ContentProducts, cache.DefaultKey); ok {
		for _, p := range all {
			if p.ID == id {
				return p, true
			}
		}
	}
	return domain.Product{}, false
}

// ProductsByIDs resolves several products at once, fetching only the ones
// missing from the cache. Unknown ids are absent from the result; order is
// not preserved.
func (s *Service) ProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(ids))
	var missing []string
	seen := make(map[string]bool, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := s.cachedProduct(id); ok {
			out = append(out, p)
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return out, nil
	}

	recs, err := s.backend.ProductsByIDs(ctx, missing)
	if err != nil {
		s.log.ErrorContext(ctx, "batch fetch products failed",
			slog.Int("count", len(missing)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrProductsUnavailable, err)
	}

	for _, p := range normalize.Products(recs) {
		s.cache.Set(domain.ContentProducts, productKey(p.ID), p)
		out = append(out, p)
	}
	return out, nil
}

// ProductAssetURL returns a download link for the product's PDF asset.
func (s *Service) ProductAssetURL(ctx context.Context, id string) (string, error) {
	p, err := s.FetchProduct(ctx, id)
	if err != nil {
		return "", err
	}
	if p.PDFURL == "" {
		return "", domain.ErrNotFound
	}
	if s.assets == nil {
		return p.PDFURL, nil
	}

	u, err := s.assets.PresignedURL(ctx, p.PDFURL)
	if err != nil {
		return "", fmt.Errorf("presign asset: %w", err)
	}
	return u, nil
}

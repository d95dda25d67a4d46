package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/storefront-backend/internal/cache"
	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/normalize"
)

// FetchCategories returns product categories. Failures surface as
// ErrCategoriesUnavailable.
func (s *Service) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := cache.Lookup[[]domain.Category](s.cache, domain.ContentCategories, cache.DefaultKey); ok {
		return cached, nil
	}

	cats, err := s.loadCategories(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "fetch categories failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrCategoriesUnavailable, err)
	}

	s.cache.Set(domain.ContentCategories, cache.DefaultKey, cats)
	return cats, nil
}

func (s *Service) loadCategories(ctx context.Context) ([]domain.Category, error) {
	recs, err := s.backend.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return normalize.Categories(recs), nil
}

// PrefetchLoaders returns the catalog content warmed at startup.
func (s *Service) PrefetchLoaders() map[domain.ContentType]cache.Loader {
	return map[domain.ContentType]cache.Loader{
		domain.ContentCategories: func(ctx context.Context) (any, error) {
			return s.loadCategories(ctx)
		},
	}
}

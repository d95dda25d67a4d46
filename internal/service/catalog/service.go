package catalog

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/storefront-backend/internal/cache"
	"github.com/heartmarshall/storefront-backend/internal/provider"
)

type catalogProvider interface {
	Products(ctx context.Context, categoryID string) ([]provider.ProductRecord, error)
	FeaturedProducts(ctx context.Context) ([]provider.ProductRecord, error)
	Product(ctx context.Context, id string) (*provider.ProductRecord, error)
	ProductsByIDs(ctx context.Context, ids []string) ([]provider.ProductRecord, error)
	Categories(ctx context.Context) ([]provider.CategoryRecord, error)
}

type assetSigner interface {
	PresignedURL(ctx context.Context, ref string) (string, error)
}

// Service serves products and categories from the content cache, falling
// back to the commerce backend on a miss.
type Service struct {
	log     *slog.Logger
	cache   *cache.Store
	backend catalogProvider
	assets  assetSigner
}

// NewService creates a catalog service. assets may be nil, in which case
// asset references are returned unsigned.
func NewService(logger *slog.Logger, store *cache.Store, backend catalogProvider, assets assetSigner) *Service {
	return &Service{
		log:     logger.With("service", "catalog"),
		cache:   store,
		backend: backend,
		assets:  assets,
	}
}

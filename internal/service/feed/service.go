package feed

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/heartmarshall/storefront-backend/internal/cache"
	"github.com/heartmarshall/storefront-backend/internal/provider"
)

type feedProvider interface {
	Events(ctx context.Context) ([]provider.EventRecord, error)
	EventByID(ctx context.Context, id string) (*provider.EventRecord, error)
	Posts(ctx context.Context) ([]provider.PostRecord, error)
}

// Service serves events and news. When the backend fails it falls back to
// bundled sample listings so the storefront always has something to show.
type Service struct {
	log     *slog.Logger
	cache   *cache.Store
	backend feedProvider
	intN    func(n int) int
}

// Option configures a Service.
type Option func(*Service)

// WithIntN overrides the random source used for demo seat counts.
func WithIntN(fn func(n int) int) Option {
	return func(s *Service) { s.intN = fn }
}

// NewService creates a feed service.
func NewService(logger *slog.Logger, store *cache.Store, backend feedProvider, opts ...Option) *Service {
	s := &Service{
		log:     logger.With("service", "feed"),
		cache:   store,
		backend: backend,
		intN:    rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

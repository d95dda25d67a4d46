package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/storefront-backend/internal/cache"
	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/normalize"
	"github.com/heartmarshall/storefront-backend/internal/service/feed/sampledata"
)

// FetchNews returns recent news. Sample news is returned, uncached, when the
// backend fails.
func (s *Service) FetchNews(ctx context.Context) domain.Result[[]domain.News] {
	if cached, ok := cache.Lookup[[]domain.News](s.cache, domain.ContentNews, cache.DefaultKey); ok {
		return domain.Live(cached)
	}

	news, err := s.loadNews(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "news unavailable, serving sample data", slog.String("error", err.Error()))
		sample, serr := sampledata.News()
		if serr != nil {
			return domain.Failed[[]domain.News](fmt.Errorf("load sample news: %w", serr))
		}
		return domain.Fallback(sample)
	}

	s.cache.Set(domain.ContentNews, cache.DefaultKey, news)
	return domain.Live(news)
}

func (s *Service) loadNews(ctx context.Context) ([]domain.News, error) {
	recs, err := s.backend.Posts(ctx)
	if err != nil {
		return nil, err
	}
	return normalize.NewsList(recs), nil
}

// PrefetchLoaders returns the feed content warmed at startup. Loaders report
// backend failures instead of substituting sample data, so a failed prefetch
// leaves nothing in the cache.
func (s *Service) PrefetchLoaders() map[domain.ContentType]cache.Loader {
	return map[domain.ContentType]cache.Loader{
		domain.ContentEvents: func(ctx context.Context) (any, error) { return s.loadEvents(ctx) },
		domain.ContentNews:   func(ctx context.Context) (any, error) { return s.loadNews(ctx) },
	}
}

package cache

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

// Loader fetches the whole collection for one content type.
type Loader func(ctx context.Context) (any, error)

// Prefetch populates DefaultKey entries for the given content types in
// parallel. Types that already hold a prefetch-valid entry are skipped.
// Loader failures are logged and dropped: prefetch never blocks startup on a
// broken backend, and on-demand fetches remain in place.
func (s *Store) Prefetch(ctx context.Context, loaders map[domain.ContentType]Loader) {
	types := make([]domain.ContentType, 0, len(loaders))
	for t := range loaders {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	for _, typ := range types {
		if s.IsPrefetchValid(typ, DefaultKey) {
			s.log.DebugContext(ctx, "prefetch skipped, entry still valid", slog.String("type", typ.String()))
			continue
		}

		load := loaders[typ]
		g.Go(func() error {
			data, err := load(gctx)
			if err != nil {
				s.log.WarnContext(gctx, "prefetch failed",
					slog.String("type", typ.String()),
					slog.String("error", err.Error()),
				)
				return nil
			}
			s.Set(typ, DefaultKey, data, Prefetched())
			return nil
		})
	}

	_ = g.Wait()

	s.log.InfoContext(ctx, "prefetch settled",
		slog.Int("types", len(types)),
		slog.Duration("duration", time.Since(start)),
	)
}

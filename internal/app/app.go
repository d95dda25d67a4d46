package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/storefront-backend/internal/adapter/postgres"
	"github.com/heartmarshall/storefront-backend/internal/adapter/postgres/cartrepo"
	"github.com/heartmarshall/storefront-backend/internal/adapter/provider/wordpress"
	"github.com/heartmarshall/storefront-backend/internal/adapter/storage"
	"github.com/heartmarshall/storefront-backend/internal/cache"
	"github.com/heartmarshall/storefront-backend/internal/config"
	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/service/cart"
	"github.com/heartmarshall/storefront-backend/internal/service/catalog"
	"github.com/heartmarshall/storefront-backend/internal/service/checkout"
	"github.com/heartmarshall/storefront-backend/internal/service/feed"
	"github.com/heartmarshall/storefront-backend/internal/service/session"
	"github.com/heartmarshall/storefront-backend/internal/transport/dataloader"
	"github.com/heartmarshall/storefront-backend/internal/transport/middleware"
	"github.com/heartmarshall/storefront-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires the
// backend client, cache, services and HTTP transport, then serves until ctx
// is cancelled and the server has drained.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("build", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("backend", cfg.Backend.BaseURL),
	)

	// --- Infrastructure ---

	backend := wordpress.NewClient(cfg.Backend, logger)

	store := cache.New(logger,
		cache.WithTTL(cfg.Cache.TTL, cfg.Cache.PrefetchTTL),
		cache.WithMetrics(cache.PromMetrics{}),
	)

	checks := []rest.HealthCheck{{Name: "backend", Pinger: backend}}

	carts, closeCarts, err := newCartStore(ctx, cfg, logger, &checks)
	if err != nil {
		return err
	}
	defer closeCarts()

	// --- Services ---

	var catalogSvc *catalog.Service
	if cfg.Storage.Enabled() {
		assets, err := storage.NewAssetStore(cfg.Storage, logger)
		if err != nil {
			return fmt.Errorf("asset storage: %w", err)
		}
		checks = append(checks, rest.HealthCheck{Name: "storage", Pinger: assets})
		catalogSvc = catalog.NewService(logger, store, backend, assets)
	} else {
		catalogSvc = catalog.NewService(logger, store, backend, nil)
	}

	cartMaxAge := time.Duration(cfg.Session.CartMaxAgeDays) * 24 * time.Hour
	go cart.NewJanitor(logger, carts, cartMaxAge, cartSweepInterval).Run(ctx)

	feedSvc := feed.NewService(logger, store, backend)
	cartSvc := cart.NewService(logger, carts)
	sessionSvc := session.NewService(logger, backend)
	checkoutSvc := checkout.NewService(logger, cartSvc, sessionSvc, dataloader.NewPricer(catalogSvc), backend)

	// --- Transport ---

	cookies := rest.NewCookies(cfg.Session)
	set := metrics.NewSet()
	registerBuildInfo(set)
	set.NewGauge("storefront_cache_entries", func() float64 { return float64(store.Len()) })

	mux := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(Version, checks...),
		Catalog:  rest.NewCatalogHandler(catalogSvc, logger),
		Feed:     rest.NewFeedHandler(feedSvc, logger),
		Cache:    rest.NewCacheHandler(store, sessionSvc, logger),
		Cart:     rest.NewCartHandler(cartSvc, cookies, logger),
		Auth:     rest.NewAuthHandler(sessionSvc, cookies, logger),
		Checkout: rest.NewCheckoutHandler(checkoutSvc, cookies, logger),
		Metrics:  metricsHandler(set),
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Tokens, cfg.RateLimit.Window(), time.Minute)
	defer limiter.Stop()

	handler := newMiddleware(cfg, logger, sessionSvc, catalogSvc, set, limiter)(mux)

	// --- Warm-up ---

	if cfg.Cache.PrefetchOnStart {
		loaders := catalogSvc.PrefetchLoaders()
		maps.Copy(loaders, feedSvc.PrefetchLoaders())
		go store.Prefetch(ctx, loaders)
	}

	return serve(ctx, cfg.Server, handler, logger)
}

type cartStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*domain.Cart) error) (*domain.Cart, error)
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

const cartSweepInterval = time.Hour

// newCartStore returns the Postgres cart store when a database is configured,
// the in-memory store otherwise. The returned func releases the pool.
func newCartStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, checks *[]rest.HealthCheck) (cartStore, func(), error) {
	if !cfg.Database.Enabled() {
		logger.Warn("DATABASE_DSN not set, carts are kept in memory")
		return cart.NewMemoryStore(), func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, nil, err
	}

	*checks = append(*checks, rest.HealthCheck{Name: "database", Pinger: pool, Critical: true})
	return cartrepo.New(pool, postgres.NewTxManager(pool)), pool.Close, nil
}

type sessionDecoder interface {
	Decode(token string) (*domain.Session, error)
}

type productSource interface {
	ProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

// newMiddleware assembles the request pipeline. Recovery wraps everything
// after RequestID, session decoding included.
func newMiddleware(
	cfg *config.Config,
	logger *slog.Logger,
	sessions sessionDecoder,
	products productSource,
	set *metrics.Set,
	limiter *middleware.RateLimiter,
) middleware.Middleware {
	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Session(sessions, cfg.Session.CookieName),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(set),
		limiter.Limit(),
		dataloader.Middleware(products),
	)
}

func metricsHandler(set *metrics.Set) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		set.WritePrometheus(w)
		metrics.WritePrometheus(w, true)
	})
}

func serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}

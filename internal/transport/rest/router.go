package rest

import "net/http"

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Catalog  *CatalogHandler
	Feed     *FeedHandler
	Cache    *CacheHandler
	Cart     *CartHandler
	Auth     *AuthHandler
	Checkout *CheckoutHandler
	Metrics  http.Handler
}

// NewRouter registers all routes. Middleware is applied by the caller.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	mux.HandleFunc("GET /api/products", h.Catalog.Products)
	mux.HandleFunc("GET /api/products/featured", h.Catalog.Featured)
	mux.HandleFunc("GET /api/products/{id}", h.Catalog.Product)
	mux.HandleFunc("GET /api/products/{id}/asset", h.Catalog.Asset)
	mux.HandleFunc("GET /api/categories", h.Catalog.Categories)

	mux.HandleFunc("GET /api/events", h.Feed.Events)
	mux.HandleFunc("GET /api/events/{id}", h.Feed.Event)
	mux.HandleFunc("GET /api/news", h.Feed.News)

	mux.HandleFunc("POST /api/cache/clear", h.Cache.Clear)

	cart := h.Cart.cookies.withCart
	mux.HandleFunc("GET /api/cart", cart(h.Cart.Get))
	mux.HandleFunc("DELETE /api/cart", cart(h.Cart.Clear))
	mux.HandleFunc("POST /api/cart/items", cart(h.Cart.AddItem))
	mux.HandleFunc("PATCH /api/cart/items/{id}", cart(h.Cart.UpdateQuantity))
	mux.HandleFunc("DELETE /api/cart/items/{id}", cart(h.Cart.RemoveItem))
	mux.HandleFunc("POST /api/cart/open", cart(h.Cart.Open))
	mux.HandleFunc("POST /api/cart/close", cart(h.Cart.Close))

	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("GET /api/auth/session", h.Auth.Session)
	mux.HandleFunc("GET /api/account", h.Auth.Account)

	mux.HandleFunc("POST /api/checkout", h.Checkout.cookies.withCart(h.Checkout.Checkout))

	return mux
}

package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

type catalogService interface {
	FetchProducts(ctx context.Context, categoryID string) domain.Result[[]domain.Product]
	FetchFeaturedProducts(ctx context.Context) domain.Result[[]domain.Product]
	FetchProduct(ctx context.Context, id string) (*domain.Product, error)
	FetchCategories(ctx context.Context) ([]domain.Category, error)
	ProductAssetURL(ctx context.Context, id string) (string, error)
}

// CatalogHandler serves product and category endpoints.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

// Products handles GET /api/products[?category=].
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	res := h.svc.FetchProducts(r.Context(), r.URL.Query().Get("category"))
	h.writeProducts(w, r, res)
}

// Featured handles GET /api/products/featured.
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	h.writeProducts(w, r, h.svc.FetchFeaturedProducts(r.Context()))
}

func (h *CatalogHandler) writeProducts(w http.ResponseWriter, r *http.Request, res domain.Result[[]domain.Product]) {
	products, err := res.Unwrap()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	items := make([]productResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, listResponse[productResponse]{Source: res.Source.String(), Items: items})
}

// Product handles GET /api/products/{id}.
func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.FetchProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(*p))
}

// Asset handles GET /api/products/{id}/asset by redirecting to a short-lived
// download URL for the product's document.
func (h *CatalogHandler) Asset(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.ProductAssetURL(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, u, http.StatusFound)
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.FetchCategories(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	items := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		items = append(items, categoryResponse(c))
	}
	writeJSON(w, http.StatusOK, listResponse[categoryResponse]{Source: domain.SourceLive.String(), Items: items})
}

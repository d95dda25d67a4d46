package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/service/cart"
)

type cartService interface {
	Get(ctx context.Context, cartID uuid.UUID) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID uuid.UUID, in cart.AddItemInput) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, cartID uuid.UUID, itemID string, q int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, cartID uuid.UUID) (*domain.Cart, error)
	SetOpen(ctx context.Context, cartID uuid.UUID, open bool) (*domain.Cart, error)
}

// CartHandler serves the shopper's cart. The cart is identified by a cookie
// and bound to the request by the router.
type CartHandler struct {
	svc     cartService
	cookies Cookies
	log     *slog.Logger
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(svc cartService, cookies Cookies, logger *slog.Logger) *CartHandler {
	return &CartHandler{svc: svc, cookies: cookies, log: logger.With("handler", "cart")}
}

type addItemRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), boundCartID(r))
	h.respond(w, r, c, err)
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.AddItem(r.Context(), boundCartID(r), cart.AddItemInput(req))
	h.respond(w, r, c, err)
}

// UpdateQuantity handles PATCH /api/cart/items/{id}. A quantity of zero or
// less removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity == nil {
		handleError(h.log, w, r, domain.NewValidationError("quantity", "required"))
		return
	}

	c, err := h.svc.UpdateQuantity(r.Context(), boundCartID(r), r.PathValue("id"), *req.Quantity)
	h.respond(w, r, c, err)
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.RemoveItem(r.Context(), boundCartID(r), r.PathValue("id"))
	h.respond(w, r, c, err)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Clear(r.Context(), boundCartID(r))
	h.respond(w, r, c, err)
}

// Open handles POST /api/cart/open.
func (h *CartHandler) Open(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.SetOpen(r.Context(), boundCartID(r), true)
	h.respond(w, r, c, err)
}

// Close handles POST /api/cart/close.
func (h *CartHandler) Close(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.SetOpen(r.Context(), boundCartID(r), false)
	h.respond(w, r, c, err)
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, c *domain.Cart, err error) {
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(c))
}

package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

type checkoutService interface {
	Checkout(ctx context.Context, cartID uuid.UUID, billing domain.Address) (*domain.Order, error)
}

// CheckoutHandler places orders for the shopper's cart.
type CheckoutHandler struct {
	svc     checkoutService
	cookies Cookies
	log     *slog.Logger
}

// NewCheckoutHandler creates a CheckoutHandler.
func NewCheckoutHandler(svc checkoutService, cookies Cookies, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, cookies: cookies, log: logger.With("handler", "checkout")}
}

type checkoutRequest struct {
	Billing addressDTO `json:"billing"`
}

// Checkout handles POST /api/checkout. The response carries the hosted
// payment URL the client should send the shopper to.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.svc.Checkout(r.Context(), boundCartID(r), domain.Address(req.Billing))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, orderResponse{
		OrderID:    order.ID,
		Status:     order.Status,
		Total:      order.Total,
		PaymentURL: order.PaymentURL,
	})
}

// Package checkout turns a shopper's cart into a backend order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/provider"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrOrderFailed = errors.New("Unable to place order. Please try again later.") //nolint:staticcheck // user-facing message
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces
// ---------------------------------------------------------------------------

type cartManager interface {
	Get(ctx context.Context, cartID uuid.UUID) (*domain.Cart, error)
	Clear(ctx context.Context, cartID uuid.UUID) (*domain.Cart, error)
}

type sessionRequirer interface {
	Require(ctx context.Context) (*domain.Session, error)
}

type productPricer interface {
	ProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

type orderPlacer interface {
	CreateOrder(ctx context.Context, token string, in provider.OrderRequest) (*provider.OrderRecord, error)
}

// Service places orders.
type Service struct {
	log      *slog.Logger
	carts    cartManager
	sessions sessionRequirer
	products productPricer
	orders   orderPlacer
}

// NewService creates a new checkout service.
func NewService(
	logger *slog.Logger,
	carts cartManager,
	sessions sessionRequirer,
	products productPricer,
	orders orderPlacer,
) *Service {
	return &Service{
		log:      logger.With("service", "checkout"),
		carts:    carts,
		sessions: sessions,
		products: products,
		orders:   orders,
	}
}

// Checkout places an order for every line in the cart, priced from the
// current catalog, then empties the cart. The returned order carries the
// hosted payment URL.
func (s *Service) Checkout(ctx context.Context, cartID uuid.UUID, billing domain.Address) (*domain.Order, error) {
	sess, err := s.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	lines, expected, err := s.priceLines(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	rec, err := s.orders.CreateOrder(ctx, sess.Token, provider.OrderRequest{
		CustomerID: sess.UserID,
		Billing:    provider.AddressRecord(billing),
		Lines:      lines,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, domain.ErrAuthRequired
		}
		return nil, fmt.Errorf("%w: %w", ErrOrderFailed, err)
	}

	if _, err := s.carts.Clear(ctx, cartID); err != nil {
		// The order exists at this point; a stale cart is the lesser problem.
		s.log.WarnContext(ctx, "clear cart after checkout",
			slog.String("cart_id", cartID.String()),
			slog.String("order_id", rec.ID),
			slog.String("error", err.Error()),
		)
	}

	s.log.InfoContext(ctx, "order placed",
		slog.String("order_id", rec.ID),
		slog.String("user_id", sess.UserID),
		slog.Int("lines", len(lines)),
		slog.String("expected_total", expected.StringFixed(2)),
		slog.String("total", rec.Total),
	)

	return &domain.Order{
		ID:         rec.ID,
		Status:     rec.Status,
		Total:      rec.Total,
		PaymentURL: rec.PaymentURL,
	}, nil
}

// priceLines checks every cart line against the catalog. Cart prices are
// display strings supplied by the client and are never trusted.
func (s *Service) priceLines(ctx context.Context, items []domain.CartItem) ([]provider.OrderLine, decimal.Decimal, error) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	products, err := s.products.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: %w", ErrOrderFailed, err)
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var (
		lines   = make([]provider.OrderLine, 0, len(items))
		missing []domain.FieldError
		total   = decimal.Zero
	)
	for _, it := range items {
		p, ok := byID[it.ID]
		if !ok {
			missing = append(missing, domain.FieldError{
				Field:   "items." + it.ID,
				Message: fmt.Sprintf("%s is no longer available", it.Title),
			})
			continue
		}
		lines = append(lines, provider.OrderLine{ProductID: p.ID, Quantity: it.Quantity})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	if len(missing) > 0 {
		return nil, decimal.Zero, domain.NewValidationErrors(missing)
	}
	return lines, total, nil
}

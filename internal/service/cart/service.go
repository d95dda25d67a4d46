package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

// cartStore persists carts. Update must apply fn atomically, creating an
// empty cart first when none exists.
type cartStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*domain.Cart) error) (*domain.Cart, error)
}

// Service implements cart operations.
type Service struct {
	log   *slog.Logger
	store cartStore
	now   func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithClock overrides the time source used to stamp updates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new cart service.
func NewService(logger *slog.Logger, store cartStore, opts ...Option) *Service {
	s := &Service{
		log:   logger.With("service", "cart"),
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItemInput is the line a shopper puts into the cart.
type AddItemInput struct {
	ID       string
	Title    string
	Price    string
	Quantity int
	Category string
	ImageURL string
}

// Validate checks the input and returns a ValidationError on failure.
func (in AddItemInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(in.ID) == "" {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if _, err := domain.ParsePrice(in.Price); err != nil {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must be a price such as $19.99"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Get returns the cart. An unknown id yields an empty, closed cart.
func (s *Service) Get(ctx context.Context, cartID uuid.UUID) (*domain.Cart, error) {
	c, err := s.store.Get(ctx, cartID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewCart(cartID, s.now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return c, nil
}

// AddItem adds a line, or bumps the quantity of an existing line with the same id.
func (s *Service) AddItem(ctx context.Context, cartID uuid.UUID, in AddItemInput) (*domain.Cart, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	item := domain.CartItem{
		ID:       strings.TrimSpace(in.ID),
		Title:    strings.TrimSpace(in.Title),
		Price:    strings.TrimSpace(in.Price),
		Quantity: in.Quantity,
		Category: in.Category,
		ImageURL: in.ImageURL,
	}

	c, err := s.mutate(ctx, cartID, func(c *domain.Cart) error {
		c.Add(item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}

	s.log.DebugContext(ctx, "cart item added",
		slog.String("cart_id", cartID.String()),
		slog.String("item_id", item.ID),
	)
	return c, nil
}

// UpdateQuantity sets the quantity of a line. q <= 0 removes it.
func (s *Service) UpdateQuantity(ctx context.Context, cartID uuid.UUID, itemID string, q int) (*domain.Cart, error) {
	c, err := s.mutate(ctx, cartID, func(c *domain.Cart) error {
		return c.UpdateQuantity(itemID, q)
	})
	if err != nil {
		return nil, fmt.Errorf("update quantity: %w", err)
	}
	return c, nil
}

// RemoveItem deletes a line.
func (s *Service) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID string) (*domain.Cart, error) {
	c, err := s.mutate(ctx, cartID, func(c *domain.Cart) error {
		return c.Remove(itemID)
	})
	if err != nil {
		return nil, fmt.Errorf("remove item: %w", err)
	}
	return c, nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, cartID uuid.UUID) (*domain.Cart, error) {
	c, err := s.mutate(ctx, cartID, func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	return c, nil
}

// SetOpen toggles cart visibility.
func (s *Service) SetOpen(ctx context.Context, cartID uuid.UUID, open bool) (*domain.Cart, error) {
	c, err := s.mutate(ctx, cartID, func(c *domain.Cart) error {
		c.Open = open
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set open: %w", err)
	}
	return c, nil
}

func (s *Service) mutate(ctx context.Context, cartID uuid.UUID, fn func(*domain.Cart) error) (*domain.Cart, error) {
	return s.store.Update(ctx, cartID, func(c *domain.Cart) error {
		if err := fn(c); err != nil {
			return err
		}
		c.UpdatedAt = s.now()
		return nil
	})
}

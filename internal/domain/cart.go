package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a single cart line. Price is the display string, e.g. "$19.99".
type CartItem struct {
	ID       string
	Title    string
	Price    string
	Quantity int
	Category string
	ImageURL string
}

// Cart is a shopper's cart. Open is UI visibility state and is independent of
// whether the cart holds items.
type Cart struct {
	ID        uuid.UUID
	Items     []CartItem
	Open      bool
	UpdatedAt time.Time
}

// NewCart returns an empty, closed cart.
func NewCart(id uuid.UUID, now time.Time) *Cart {
	return &Cart{ID: id, Items: []CartItem{}, UpdatedAt: now}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Subtotal sums price*quantity. Lines with unparseable prices count as zero.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		p, err := ParsePrice(it.Price)
		if err != nil {
			continue
		}
		total = total.Add(p.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Add appends item, or bumps the quantity of an existing line with the same id.
// A non-positive quantity on add counts as one.
func (c *Cart) Add(item CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity of line id. q <= 0 removes the line.
// Returns ErrNotFound if no such line exists.
func (c *Cart) UpdateQuantity(id string, q int) error {
	if q <= 0 {
		return c.Remove(id)
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = q
			return nil
		}
	}
	return fmt.Errorf("cart item %s: %w", id, ErrNotFound)
}

// Remove deletes line id. Returns ErrNotFound if no such line exists.
func (c *Cart) Remove(id string) error {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cart item %s: %w", id, ErrNotFound)
}

// Clear empties the cart. Visibility is left alone.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// ParsePrice parses a display price such as "$1,299.00" or "19.99".
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty price")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", s, err)
	}
	return d, nil
}

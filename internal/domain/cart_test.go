package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestCart(items ...CartItem) *Cart {
	c := NewCart(uuid.New(), time.Now())
	for _, it := range items {
		c.Add(it)
	}
	return c
}

func TestCart_AddIncrementsExisting(t *testing.T) {
	t.Parallel()

	c := newTestCart()
	c.Add(CartItem{ID: "7", Title: "Book", Price: "$10.00", Quantity: 1})
	c.Add(CartItem{ID: "7", Title: "Book", Price: "$10.00", Quantity: 2})
	c.Add(CartItem{ID: "8", Title: "Kit", Price: "$5.00"})

	if len(c.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Errorf("Items[0].Quantity = %d, want 3", c.Items[0].Quantity)
	}
	if c.Items[1].Quantity != 1 {
		t.Errorf("Items[1].Quantity = %d, want 1 (zero quantity counts as one)", c.Items[1].Quantity)
	}
	if c.ItemCount() != 4 {
		t.Errorf("ItemCount() = %d, want 4", c.ItemCount())
	}
}

func TestCart_UpdateQuantity_NonPositiveRemoves(t *testing.T) {
	t.Parallel()

	for _, q := range []int{0, -3} {
		c := newTestCart(CartItem{ID: "7", Title: "Book", Price: "$10.00", Quantity: 2})

		if err := c.UpdateQuantity("7", q); err != nil {
			t.Fatalf("UpdateQuantity(7, %d): %v", q, err)
		}
		if !c.IsEmpty() {
			t.Errorf("UpdateQuantity(7, %d): expected item removed, got %+v", q, c.Items)
		}
	}
}

func TestCart_UpdateQuantity_Sets(t *testing.T) {
	t.Parallel()

	c := newTestCart(CartItem{ID: "7", Title: "Book", Price: "$10.00", Quantity: 2})
	if err := c.UpdateQuantity("7", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Items[0].Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", c.Items[0].Quantity)
	}
}

func TestCart_UpdateQuantity_Missing(t *testing.T) {
	t.Parallel()

	c := newTestCart()
	if err := c.UpdateQuantity("nope", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCart_RemoveAndClear(t *testing.T) {
	t.Parallel()

	c := newTestCart(
		CartItem{ID: "1", Title: "A", Price: "$1.00"},
		CartItem{ID: "2", Title: "B", Price: "$2.00"},
	)
	c.Open = true

	if err := c.Remove("1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].ID != "2" {
		t.Fatalf("unexpected items after remove: %+v", c.Items)
	}

	c.Clear()
	if !c.IsEmpty() {
		t.Error("expected empty cart after Clear")
	}
	if !c.Open {
		t.Error("Clear should not change visibility")
	}
}

func TestCart_Subtotal(t *testing.T) {
	t.Parallel()

	c := newTestCart(
		CartItem{ID: "1", Title: "A", Price: "$19.99", Quantity: 2},
		CartItem{ID: "2", Title: "B", Price: "$1,000.00", Quantity: 1},
		CartItem{ID: "3", Title: "C", Price: "free", Quantity: 1},
	)

	want := decimal.RequireFromString("1039.98")
	if got := c.Subtotal(); !got.Equal(want) {
		t.Errorf("Subtotal() = %s, want %s", got, want)
	}
}

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"$19.99", "19.99", false},
		{" 5 ", "5", false},
		{"$1,299.50", "1299.5", false},
		{"", "", true},
		{"$abc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePrice(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParsePrice(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestSession_Valid(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := &Session{Token: "t", UserID: "1", ExpiresAt: now.Add(time.Minute)}

	if !s.Valid(now) {
		t.Error("expected valid before expiry")
	}
	if s.Valid(now.Add(time.Minute)) {
		t.Error("expected invalid at expiry")
	}
	var nilSession *Session
	if nilSession.Valid(now) {
		t.Error("nil session must not be valid")
	}
}

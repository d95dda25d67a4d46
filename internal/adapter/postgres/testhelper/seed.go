package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

// SeedCart inserts a cart with the given lines and returns it.
func SeedCart(t *testing.T, pool *pgxpool.Pool, items ...domain.CartItem) domain.Cart {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	cart := domain.Cart{ID: uuid.New(), Items: items, UpdatedAt: now}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO carts (id, open, created_at, updated_at) VALUES ($1, false, $2, $2)`,
		cart.ID, now,
	); err != nil {
		t.Fatalf("SeedCart: insert cart: %v", err)
	}

	for i, it := range items {
		if _, err := pool.Exec(ctx,
			`INSERT INTO cart_items (cart_id, item_id, position, title, price, quantity, category, image_url)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			cart.ID, it.ID, i, it.Title, it.Price, it.Quantity, it.Category, it.ImageURL,
		); err != nil {
			t.Fatalf("SeedCart: insert item %s: %v", it.ID, err)
		}
	}

	return cart
}

// AgeCart moves a cart's updated_at into the past.
func AgeCart(t *testing.T, pool *pgxpool.Pool, id uuid.UUID, age time.Duration) {
	t.Helper()
	if _, err := pool.Exec(context.Background(),
		`UPDATE carts SET updated_at = now() - make_interval(secs => $2) WHERE id = $1`,
		id, age.Seconds(),
	); err != nil {
		t.Fatalf("AgeCart: %v", err)
	}
}

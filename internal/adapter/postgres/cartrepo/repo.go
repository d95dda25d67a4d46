// Package cartrepo stores shopper carts in PostgreSQL.
package cartrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/storefront-backend/internal/adapter/postgres"
	"github.com/heartmarshall/storefront-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const itemColumns = "item_id, title, price, quantity, category, image_url"

// Repo provides cart persistence. Mutations lock the cart row for the
// duration of the update, so concurrent requests on one cart serialize.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a cart repository.
func New(pool *pgxpool.Pool, tx *postgres.TxManager) *Repo {
	return &Repo{pool: pool, tx: tx}
}

// Get returns the cart with its lines in insertion order.
// Returns domain.ErrNotFound if the cart does not exist.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	return r.load(ctx, id, false)
}

// Update loads the cart (creating an empty one if needed) under a row lock,
// applies fn and persists the result. Nothing is written if fn fails.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, fn func(*domain.Cart) error) (*domain.Cart, error) {
	var out *domain.Cart

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		if _, err := q.Exec(ctx,
			`INSERT INTO carts (id, open, updated_at) VALUES ($1, false, now()) ON CONFLICT (id) DO NOTHING`,
			id,
		); err != nil {
			return postgres.MapError(err, "cart", id)
		}

		cart, err := r.load(ctx, id, true)
		if err != nil {
			return err
		}

		if err := fn(cart); err != nil {
			return err
		}

		if err := r.save(ctx, q, cart); err != nil {
			return err
		}
		out = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteStale removes carts not updated since before. Lines cascade.
func (r *Repo) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	sql, args, err := psql.Delete("carts").Where(squirrel.Lt{"updated_at": before}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete stale carts: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) load(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Cart, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sel := psql.Select("id", "open", "updated_at").From("carts").Where(squirrel.Eq{"id": id})
	if forUpdate {
		sel = sel.Suffix("FOR UPDATE")
	}
	sql, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	cart := &domain.Cart{Items: []domain.CartItem{}}
	if err := q.QueryRow(ctx, sql, args...).Scan(&cart.ID, &cart.Open, &cart.UpdatedAt); err != nil {
		return nil, postgres.MapError(err, "cart", id)
	}

	sql, args, err = psql.Select(itemColumns).
		From("cart_items").
		Where(squirrel.Eq{"cart_id": id}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items select: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "cart items", id)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CartItem, error) {
		var it domain.CartItem
		err := row.Scan(&it.ID, &it.Title, &it.Price, &it.Quantity, &it.Category, &it.ImageURL)
		return it, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "cart items", id)
	}
	cart.Items = append(cart.Items, items...)
	cart.UpdatedAt = cart.UpdatedAt.UTC()
	return cart, nil
}

// save rewrites the cart row and replaces its lines.
func (r *Repo) save(ctx context.Context, q postgres.Querier, cart *domain.Cart) error {
	sql, args, err := psql.Update("carts").
		Set("open", cart.Open).
		Set("updated_at", cart.UpdatedAt).
		Where(squirrel.Eq{"id": cart.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "cart", cart.ID)
	}

	if _, err := q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		return postgres.MapError(err, "cart items", cart.ID)
	}

	if len(cart.Items) == 0 {
		return nil
	}

	ins := psql.Insert("cart_items").
		Columns("cart_id", "position", "item_id", "title", "price", "quantity", "category", "image_url")
	for i, it := range cart.Items {
		ins = ins.Values(cart.ID, i, it.ID, it.Title, it.Price, it.Quantity, it.Category, it.ImageURL)
	}
	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "cart items", cart.ID)
	}
	return nil
}

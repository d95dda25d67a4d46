package wordpress

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/heartmarshall/storefront-backend/internal/provider"
)

const pageSize = "100"

// Products lists published products, optionally filtered by category id.
func (c *Client) Products(ctx context.Context, categoryID string) ([]provider.ProductRecord, error) {
	q := url.Values{"per_page": {pageSize}}
	if categoryID != "" {
		q.Set("category", categoryID)
	}
	return c.listProducts(ctx, q)
}

// FeaturedProducts lists products flagged as featured.
func (c *Client) FeaturedProducts(ctx context.Context) ([]provider.ProductRecord, error) {
	return c.listProducts(ctx, url.Values{"per_page": {pageSize}, "featured": {"true"}})
}

// ProductsByIDs fetches several products in one request. Unknown ids are
// silently absent from the result.
func (c *Client) ProductsByIDs(ctx context.Context, ids []string) ([]provider.ProductRecord, error) {
	if len(ids) == 0 {
		return []provider.ProductRecord{}, nil
	}
	q := url.Values{
		"include":  {strings.Join(ids, ",")},
		"per_page": {strconv.Itoa(len(ids))},
	}
	return c.listProducts(ctx, q)
}

func (c *Client) listProducts(ctx context.Context, q url.Values) ([]provider.ProductRecord, error) {
	body, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   c.wc("products"),
		query:  q,
		auth:   authOAuth,
		retry:  true,
	})
	if err != nil {
		c.log.ErrorContext(ctx, "list products failed", slog.String("error", err.Error()))
		return nil, err
	}

	products, err := decode[[]apiProduct](body, "products")
	if err != nil {
		return nil, err
	}
	return mapProducts(products), nil
}

// Product fetches a single product. A missing product yields a BackendError
// with status 404.
func (c *Client) Product(ctx context.Context, id string) (*provider.ProductRecord, error) {
	body, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   c.wc("products/" + url.PathEscape(id)),
		auth:   authOAuth,
		retry:  true,
	})
	if err != nil {
		return nil, err
	}

	p, err := decode[apiProduct](body, "product")
	if err != nil {
		return nil, err
	}
	rec := mapProduct(p)
	return &rec, nil
}

// Categories lists product categories.
func (c *Client) Categories(ctx context.Context) ([]provider.CategoryRecord, error) {
	body, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   c.wc("products/categories"),
		query:  url.Values{"per_page": {pageSize}},
		auth:   authOAuth,
		retry:  true,
	})
	if err != nil {
		c.log.ErrorContext(ctx, "list categories failed", slog.String("error", err.Error()))
		return nil, err
	}

	cats, err := decode[[]apiCategory](body, "categories")
	if err != nil {
		return nil, err
	}
	return mapCategories(cats), nil
}

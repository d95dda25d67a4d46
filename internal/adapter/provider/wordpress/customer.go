package wordpress

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/heartmarshall/storefront-backend/internal/provider"
)

// Login exchanges shopper credentials for a JWT at the backend's token
// endpoint. Rejected credentials surface as a BackendError (usually 403).
func (c *Client) Login(ctx context.Context, username, password string) (*provider.TokenResult, error) {
	body, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "jwt-auth/v1/token",
		body:   map[string]string{"username": username, "password": password},
		auth:   authNone,
	})
	if err != nil {
		c.log.WarnContext(ctx, "login rejected", slog.String("error", err.Error()))
		return nil, err
	}

	tok, err := decode[apiToken](body, "token")
	if err != nil {
		return nil, err
	}
	if tok.Token == "" {
		return nil, fmt.Errorf("wordpress: token response without token")
	}
	return &provider.TokenResult{
		Token:       tok.Token,
		Email:       tok.Email,
		DisplayName: tok.DisplayName,
	}, nil
}

// Customer fetches the shopper's customer profile using their bearer token.
func (c *Client) Customer(ctx context.Context, token, customerID string) (*provider.CustomerRecord, error) {
	body, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   c.wc("customers/" + url.PathEscape(customerID)),
		auth:   authBearer,
		token:  token,
		retry:  true,
	})
	if err != nil {
		return nil, err
	}

	cust, err := decode[apiCustomer](body, "customer")
	if err != nil {
		return nil, err
	}
	rec := mapCustomer(cust)
	return &rec, nil
}

// CreateOrder places an unpaid order on behalf of the shopper. The response
// carries the hosted payment URL the shopper is sent to.
func (c *Client) CreateOrder(ctx context.Context, token string, in provider.OrderRequest) (*provider.OrderRecord, error) {
	req := apiOrderRequest{
		Billing:   toAPIAddress(in.Billing),
		LineItems: make([]apiOrderLine, 0, len(in.Lines)),
	}
	if in.CustomerID != "" {
		id, err := strconv.ParseInt(in.CustomerID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("wordpress: customer id %q: %w", in.CustomerID, err)
		}
		req.CustomerID = id
	}
	for _, l := range in.Lines {
		pid, err := strconv.ParseInt(l.ProductID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("wordpress: product id %q: %w", l.ProductID, err)
		}
		req.LineItems = append(req.LineItems, apiOrderLine{ProductID: pid, Quantity: l.Quantity})
	}

	// Order creation is not idempotent, so it is never retried.
	body, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   c.wc("orders"),
		body:   req,
		auth:   authBearer,
		token:  token,
	})
	if err != nil {
		c.log.ErrorContext(ctx, "create order failed", slog.String("error", err.Error()))
		return nil, err
	}

	o, err := decode[apiOrder](body, "order")
	if err != nil {
		return nil, err
	}
	return &provider.OrderRecord{
		ID:         itoa(o.ID),
		Status:     o.Status,
		Total:      o.Total,
		PaymentURL: o.PaymentURL,
	}, nil
}

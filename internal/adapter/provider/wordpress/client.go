// Package wordpress talks to the hosted WooCommerce/WordPress REST API.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/tidwall/gjson"

	"github.com/heartmarshall/storefront-backend/internal/config"
	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/oauth1"
)

const (
	apiPrefix       = "/wp-json/"
	maxBodyBytes    = 10 << 20
	fallbackMessage = "backend request failed"

	defaultRetryBackoff = 500 * time.Millisecond
)

// ErrNoEventSource is returned when none of the configured event endpoints
// produced a usable listing.
var ErrNoEventSource = errors.New("wordpress: no event source responded")

type authMode int

const (
	authOAuth authMode = iota
	authBearer
	authNone
)

// call describes one backend request. path is relative to /wp-json/.
type call struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   authMode
	token  string
	retry  bool
}

// Client is a backend API client. Catalog and content calls are signed with
// one-legged OAuth; shopper-scoped calls carry the shopper's bearer token.
type Client struct {
	baseURL    string
	version    string
	signer     *oauth1.Signer
	httpClient *http.Client
	log        *slog.Logger

	retries uint64
	backoff time.Duration

	eventEndpoints []string
	probeTimeout   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithSigner replaces the request signer.
func WithSigner(s *oauth1.Signer) Option {
	return func(c *Client) { c.signer = s }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Client from validated backend settings.
func NewClient(cfg config.BackendConfig, logger *slog.Logger, opts ...Option) *Client {
	retries := cfg.RetryAttempts
	if retries < 0 {
		retries = 0
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		version:        cfg.APIVersion,
		signer:         oauth1.NewSigner(cfg.ConsumerKey, cfg.ConsumerSecret),
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		log:            logger.With("adapter", "wordpress"),
		retries:        uint64(retries),
		backoff:        backoff,
		eventEndpoints: cfg.EventEndpoints,
		probeTimeout:   cfg.EventProbeTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping checks that the API index responds.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, call{method: http.MethodGet, path: "", auth: authNone})
	return err
}

func (c *Client) wc(path string) string {
	return "wc/" + c.version + "/" + path
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := c.baseURL + apiPrefix + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// do executes cl, retrying network errors and 5xx responses when cl.retry is
// set. It returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	var payload []byte
	if cl.body != nil {
		var err error
		payload, err = json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("wordpress: encode body: %w", err)
		}
	}

	reqURL := c.endpoint(cl.path, cl.query)

	var attempts uint64
	if cl.retry {
		attempts = c.retries
	}
	backoff := retry.WithMaxRetries(attempts, retry.NewConstant(c.backoff))

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		body, err = c.once(ctx, cl, reqURL, payload)
		if err == nil {
			return nil
		}
		if ctx.Err() == nil && retryable(err) {
			c.log.WarnContext(ctx, "backend retry",
				slog.String("method", cl.method),
				slog.String("path", cl.path),
				slog.String("reason", err.Error()),
			)
			return retry.RetryableError(err)
		}
		return err
	})
	return body, err
}

func (c *Client) once(ctx context.Context, cl call, reqURL string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("wordpress: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	switch cl.auth {
	case authOAuth:
		h, err := c.signer.Sign(cl.method, reqURL)
		if err != nil {
			return nil, fmt.Errorf("wordpress: sign request: %w", err)
		}
		req.Header.Set("Authorization", h)
	case authBearer:
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &netError{err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &netError{err: err}
	}

	c.log.DebugContext(ctx, "backend response",
		slog.String("method", cl.method),
		slog.String("path", cl.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, backendError(resp.StatusCode, body)
	}
	return body, nil
}

// backendError builds a BackendError from a WordPress error envelope
// ({"code": "...", "message": "..."}) when the body has one.
func backendError(status int, body []byte) *domain.BackendError {
	be := &domain.BackendError{Status: status, Message: fallbackMessage}
	if !gjson.ValidBytes(body) {
		return be
	}
	res := gjson.ParseBytes(body)
	if msg := res.Get("message"); msg.Type == gjson.String && msg.String() != "" {
		be.Message = msg.String()
	}
	if code := res.Get("code"); code.Type == gjson.String {
		be.Code = code.String()
	}
	return be
}

type netError struct{ err error }

func (e *netError) Error() string { return "wordpress: transport: " + e.err.Error() }
func (e *netError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var ne *netError
	if errors.As(err, &ne) {
		return true
	}
	var be *domain.BackendError
	return errors.As(err, &be) && be.Status >= 500
}

func decode[T any](body []byte, what string) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("wordpress: decode %s: %w", what, err)
	}
	return v, nil
}

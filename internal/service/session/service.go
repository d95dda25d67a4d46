// Package session derives shopper sessions from backend-issued bearer tokens
// and proxies the account calls that need them.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/provider"
	"github.com/heartmarshall/storefront-backend/pkg/ctxutil"
)

// ErrMalformedToken is returned when a token cannot be decoded.
var ErrMalformedToken = errors.New("malformed token")

// accountProvider is the backend surface this service needs.
type accountProvider interface {
	Login(ctx context.Context, username, password string) (*provider.TokenResult, error)
	Customer(ctx context.Context, token, customerID string) (*provider.CustomerRecord, error)
}

// Service decodes sessions and serves account operations.
type Service struct {
	log     *slog.Logger
	backend accountProvider
	parser  *jwt.Parser
	now     func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new session service.
func NewService(logger *slog.Logger, backend accountProvider, opts ...Option) *Service {
	s := &Service{
		log:     logger.With("service", "session"),
		backend: backend,
		parser:  jwt.NewParser(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Decode reads the claims of a bearer token without verifying its signature.
// The backend verifies the token on every call made with it.
func (s *Service) Decode(token string) (*domain.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMalformedToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}

	sess := &domain.Session{
		Token:     token,
		UserID:    userID(claims),
		ExpiresAt: exp.UTC(),
	}
	if sess.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrMalformedToken)
	}
	if email, ok := claims["email"].(string); ok {
		sess.Email = email
	}
	return sess, nil
}

// Require returns the session carried by ctx, or domain.ErrAuthRequired when
// there is none or it has expired.
func (s *Service) Require(ctx context.Context) (*domain.Session, error) {
	token := ctxutil.TokenFromCtx(ctx)
	if token == "" {
		return nil, domain.ErrAuthRequired
	}
	sess, err := s.Decode(token)
	if err != nil {
		return nil, domain.ErrAuthRequired
	}
	if !sess.Valid(s.now()) {
		return nil, domain.ErrAuthRequired
	}
	return sess, nil
}

// Login exchanges credentials for a token and decodes the resulting session.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	var errs []domain.FieldError
	if strings.TrimSpace(username) == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	}
	if password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	res, err := s.backend.Login(ctx, strings.TrimSpace(username), password)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrUnauthorized) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	sess, err := s.Decode(res.Token)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	sess.DisplayName = res.DisplayName
	if res.Email != "" {
		sess.Email = res.Email
	}

	s.log.InfoContext(ctx, "shopper logged in", slog.String("user_id", sess.UserID))
	return sess, nil
}

// Account returns the customer profile of the current session.
func (s *Service) Account(ctx context.Context) (*domain.Account, error) {
	sess, err := s.Require(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.backend.Customer(ctx, sess.Token, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden) {
			return nil, domain.ErrAuthRequired
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &domain.Account{
		ID:        rec.ID,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Username:  rec.Username,
		Billing:   domain.Address(rec.Billing),
		Shipping:  domain.Address(rec.Shipping),
	}, nil
}

// userID reads data.user.id (backend JWT plugin shape) and falls back to sub.
func userID(claims jwt.MapClaims) string {
	if data, ok := claims["data"].(map[string]any); ok {
		if user, ok := data["user"].(map[string]any); ok {
			switch v := user["id"].(type) {
			case string:
				return v
			case float64:
				return strconv.FormatInt(int64(v), 10)
			}
		}
	}
	sub, _ := claims.GetSubject()
	return sub
}

package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/provider"
	"github.com/heartmarshall/storefront-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockAccountProvider struct {
	LoginFunc    func(ctx context.Context, username, password string) (*provider.TokenResult, error)
	CustomerFunc func(ctx context.Context, token, customerID string) (*provider.CustomerRecord, error)
}

func (m *mockAccountProvider) Login(ctx context.Context, username, password string) (*provider.TokenResult, error) {
	return m.LoginFunc(ctx, username, password)
}

func (m *mockAccountProvider) Customer(ctx context.Context, token, customerID string) (*provider.CustomerRecord, error) {
	return m.CustomerFunc(ctx, token, customerID)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(backend *mockAccountProvider) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, backend, WithClock(func() time.Time { return now }))
}

// signToken builds a token the way the backend JWT plugin does. The key is
// irrelevant since signatures are never checked here.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return s
}

func pluginToken(t *testing.T, id any, exp time.Time) string {
	return signToken(t, jwt.MapClaims{
		"iss":  "https://shop.example.com",
		"exp":  exp.Unix(),
		"data": map[string]any{"user": map[string]any{"id": id}},
	})
}

// ---------------------------------------------------------------------------
// Decode
// ---------------------------------------------------------------------------

func TestService_Decode(t *testing.T) {
	t.Parallel()

	exp := now.Add(time.Hour)

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantID  string
		wantErr bool
	}{
		{
			name:   "plugin shape with string id",
			token:  func(t *testing.T) string { return pluginToken(t, "42", exp) },
			wantID: "42",
		},
		{
			name:   "plugin shape with numeric id",
			token:  func(t *testing.T) string { return pluginToken(t, 42, exp) },
			wantID: "42",
		},
		{
			name: "sub claim",
			token: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{"sub": "7", "exp": exp.Unix()})
			},
			wantID: "7",
		},
		{
			name: "missing exp",
			token: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{"sub": "7"})
			},
			wantErr: true,
		},
		{
			name: "missing user",
			token: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{"exp": exp.Unix()})
			},
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   func(*testing.T) string { return "not-a-jwt" },
			wantErr: true,
		},
		{
			name:    "empty",
			token:   func(*testing.T) string { return "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(&mockAccountProvider{})
			sess, err := svc.Decode(tt.token(t))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, sess.UserID)
			assert.True(t, sess.ExpiresAt.Equal(exp.Truncate(time.Second)))
		})
	}
}

func TestService_Decode_IgnoresSignature(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "9", "exp": now.Add(time.Hour).Unix(),
	}).SignedString([]byte("some-other-key"))
	require.NoError(t, err)

	sess, err := newTestService(&mockAccountProvider{}).Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "9", sess.UserID)
}

// ---------------------------------------------------------------------------
// Require
// ---------------------------------------------------------------------------

func TestService_Require(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockAccountProvider{})

	t.Run("no token", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Require(context.Background())
		require.ErrorIs(t, err, domain.ErrAuthRequired)
		assert.Equal(t, "Authentication required", err.Error())
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		ctx := ctxutil.WithToken(context.Background(), pluginToken(t, "1", now.Add(-time.Second)))
		_, err := svc.Require(ctx)
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("expires exactly now", func(t *testing.T) {
		t.Parallel()
		ctx := ctxutil.WithToken(context.Background(), pluginToken(t, "1", now))
		_, err := svc.Require(ctx)
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		ctx := ctxutil.WithToken(context.Background(), "abc.def")
		_, err := svc.Require(ctx)
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		ctx := ctxutil.WithToken(context.Background(), pluginToken(t, "1", now.Add(time.Minute)))
		sess, err := svc.Require(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1", sess.UserID)
	})
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestService_Login_HappyPath(t *testing.T) {
	t.Parallel()

	tok := pluginToken(t, "5", now.Add(time.Hour))
	svc := newTestService(&mockAccountProvider{
		LoginFunc: func(_ context.Context, username, password string) (*provider.TokenResult, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "pw", password)
			return &provider.TokenResult{Token: tok, Email: "a@example.com", DisplayName: "Alice"}, nil
		},
	})

	sess, err := svc.Login(context.Background(), " alice ", "pw")
	require.NoError(t, err)
	assert.Equal(t, tok, sess.Token)
	assert.Equal(t, "5", sess.UserID)
	assert.Equal(t, "Alice", sess.DisplayName)
	assert.Equal(t, "a@example.com", sess.Email)
}

func TestService_Login_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockAccountProvider{})
	_, err := svc.Login(context.Background(), "", "")

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 2)
}

func TestService_Login_Rejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockAccountProvider{
		LoginFunc: func(context.Context, string, string) (*provider.TokenResult, error) {
			return nil, &domain.BackendError{Status: 403, Code: "incorrect_password"}
		},
	})

	_, err := svc.Login(context.Background(), "alice", "bad")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_Login_BackendDown(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockAccountProvider{
		LoginFunc: func(context.Context, string, string) (*provider.TokenResult, error) {
			return nil, &domain.BackendError{Status: 502}
		},
	})

	_, err := svc.Login(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

// ---------------------------------------------------------------------------
// Account
// ---------------------------------------------------------------------------

func TestService_Account(t *testing.T) {
	t.Parallel()

	tok := pluginToken(t, "5", now.Add(time.Hour))
	svc := newTestService(&mockAccountProvider{
		CustomerFunc: func(_ context.Context, token, id string) (*provider.CustomerRecord, error) {
			assert.Equal(t, tok, token)
			assert.Equal(t, "5", id)
			return &provider.CustomerRecord{
				ID: "5", Email: "a@example.com", FirstName: "Alice",
				Billing: provider.AddressRecord{City: "Springfield"},
			}, nil
		},
	})

	acc, err := svc.Account(ctxutil.WithToken(context.Background(), tok))
	require.NoError(t, err)
	assert.Equal(t, "Alice", acc.FirstName)
	assert.Equal(t, "Springfield", acc.Billing.City)
}

func TestService_Account_RequiresSession(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockAccountProvider{
		CustomerFunc: func(context.Context, string, string) (*provider.CustomerRecord, error) {
			t.Fatal("backend must not be called without a session")
			return nil, nil
		},
	})

	_, err := svc.Account(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestService_Account_TokenRejectedByBackend(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockAccountProvider{
		CustomerFunc: func(context.Context, string, string) (*provider.CustomerRecord, error) {
			return nil, &domain.BackendError{Status: 401}
		},
	})

	ctx := ctxutil.WithToken(context.Background(), pluginToken(t, "5", now.Add(time.Hour)))
	_, err := svc.Account(ctx)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	svc = newTestService(&mockAccountProvider{
		CustomerFunc: func(context.Context, string, string) (*provider.CustomerRecord, error) {
			return nil, errors.New("dial tcp: refused")
		},
	})
	_, err = svc.Account(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrAuthRequired)
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	domainErrs := []error{domain.ErrNotFound, domain.ErrAlreadyExists, domain.ErrValidation, domain.ErrConflict}

	tests := []struct {
		name string
		in   error
		want error // nil means no domain sentinel expected
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan row: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, domain.ErrAlreadyExists},
		{"foreign key", &pgconn.PgError{Code: "23503"}, domain.ErrNotFound},
		{"check", &pgconn.PgError{Code: "23514"}, domain.ErrValidation},
		{"not null", &pgconn.PgError{Code: "23502"}, domain.ErrValidation},
		{"bad uuid text", &pgconn.PgError{Code: "22P02"}, domain.ErrValidation},
		{"serialization", &pgconn.PgError{Code: "40001"}, domain.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, domain.ErrConflict},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, nil},
		{"deadline", context.DeadlineExceeded, nil},
		{"canceled", context.Canceled, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id := uuid.New()
			got := MapError(tt.in, "cart_item", id)
			require.Error(t, got)
			assert.Contains(t, got.Error(), "cart_item "+id.String())

			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)
				return
			}
			assert.ErrorIs(t, got, tt.in, "original error kept in chain")
			for _, de := range domainErrs {
				assert.NotErrorIs(t, got, de)
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, MapError(nil, "cart", uuid.New()))
}

func TestMapError_Message(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	assert.Equal(t, fmt.Sprintf("cart %s: not found", id), MapError(pgx.ErrNoRows, "cart", id).Error())

	original := errors.New("something unexpected")
	assert.Equal(t, fmt.Sprintf("cart %s: something unexpected", id), MapError(original, "cart", id).Error())

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, MapError(&pgconn.PgError{Code: "42P01"}, "cart", id), &pgErr)
}

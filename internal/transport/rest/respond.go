package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/service/catalog"
	"github.com/heartmarshall/storefront-backend/internal/service/checkout"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// decodeBody reads a JSON request body into dst. An empty body leaves dst as is.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// handleError maps service errors onto HTTP statuses. Anything unrecognised is
// logged and reported as a 500 without detail.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError

	switch {
	// User-facing fetch failures win over whatever backend status they wrap.
	case errors.Is(err, catalog.ErrProductsUnavailable),
		errors.Is(err, catalog.ErrProductUnavailable),
		errors.Is(err, catalog.ErrCategoriesUnavailable),
		errors.Is(err, checkout.ErrOrderFailed):
		log.WarnContext(r.Context(), "backend failure", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, userMessage(err))
	case errors.As(err, &ve):
		resp := validationResponse{Error: "validation failed", Fields: make(map[string]string, len(ve.Errors))}
		for _, fe := range ve.Errors {
			resp.Fields[fe.Field] = fe.Message
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAuthRequired):
		writeError(w, http.StatusUnauthorized, domain.ErrAuthRequired.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict, please retry")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, domain.ErrRateLimited.Error())
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// userMessage picks the fixed user-facing sentinel out of a wrapped chain.
func userMessage(err error) string {
	for _, target := range []error{
		catalog.ErrProductsUnavailable,
		catalog.ErrProductUnavailable,
		catalog.ErrCategoriesUnavailable,
		checkout.ErrOrderFailed,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return "backend unavailable"
}

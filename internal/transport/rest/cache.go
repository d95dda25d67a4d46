package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

type contentCache interface {
	Clear(types ...domain.ContentType)
}

type sessionRequirer interface {
	Require(ctx context.Context) (*domain.Session, error)
}

// CacheHandler lets a signed-in operator drop cached backend content.
type CacheHandler struct {
	cache    contentCache
	sessions sessionRequirer
	log      *slog.Logger
}

// NewCacheHandler creates a CacheHandler.
func NewCacheHandler(cache contentCache, sessions sessionRequirer, logger *slog.Logger) *CacheHandler {
	return &CacheHandler{cache: cache, sessions: sessions, log: logger.With("handler", "cache")}
}

// Clear handles POST /api/cache/clear[?type=]. Without a type everything is cleared.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Require(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var types []domain.ContentType
	if raw := r.URL.Query().Get("type"); raw != "" {
		typ := domain.ContentType(raw)
		if !typ.IsValid() {
			handleError(h.log, w, r, domain.NewValidationError("type", "unknown content type, expected one of "+contentTypeList()))
			return
		}
		types = append(types, typ)
	}

	h.cache.Clear(types...)

	h.log.InfoContext(r.Context(), "content cache cleared",
		slog.String("user_id", sess.UserID),
		slog.Any("types", types),
	)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func contentTypeList() string {
	all := domain.AllContentTypes()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

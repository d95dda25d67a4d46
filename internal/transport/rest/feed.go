package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

type feedService interface {
	FetchEvents(ctx context.Context) domain.Result[[]domain.Event]
	FetchEventDetails(ctx context.Context, id string) domain.Result[domain.Event]
	FetchNews(ctx context.Context) domain.Result[[]domain.News]
}

// FeedHandler serves event and news endpoints. These never fail on backend
// outages; they degrade to bundled sample content and say so in "source".
type FeedHandler struct {
	svc feedService
	log *slog.Logger
}

// NewFeedHandler creates a FeedHandler.
func NewFeedHandler(svc feedService, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{svc: svc, log: logger.With("handler", "feed")}
}

// fallbackHeader is set on responses built from bundled sample content.
const fallbackHeader = "X-Content-Fallback"

func markDegraded[T any](w http.ResponseWriter, res domain.Result[T]) {
	if res.Degraded() {
		w.Header().Set(fallbackHeader, "true")
	}
}

type eventDetailResponse struct {
	Source string        `json:"source"`
	Event  eventResponse `json:"event"`
}

// Events handles GET /api/events.
func (h *FeedHandler) Events(w http.ResponseWriter, r *http.Request) {
	res := h.svc.FetchEvents(r.Context())
	events, err := res.Unwrap()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	items := make([]eventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, toEventResponse(e))
	}
	markDegraded(w, res)
	writeJSON(w, http.StatusOK, listResponse[eventResponse]{Source: res.Source.String(), Items: items})
}

// Event handles GET /api/events/{id}.
func (h *FeedHandler) Event(w http.ResponseWriter, r *http.Request) {
	res := h.svc.FetchEventDetails(r.Context(), r.PathValue("id"))
	if res.Err != nil {
		handleError(h.log, w, r, res.Err)
		return
	}
	markDegraded(w, res)
	writeJSON(w, http.StatusOK, eventDetailResponse{Source: res.Source.String(), Event: toEventResponse(res.Data)})
}

// News handles GET /api/news.
func (h *FeedHandler) News(w http.ResponseWriter, r *http.Request) {
	res := h.svc.FetchNews(r.Context())
	news, err := res.Unwrap()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	items := make([]newsResponse, 0, len(news))
	for _, n := range news {
		items = append(items, toNewsResponse(n))
	}
	markDegraded(w, res)
	writeJSON(w, http.StatusOK, listResponse[newsResponse]{Source: res.Source.String(), Items: items})
}

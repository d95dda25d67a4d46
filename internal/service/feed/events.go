package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/storefront-backend/internal/cache"
	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/normalize"
	"github.com/heartmarshall/storefront-backend/internal/service/feed/sampledata"
)

// Placeholder values for event details missing from a sample record.
const (
	defaultSeats        = 50
	minSeatsAvailable   = 5
	defaultContactEmail = "events@example.com"
	defaultContactPhone = "(555) 010-0000"
)

func eventKey(id string) string { return "id:" + id }

// FetchEvents returns the deduplicated event listing. Sample events are
// returned, uncached, when every event source fails.
func (s *Service) FetchEvents(ctx context.Context) domain.Result[[]domain.Event] {
	if cached, ok := cache.Lookup[[]domain.Event](s.cache, domain.ContentEvents, cache.DefaultKey); ok {
		return domain.Live(cached)
	}

	events, err := s.loadEvents(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "events unavailable, serving sample data", slog.String("error", err.Error()))
		return s.sampleEvents()
	}

	s.cache.Set(domain.ContentEvents, cache.DefaultKey, events)
	return domain.Live(events)
}

func (s *Service) loadEvents(ctx context.Context) ([]domain.Event, error) {
	recs, err := s.backend.Events(ctx)
	if err != nil {
		return nil, err
	}
	return normalize.Events(recs), nil
}

func (s *Service) sampleEvents() domain.Result[[]domain.Event] {
	events, err := sampledata.Events()
	if err != nil {
		return domain.Failed[[]domain.Event](fmt.Errorf("load sample events: %w", err))
	}
	return domain.Fallback(events)
}

// FetchEventDetails returns one event. When the backend cannot supply it the
// matching sample event is returned with placeholder values for any missing
// details; an id known to neither yields domain.ErrNotFound.
func (s *Service) FetchEventDetails(ctx context.Context, id string) domain.Result[domain.Event] {
	if id == "" {
		return domain.Failed[domain.Event](domain.NewValidationError("id", "required"))
	}

	if ev, ok := s.cachedEvent(id); ok {
		return domain.Live(ev)
	}

	rec, err := s.backend.EventByID(ctx, id)
	if err == nil {
		ev := normalize.Event(*rec)
		s.cache.Set(domain.ContentEvents, eventKey(id), ev)
		return domain.Live(ev)
	}

	s.log.WarnContext(ctx, "event details unavailable, trying sample data",
		slog.String("event_id", id),
		slog.String("error", err.Error()),
	)

	sample, ok := sampledata.Event(id)
	if !ok {
		return domain.Failed[domain.Event](domain.ErrNotFound)
	}
	return domain.Fallback(s.withPlaceholders(sample))
}

func (s *Service) cachedEvent(id string) (domain.Event, bool) {
	if ev, ok := cache.Lookup[domain.Event](s.cache, domain.ContentEvents, eventKey(id)); ok {
		return ev, true
	}
	if all, ok := cache.Lookup[[]domain.Event](s.cache, domain.ContentEvents, cache.DefaultKey); ok {
		for _, ev := range all {
			if ev.ID == id {
				return ev, true
			}
		}
	}
	return domain.Event{}, false
}

// withPlaceholders fills demo values for absent details. Seats available is
// random in [minSeatsAvailable, seats].
func (s *Service) withPlaceholders(ev domain.Event) domain.Event {
	seats := defaultSeats
	if ev.Seats != nil {
		seats = *ev.Seats
	} else {
		ev.Seats = &seats
	}

	if ev.SeatsAvailable == nil {
		avail := minSeatsAvailable
		if seats > minSeatsAvailable {
			avail += s.intN(seats - minSeatsAvailable + 1)
		}
		ev.SeatsAvailable = &avail
	}

	ev.Presenter = orDefault(ev.Presenter, domain.DefaultPresenter)
	ev.CancellationPolicy = orDefault(ev.CancellationPolicy, domain.DefaultCancellationPolicy)
	ev.Organizer = orDefault(ev.Organizer, domain.DefaultOrganizer)
	ev.ContactEmail = orDefault(ev.ContactEmail, defaultContactEmail)
	ev.ContactPhone = orDefault(ev.ContactPhone, defaultContactPhone)
	return ev
}

func orDefault(p *string, def string) *string {
	if p != nil && *p != "" {
		return p
	}
	return &def
}

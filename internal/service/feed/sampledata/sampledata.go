// Package sampledata ships the event and news listings served when the
// content backend cannot be reached.
package sampledata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

var (
	//go:embed events.json
	eventsJSON []byte

	//go:embed news.json
	newsJSON []byte
)

type sampleEvent struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Date               string  `json:"date"`
	Time               string  `json:"time"`
	Location           string  `json:"location"`
	Description        string  `json:"description"`
	Image              string  `json:"image"`
	RegistrationLink   string  `json:"registration_link"`
	Presenter          *string `json:"presenter"`
	Price              *string `json:"price"`
	Seats              *int    `json:"seats"`
	SeatsAvailable     *int    `json:"seats_available"`
	CancellationPolicy *string `json:"cancellation_policy"`
	Organizer          *string `json:"organizer"`
	ContactEmail       *string `json:"contact_email"`
	ContactPhone       *string `json:"contact_phone"`
}

type sampleNews struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Date         string  `json:"date"`
	Author       string  `json:"author"`
	Summary      string  `json:"summary"`
	Content      *string `json:"content"`
	Image        string  `json:"image"`
	ReadMoreLink string  `json:"read_more_link"`
}

var loadEvents = sync.OnceValues(func() ([]domain.Event, error) {
	var raw []sampleEvent
	if err := json.Unmarshal(eventsJSON, &raw); err != nil {
		return nil, fmt.Errorf("sampledata: decode events: %w", err)
	}
	out := make([]domain.Event, 0, len(raw))
	for _, e := range raw {
		out = append(out, domain.Event(e))
	}
	return out, nil
})

var loadNews = sync.OnceValues(func() ([]domain.News, error) {
	var raw []sampleNews
	if err := json.Unmarshal(newsJSON, &raw); err != nil {
		return nil, fmt.Errorf("sampledata: decode news: %w", err)
	}
	out := make([]domain.News, 0, len(raw))
	for _, n := range raw {
		out = append(out, domain.News(n))
	}
	return out, nil
})

// Events returns a copy of the bundled sample events.
func Events() ([]domain.Event, error) {
	evs, err := loadEvents()
	return slices.Clone(evs), err
}

// News returns a copy of the bundled sample news.
func News() ([]domain.News, error) {
	ns, err := loadNews()
	return slices.Clone(ns), err
}

// Event returns the sample event with the given id.
func Event(id string) (domain.Event, bool) {
	evs, err := loadEvents()
	if err != nil {
		return domain.Event{}, false
	}
	for _, e := range evs {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Event{}, false
}

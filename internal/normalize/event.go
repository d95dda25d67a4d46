package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/provider"
)

var (
	attendeeSuffix = regexp.MustCompile(`\s*\d+(-\d+)?\+?\s*Attendees$`)
	dollarAmount   = regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{1,2})?`)
)

var startLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"20060102",
}

// StripAttendeeSuffix removes a trailing "<n>[-<m>][+] Attendees" marker from an event title.
func StripAttendeeSuffix(title string) string {
	return strings.TrimSpace(attendeeSuffix.ReplaceAllString(title, ""))
}

// ExtractPrice returns the first dollar amount found in text, or nil.
func ExtractPrice(text string) *string {
	m := dollarAmount.FindString(text)
	if m == "" {
		return nil
	}
	return &m
}

// Event maps an event record to the view model. Title has its attendee
// suffix removed; price falls back to the first dollar amount in the body.
func Event(rec provider.EventRecord) domain.Event {
	ev := domain.Event{
		ID:          rec.ID,
		Title:       StripAttendeeSuffix(Text(rec.Title)),
		Description: Text(rec.Content),
	}
	if ev.Description == "" {
		ev.Description = Text(rec.Excerpt)
	}

	start := rec.StartDate
	if start == "" {
		start = meta(rec, "event_date", "start_date", "date")
	}
	ev.Date, ev.Time = splitStart(start)
	if ev.Time == "" {
		ev.Time = meta(rec, "event_time", "start_time", "time")
	}

	switch {
	case rec.Venue != nil && strings.TrimSpace(*rec.Venue) != "":
		ev.Location = Text(*rec.Venue)
	default:
		ev.Location = Text(meta(rec, "location", "event_location", "venue"))
	}

	if rec.ImageURL != nil && *rec.ImageURL != "" {
		ev.Image = *rec.ImageURL
	} else {
		ev.Image = FeaturedImage(rec.EmbeddedMedia, KindEvent)
	}

	ev.RegistrationLink = meta(rec, "registration_link", "registration_url")
	if ev.RegistrationLink == "" {
		ev.RegistrationLink = rec.Link
	}

	if rec.Cost != nil && strings.TrimSpace(*rec.Cost) != "" {
		c := DecodeEntities(strings.TrimSpace(*rec.Cost))
		ev.Price = &c
	} else if p := meta(rec, "price", "cost"); p != "" {
		ev.Price = &p
	} else {
		ev.Price = ExtractPrice(ev.Description)
	}

	ev.Presenter = strPtr(Text(meta(rec, "presenter", "speaker")))
	ev.Seats = intPtr(meta(rec, "seats", "capacity"))
	ev.SeatsAvailable = intPtr(meta(rec, "seats_available", "available_seats"))
	ev.CancellationPolicy = strPtr(Text(meta(rec, "cancellation_policy")))

	ev.Organizer = firstNonEmpty(rec.Organizer, meta(rec, "organizer"))
	ev.ContactEmail = firstNonEmpty(rec.OrganizerEmail, meta(rec, "contact_email", "email"))
	ev.ContactPhone = firstNonEmpty(rec.OrganizerPhone, meta(rec, "contact_phone", "phone"))

	return ev
}

// Events maps records in order and then removes attendee-count duplicates.
func Events(recs []provider.EventRecord) []domain.Event {
	out := make([]domain.Event, 0, len(recs))
	for _, r := range recs {
		out = append(out, Event(r))
	}
	return DedupeEvents(out)
}

// DedupeEvents merges listings that share (base title, date), keeping the one
// with the latest date and time. Titles in the output have their attendee
// suffix removed. Output follows the first appearance of each key.
func DedupeEvents(events []domain.Event) []domain.Event {
	type key struct{ title, date string }

	index := make(map[key]int, len(events))
	out := make([]domain.Event, 0, len(events))

	for _, ev := range events {
		ev.Title = StripAttendeeSuffix(ev.Title)
		k := key{strings.ToLower(ev.Title), ev.Date}

		i, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, ev)
			continue
		}
		if sortKey(ev) > sortKey(out[i]) {
			out[i] = ev
		}
	}
	return out
}

func sortKey(ev domain.Event) string {
	t := ev.Time
	if t == "" {
		t = "00:00"
	}
	return ev.Date + " " + t
}

// splitStart turns a backend start timestamp into YYYY-MM-DD and HH:MM.
// A date-only value yields an empty time; an unparseable value is returned
// as the date unchanged.
func splitStart(s string) (date, clock string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	for _, layout := range startLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		date = t.Format("2006-01-02")
		if len(layout) > len("2006-01-02") {
			clock = t.Format("15:04")
		}
		return date, clock
	}
	return s, ""
}

func meta(rec provider.EventRecord, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(rec.Meta[k]); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(p *string, fallback string) *string {
	if p != nil && strings.TrimSpace(*p) != "" {
		v := DecodeEntities(strings.TrimSpace(*p))
		return &v
	}
	return strPtr(fallback)
}

func intPtr(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

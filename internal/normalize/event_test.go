package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/provider"
)

func strp(s string) *string { return &s }

func TestStripAttendeeSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Workshop A 10+ Attendees", "Workshop A"},
		{"Workshop A 25+ Attendees", "Workshop A"},
		{"Workshop A 10-20 Attendees", "Workshop A"},
		{"Workshop A 5 Attendees", "Workshop A"},
		{"Workshop A", "Workshop A"},
		{"Attendees Welcome Night", "Attendees Welcome Night"},
		{"Workshop A 10+ Attendees (online)", "Workshop A 10+ Attendees (online)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := StripAttendeeSuffix(tt.in); got != tt.want {
				t.Errorf("StripAttendeeSuffix(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractPrice(t *testing.T) {
	t.Parallel()

	got := ExtractPrice("Registration is $45.00 per family, or $80 for two.")
	require.NotNil(t, got)
	assert.Equal(t, "$45.00", *got)

	got = ExtractPrice("Tickets $1,250 each")
	require.NotNil(t, got)
	assert.Equal(t, "$1,250", *got)

	assert.Nil(t, ExtractPrice("Free for everyone"))
}

func TestDedupeEvents_KeepsLatestOfSameDay(t *testing.T) {
	t.Parallel()

	events := []domain.Event{
		{ID: "1", Title: "Workshop A 10+ Attendees", Date: "2025-03-14", Time: "09:00"},
		{ID: "2", Title: "Other Event", Date: "2025-03-14"},
		{ID: "3", Title: "Workshop A 25+ Attendees", Date: "2025-03-14", Time: "17:30"},
	}

	got := DedupeEvents(events)

	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "Workshop A", got[0].Title)
	assert.Equal(t, "17:30", got[0].Time)
	assert.Equal(t, "Other Event", got[1].Title)
}

func TestDedupeEvents_DifferentDaysKept(t *testing.T) {
	t.Parallel()

	events := []domain.Event{
		{ID: "1", Title: "Workshop A 10+ Attendees", Date: "2025-03-14"},
		{ID: "2", Title: "Workshop A 10+ Attendees", Date: "2025-03-21"},
	}

	got := DedupeEvents(events)
	require.Len(t, got, 2)
	assert.Equal(t, "Workshop A", got[0].Title)
	assert.Equal(t, "Workshop A", got[1].Title)
}

func TestEvent_CalendarPluginShape(t *testing.T) {
	t.Parallel()

	rec := provider.EventRecord{
		ID:             "101",
		Title:          "Parent &amp; Child Workshop 10+ Attendees",
		Content:        "<p>Join us. Fee: $35 per pair.</p>",
		StartDate:      "2025-04-02 18:30:00",
		Link:           "https://shop.example.com/event/parent-child/",
		Venue:          strp("Main Hall"),
		Cost:           strp("$40"),
		ImageURL:       strp("https://cdn.example.com/e.jpg"),
		Organizer:      strp("Speech Center"),
		OrganizerEmail: strp("info@example.com"),
	}

	ev := Event(rec)

	assert.Equal(t, "101", ev.ID)
	assert.Equal(t, "Parent & Child Workshop", ev.Title)
	assert.Equal(t, "2025-04-02", ev.Date)
	assert.Equal(t, "18:30", ev.Time)
	assert.Equal(t, "Main Hall", ev.Location)
	assert.Equal(t, "Join us. Fee: $35 per pair.", ev.Description)
	assert.Equal(t, "https://cdn.example.com/e.jpg", ev.Image)
	assert.Equal(t, "https://shop.example.com/event/parent-child/", ev.RegistrationLink)
	require.NotNil(t, ev.Price)
	assert.Equal(t, "$40", *ev.Price)
	require.NotNil(t, ev.Organizer)
	assert.Equal(t, "Speech Center", *ev.Organizer)
	require.NotNil(t, ev.ContactEmail)
	assert.Equal(t, "info@example.com", *ev.ContactEmail)
	assert.Nil(t, ev.ContactPhone)
}

func TestEvent_CustomPostTypeShape(t *testing.T) {
	t.Parallel()

	rec := provider.EventRecord{
		ID:            "7",
		Title:         "Summer Camp Info Night",
		Content:       "<p>Camp costs $199.99 for the week.</p>",
		Link:          "https://shop.example.com/?p=7",
		EmbeddedMedia: []string{"https://cdn.example.com/camp.jpg"},
		Meta: map[string]string{
			"event_date":        "2025-06-01",
			"event_time":        "19:00",
			"location":          "Room 4",
			"registration_link": "https://forms.example.com/camp",
			"presenter":         "Dr. Smith",
			"seats":             "40",
			"seats_available":   "oops",
		},
	}

	ev := Event(rec)

	assert.Equal(t, "2025-06-01", ev.Date)
	assert.Equal(t, "19:00", ev.Time)
	assert.Equal(t, "Room 4", ev.Location)
	assert.Equal(t, "https://cdn.example.com/camp.jpg", ev.Image)
	assert.Equal(t, "https://forms.example.com/camp", ev.RegistrationLink)
	require.NotNil(t, ev.Price)
	assert.Equal(t, "$199.99", *ev.Price)
	require.NotNil(t, ev.Presenter)
	assert.Equal(t, "Dr. Smith", *ev.Presenter)
	require.NotNil(t, ev.Seats)
	assert.Equal(t, 40, *ev.Seats)
	assert.Nil(t, ev.SeatsAvailable, "malformed seat count degrades to nil")
}

func TestEvent_MissingEverything(t *testing.T) {
	t.Parallel()

	ev := Event(provider.EventRecord{ID: "x"})

	assert.Equal(t, "x", ev.ID)
	assert.Equal(t, "", ev.Title)
	assert.Equal(t, "/images/default-event.jpg", ev.Image)
	assert.Nil(t, ev.Price)
	assert.Nil(t, ev.Presenter)
	assert.Nil(t, ev.Seats)
	assert.Nil(t, ev.Organizer)
}

func TestEvents_Dedupes(t *testing.T) {
	t.Parallel()

	got := Events([]provider.EventRecord{
		{ID: "1", Title: "Workshop A 10+ Attendees", StartDate: "2025-03-14 09:00:00"},
		{ID: "2", Title: "Workshop A 25+ Attendees", StartDate: "2025-03-14 13:00:00"},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "Workshop A", got[0].Title)
}

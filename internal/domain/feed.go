package domain

// Display defaults for optional event and news fields.
const (
	DefaultPresenter          = "TBA"
	DefaultEventPrice         = "Free"
	DefaultOrganizer          = "Events Team"
	DefaultCancellationPolicy = "Full refund if cancelled at least 48 hours before the event."
	DefaultNewsAuthor         = "Staff"
)

// Event is a calendar event listing. Optional fields are nil when the backend
// did not supply them; display defaults are applied at the transport boundary.
type Event struct {
	ID               string
	Title            string
	Date             string // YYYY-MM-DD
	Time             string // HH:MM, may be empty
	Location         string
	Description      string
	Image            string
	RegistrationLink string

	Presenter          *string
	Price              *string
	Seats              *int
	SeatsAvailable     *int
	CancellationPolicy *string
	Organizer          *string
	ContactEmail       *string
	ContactPhone       *string
}

// News is a blog post summary.
type News struct {
	ID           string
	Title        string
	Date         string
	Author       string
	Summary      string
	Content      *string
	Image        string
	ReadMoreLink string
}

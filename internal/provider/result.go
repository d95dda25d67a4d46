package provider

// Records are backend payloads after JSON decoding, before normalization.
// Text fields may still contain markup and HTML entities.

// ProductRecord is a commerce product as returned by the backend.
type ProductRecord struct {
	ID               string
	Name             string
	Description      string
	ShortDescription string
	Price            string
	RegularPrice     string
	CategoryIDs      []string
	ImageURLs        []string
	Featured         bool
	Meta             map[string]string
}

// CategoryRecord is a product category as returned by the backend.
type CategoryRecord struct {
	ID          string
	Name        string
	Description string
	Count       int
}

// PostRecord is a CMS post (news article).
type PostRecord struct {
	ID      string
	Title   string
	Content string
	Excerpt string
	Date    string
	Link    string
	Author  *string

	// EmbeddedMedia lists featured-media source URLs from the _embedded relation.
	EmbeddedMedia []string
}

// EventRecord is an event listing from any of the supported event sources.
// Calendar-plugin payloads fill the explicit fields; custom post type payloads
// mostly populate Meta.
type EventRecord struct {
	ID        string
	Title     string
	Content   string
	Excerpt   string
	StartDate string
	EndDate   string
	Link      string

	Venue          *string
	Cost           *string
	ImageURL       *string
	Organizer      *string
	OrganizerEmail *string
	OrganizerPhone *string

	EmbeddedMedia []string
	Meta          map[string]string
}

// CustomerRecord is a backend customer profile.
type CustomerRecord struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Username  string
	Billing   AddressRecord
	Shipping  AddressRecord
}

// AddressRecord is a billing or shipping address.
type AddressRecord struct {
	FirstName string
	LastName  string
	Company   string
	Address1  string
	Address2  string
	City      string
	State     string
	Postcode  string
	Country   string
	Email     string
	Phone     string
}

// OrderRecord is the backend's response to an order creation.
type OrderRecord struct {
	ID         string
	Status     string
	Total      string
	PaymentURL string
}

// OrderLine is one line item of an order to create.
type OrderLine struct {
	ProductID string
	Quantity  int
}

// OrderRequest is the payload for creating an order.
type OrderRequest struct {
	CustomerID string
	Billing    AddressRecord
	Lines      []OrderLine
}

// TokenResult is the backend's answer to a successful login.
type TokenResult struct {
	Token       string
	Email       string
	DisplayName string
}

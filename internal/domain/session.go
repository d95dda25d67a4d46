package domain

import "time"

// Session is derived from a backend-issued bearer token. Claims are decoded
// but never verified here; the backend verifies the token on every user call.
type Session struct {
	Token       string
	UserID      string
	DisplayName string
	Email       string
	ExpiresAt   time.Time
}

// Valid reports whether the session has not yet expired at now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && s.ExpiresAt.After(now)
}

// Account is the customer profile held by the backend.
type Account struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Username  string
	Billing   Address
	Shipping  Address
}

// Address is a billing or shipping address.
type Address struct {
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

// Order is the backend's record of a placed order.
type Order struct {
	ID         string
	Status     string
	Total      string
	PaymentURL string
}

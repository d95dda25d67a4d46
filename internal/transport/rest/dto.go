package rest

import (
	"strings"
	"time"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

// listResponse wraps fetcher results. Source is "fallback" when the data is
// bundled sample content served because the backend was unreachable.
type listResponse[T any] struct {
	Source string `json:"source"`
	Items  []T    `json:"items"`
}

type productResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category,omitempty"`
	PDFURL      string `json:"pdfUrl,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.DisplayPrice(),
		Category:    p.Category,
		PDFURL:      p.PDFURL,
		Thumbnail:   p.Thumbnail,
	}
}

type categoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ProductCount int    `json:"productCount"`
}

type eventResponse struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Date               string  `json:"date"`
	Time               string  `json:"time,omitempty"`
	Location           string  `json:"location"`
	Description        string  `json:"description"`
	Image              string  `json:"image"`
	RegistrationLink   string  `json:"registrationLink,omitempty"`
	Presenter          string  `json:"presenter"`
	Price              string  `json:"price"`
	Seats              *int    `json:"seats,omitempty"`
	SeatsAvailable     *int    `json:"seatsAvailable,omitempty"`
	CancellationPolicy string  `json:"cancellationPolicy"`
	Organizer          string  `json:"organizer"`
	ContactEmail       *string `json:"contactEmail,omitempty"`
	ContactPhone       *string `json:"contactPhone,omitempty"`
}

// toEventResponse applies display defaults to absent optional fields. Seats
// and contact details stay absent since no default would be truthful.
func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:                 e.ID,
		Title:              e.Title,
		Date:               e.Date,
		Time:               e.Time,
		Location:           e.Location,
		Description:        e.Description,
		Image:              e.Image,
		RegistrationLink:   e.RegistrationLink,
		Presenter:          valueOr(e.Presenter, domain.DefaultPresenter),
		Price:              valueOr(e.Price, domain.DefaultEventPrice),
		Seats:              e.Seats,
		SeatsAvailable:     e.SeatsAvailable,
		CancellationPolicy: valueOr(e.CancellationPolicy, domain.DefaultCancellationPolicy),
		Organizer:          valueOr(e.Organizer, domain.DefaultOrganizer),
		ContactEmail:       e.ContactEmail,
		ContactPhone:       e.ContactPhone,
	}
}

type newsResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Date         string  `json:"date"`
	Author       string  `json:"author"`
	Summary      string  `json:"summary"`
	Content      *string `json:"content,omitempty"`
	Image        string  `json:"image"`
	ReadMoreLink string  `json:"readMoreLink,omitempty"`
}

func toNewsResponse(n domain.News) newsResponse {
	resp := newsResponse(n)
	if strings.TrimSpace(resp.Author) == "" {
		resp.Author = domain.DefaultNewsAuthor
	}
	return resp
}

func valueOr(p *string, def string) string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return def
	}
	return *p
}

type cartItemResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Category string `json:"category,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type cartResponse struct {
	ID        string             `json:"id"`
	Items     []cartItemResponse `json:"items"`
	Open      bool               `json:"open"`
	ItemCount int                `json:"itemCount"`
	Subtotal  string             `json:"subtotal"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func toCartResponse(c *domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemResponse(it))
	}
	return cartResponse{
		ID:        c.ID.String(),
		Items:     items,
		Open:      c.Open,
		ItemCount: c.ItemCount(),
		Subtotal:  domain.FormatPrice(c.Subtotal()),
		UpdatedAt: c.UpdatedAt,
	}
}

type sessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	UserID        string     `json:"userId,omitempty"`
	DisplayName   string     `json:"displayName,omitempty"`
	Email         string     `json:"email,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

func toSessionResponse(s *domain.Session) sessionResponse {
	if s == nil {
		return sessionResponse{}
	}
	exp := s.ExpiresAt
	return sessionResponse{
		Authenticated: true,
		UserID:        s.UserID,
		DisplayName:   s.DisplayName,
		Email:         s.Email,
		ExpiresAt:     &exp,
	}
}

type addressDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type accountResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Username  string     `json:"username"`
	Billing   addressDTO `json:"billing"`
	Shipping  addressDTO `json:"shipping"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Username:  a.Username,
		Billing:   addressDTO(a.Billing),
		Shipping:  addressDTO(a.Shipping),
	}
}

type orderResponse struct {
	OrderID    string `json:"orderId"`
	Status     string `json:"status"`
	Total      string `json:"total"`
	PaymentURL string `json:"paymentUrl"`
}

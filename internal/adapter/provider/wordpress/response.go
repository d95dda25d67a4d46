package wordpress

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/storefront-backend/internal/provider"
)

// apiProduct is a WooCommerce product.
type apiProduct struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	ShortDescription string        `json:"short_description"`
	Price            string        `json:"price"`
	RegularPrice     string        `json:"regular_price"`
	Featured         bool          `json:"featured"`
	Categories       []apiRef      `json:"categories"`
	Images           []apiImage    `json:"images"`
	MetaData         []apiMetaItem `json:"meta_data"`
}

type apiRef struct {
	ID int64 `json:"id"`
}

type apiImage struct {
	Src string `json:"src"`
}

// apiMetaItem values are arbitrary JSON; only scalars are kept.
type apiMetaItem struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type apiCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

type rendered struct {
	Rendered string `json:"rendered"`
}

// apiPost is a WordPress post requested with _embed.
type apiPost struct {
	ID       int64    `json:"id"`
	Date     string   `json:"date"`
	Link     string   `json:"link"`
	Title    rendered `json:"title"`
	Content  rendered `json:"content"`
	Excerpt  rendered `json:"excerpt"`
	Embedded struct {
		Author []struct {
			Name string `json:"name"`
		} `json:"author"`
		FeaturedMedia []struct {
			SourceURL string `json:"source_url"`
		} `json:"wp:featuredmedia"`
	} `json:"_embedded"`
}

type apiAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type apiCustomer struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Username  string     `json:"username"`
	Billing   apiAddress `json:"billing"`
	Shipping  apiAddress `json:"shipping"`
}

type apiOrderLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type apiOrderRequest struct {
	CustomerID int64          `json:"customer_id,omitempty"`
	SetPaid    bool           `json:"set_paid"`
	Billing    apiAddress     `json:"billing"`
	LineItems  []apiOrderLine `json:"line_items"`
}

type apiOrder struct {
	ID         int64  `json:"id"`
	Status     string `json:"status"`
	Total      string `json:"total"`
	PaymentURL string `json:"payment_url"`
}

type apiToken struct {
	Token       string `json:"token"`
	Email       string `json:"user_email"`
	DisplayName string `json:"user_display_name"`
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func mapProduct(p apiProduct) provider.ProductRecord {
	rec := provider.ProductRecord{
		ID:               itoa(p.ID),
		Name:             p.Name,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		RegularPrice:     p.RegularPrice,
		Featured:         p.Featured,
	}
	for _, c := range p.Categories {
		rec.CategoryIDs = append(rec.CategoryIDs, itoa(c.ID))
	}
	for _, img := range p.Images {
		if img.Src != "" {
			rec.ImageURLs = append(rec.ImageURLs, img.Src)
		}
	}
	for _, m := range p.MetaData {
		v := gjson.ParseBytes(m.Value)
		if m.Key == "" || !isScalar(v) {
			continue
		}
		if rec.Meta == nil {
			rec.Meta = make(map[string]string)
		}
		rec.Meta[m.Key] = v.String()
	}
	return rec
}

func mapProducts(ps []apiProduct) []provider.ProductRecord {
	out := make([]provider.ProductRecord, 0, len(ps))
	for _, p := range ps {
		out = append(out, mapProduct(p))
	}
	return out
}

func mapCategories(cs []apiCategory) []provider.CategoryRecord {
	out := make([]provider.CategoryRecord, 0, len(cs))
	for _, c := range cs {
		out = append(out, provider.CategoryRecord{
			ID:          itoa(c.ID),
			Name:        c.Name,
			Description: c.Description,
			Count:       c.Count,
		})
	}
	return out
}

func mapPost(p apiPost) provider.PostRecord {
	rec := provider.PostRecord{
		ID:      itoa(p.ID),
		Title:   p.Title.Rendered,
		Content: p.Content.Rendered,
		Excerpt: p.Excerpt.Rendered,
		Date:    p.Date,
		Link:    p.Link,
	}
	if len(p.Embedded.Author) > 0 && p.Embedded.Author[0].Name != "" {
		name := p.Embedded.Author[0].Name
		rec.Author = &name
	}
	for _, m := range p.Embedded.FeaturedMedia {
		if m.SourceURL != "" {
			rec.EmbeddedMedia = append(rec.EmbeddedMedia, m.SourceURL)
		}
	}
	return rec
}

func mapCustomer(c apiCustomer) provider.CustomerRecord {
	return provider.CustomerRecord{
		ID:        itoa(c.ID),
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Username:  c.Username,
		Billing:   mapAddress(c.Billing),
		Shipping:  mapAddress(c.Shipping),
	}
}

func mapAddress(a apiAddress) provider.AddressRecord {
	return provider.AddressRecord(a)
}

func toAPIAddress(a provider.AddressRecord) apiAddress {
	return apiAddress(a)
}

// Event payloads come in two families: custom post types (WordPress post
// envelope plus meta/acf fields) and the calendar plugin's own shape. Both are
// read field by field with gjson rather than with fixed structs.

// eventItems returns the listing items of an event endpoint response, or
// false when the body is neither a non-empty array nor {"events":[...]}.
func eventItems(body []byte) ([]gjson.Result, bool) {
	if !gjson.ValidBytes(body) {
		return nil, false
	}
	res := gjson.ParseBytes(body)
	if !res.IsArray() {
		res = res.Get("events")
		if !res.IsArray() {
			return nil, false
		}
	}
	items := res.Array()
	return items, len(items) > 0
}

func mapEvent(r gjson.Result) provider.EventRecord {
	rec := provider.EventRecord{
		ID:             r.Get("id").String(),
		Title:          str(r, "title.rendered", "title"),
		Content:        str(r, "content.rendered", "description"),
		Excerpt:        str(r, "excerpt.rendered", "excerpt"),
		StartDate:      str(r, "start_date"),
		EndDate:        str(r, "end_date"),
		Link:           str(r, "url", "link"),
		Venue:          optStr(r, "venue.venue"),
		Cost:           optStr(r, "cost"),
		ImageURL:       optStr(r, "image.url"),
		Organizer:      optStr(r, "organizer.0.organizer"),
		OrganizerEmail: optStr(r, "organizer.0.email"),
		OrganizerPhone: optStr(r, "organizer.0.phone"),
	}

	for _, m := range r.Get("_embedded").Get("wp:featuredmedia").Array() {
		if u := m.Get("source_url").String(); u != "" {
			rec.EmbeddedMedia = append(rec.EmbeddedMedia, u)
		}
	}

	for _, group := range []string{"meta", "acf"} {
		r.Get(group).ForEach(func(k, v gjson.Result) bool {
			if !isScalar(v) {
				return true
			}
			if rec.Meta == nil {
				rec.Meta = make(map[string]string)
			}
			if _, seen := rec.Meta[k.String()]; !seen {
				rec.Meta[k.String()] = v.String()
			}
			return true
		})
	}
	return rec
}

// str returns the first path holding a string value.
func str(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := r.Get(p); v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}

func optStr(r gjson.Result, path string) *string {
	s := strings.TrimSpace(str(r, path))
	if s == "" {
		return nil
	}
	return &s
}

func isScalar(v gjson.Result) bool {
	switch v.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return true
	}
	return false
}

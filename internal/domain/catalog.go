package domain

import "github.com/shopspring/decimal"

// Product is a catalog product as shown on the storefront.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	PDFURL      string
	Thumbnail   string
}

// DisplayPrice formats the price the way cart lines carry it, e.g. "$19.99".
func (p Product) DisplayPrice() string {
	return FormatPrice(p.Price)
}

// Category is a product category.
type Category struct {
	ID          string
	Name         string
	Description  string
	ProductCount int
}

// FormatPrice renders a decimal amount as a dollar display string.
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/provider"
)

// pdfMetaKeys are the product meta keys that may hold a downloadable asset reference.
var pdfMetaKeys = []string{"pdf_url", "_pdf_url", "product_pdf"}

// Product maps a commerce product. An empty or malformed price becomes zero.
func Product(rec provider.ProductRecord) domain.Product {
	p := domain.Product{
		ID:          rec.ID,
		Name:        Text(rec.Name),
		Description: Text(rec.Description),
		Price:       parseDecimal(rec.Price),
		Thumbnail:   FeaturedImage(rec.ImageURLs, KindProduct),
	}
	if p.Description == "" {
		p.Description = Text(rec.ShortDescription)
	}
	if p.Price.IsZero() {
		p.Price = parseDecimal(rec.RegularPrice)
	}
	if len(rec.CategoryIDs) > 0 {
		p.Category = rec.CategoryIDs[0]
	}
	for _, k := range pdfMetaKeys {
		if v := strings.TrimSpace(rec.Meta[k]); v != "" {
			p.PDFURL = v
			break
		}
	}
	return p
}

// Products maps products in order.
func Products(recs []provider.ProductRecord) []domain.Product {
	out := make([]domain.Product, 0, len(recs))
	for _, r := range recs {
		out = append(out, Product(r))
	}
	return out
}

// Category maps a product category.
func Category(rec provider.CategoryRecord) domain.Category {
	return domain.Category{
		ID:           rec.ID,
		Name:         Text(rec.Name),
		Description:  Text(rec.Description),
		ProductCount: rec.Count,
	}
}

// Categories maps categories in order.
func Categories(recs []provider.CategoryRecord) []domain.Category {
	out := make([]domain.Category, 0, len(recs))
	for _, r := range recs {
		out = append(out, Category(r))
	}
	return out
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

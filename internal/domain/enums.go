package domain

import "slices"

// ContentType identifies a family of remote content held in the content cache.
type ContentType string

const (
	ContentProducts         ContentType = "products"
	ContentCategories       ContentType = "categories"
	ContentEvents           ContentType = "events"
	ContentNews             ContentType = "news"
	ContentFeaturedProducts ContentType = "featured-products"
)

func (c ContentType) String() string { return string(c) }

func (c ContentType) IsValid() bool {
	return slices.Contains(AllContentTypes(), c)
}

// AllContentTypes lists every cacheable content type.
func AllContentTypes() []ContentType {
	return []ContentType{
		ContentProducts, ContentCategories, ContentEvents, ContentNews, ContentFeaturedProducts,
	}
}

// Source tells where a fetched value came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
	SourceFailed   Source = "failed"
)

func (s Source) String() string { return string(s) }

package normalize

import "strings"

// ImageKind selects the default image used when a record has no media.
type ImageKind string

const (
	KindEvent   ImageKind = "event"
	KindNews    ImageKind = "news"
	KindProduct ImageKind = "product"
)

// DefaultImage returns the placeholder image path for kind.
func DefaultImage(kind ImageKind) string {
	switch kind {
	case KindEvent:
		return "/images/default-event.jpg"
	case KindNews:
		return "/images/default-news.jpg"
	default:
		return "/images/default-product.jpg"
	}
}

// FeaturedImage returns the first usable URL from the embedded media relation,
// or the default for kind.
func FeaturedImage(media []string, kind ImageKind) string {
	for _, m := range media {
		if m = strings.TrimSpace(m); m != "" {
			return m
		}
	}
	return DefaultImage(kind)
}

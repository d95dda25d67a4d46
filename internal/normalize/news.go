package normalize

import (
	"github.com/heartmarshall/storefront-backend/internal/domain"
	"github.com/heartmarshall/storefront-backend/internal/provider"
)

// SummaryLength is the rune budget for summaries derived from full content.
const SummaryLength = 150

// News maps a CMS post to a news item. The summary is the plain-text excerpt,
// or the first SummaryLength runes of the content plus "..." when the excerpt
// is empty.
func News(rec provider.PostRecord) domain.News {
	content := Text(rec.Content)

	n := domain.News{
		ID:           rec.ID,
		Title:        Text(rec.Title),
		ReadMoreLink: rec.Link,
		Image:        FeaturedImage(rec.EmbeddedMedia, KindNews),
		Content:      strPtr(content),
	}

	n.Date, _ = splitStart(rec.Date)
	if rec.Author != nil {
		n.Author = Text(*rec.Author)
	}

	n.Summary = Text(rec.Excerpt)
	if n.Summary == "" {
		n.Summary = Truncate(content, SummaryLength)
	}

	return n
}

// NewsList maps posts in order.
func NewsList(recs []provider.PostRecord) []domain.News {
	out := make([]domain.News, 0, len(recs))
	for _, r := range recs {
		out = append(out, News(r))
	}
	return out
}

package wordpress

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/storefront-backend/internal/provider"
)

// Posts lists recent news posts with embedded author and featured media.
func (c *Client) Posts(ctx context.Context) ([]provider.PostRecord, error) {
	body, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "wp/v2/posts",
		query:  url.Values{"_embed": {""}, "per_page": {"20"}},
		auth:   authOAuth,
		retry:  true,
	})
	if err != nil {
		c.log.ErrorContext(ctx, "list posts failed", slog.String("error", err.Error()))
		return nil, err
	}

	posts, err := decode[[]apiPost](body, "posts")
	if err != nil {
		return nil, err
	}
	out := make([]provider.PostRecord, 0, len(posts))
	for _, p := range posts {
		out = append(out, mapPost(p))
	}
	return out, nil
}

// Events probes the configured event endpoints in order and returns the
// listing of the first one that answers with a non-empty array or an
// {"events": [...]} envelope. Each attempt has its own timeout.
func (c *Client) Events(ctx context.Context) ([]provider.EventRecord, error) {
	q := url.Values{"_embed": {""}, "per_page": {pageSize}}

	for _, ep := range c.eventEndpoints {
		body, err := c.probe(ctx, ep, q)
		if err != nil {
			c.log.DebugContext(ctx, "event endpoint rejected",
				slog.String("endpoint", ep),
				slog.String("error", err.Error()),
			)
			continue
		}

		items, ok := eventItems(body)
		if !ok {
			c.log.DebugContext(ctx, "event endpoint returned no listing", slog.String("endpoint", ep))
			continue
		}

		out := make([]provider.EventRecord, 0, len(items))
		for _, it := range items {
			out = append(out, mapEvent(it))
		}
		c.log.DebugContext(ctx, "event source selected",
			slog.String("endpoint", ep),
			slog.Int("events", len(out)),
		)
		return out, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNoEventSource
}

// EventByID probes the event endpoints for a single event.
func (c *Client) EventByID(ctx context.Context, id string) (*provider.EventRecord, error) {
	q := url.Values{"_embed": {""}}

	for _, ep := range c.eventEndpoints {
		body, err := c.probe(ctx, ep+"/"+url.PathEscape(id), q)
		if err != nil {
			continue
		}
		res := gjson.ParseBytes(body)
		if !res.IsObject() || !res.Get("id").Exists() {
			continue
		}
		rec := mapEvent(res)
		return &rec, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNoEventSource
}

func (c *Client) probe(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if c.probeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.probeTimeout)
		defer cancel()
	}
	return c.do(ctx, call{
		method: http.MethodGet,
		path:   path,
		query:  q,
		auth:   authOAuth,
	})
}

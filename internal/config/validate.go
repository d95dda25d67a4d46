package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Backend.validate(); err != nil {
		return fmt.Errorf("backend: %w", err)
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 (got %v)", c.Cache.TTL)
	}
	if c.Cache.PrefetchTTL < c.Cache.TTL {
		return fmt.Errorf("cache.prefetch_ttl must be >= cache.ttl (got %v < %v)", c.Cache.PrefetchTTL, c.Cache.TTL)
	}

	if c.RateLimit.Tokens <= 0 {
		return fmt.Errorf("rate_limit.tokens must be > 0 (got %d)", c.RateLimit.Tokens)
	}
	if c.RateLimit.WindowMS <= 0 {
		return fmt.Errorf("rate_limit.window_ms must be > 0 (got %d)", c.RateLimit.WindowMS)
	}

	if c.Storage.Enabled() && (c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "") {
		return fmt.Errorf("storage: access_key_id and secret_access_key are required when endpoint is set")
	}

	if strings.TrimSpace(c.Session.CookieName) == "" {
		return fmt.Errorf("session.cookie_name is required")
	}
	if c.Session.CartMaxAgeDays <= 0 {
		return fmt.Errorf("session.cart_max_age_days must be > 0 (got %d)", c.Session.CartMaxAgeDays)
	}

	return nil
}

func (b *BackendConfig) validate() error {
	if strings.TrimSpace(b.BaseURL) == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(b.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got %q)", b.BaseURL)
	}
	b.BaseURL = strings.TrimRight(b.BaseURL, "/")

	if b.ConsumerKey == "" {
		return fmt.Errorf("consumer_key is required")
	}
	if b.ConsumerSecret == "" {
		return fmt.Errorf("consumer_secret is required")
	}
	if b.APIVersion == "" {
		return fmt.Errorf("api_version is required")
	}
	if b.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must be >= 0 (got %d)", b.RetryAttempts)
	}
	if b.RetryBackoff <= 0 {
		return fmt.Errorf("retry_backoff must be > 0 (got %v)", b.RetryBackoff)
	}

	endpoints := ParseEndpointList(b.EventEndpointsRaw)
	if len(endpoints) == 0 {
		return fmt.Errorf("event_endpoints must list at least one endpoint")
	}
	b.EventEndpoints = endpoints

	if b.EventProbeTimeout <= 0 {
		return fmt.Errorf("event_probe_timeout must be > 0 (got %v)", b.EventProbeTimeout)
	}

	return nil
}

// ParseEndpointList splits a comma-separated list of endpoint paths,
// trimming whitespace and surrounding slashes. Empty items are dropped.
func ParseEndpointList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), "/")
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

package cache

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"

	"github.com/heartmarshall/storefront-backend/internal/domain"
)

// Metrics records cache lookups.
type Metrics interface {
	Hit(typ domain.ContentType)
	Miss(typ domain.ContentType)
}

// NoopMetrics discards all events.
type NoopMetrics struct{}

func (NoopMetrics) Hit(domain.ContentType)  {}
func (NoopMetrics) Miss(domain.ContentType) {}

// PromMetrics exports per-type hit and miss counters in Prometheus format
// through the VictoriaMetrics default set.
type PromMetrics struct{}

func (PromMetrics) Hit(typ domain.ContentType) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`storefront_cache_hits_total{type=%q}`, typ)).Inc()
}

func (PromMetrics) Miss(typ domain.ContentType) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`storefront_cache_misses_total{type=%q}`, typ)).Inc()
}

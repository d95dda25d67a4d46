package app

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/storefront-backend/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}

// registerBuildInfo exposes a constant storefront_build_info gauge labelled
// with the build metadata.
func registerBuildInfo(set *metrics.Set) {
	name := fmt.Sprintf(`storefront_build_info{version=%q,commit=%q}`, Version, Commit)
	set.NewGauge(name, func() float64 { return 1 })
}

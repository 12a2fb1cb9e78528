package torrentsearch

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"torrentstream/torrentsearch/internal/metrics"
	"torrentstream/torrentsearch/internal/telemetry"
)

// RegisterMetrics registers the search collectors with reg. Collectors are
// updated whether or not they are registered.
func RegisterMetrics(reg prometheus.Registerer) {
	metrics.Register(reg)
}

// InitTracing installs a global OTLP trace provider when
// OTEL_EXPORTER_OTLP_ENDPOINT is set. The returned func flushes and stops it.
func InitTracing(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	return telemetry.Init(ctx, serviceName)
}

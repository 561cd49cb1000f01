package observability

import (
	"fmt"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/raywall/storefront/pkg/config"
	"github.com/raywall/storefront/pkg/metrics"
)

// NoopProvider stands in when metrics are disabled.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }
func (n *NoopProvider) Close() error                                              { return nil }

// DatadogProvider adapts the statsd client to metrics.Provider.
type DatadogProvider struct {
	client statsd.ClientInterface
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, tags, 1)
}

// Close flushes buffered metrics.
func (d *DatadogProvider) Close() error {
	return d.client.Close()
}

// Closer is what SetupMetrics returns: a provider that must be closed on shutdown.
type Closer interface {
	metrics.Provider
	Close() error
}

// SetupMetrics picks the provider configured in the metrics section. service
// is added as a global "service:<name>" tag.
func SetupMetrics(cfg config.MetricsConf, service string) (Closer, error) {
	if !cfg.Datadog.Enabled {
		return &NoopProvider{}, nil
	}

	tags := append([]string{}, cfg.Datadog.Tags...)
	if service != "" {
		tags = append(tags, "service:"+service)
	}

	opts := []statsd.Option{
		statsd.WithNamespace(cfg.Datadog.Namespace),
		statsd.WithTags(tags),
	}

	client, err := statsd.New(cfg.Datadog.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to datadog statsd: %w", err)
	}

	return &DatadogProvider{client: client}, nil
}

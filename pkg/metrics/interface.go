package metrics

// Provider is the metrics sink. Datadog in production, a no-op otherwise.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// MetricType is how a metric is aggregated.
type MetricType string

const (
	TypeCount     MetricType = "count"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

// MetricDefinition binds a metric id to its emitted name and type.
type MetricDefinition struct {
	Name string
	Type MetricType
}

// Metric ids known to the service.
const (
	HTTPRequests    = "http_requests"
	HTTPLatency     = "http_latency"
	RecordsExcluded = "records_excluded"
)

// Definitions lists every metric the service emits.
var Definitions = map[string]MetricDefinition{
	HTTPRequests:    {Name: "http.requests", Type: TypeCount},
	HTTPLatency:     {Name: "http.latency_ms", Type: TypeHistogram},
	RecordsExcluded: {Name: "store.records_excluded", Type: TypeCount},
}

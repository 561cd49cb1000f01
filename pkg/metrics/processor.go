package metrics

import (
	"fmt"
	"sort"
)

// Processor resolves metric ids to their definitions and forwards them to
// the provider. A nil *Processor discards everything.
type Processor struct {
	definitions map[string]MetricDefinition
	provider    Provider
}

// NewProcessor links the known definitions to provider.
func NewProcessor(provider Provider) *Processor {
	defs := make(map[string]MetricDefinition, len(Definitions))
	for id, d := range Definitions {
		defs[id] = d
	}
	return &Processor{definitions: defs, provider: provider}
}

// Record emits value for the metric id with tags rendered as "key:value".
func (p *Processor) Record(id string, value float64, tags map[string]string) error {
	if p == nil || p.provider == nil {
		return nil
	}
	def, exists := p.definitions[id]
	if !exists {
		return fmt.Errorf("metric not defined: %s", id)
	}

	finalTags := renderTags(tags)
	switch def.Type {
	case TypeCount:
		return p.provider.Count(def.Name, value, finalTags)
	case TypeGauge:
		return p.provider.Gauge(def.Name, value, finalTags)
	case TypeHistogram:
		return p.provider.Histogram(def.Name, value, finalTags)
	default:
		return fmt.Errorf("unknown metric type: %s", def.Type)
	}
}

// Inc counts one occurrence of id.
func (p *Processor) Inc(id string, tags map[string]string) error {
	return p.Record(id, 1, tags)
}

// tags are sorted so the same set always renders the same way
func renderTags(tags map[string]string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for k, v := range tags {
		out = append(out, fmt.Sprintf("%s:%s", k, v))
	}
	sort.Strings(out)
	return out
}

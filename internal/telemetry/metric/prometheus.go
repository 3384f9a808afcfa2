package metric

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "triemap"

// Operation results.
const (
	ResultOK    = "ok"
	ResultMiss  = "miss"
	ResultError = "error"
)

// Registry holds all application metrics on a private registry.
type Registry struct {
	reg *prometheus.Registry

	// Operations counts map operations by op and result.
	Operations *prometheus.CounterVec
	// Entries tracks the current number of stored entries.
	Entries prometheus.Gauge
	// CursorFailures counts iterator calls that failed, by error kind.
	CursorFailures *prometheus.CounterVec
}

// NewRegistry creates and registers all metrics.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Map operations by operation and result.",
		}, []string{"op", "result"}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Number of stored entries.",
		}),
		CursorFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cursor_failures_total",
			Help:      "Failed iterator calls by failure kind.",
		}, []string{"kind"}),
	}

	r.reg.MustRegister(r.Operations, r.Entries, r.CursorFailures)
	return r
}

// ObserveOp records one map operation.
func (r *Registry) ObserveOp(op, result string) {
	r.Operations.WithLabelValues(op, result).Inc()
}

// SetEntries records the current entry count.
func (r *Registry) SetEntries(n int) {
	r.Entries.Set(float64(n))
}

// CursorFailure records one failed iterator call.
func (r *Registry) CursorFailure(kind string) {
	r.CursorFailures.WithLabelValues(kind).Inc()
}

// Gatherer exposes the underlying registry, e.g. for promhttp.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Sample is one gathered series.
type Sample struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Snapshot gathers every counter and gauge series, sorted by name.
// Series names carry their labels, e.g. triemap_operations_total{op="set",result="ok"}.
func (r *Registry) Snapshot() ([]Sample, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var samples []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var v float64
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				v = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				v = m.GetGauge().GetValue()
			default:
				continue
			}
			samples = append(samples, Sample{
				Name:  seriesName(mf.GetName(), m.GetLabel()),
				Value: v,
			})
		}
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples, nil
}

func seriesName(name string, labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return name
	}
	parts := make([]string, len(labels))
	for i, lp := range labels {
		parts[i] = fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
	}
	return name + "{" + strings.Join(parts, ",") + "}"
}

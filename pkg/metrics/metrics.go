// Package metrics provides a minimal metric registry with Prometheus text
// exposition for the idkit admin API. Only counters and gauges are needed;
// there is deliberately no third-party client dependency.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrLabelCountMismatch is returned when the number of label values doesn't
// match the metric's defined labels.
var ErrLabelCountMismatch = errors.New("label count mismatch")

// ErrNegativeCounterValue is returned when attempting to decrease a counter.
var ErrNegativeCounterValue = errors.New("counter cannot be decreased")

// ErrDuplicateMetric is raised when registering a metric name twice.
var ErrDuplicateMetric = errors.New("duplicate metric name")

// atomicFloat64 stores the bits of a float64 in a uint64 for atomic access.
type atomicFloat64 struct {
	bits uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(atomic.LoadUint64(&a.bits))
}

func (a *atomicFloat64) Store(val float64) {
	atomic.StoreUint64(&a.bits, math.Float64bits(val))
}

func (a *atomicFloat64) Add(delta float64) {
	for {
		old := atomic.LoadUint64(&a.bits)
		next := math.Float64frombits(old) + delta
		if atomic.CompareAndSwapUint64(&a.bits, old, math.Float64bits(next)) {
			return
		}
	}
}

// MetricType represents the type of a metric.
type MetricType string

const (
	MetricTypeCounter MetricType = "counter"
	MetricTypeGauge   MetricType = "gauge"
)

// Sample is a single metric sample with resolved labels.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Metric is implemented by all metric types.
type Metric interface {
	Name() string
	Help() string
	Type() MetricType
	Collect() []Sample
}

// series holds the value for one label combination.
type series struct {
	labels map[string]string
	value  atomicFloat64
}

// vec maps label-value combinations to series. Shared by Counter and Gauge.
type vec struct {
	labelNames []string
	mu         sync.RWMutex
	series     map[string]*series
}

func (v *vec) get(name string, values []string) (*series, error) {
	if len(values) != len(v.labelNames) {
		return nil, fmt.Errorf("%w: %s expected %d labels, got %d",
			ErrLabelCountMismatch, name, len(v.labelNames), len(values))
	}

	key := strings.Join(values, "\x00")
	v.mu.RLock()
	s, ok := v.series[key]
	v.mu.RUnlock()
	if ok {
		return s, nil
	}

	labels := make(map[string]string, len(v.labelNames))
	for i, n := range v.labelNames {
		labels[n] = values[i]
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	// Double-check after acquiring the write lock.
	if s, ok = v.series[key]; !ok {
		s = &series{labels: labels}
		v.series[key] = s
	}
	return s, nil
}

func (v *vec) collect(name string) []Sample {
	v.mu.RLock()
	defer v.mu.RUnlock()

	samples := make([]Sample, 0, len(v.series))
	for _, s := range v.series {
		samples = append(samples, Sample{Name: name, Labels: s.labels, Value: s.value.Load()})
	}
	return samples
}

// Counter is a monotonically increasing metric.
type Counter struct {
	name string
	help string
	vec
}

func newCounter(name, help string, labelNames []string) *Counter {
	c := &Counter{name: name, help: help}
	c.labelNames = labelNames
	c.series = make(map[string]*series)
	return c
}

// Name returns the metric name.
func (c *Counter) Name() string { return c.name }

// Help returns the help text.
func (c *Counter) Help() string { return c.help }

// Type returns the metric type.
func (c *Counter) Type() MetricType { return MetricTypeCounter }

// Inc increments the counter by 1 for the given label values.
func (c *Counter) Inc(labelValues ...string) error {
	return c.Add(1, labelValues...)
}

// Add adds delta to the counter for the given label values.
// Returns an error if delta is negative or the label count mismatches.
func (c *Counter) Add(delta float64, labelValues ...string) error {
	if delta < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeCounterValue, c.name)
	}
	s, err := c.get(c.name, labelValues)
	if err != nil {
		return err
	}
	s.value.Add(delta)
	return nil
}

// Collect returns all samples.
func (c *Counter) Collect() []Sample { return c.collect(c.name) }

// Gauge is a metric that can arbitrarily go up and down.
type Gauge struct {
	name string
	help string
	vec
}

func newGauge(name, help string, labelNames []string) *Gauge {
	g := &Gauge{name: name, help: help}
	g.labelNames = labelNames
	g.series = make(map[string]*series)
	return g
}

// Name returns the metric name.
func (g *Gauge) Name() string { return g.name }

// Help returns the help text.
func (g *Gauge) Help() string { return g.help }

// Type returns the metric type.
func (g *Gauge) Type() MetricType { return MetricTypeGauge }

// Set sets the gauge for the given label values.
func (g *Gauge) Set(value float64, labelValues ...string) error {
	s, err := g.get(g.name, labelValues)
	if err != nil {
		return err
	}
	s.value.Store(value)
	return nil
}

// Add adds delta to the gauge for the given label values.
func (g *Gauge) Add(delta float64, labelValues ...string) error {
	s, err := g.get(g.name, labelValues)
	if err != nil {
		return err
	}
	s.value.Add(delta)
	return nil
}

// Inc increments the gauge by 1.
func (g *Gauge) Inc(labelValues ...string) error { return g.Add(1, labelValues...) }

// Dec decrements the gauge by 1.
func (g *Gauge) Dec(labelValues ...string) error { return g.Add(-1, labelValues...) }

// Collect returns all samples.
func (g *Gauge) Collect() []Sample { return g.collect(g.name) }

// Registry holds all registered metrics.
type Registry struct {
	mu      sync.RWMutex
	metrics []Metric
	names   map[string]struct{}
}

// NewRegistry creates a new metric registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// NewCounter creates and registers a new counter.
func (r *Registry) NewCounter(name, help string, labels ...string) *Counter {
	c := newCounter(name, help, labels)
	r.register(c)
	return c
}

// NewGauge creates and registers a new gauge.
func (r *Registry) NewGauge(name, help string, labels ...string) *Gauge {
	g := newGauge(name, help, labels)
	r.register(g)
	return g
}

// register panics on duplicate names, since duplicates produce invalid
// Prometheus output.
func (r *Registry) register(m Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.names[m.Name()]; exists {
		panic(fmt.Sprintf("%s: %s", ErrDuplicateMetric, m.Name()))
	}
	r.names[m.Name()] = struct{}{}
	r.metrics = append(r.metrics, m)
}

// Handler returns an http.Handler serving the metrics in Prometheus text
// format.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.mu.RLock()
		metrics := make([]Metric, len(r.metrics))
		copy(metrics, r.metrics)
		r.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		for _, m := range metrics {
			writeMetric(w, m)
		}
	})
}

// writeMetric writes one metric in Prometheus text format.
func writeMetric(w http.ResponseWriter, m Metric) {
	samples := m.Collect()
	if len(samples) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "# HELP %s %s\n", m.Name(), escape(m.Help(), false))
	_, _ = fmt.Fprintf(w, "# TYPE %s %s\n", m.Name(), m.Type())
	for _, s := range samples {
		if len(s.Labels) == 0 {
			_, _ = fmt.Fprintf(w, "%s %s\n", s.Name, formatFloat(s.Value))
		} else {
			_, _ = fmt.Fprintf(w, "%s{%s} %s\n", s.Name, formatLabels(s.Labels), formatFloat(s.Value))
		}
	}
}

// formatLabels formats labels as key="value",key="value" with sorted keys
// for deterministic output.
func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, escape(labels[k], true))
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	if v == float64(int64(v)) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}

func escape(s string, labelValue bool) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	if labelValue {
		s = strings.ReplaceAll(s, "\"", "\\\"")
	}
	return strings.ReplaceAll(s, "\n", "\\n")
}

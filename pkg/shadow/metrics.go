package shadow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures shadow metrics collection.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "shadow").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are labels applied to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the registerer to use (default: prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

// MetricsOption configures metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(ns string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = ns
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(sub string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = sub
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets a custom prometheus registerer.
func WithRegistry(reg prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = reg
	}
}

// Metrics counts node construction and mutation. A nil *Metrics records
// nothing.
type Metrics struct {
	nodesCreated *prometheus.CounterVec
	shapeChanges *prometheus.CounterVec
	mutations    *prometheus.CounterVec
	coercions    *prometheus.CounterVec
	resets       prometheus.Counter
}

// NewMetrics creates and registers the shadow collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := &MetricsConfig{
		Namespace: "shadow",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		nodesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   cfg.Namespace,
				Subsystem:   cfg.Subsystem,
				Name:        "nodes_created_total",
				Help:        "Total shadow nodes created, by kind.",
				ConstLabels: cfg.ConstLabels,
			},
			[]string{"kind"},
		),
		shapeChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   cfg.Namespace,
				Subsystem:   cfg.Subsystem,
				Name:        "shape_changes_total",
				Help:        "Total element or key set changes on arrays and dicts.",
				ConstLabels: cfg.ConstLabels,
			},
			[]string{"kind"},
		),
		mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   cfg.Namespace,
				Subsystem:   cfg.Subsystem,
				Name:        "mutations_total",
				Help:        "Total collection mutator calls, by operation.",
				ConstLabels: cfg.ConstLabels,
			},
			[]string{"op"},
		),
		coercions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   cfg.Namespace,
				Subsystem:   cfg.Subsystem,
				Name:        "coercions_total",
				Help:        "Total writes of mis-shaped values coerced to the empty value.",
				ConstLabels: cfg.ConstLabels,
			},
			[]string{"kind"},
		),
		resets: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace:   cfg.Namespace,
				Subsystem:   cfg.Subsystem,
				Name:        "resets_total",
				Help:        "Total ResetOriginal calls on root nodes.",
				ConstLabels: cfg.ConstLabels,
			},
		),
	}
}

func (m *Metrics) nodeCreated(k Kind) {
	if m == nil {
		return
	}
	m.nodesCreated.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) shapeChanged(k Kind) {
	if m == nil {
		return
	}
	m.shapeChanges.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) mutation(op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
}

func (m *Metrics) coerced(k Kind) {
	if m == nil {
		return
	}
	m.coercions.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) reset() {
	if m == nil {
		return
	}
	m.resets.Inc()
}

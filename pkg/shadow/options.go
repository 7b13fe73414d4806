package shadow

import (
	"log/slog"

	"github.com/vango-dev/shadow/pkg/reactive"
	"github.com/vango-dev/shadow/pkg/schema"
)

// env is shared by every node of one tree.
type env struct {
	rt        *reactive.Runtime
	evaluator schema.Evaluator
	equal     func(a, b any) bool
	logger    *slog.Logger
	metrics   *Metrics
	helpers   map[helperKey]Helper
}

type helperKey struct {
	kind Kind
	name string
}

// Option configures a shadow tree at construction time.
type Option func(*env)

// WithRuntime tracks reads and writes on rt. By default every root gets
// its own runtime, shared by all of its descendants.
func WithRuntime(rt *reactive.Runtime) Option {
	return func(e *env) {
		e.rt = rt
	}
}

// WithEvaluator replaces the schema evaluator used by Check, Errors and
// Match.
func WithEvaluator(ev schema.Evaluator) Option {
	return func(e *env) {
		e.evaluator = ev
	}
}

// WithEqual replaces the comparator deciding whether a property write is
// a change. Defaults to Equal.
func WithEqual(fn func(a, b any) bool) Option {
	return func(e *env) {
		e.equal = fn
	}
}

// WithLogger sets the logger for coercion and reset records.
func WithLogger(l *slog.Logger) Option {
	return func(e *env) {
		e.logger = l
	}
}

// WithMetrics records node and mutation counters on m.
func WithMetrics(m *Metrics) Option {
	return func(e *env) {
		e.metrics = m
	}
}

// WithHelper registers a named helper on every node of the given kind.
// Use AnyKind to register it on all nodes. Kind-specific helpers win
// over AnyKind helpers of the same name.
func WithHelper(kind Kind, name string, fn Helper) Option {
	return func(e *env) {
		if e.helpers == nil {
			e.helpers = make(map[helperKey]Helper)
		}
		e.helpers[helperKey{kind: kind, name: name}] = fn
	}
}

func newEnv(opts []Option) *env {
	e := &env{}
	for _, opt := range opts {
		opt(e)
	}
	if e.rt == nil {
		e.rt = reactive.NewRuntime(reactive.WithLogger(e.logger))
	}
	if e.evaluator == nil {
		e.evaluator = schema.NewEvaluator()
	}
	if e.equal == nil {
		e.equal = Equal
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

func (e *env) helper(kind Kind, name string) (Helper, bool) {
	if h, ok := e.helpers[helperKey{kind: kind, name: name}]; ok {
		return h, true
	}
	h, ok := e.helpers[helperKey{kind: AnyKind, name: name}]
	return h, ok
}

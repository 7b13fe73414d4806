package shadow

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	v, err := New(map[string]any{"isArray": true}, []any{"a"}, WithMetrics(m))
	require.NoError(t, err)
	item := v.(*Array)

	item.Push("b")
	item.Pop()
	item.Node().SetValue("nope")
	item.Node().ResetOriginal([]any{"x"})

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Positive(t, count)

	// One array node, then elements for "a", "b" and the reset's "x".
	assert.Equal(t, 1.0, testutil.ToFloat64(m.nodesCreated.WithLabelValues("array")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.nodesCreated.WithLabelValues("property")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("push")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("pop")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.coercions.WithLabelValues("array")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resets))
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.nodeCreated(ArrayKind)
		m.shapeChanged(ArrayKind)
		m.mutation("push")
		m.coerced(ObjectKind)
		m.reset()
	})
}

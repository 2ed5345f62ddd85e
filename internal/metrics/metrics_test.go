package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Observe("take", "native:0", time.Millisecond, 6, nil)
	m.Observe("take", "native:0", time.Millisecond, 3, nil)
	m.Observe("where", "native:0", time.Millisecond, 0, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.dispatches.WithLabelValues("take", "native:0", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatches.WithLabelValues("where", "native:0", ResultError)))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.elements.WithLabelValues("take", "native:0")))

	n, err := testutil.GatherAndCount(reg, "ndview_engine_dispatch_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe("take", "native:0", time.Second, 1, nil)
	})
}

func TestNewWithoutRegistry(t *testing.T) {
	// Two unregistered instances must not collide.
	a, b := New(nil), New(nil)
	a.Observe("copy", "native:0", time.Microsecond, 1, nil)
	b.Observe("copy", "native:0", time.Microsecond, 1, nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.dispatches.WithLabelValues("copy", "native:0", ResultOK)))
}

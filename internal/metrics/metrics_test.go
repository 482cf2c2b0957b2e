package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Joins.Inc()
	m.Messages.WithLabelValues("status").Add(2)
	m.SweepDuration.Observe(0.01)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Joins))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Messages.WithLabelValues("status")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	assert.Panics(t, func() { New(reg) }, "registering twice must fail")
}

func TestNew_Unregistered(t *testing.T) {
	m := New(nil)
	m.Evictions.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evictions))
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressionMetrics(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg), "double registration must fail")

	m.RecordOperation("allocate", "success", time.Now())
	m.RecordOperation("allocate", "rejected", time.Now())
	m.RecordPoints("EVENT", 10)
	m.RecordPoints("ALLOCATION", -8)
	m.RecordPoints("EVENT", 0)
	m.RecordLevelUps(2)
	m.RecordLevelUps(0)
	m.RecordDBQuery("select", false, 0.01)
	m.RecordLockWait("local", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationTotal.WithLabelValues("allocate", "rejected")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.PointsCredited.WithLabelValues("EVENT")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.PointsDebited.WithLabelValues("ALLOCATION")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LevelUps))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryTotal.WithLabelValues("select", "failed")))

	n, err := testutil.GatherAndCount(reg, "progression_lock_wait_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

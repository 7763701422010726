package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveBatch(t *testing.T) {
	m := NewRenameMetrics("test")

	m.ObserveBatch("archive", "ok", map[string]int{"renamed": 2, "no_pan": 1, "pan_not_found": 0}, 10*time.Millisecond)
	m.ObserveBatch("plan", "error", nil, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.batchesTotal.WithLabelValues("archive", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.batchesTotal.WithLabelValues("plan", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.filesTotal.WithLabelValues("renamed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.filesTotal.WithLabelValues("no_pan")))
}

func TestObserveBatchNilSafe(t *testing.T) {
	var m *RenameMetrics
	assert.NotPanics(t, func() {
		m.ObserveBatch("archive", "ok", map[string]int{"renamed": 1}, time.Second)
	})
}

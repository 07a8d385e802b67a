package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, name string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			require.NotEmpty(t, f.GetMetric())
			return f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}

func TestActiveSessions_ReadsSourceAtScrape(t *testing.T) {
	n := 3
	TrackSessions(func() int { return n })
	t.Cleanup(func() { TrackSessions(func() int { return 0 }) })

	assert.Equal(t, 3.0, gaugeValue(t, "passgen_history_sessions"))

	n = 1
	assert.Equal(t, 1.0, gaugeValue(t, "passgen_history_sessions"), "evictions show up without a write")
}

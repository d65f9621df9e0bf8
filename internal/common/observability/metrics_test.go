package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_ExportsJobMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := NewWithRegisterer("jobhunt-tracker-test", reg)
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "filter-applications", "completed")
	obs.RecordJobProcessed(ctx, "filter-applications", "failed")
	obs.RecordJobDuration(ctx, "filter-applications", 12*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		byName[f.GetName()] = f
	}

	processed, ok := byName["jobs.processed_total"]
	require.True(t, ok, "gathered families: %v", familyNames(families))
	assert.Len(t, processed.GetMetric(), 2)
	for _, m := range processed.GetMetric() {
		assert.Equal(t, float64(1), m.GetCounter().GetValue())
	}

	duration, ok := byName["jobs.duration_milliseconds"]
	require.True(t, ok, "gathered families: %v", familyNames(families))
	require.Len(t, duration.GetMetric(), 1)
	assert.Equal(t, uint64(1), duration.GetMetric()[0].GetHistogram().GetSampleCount())
}

func familyNames(families []*dto.MetricFamily) string {
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	return strings.Join(names, ",")
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		obs.RecordJobProcessed(ctx, "x", "completed")
		obs.RecordJobDuration(ctx, "x", time.Second)
	})
	assert.NoError(t, obs.Shutdown(ctx))
}

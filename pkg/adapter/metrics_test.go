package adapter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetricsGatherReflectsRecordedJobs(t *testing.T) {
	m := NewMetrics()
	m.RecordJob(TopicLayoutJobs, StatusCompleted, 0.25)
	m.RecordVariants(3)
	m.RecordFailure(TopicValidationJobs, "input_validation")

	families, err := m.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["roomcraft_adapter_jobs_processed_total"])
	require.True(t, names["roomcraft_adapter_jobs_failed_total"])
	require.True(t, names["roomcraft_adapter_solve_duration_seconds"])
	require.True(t, names["roomcraft_adapter_variants_per_job"])
}

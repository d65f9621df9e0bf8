// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

// Record store metrics.
var (
	StoreRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_store_records",
			Help: "Number of applications held by the record store",
		},
	)

	StoreDirty = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_store_dirty",
			Help: "1 when the collection has changes not yet persisted",
		},
	)

	StoreMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_store_mutations_total",
			Help: "Successful record store mutations by operation",
		},
		[]string{"operation"},
	)

	StorePersists = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_store_persist_total",
			Help: "Persist attempts by result",
		},
		[]string{"result"},
	)

	SummaryCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_summary_cache_lookups_total",
			Help: "Summary cache lookups by result",
		},
		[]string{"result"},
	)
)

// BoolGauge maps a flag onto a gauge value.
func BoolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

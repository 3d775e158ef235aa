// internal/common/metrics/metrics.go
package metrics

import (
	"time"

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

	ScoringRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_scoring_runs_total",
			Help: "Scoring runs by instrument and validity status",
		},
		[]string{"instrument", "validity"},
	)

	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assessment_scoring_duration_seconds",
			Help:    "Time to score one submission",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		},
		[]string{"instrument"},
	)

	MatchRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_match_runs_total",
			Help: "Career match runs by strategy",
		},
		[]string{"strategy"},
	)

	MatchesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_matches_returned",
			Help:    "Number of careers returned per match run",
			Buckets: prometheus.LinearBuckets(0, 5, 11),
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_cache_lookups_total",
			Help: "Result cache lookups by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)

// ObserveScoring records one scoring run.
func ObserveScoring(instrument, validity string, elapsed time.Duration) {
	ScoringRuns.WithLabelValues(instrument, validity).Inc()
	ScoringDuration.WithLabelValues(instrument).Observe(elapsed.Seconds())
}

// ObserveMatch records one match run.
func ObserveMatch(strategy string, returned int) {
	MatchRuns.WithLabelValues(strategy).Inc()
	MatchesReturned.Observe(float64(returned))
}

// ObserveCache records a cache hit or miss; kind is "result" or "match".
func ObserveCache(kind string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CacheLookups.WithLabelValues(kind, outcome).Inc()
}

// ObserveJob records a finished job. errorCode is empty on success.
func ObserveJob(taskType, errorCode string, elapsed time.Duration) {
	WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}

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

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheme_recommendations_total",
			Help: "Recommendation lists produced, by entry point and cache outcome",
		},
		[]string{"entrypoint", "cache"},
	)

	RecommendationListSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scheme_recommendation_list_size",
			Help:    "Number of schemes returned per recommendation",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8},
		},
	)

	MatchScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scheme_match_score",
			Help:    "Distribution of computed match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	OverridesApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheme_overrides_applied_total",
			Help: "Forced recommendations inserted by override rule",
		},
		[]string{"rule"},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scheme_catalog_size",
			Help: "Schemes in the active catalog snapshot",
		},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheme_catalog_reloads_total",
			Help: "Catalog reload attempts by source and result",
		},
		[]string{"source", "result"},
	)

	PredictorRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheme_predictor_request_duration_seconds",
			Help:    "Latency of calls to the remote scheme predictor",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP API requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP API request latency",
		},
		[]string{"method", "route"},
	)
)

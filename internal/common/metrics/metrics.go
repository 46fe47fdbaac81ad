// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total number of pipeline runs by terminal outcome",
		},
		[]string{"outcome"}, // answered, insufficient_data, error
	)

	PipelineStateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_state_duration_seconds",
			Help: "Duration spent in each pipeline state",
		},
		[]string{"state"},
	)

	ProviderFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "provider_fetch_duration_seconds",
			Help: "Duration of provider fetch calls",
		},
		[]string{"provider"},
	)

	ProviderFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_fetch_failures_total",
			Help: "Total number of provider fetches degraded to a failure sentinel",
		},
		[]string{"provider", "code"}, // PROVIDER_FETCH_FAILED, PROVIDER_TIMEOUT
	)

	DocumentsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_rejected_total",
			Help: "Total number of documents rejected by the quality gate",
		},
		[]string{"provider", "reason"}, // prefilter, verdict, assessment_error
	)

	OracleRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_requests_total",
			Help: "Total number of decision oracle calls by task and status",
		},
		[]string{"task", "status"},
	)

	OracleRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "oracle_request_duration_seconds",
			Help: "Duration of decision oracle calls",
		},
		[]string{"task"},
	)
)

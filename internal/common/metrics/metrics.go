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

	RiskAssessments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_assessments_total",
			Help: "Total number of default-risk assessments by verdict",
		},
		[]string{"verdict", "model_version"},
	)

	RiskAssessmentErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_assessment_errors_total",
			Help: "Total number of failed default-risk assessments by error code",
		},
		[]string{"error_code"},
	)

	RiskProbability = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "risk_default_probability",
			Help:    "Distribution of predicted default probabilities",
			Buckets: []float64{0.05, 0.1, 0.15, 0.2, 0.3, 0.4, 0.5, 0.6, 0.8, 1},
		},
	)

	ArtifactBundleLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "risk_artifact_bundle_loaded",
			Help: "Set to 1 once the artifact bundle for a model version is loaded",
		},
		[]string{"source", "model_version"},
	)

	RiskNotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_review_notifications_total",
			Help: "Total number of high-risk review notifications by channel and status",
		},
		[]string{"channel", "status"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"route", "status"},
	)
)

// Package metrics holds the Prometheus collectors exported on /metrics.
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
		[]string{"task_type"},
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

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route template, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route template",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	AssessmentsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessments_started_total",
			Help: "Assessment wizard sessions created",
		},
	)

	AssessmentsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessments_completed_total",
			Help: "Completed assessments by maturity level",
		},
		[]string{"maturity_level"},
	)

	AssessmentPercentage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_percentage",
			Help:    "Overall readiness percentage of completed assessments",
			Buckets: []float64{20, 40, 60, 80, 100},
		},
	)

	ContactSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Stored contact submissions by source and priority",
		},
		[]string{"source", "priority"},
	)

	ProcessStartFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "process_start_failures_total",
			Help: "Workflow process instances that could not be started",
		},
		[]string{"process_id"},
	)
)

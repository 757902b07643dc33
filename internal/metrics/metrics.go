package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peakspace_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "peakspace_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// SubmissionsTotal counts composite lead/questionnaire writes by outcome
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peakspace_submissions_total",
			Help: "Total number of capture submissions",
		},
		[]string{"type", "status"},
	)

	// EmailsSent counts email dispatches by template and outcome
	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peakspace_emails_sent_total",
			Help: "Total number of emails dispatched",
		},
		[]string{"template", "status"},
	)

	// OutboxJobs counts fan-out job executions by outcome
	OutboxJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "peakspace_outbox_jobs_total",
			Help: "Total number of outbox job executions",
		},
		[]string{"job", "status"},
	)

	// OutboxQueueDepth tracks jobs waiting in the fan-out queue
	OutboxQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "peakspace_outbox_queue_depth",
			Help: "Number of jobs waiting in the outbox queue",
		},
	)
)

// Middleware records request counts and latencies per route
func Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}

		status := strconv.Itoa(ctx.Writer.Status())
		httpRequestsTotal.WithLabelValues(ctx.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(ctx.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Package metrics exposes prometheus instrumentation for the HTTP surface
// and the vote pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Vote submission outcomes.
const (
	OutcomeAccepted     = "accepted"
	OutcomeAlreadyVoted = "already_voted"
	OutcomeCooldown     = "cooldown"
	OutcomeRejected     = "rejected"
	OutcomeError        = "error"
)

var (
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	votesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vote_submissions_total",
		Help: "Vote submissions by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(httpDuration, votesTotal)
}

// Middleware records request latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpDuration.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func RecordVote(outcome string) {
	votesTotal.WithLabelValues(outcome).Inc()
}

// Package metrics holds the prometheus collectors of the API process.
//
// Usage:
//
//	metrics.RecordToggle("video_like", true)
//	metrics.RecordUpload(oss.VideoFolder, err)
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts served requests by route pattern and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videotube_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "videotube_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// TogglesTotal counts like and subscription toggles by resulting state.
	TogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videotube_toggles_total",
			Help: "Total number of association toggles",
		},
		[]string{"kind", "state"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videotube_media_uploads_total",
			Help: "Total number of media uploads by folder and result",
		},
		[]string{"folder", "result"},
	)

	// EventsConsumed counts interaction events seen by the consumer process.
	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videotube_events_consumed_total",
			Help: "Total number of consumed interaction events",
		},
		[]string{"type", "state"},
	)

	ViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "videotube_video_views_total",
			Help: "Total number of video detail views",
		},
	)
)

func RecordToggle(kind string, associated bool) {
	state := "off"
	if associated {
		state = "on"
	}
	TogglesTotal.WithLabelValues(kind, state).Inc()
}

func RecordEvent(typ string, active bool) {
	state := "off"
	if active {
		state = "on"
	}
	EventsConsumed.WithLabelValues(typ, state).Inc()
}

func RecordUpload(folder string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	UploadsTotal.WithLabelValues(folder, result).Inc()
}

// Middleware records RequestsTotal and RequestDuration for every request.
func Middleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := string(c.Method())
		RequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response.StatusCode())).Inc()
		RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

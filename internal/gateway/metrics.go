package gateway

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	flowCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "viaticos_flow_calls_total",
		Help: "Calls to Power Automate flows, labeled by outcome",
	}, []string{"operation", "mode", "outcome"})

	flowCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "viaticos_flow_call_duration_seconds",
		Help:    "Latency of calls to Power Automate flows",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"operation", "mode"})
)

func observe(op, mode string, start time.Time, err error) {
	flowCallDuration.WithLabelValues(op, mode).Observe(time.Since(start).Seconds())
	flowCallsTotal.WithLabelValues(op, mode, outcome(err)).Inc()
}

func outcome(err error) string {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.As(err, &httpErr):
		return "http_" + strconv.Itoa(httpErr.Status)
	case errors.Is(err, ErrRejected):
		return "rejected"
	}
	return "error"
}

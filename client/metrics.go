package client

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	errs "github.com/slackclone/apiclient/client/internal/errors"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slackclone_client",
			Name:      "requests_total",
			Help:      "Requests that reached the transport, by method and status class.",
		},
		[]string{"method", "status"},
	)

	apiErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slackclone_client",
			Name:      "api_errors_total",
			Help:      "Failed exchanges reported to the log, by category.",
		},
		[]string{"category"},
	)

	sessionExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "slackclone_client",
			Name:      "session_expired_total",
			Help:      "401 responses that cleared the stored token.",
		},
	)
)

// statusClass turns 404 into "4xx"; 0 (no response) into "none".
func statusClass(code int) string {
	if code <= 0 {
		return "none"
	}
	return strconv.Itoa(code/100) + "xx"
}

func recordRequest(method string, code int) {
	requestsTotal.WithLabelValues(method, statusClass(code)).Inc()
}

func recordAPIError(c errs.Category) {
	apiErrorsTotal.WithLabelValues(c.String()).Inc()
}

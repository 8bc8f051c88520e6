package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "task_api"

var (
	TasksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "tasks_created_total",
		Help:      "Number of tasks persisted through the API",
	})

	ValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "task_validation_failures_total",
		Help:      "Number of create requests rejected with 422",
	})

	UnauthorizedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "unauthorized_requests_total",
		Help:      "Number of requests rejected by the token guard",
	})
)

func NewHandler() http.Handler {
	return promhttp.Handler()
}

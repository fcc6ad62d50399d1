package metrics

import (
	"time"

	"movie-catalog/internal/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const outcomeOK = "ok"

var (
	ServiceOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_service_operations_total",
		Help: "Total number of catalog service calls by outcome",
	}, []string{"service", "operation", "outcome"})

	ServiceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_service_operation_duration_seconds",
		Help:    "Duration of catalog service calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"service", "operation"})
)

// Observe records one finished service call. The outcome label is "ok" or
// the kind of the returned error.
func Observe(service, operation string, start time.Time, err error) {
	outcome := outcomeOK
	if err != nil {
		outcome = string(apperror.KindOf(err))
	}
	ServiceOperations.WithLabelValues(service, operation, outcome).Inc()
	ServiceDuration.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
}

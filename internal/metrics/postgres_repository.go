// Package metrics exposes application metrics collectors.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

var (
	postgresRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmmarket",
		Subsystem: "postgres_repository",
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"operation", "status"})
	postgresRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "farmmarket",
		Subsystem: "postgres_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"operation", "status"})
)

// PostgresRepository tracks metrics for PostgreSQL repository operations.
type PostgresRepository struct{}

// NewPostgresRepository creates a PostgresRepository metrics collector.
func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

// Observe records duration and status of a repository operation. Not-found and
// conflict outcomes are business results and are labelled separately from errors.
func (m PostgresRepository) Observe(operation string, err error, started time.Time) {
	status := "success"
	switch {
	case err == nil:
	case errors.Is(err, model.ErrNotFound):
		status = "not_found"
	case errors.Is(err, model.ErrConflict):
		status = "conflict"
	default:
		status = "error"
	}

	postgresRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	postgresRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

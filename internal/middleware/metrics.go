package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/s1natex/todos-cli-GO/internal/tasks"
)

// Registry holds the store metrics. It is kept apart from the default
// registry so a textfile dump carries only todos series.
var Registry = prometheus.NewRegistry()

// Prometheus metrics
var (
	storeOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todos_store_operations_total",
			Help: "Total number of store operations",
		},
		[]string{"op", "result"},
	)

	storeOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "todos_store_operation_duration_seconds",
			Help:    "Histogram of store operation durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func init() {
	Registry.MustRegister(storeOpsTotal, storeOpDuration)
}

type metricsRepo struct {
	next tasks.Repository
}

// Metrics records a counter and a duration for each repository call.
func Metrics(next tasks.Repository) tasks.Repository {
	return &metricsRepo{next: next}
}

func (r *metricsRepo) Add(ctx context.Context, description string) (tasks.Task, error) {
	start := time.Now()
	t, err := r.next.Add(ctx, description)
	observe("add", start, err)
	return t, err
}

func (r *metricsRepo) List(ctx context.Context) ([]tasks.Task, error) {
	start := time.Now()
	out, err := r.next.List(ctx)
	observe("list", start, err)
	return out, err
}

func (r *metricsRepo) Update(ctx context.Context, id int64, status bool) (tasks.Task, error) {
	start := time.Now()
	t, err := r.next.Update(ctx, id, status)
	observe("update", start, err)
	return t, err
}

func (r *metricsRepo) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := r.next.Delete(ctx, id)
	observe("delete", start, err)
	return err
}

func observe(op string, start time.Time, err error) {
	storeOpsTotal.WithLabelValues(op, result(err)).Inc()
	storeOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// WriteMetrics dumps the registry in the node_exporter textfile format.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}

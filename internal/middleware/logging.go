package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/s1natex/todos-cli-GO/internal/tasks"
)

type loggingRepo struct {
	next   tasks.Repository
	logger *slog.Logger
}

// OperationLogger logs one store_op event per repository call.
func OperationLogger(logger *slog.Logger) Middleware {
	return func(next tasks.Repository) tasks.Repository {
		return &loggingRepo{next: next, logger: logger}
	}
}

func (r *loggingRepo) Add(ctx context.Context, description string) (tasks.Task, error) {
	start := time.Now()
	t, err := r.next.Add(ctx, description)
	r.log(ctx, "add", start, err, slog.Int64("id", t.ID))
	return t, err
}

func (r *loggingRepo) List(ctx context.Context) ([]tasks.Task, error) {
	start := time.Now()
	out, err := r.next.List(ctx)
	r.log(ctx, "list", start, err, slog.Int("count", len(out)))
	return out, err
}

func (r *loggingRepo) Update(ctx context.Context, id int64, status bool) (tasks.Task, error) {
	start := time.Now()
	t, err := r.next.Update(ctx, id, status)
	r.log(ctx, "update", start, err, slog.Int64("id", id), slog.Bool("status", status))
	return t, err
}

func (r *loggingRepo) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := r.next.Delete(ctx, id)
	r.log(ctx, "delete", start, err, slog.Int64("id", id))
	return err
}

func (r *loggingRepo) log(ctx context.Context, op string, start time.Time, err error, attrs ...slog.Attr) {
	dur := time.Since(start)
	attrs = append(attrs,
		slog.String("op", op),
		slog.String("result", result(err)),
		slog.Float64("duration_ms", float64(dur.Microseconds())/1000.0),
	)
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	r.logger.LogAttrs(ctx, level, "store_op", attrs...)
}

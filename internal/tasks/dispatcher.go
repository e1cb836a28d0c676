// Package tasks runs background work: fire-and-forget jobs submitted by
// request handlers and periodic jobs driven by cron.
package tasks

import (
	"context"
	"fmt"
	"time"

	"ConferenceAPI/internal/logger"

	"github.com/panjf2000/ants/v2"
)

// Func is one unit of background work. It must honour ctx cancellation.
type Func func(ctx context.Context) error

// Dispatcher runs submitted tasks on a bounded goroutine pool. Tasks are
// best effort: a full pool drops the task and pending work is lost on
// shutdown.
type Dispatcher struct {
	pool    *ants.Pool
	timeout time.Duration
}

func NewDispatcher(workers int, timeout time.Duration) (*Dispatcher, error) {
	if workers <= 0 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pool, err := ants.NewPool(workers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(v any) {
			logger.Error("task_panic", map[string]any{"panic": fmt.Sprint(v)})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("task pool: %w", err)
	}
	return &Dispatcher{pool: pool, timeout: timeout}, nil
}

// Submit schedules fn under name and reports whether it was accepted.
func (d *Dispatcher) Submit(name string, fn Func) bool {
	err := d.pool.Submit(func() {
		run(name, d.timeout, fn)
	})
	if err != nil {
		logger.Warn("task_dropped", map[string]any{
			"task":  name,
			"error": err.Error(),
		})
		return false
	}
	return true
}

// Close waits up to wait for running tasks and releases the pool.
func (d *Dispatcher) Close(wait time.Duration) error {
	return d.pool.ReleaseTimeout(wait)
}

func run(name string, timeout time.Duration, fn Func) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	fields := map[string]any{
		"task":        name,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
		if ctx.Err() == context.DeadlineExceeded {
			fields["timeout"] = timeout.String()
		}
		logger.Error("task_failed", fields)
		return
	}
	logger.Debug("task_done", fields)
}

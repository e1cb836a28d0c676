package tasks

import (
	"context"
	"fmt"
	"time"

	"ConferenceAPI/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic jobs.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

func NewScheduler(timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cronLogger{}), cron.WithChain(cron.SkipIfStillRunning(cronLogger{}))),
		timeout: timeout,
	}
}

// Add registers fn under a standard five-field cron spec or a descriptor
// such as "@hourly".
func (s *Scheduler) Add(spec, name string, fn Func) error {
	_, err := s.cron.AddFunc(spec, func() {
		run(name, s.timeout, fn)
	})
	if err != nil {
		return fmt.Errorf("cron %s %q: %w", name, spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("scheduler_started", map[string]any{"jobs": len(s.cron.Entries())})
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Warn("scheduler_stop_timeout", nil)
	}
	logger.Info("scheduler_stopped", nil)
}

// cronLogger routes cron's own messages into the application log.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Debug("cron_"+msg, kvFields(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	fields := kvFields(keysAndValues)
	fields["error"] = err.Error()
	logger.Error("cron_"+msg, fields)
}

func kvFields(kv []any) map[string]any {
	fields := make(map[string]any, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}

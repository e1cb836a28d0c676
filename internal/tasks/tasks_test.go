package tasks

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ConferenceAPI/internal/logger"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func captureLogs(t *testing.T) *syncBuffer {
	t.Helper()
	buf := &syncBuffer{}
	logger.SetOutput(buf)
	t.Cleanup(func() { logger.SetOutput(&bytes.Buffer{}) })
	return buf
}

func TestDispatcherRunsTask(t *testing.T) {
	d, err := NewDispatcher(2, time.Second)
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	defer d.Close(time.Second)

	done := make(chan struct{})
	if !d.Submit("probe", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Errorf("task context has no deadline")
		}
		close(done)
		return nil
	}) {
		t.Fatalf("task rejected")
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("task did not run")
	}
}

func TestDispatcherLogsFailure(t *testing.T) {
	buf := captureLogs(t)
	d, err := NewDispatcher(1, time.Second)
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}

	d.Submit("broken", func(context.Context) error { return errors.New("boom") })
	if err := d.Close(2 * time.Second); err != nil {
		t.Fatalf("Close: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"task_failed"`) || !strings.Contains(out, "boom") {
		t.Fatalf("failure not logged: %s", out)
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	captureLogs(t)
	d, err := NewDispatcher(1, time.Second)
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	release := make(chan struct{})
	started := make(chan struct{})
	d.Submit("blocker", func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started
	if d.Submit("extra", func(context.Context) error { return nil }) {
		t.Fatalf("expected second task to be dropped")
	}
	close(release)
	_ = d.Close(time.Second)
}

func TestLogMailer(t *testing.T) {
	buf := captureLogs(t)
	task := MailTask(LogMailer{From: "noreply@example.com"}, "ann@example.com", "Hi", "body text")
	if err := task(context.Background()); err != nil {
		t.Fatalf("mail task: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"mail_sent"`, "ann@example.com", "body text"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %q: %s", want, out)
		}
	}
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	s := NewScheduler(time.Second)
	if err := s.Add("not a spec", "bad", func(context.Context) error { return nil }); err == nil {
		t.Fatalf("expected invalid spec error")
	}
	if err := s.Add("@hourly", "ok", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("Add: %v", err)
	}
}

func TestSchedulerRunsJob(t *testing.T) {
	s := NewScheduler(time.Second)
	ran := make(chan struct{}, 1)
	if err := s.Add("@every 1s", "tick", func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	s.Start()
	defer s.Stop(context.Background())

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatalf("job did not run")
	}
}

package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
	"go.uber.org/zap/zaptest"
)

type countingRefresher struct {
	calls       int32
	noDeadlines int32
	phase       models.Phase
}

func (c *countingRefresher) Refresh(ctx context.Context) models.Status {
	atomic.AddInt32(&c.calls, 1)
	if _, ok := ctx.Deadline(); !ok {
		atomic.AddInt32(&c.noDeadlines, 1)
	}
	return models.Status{Phase: c.phase}
}

func TestRunOnce(t *testing.T) {
	r := &countingRefresher{phase: models.PhaseReady}
	s := NewScheduler(r, "@every 1h", zaptest.NewLogger(t))

	s.RunOnce()

	if atomic.LoadInt32(&r.calls) != 1 {
		t.Fatalf("Expected one refresh, got %d", r.calls)
	}
	if atomic.LoadInt32(&r.noDeadlines) != 0 {
		t.Error("Expected refresh to run with a deadline")
	}
	status := s.GetStatus()
	if status["last_phase"] != models.PhaseReady {
		t.Errorf("Expected last phase ready, got %v", status["last_phase"])
	}
	if status["running"] != false {
		t.Error("Expected scheduler not running")
	}
}

func TestStart_InvalidSpec(t *testing.T) {
	s := NewScheduler(&countingRefresher{}, "not a schedule", zaptest.NewLogger(t))
	if err := s.Start(); err == nil {
		t.Fatal("Expected an error for an invalid schedule")
	}
	s.Stop()
}

func TestStartStop(t *testing.T) {
	r := &countingRefresher{phase: models.PhaseFailed}
	s := NewScheduler(r, "@every 1s", zaptest.NewLogger(t))

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Second Start failed: %v", err)
	}
	if _, ok := s.GetStatus()["next_run"]; !ok {
		t.Error("Expected next_run while running")
	}

	deadline := time.Now().Add(5 * time.Second)
	for atomic.LoadInt32(&r.calls) == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	s.Stop()
	s.Stop()

	if atomic.LoadInt32(&r.calls) == 0 {
		t.Fatal("Expected at least one scheduled refresh")
	}
	if s.GetStatus()["running"] != false {
		t.Error("Expected scheduler stopped")
	}
}

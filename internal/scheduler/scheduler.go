package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher is the part of the session the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context) models.Status
}

// Scheduler re-runs the session's last query on a cron schedule. It is a
// convenience for long-running displays; runs never overlap.
type Scheduler struct {
	cron      *cron.Cron
	session   Refresher
	logger    *zap.Logger
	spec      string
	timeout   time.Duration
	mu        sync.Mutex
	running   bool
	lastRun   time.Time
	lastPhase models.Phase
}

func NewScheduler(session Refresher, spec string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		session: session,
		logger:  logger,
		spec:    spec,
		timeout: 60 * time.Second,
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.RunOnce); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("Scheduler started", zap.String("schedule", s.spec))
	return nil
}

// RunOnce performs a single refresh; cron calls it on every tick.
func (s *Scheduler) RunOnce() {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	status := s.session.Refresh(ctx)

	s.mu.Lock()
	s.lastRun = startTime
	s.lastPhase = status.Phase
	s.mu.Unlock()

	s.logger.Info("Scheduled refresh finished",
		zap.String("phase", string(status.Phase)),
		zap.Duration("duration", time.Since(startTime)))
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping scheduler")
	// waits for an in-flight refresh, which takes s.mu itself
	<-s.cron.Stop().Done()
}

func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":    s.running,
		"schedule":   s.spec,
		"last_run":   s.lastRun,
		"last_phase": s.lastPhase,
	}
	if s.running {
		if entries := s.cron.Entries(); len(entries) > 0 {
			status["next_run"] = entries[0].Next
		}
	}
	return status
}

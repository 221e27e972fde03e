package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"GroveKeeper/internal/config"
	"GroveKeeper/internal/dayclock"
	"GroveKeeper/internal/engine"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the two periodic processes: the decay tick and the
// survival monitor. Both are checked at minute granularity; the decay
// tick only does work once the configured interval has elapsed, so the
// interval can change at runtime without touching the cron entries.
type Scheduler struct {
	Cron   *cron.Cron
	Engine *engine.Engine
	Cfg    *config.Store
	Ctx    context.Context

	mu            sync.Mutex
	lastDecayTick time.Time
	lastSurvival  dayclock.Stamp

	now func() time.Time
}

// NewScheduler creates a Scheduler. The survival monitor starts armed
// for the next day rollover: the day running at construction counts as
// already processed, so a mid-day restart never penalizes anyone twice.
func NewScheduler(ctx context.Context, eng *engine.Engine, cfg *config.Store) *Scheduler {
	s := &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Engine: eng,
		Cfg:    cfg,
		Ctx:    ctx,
		now:    time.Now,
	}
	s.lastDecayTick = s.now()
	s.lastSurvival = eng.LocalToday()
	return s
}

// RegisterAll registers the minute checks.
func (s *Scheduler) RegisterAll() error {
	if _, err := s.Cron.AddFunc("0 * * * * *", s.decayCheck); err != nil {
		return fmt.Errorf("register decay check: %w", err)
	}
	if _, err := s.Cron.AddFunc("30 * * * * *", s.survivalCheck); err != nil {
		return fmt.Errorf("register survival check: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// decayCheck runs every minute but applies decay only when the
// configured interval has elapsed since the last applied tick.
func (s *Scheduler) decayCheck() {
	s.mu.Lock()
	cfg := s.Cfg.Snapshot()
	interval := time.Duration(cfg.Decay.DecreaseIntervalMinutes) * time.Minute
	now := s.now()
	if now.Sub(s.lastDecayTick) < interval {
		s.mu.Unlock()
		return
	}
	s.lastDecayTick = now
	s.mu.Unlock()

	report := s.Engine.DecayTick()
	log.Printf("[INFO] decay tick: %d active, %d died, %d warned",
		report.Active, len(report.Died), len(report.Warned))
}

// survivalCheck runs every minute and processes the activity quota once
// per local calendar day, on the first check after midnight. Repeated
// checks within the same day are no-ops.
func (s *Scheduler) survivalCheck() {
	today := s.Engine.LocalToday()

	s.mu.Lock()
	if today == s.lastSurvival {
		s.mu.Unlock()
		return
	}
	s.lastSurvival = today
	s.mu.Unlock()

	removed := s.Engine.EnforceActivityQuota()
	if len(removed) > 0 {
		log.Printf("[INFO] survival check for %s: removed %d participants", today, len(removed))
	} else {
		log.Printf("[INFO] survival check for %s: all participants met the quota", today)
	}
}

package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store guards a live Config for hot reload. Operators change settings
// at runtime through the named setters; every change is validated and
// written back to the YAML file before it takes effect. Components read
// through Snapshot on each use, so a change applies without a restart.
type Store struct {
	mu   sync.RWMutex
	path string
	cfg  *Config
}

// NewStore wraps an already loaded and validated Config.
func NewStore(path string, cfg *Config) *Store {
	return &Store{path: path, cfg: cfg}
}

// Snapshot returns a copy of the current configuration.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.cfg
}

// Reload re-reads the YAML file and swaps in the result if it validates.
func (s *Store) Reload() error {
	cfg, err := Load(s.path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("reloaded config invalid: %w", err)
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

func (s *Store) apply(mutate func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.cfg
	mutate(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	if err := save(s.path, &next); err != nil {
		return fmt.Errorf("persist config: %w", err)
	}
	s.cfg = &next
	return nil
}

// SetMaintainCost updates the cost of a maintain operation.
func (s *Store) SetMaintainCost(v int64) error {
	return s.apply(func(c *Config) { c.Economy.MaintainCost = v })
}

// SetMaxResource updates the resource meter ceiling.
func (s *Store) SetMaxResource(v float64) error {
	return s.apply(func(c *Config) { c.Economy.MaxResource = v })
}

// SetDecreaseAmount updates the per-tick decay amount.
func (s *Store) SetDecreaseAmount(v float64) error {
	return s.apply(func(c *Config) { c.Decay.DecreaseAmount = v })
}

// SetDecreaseIntervalMinutes updates the decay interval. The running
// scheduler picks this up on its next check.
func (s *Store) SetDecreaseIntervalMinutes(v int) error {
	return s.apply(func(c *Config) { c.Decay.DecreaseIntervalMinutes = v })
}

// SetActivityReward updates the per-activity points and currency grant.
func (s *Store) SetActivityReward(points, currency int64) error {
	return s.apply(func(c *Config) {
		c.Economy.ActivityRewardPoints = points
		c.Economy.ActivityRewardCurrency = currency
	})
}

// SetActivityCooldownSeconds updates the reward cooldown.
func (s *Store) SetActivityCooldownSeconds(v int) error {
	return s.apply(func(c *Config) { c.Economy.ActivityCooldownSeconds = v })
}

// SetDailyTransferCap updates the per-day transfer limit.
func (s *Store) SetDailyTransferCap(v int64) error {
	return s.apply(func(c *Config) { c.Economy.DailyTransferCap = v })
}

// SetMinDailyActivityCount updates the survival quota.
func (s *Store) SetMinDailyActivityCount(v int) error {
	return s.apply(func(c *Config) { c.Survival.MinDailyActivityCount = v })
}

// SetLowResourceWarnThreshold updates the warning level.
func (s *Store) SetLowResourceWarnThreshold(v float64) error {
	return s.apply(func(c *Config) { c.Decay.LowResourceWarnThreshold = v })
}

// SetClaimSchedule updates the daily-claim grant parameters.
func (s *Store) SetClaimSchedule(basePoints, baseCurrency, bonusPoints, bonusCurrency int64, streakCap int) error {
	return s.apply(func(c *Config) {
		c.Claim.BasePoints = basePoints
		c.Claim.BaseCurrency = baseCurrency
		c.Claim.StreakBonusPoints = bonusPoints
		c.Claim.StreakBonusCurrency = bonusCurrency
		c.Claim.StreakCap = streakCap
	})
}

func save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write config temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

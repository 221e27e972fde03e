package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all engine configuration.
type Config struct {
	Economy struct {
		MaxResource             float64 `yaml:"max_resource"`
		MaintainCost            int64   `yaml:"maintain_cost"`
		ActivityRewardPoints    int64   `yaml:"activity_reward_points"`
		ActivityRewardCurrency  int64   `yaml:"activity_reward_currency"`
		ActivityCooldownSeconds int     `yaml:"activity_cooldown_seconds"`
		DailyTransferCap        int64   `yaml:"daily_transfer_cap"`
	} `yaml:"economy"`
	Claim struct {
		BasePoints          int64 `yaml:"base_points"`
		BaseCurrency        int64 `yaml:"base_currency"`
		StreakBonusPoints   int64 `yaml:"streak_bonus_points"`
		StreakBonusCurrency int64 `yaml:"streak_bonus_currency"`
		StreakCap           int   `yaml:"streak_cap"`
	} `yaml:"claim"`
	Decay struct {
		DecreaseAmount           float64 `yaml:"decrease_amount"`
		DecreaseIntervalMinutes  int     `yaml:"decrease_interval_minutes"`
		LowResourceWarnThreshold float64 `yaml:"low_resource_warn_threshold"`
	} `yaml:"decay"`
	Survival struct {
		MinDailyActivityCount int    `yaml:"min_daily_activity_count"`
		LocalTimeZone         string `yaml:"local_time_zone"`
	} `yaml:"survival"`
	Ledger struct {
		// Day boundary for transfer caps, daily claims and the
		// leaderboard refresh throttle. Kept separate from the
		// survival zone on purpose.
		TimeZone string `yaml:"time_zone"`
	} `yaml:"ledger"`
	Storage struct {
		DataFile   string `yaml:"data_file"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"storage"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("GROVE_DATA_FILE"); v != "" {
		cfg.Storage.DataFile = v
	}
	if v := os.Getenv("GROVE_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("GROVE_LOCAL_TZ"); v != "" {
		cfg.Survival.LocalTimeZone = v
	}
	if v := os.Getenv("GROVE_LEDGER_TZ"); v != "" {
		cfg.Ledger.TimeZone = v
	}
	if v := os.Getenv("GROVE_MAINTAIN_COST"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Economy.MaintainCost = n
		}
	}
	if v := os.Getenv("GROVE_DECAY_INTERVAL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Decay.DecreaseIntervalMinutes = n
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Economy.MaxResource == 0 {
		cfg.Economy.MaxResource = 100
	}
	if cfg.Economy.MaintainCost == 0 {
		cfg.Economy.MaintainCost = 10
	}
	if cfg.Economy.ActivityRewardPoints == 0 {
		cfg.Economy.ActivityRewardPoints = 5
	}
	if cfg.Economy.ActivityRewardCurrency == 0 {
		cfg.Economy.ActivityRewardCurrency = 2
	}
	if cfg.Economy.ActivityCooldownSeconds == 0 {
		cfg.Economy.ActivityCooldownSeconds = 60
	}
	if cfg.Economy.DailyTransferCap == 0 {
		cfg.Economy.DailyTransferCap = 100
	}
	if cfg.Claim.BasePoints == 0 {
		cfg.Claim.BasePoints = 10
	}
	if cfg.Claim.BaseCurrency == 0 {
		cfg.Claim.BaseCurrency = 5
	}
	if cfg.Claim.StreakBonusPoints == 0 {
		cfg.Claim.StreakBonusPoints = 2
	}
	if cfg.Claim.StreakBonusCurrency == 0 {
		cfg.Claim.StreakBonusCurrency = 1
	}
	if cfg.Claim.StreakCap == 0 {
		cfg.Claim.StreakCap = 7
	}
	if cfg.Decay.DecreaseAmount == 0 {
		cfg.Decay.DecreaseAmount = 1
	}
	if cfg.Decay.DecreaseIntervalMinutes == 0 {
		cfg.Decay.DecreaseIntervalMinutes = 60
	}
	if cfg.Decay.LowResourceWarnThreshold == 0 {
		cfg.Decay.LowResourceWarnThreshold = 20
	}
	if cfg.Survival.MinDailyActivityCount == 0 {
		cfg.Survival.MinDailyActivityCount = 1
	}
	if cfg.Storage.DataFile == "" {
		cfg.Storage.DataFile = "data/participants.json"
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/grove_keeper.db"
	}
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	if c.Economy.MaxResource <= 0 {
		return fmt.Errorf("economy.max_resource must be positive")
	}
	if c.Economy.MaintainCost < 0 {
		return fmt.Errorf("economy.maintain_cost must not be negative")
	}
	if c.Economy.DailyTransferCap <= 0 {
		return fmt.Errorf("economy.daily_transfer_cap must be positive")
	}
	if c.Decay.DecreaseAmount <= 0 {
		return fmt.Errorf("decay.decrease_amount must be positive")
	}
	if c.Decay.DecreaseIntervalMinutes <= 0 {
		return fmt.Errorf("decay.decrease_interval_minutes must be positive")
	}
	if c.Decay.LowResourceWarnThreshold < 0 || c.Decay.LowResourceWarnThreshold > c.Economy.MaxResource {
		return fmt.Errorf("decay.low_resource_warn_threshold must be within [0, max_resource]")
	}
	if c.Claim.StreakCap <= 0 {
		return fmt.Errorf("claim.streak_cap must be positive")
	}
	if c.Survival.MinDailyActivityCount < 0 {
		return fmt.Errorf("survival.min_daily_activity_count must not be negative")
	}
	if c.Storage.DataFile == "" {
		return fmt.Errorf("storage.data_file is required")
	}
	return nil
}

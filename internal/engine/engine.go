package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"GroveKeeper/internal/config"
	"GroveKeeper/internal/dayclock"
	"GroveKeeper/internal/leaderboard"
	"GroveKeeper/internal/model"
	"GroveKeeper/internal/notifier"
	"GroveKeeper/internal/recorder"
	"GroveKeeper/internal/store"
)

// Engine owns the in-memory participant set and every mutation path
// into it. Operations and scheduler ticks serialize on one mutex, so an
// entity is never observed mid-mutation. Each operation mutates memory,
// persists, and reports a typed status; a failed save is surfaced to
// the caller while the in-memory mutation stands.
type Engine struct {
	mu           sync.Mutex
	participants map[string]*model.Participant

	store *store.FileStore
	cfg   *config.Store
	rec   recorder.Recorder
	sink  notifier.Sink

	// Two day boundaries on purpose: activity quotas follow the
	// community's local midnight, transfer/claim/refresh windows
	// follow the ledger zone (UTC unless configured otherwise).
	local    *dayclock.Clock
	ledger   *dayclock.Clock
	localTZ  string
	ledgerTZ string

	now func() time.Time
}

// New builds an Engine, loading the participant set from the store. An
// unreadable store is reported and replaced by an empty set rather than
// aborting startup.
func New(cfgStore *config.Store, fs *store.FileStore, rec recorder.Recorder, sink notifier.Sink) (*Engine, error) {
	cfg := cfgStore.Snapshot()

	local, err := dayclock.New(cfg.Survival.LocalTimeZone)
	if err != nil {
		return nil, fmt.Errorf("survival clock: %w", err)
	}
	ledger, err := dayclock.New(cfg.Ledger.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("ledger clock: %w", err)
	}

	participants, err := fs.Load()
	if err != nil {
		log.Printf("[WARN] participant store unreadable, starting empty: %v", err)
		participants = map[string]*model.Participant{}
	}
	log.Printf("[INFO] loaded %d participants", len(participants))

	return &Engine{
		participants: participants,
		store:        fs,
		cfg:          cfgStore,
		rec:          rec,
		sink:         sink,
		local:        local,
		ledger:       ledger,
		localTZ:      cfg.Survival.LocalTimeZone,
		ledgerTZ:     cfg.Ledger.TimeZone,
		now:          time.Now,
	}, nil
}

// refreshClocks rebuilds the day clocks when a hot config reload has
// changed a time zone name. Bad names keep the previous zone.
func (e *Engine) refreshClocks(cfg *config.Config) {
	if cfg.Survival.LocalTimeZone != e.localTZ {
		if c, err := dayclock.New(cfg.Survival.LocalTimeZone); err == nil {
			e.local, e.localTZ = c, cfg.Survival.LocalTimeZone
		} else {
			log.Printf("[WARN] invalid local time zone, keeping %q: %v", e.localTZ, err)
		}
	}
	if cfg.Ledger.TimeZone != e.ledgerTZ {
		if c, err := dayclock.New(cfg.Ledger.TimeZone); err == nil {
			e.ledger, e.ledgerTZ = c, cfg.Ledger.TimeZone
		} else {
			log.Printf("[WARN] invalid ledger time zone, keeping %q: %v", e.ledgerTZ, err)
		}
	}
}

func (e *Engine) persist() error {
	return e.store.Save(e.participants)
}

func (e *Engine) recordOp(ev *recorder.OperationEvent) {
	if err := e.rec.RecordOperation(ev); err != nil {
		log.Printf("[ERROR] record operation: %v", err)
	}
}

func (e *Engine) recordLifecycle(ev *recorder.LifecycleEvent) {
	if err := e.rec.RecordLifecycle(ev); err != nil {
		log.Printf("[ERROR] record lifecycle: %v", err)
	}
}

// Enroll creates a participant with a full resource meter and the age
// clock started now.
func (e *Engine) Enroll(id string) (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.participants[id]; ok {
		return StatusAlreadyEnrolled, nil
	}
	cfg := e.cfg.Snapshot()
	e.participants[id] = model.NewParticipant(id, cfg.Economy.MaxResource, e.now())

	e.recordLifecycle(&recorder.LifecycleEvent{ParticipantID: id, Kind: model.EventEnrolled})
	return StatusEnrolled, e.persist()
}

// Maintain spends currency to refill the participant's resource meter.
func (e *Engine) Maintain(id string) (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.participants[id]
	if !ok {
		return StatusNotFound, nil
	}
	cfg := e.cfg.Snapshot()
	if !p.Maintain(cfg.Economy.MaintainCost, cfg.Economy.MaxResource) {
		e.recordOp(&recorder.OperationEvent{ParticipantID: id, Operation: "MAINTAIN", Result: string(StatusInsufficientFunds)})
		return StatusInsufficientFunds, nil
	}

	e.recordOp(&recorder.OperationEvent{
		ParticipantID: id, Operation: "MAINTAIN", Result: string(StatusMaintained),
		Currency: -cfg.Economy.MaintainCost,
	})
	return StatusMaintained, e.persist()
}

// Transfer moves currency between two participants, charged against the
// sender's daily cap in the ledger zone.
func (e *Engine) Transfer(senderID, receiverID string, amount int64) (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if amount <= 0 {
		return StatusInvalidAmount, nil
	}
	if senderID == receiverID {
		return StatusSelfTransfer, nil
	}
	sender, ok := e.participants[senderID]
	if !ok {
		return StatusNotFound, nil
	}
	receiver, ok := e.participants[receiverID]
	if !ok {
		return StatusRecipientNotFound, nil
	}

	cfg := e.cfg.Snapshot()
	e.refreshClocks(&cfg)
	today := e.ledger.Today(e.now())

	if !sender.CanTransfer(amount, cfg.Economy.DailyTransferCap, today) {
		status := StatusLimitExceeded
		if sender.Currency < amount {
			status = StatusInsufficientFunds
		}
		e.recordOp(&recorder.OperationEvent{
			ParticipantID: senderID, Operation: "TRANSFER", Result: string(status),
			Currency: amount, Counterparty: receiverID,
		})
		return status, nil
	}

	sender.ApplyTransferOut(amount, today)
	receiver.ApplyTransferIn(amount)

	e.recordOp(&recorder.OperationEvent{
		ParticipantID: senderID, Operation: "TRANSFER", Result: string(StatusTransferred),
		Currency: amount, Counterparty: receiverID,
	})
	return StatusTransferred, e.persist()
}

// ClaimDaily grants the once-per-day reward. Consecutive-day claims
// grow the streak; the bonus is capped at the configured streak cap
// while the streak itself keeps counting.
func (e *Engine) ClaimDaily(id string) (ClaimOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.participants[id]
	if !ok {
		return ClaimOutcome{Status: StatusNotFound}, nil
	}

	cfg := e.cfg.Snapshot()
	e.refreshClocks(&cfg)
	now := e.now()
	today := e.ledger.Today(now)

	if p.LastClaimDay == today {
		return ClaimOutcome{Status: StatusAlreadyClaimed, Streak: p.ClaimStreak}, nil
	}

	if p.LastClaimDay == e.ledger.Yesterday(now) {
		p.ClaimStreak++
	} else {
		p.ClaimStreak = 1
	}
	p.LastClaimDay = today

	bonusSteps := int64(p.ClaimStreak)
	if ceiling := int64(cfg.Claim.StreakCap); bonusSteps > ceiling {
		bonusSteps = ceiling
	}
	points := cfg.Claim.BasePoints + cfg.Claim.StreakBonusPoints*bonusSteps
	currency := cfg.Claim.BaseCurrency + cfg.Claim.StreakBonusCurrency*bonusSteps
	p.GrantReward(points, currency)

	e.sink.Claimed(id, p.ClaimStreak, points, currency)
	e.recordOp(&recorder.OperationEvent{
		ParticipantID: id, Operation: "CLAIM", Result: string(StatusClaimed),
		Points: points, Currency: currency,
	})
	e.recordLifecycle(&recorder.LifecycleEvent{
		ParticipantID: id, Kind: model.EventClaimed,
		Detail: fmt.Sprintf("streak=%d", p.ClaimStreak),
	})

	out := ClaimOutcome{Status: StatusClaimed, Streak: p.ClaimStreak, Points: points, Currency: currency}
	return out, e.persist()
}

// RecordActivity grants the activity reward and advances the local-day
// activity counter. Within the cooldown window it is a no-op.
func (e *Engine) RecordActivity(id string) (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.participants[id]
	if !ok {
		return StatusNotFound, nil
	}

	cfg := e.cfg.Snapshot()
	e.refreshClocks(&cfg)
	now := e.now()

	if p.OnCooldown(now, time.Duration(cfg.Economy.ActivityCooldownSeconds)*time.Second) {
		return StatusOnCooldown, nil
	}

	p.GrantReward(cfg.Economy.ActivityRewardPoints, cfg.Economy.ActivityRewardCurrency)
	p.BumpActivity(now, e.local.Today(now))

	e.recordOp(&recorder.OperationEvent{
		ParticipantID: id, Operation: "ACTIVITY", Result: string(StatusRewarded),
		Points: cfg.Economy.ActivityRewardPoints, Currency: cfg.Economy.ActivityRewardCurrency,
	})
	return StatusRewarded, e.persist()
}

// RefreshLeaderboard gates the per-participant refresh action to once
// per ledger day.
func (e *Engine) RefreshLeaderboard(id string) (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.participants[id]
	if !ok {
		return StatusNotFound, nil
	}

	cfg := e.cfg.Snapshot()
	e.refreshClocks(&cfg)
	today := e.ledger.Today(e.now())

	if p.LastRefreshDay == today {
		return StatusAlreadyRefreshed, nil
	}
	p.LastRefreshDay = today

	e.recordOp(&recorder.OperationEvent{ParticipantID: id, Operation: "REFRESH", Result: string(StatusRefreshed)})
	return StatusRefreshed, e.persist()
}

// Revive refills a participant's resource meter and restarts the age
// clock, keeping currency and points.
func (e *Engine) Revive(id string) (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.participants[id]
	if !ok {
		return StatusNotFound, nil
	}
	cfg := e.cfg.Snapshot()
	p.Revive(cfg.Economy.MaxResource, e.now())

	e.sink.Revived(id)
	e.recordLifecycle(&recorder.LifecycleEvent{ParticipantID: id, Kind: model.EventRevived})
	return StatusRevived, e.persist()
}

// Remove deletes a participant whose membership was revoked outside the
// engine (the collaborator observed a role or membership change).
func (e *Engine) Remove(id string, reason model.RemovalReason) (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.participants[id]; !ok {
		return StatusNotFound, nil
	}
	delete(e.participants, id)

	e.recordLifecycle(&recorder.LifecycleEvent{
		ParticipantID: id, Kind: model.EventRemoved, Detail: string(reason),
	})
	return StatusRemoved, e.persist()
}

// SetChannel stores the collaborator's channel handle for a participant.
func (e *Engine) SetChannel(id, channelID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.participants[id]
	if !ok {
		return fmt.Errorf("participant %s not found", id)
	}
	p.ChannelID = channelID
	return e.persist()
}

// Get returns a copy of one participant's record.
func (e *Engine) Get(id string) (model.Participant, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.participants[id]
	if !ok {
		return model.Participant{}, false
	}
	return *p, true
}

// Count returns the size of the active set.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.participants)
}

// Standings ranks the active set for display.
func (e *Engine) Standings(limit int) []leaderboard.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	entries := make([]leaderboard.Entry, 0, len(e.participants))
	for _, p := range e.participants {
		entries = append(entries, leaderboard.Entry{
			ID:            p.ID,
			Points:        p.Points,
			Level:         p.LevelTier(),
			AgeDays:       p.AgeInDays(now),
			Currency:      p.Currency,
			ResourceLevel: p.ResourceLevel,
		})
	}
	return leaderboard.Rank(entries, limit)
}

// LocalToday returns the current calendar day in the survival zone.
// The scheduler uses it to detect day rollover.
func (e *Engine) LocalToday() dayclock.Stamp {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := e.cfg.Snapshot()
	e.refreshClocks(&cfg)
	return e.local.Today(e.now())
}

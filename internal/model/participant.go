package model

import (
	"math"
	"time"

	"GroveKeeper/internal/dayclock"
)

// Participant is the per-user economy record. All methods are pure state
// transitions over the struct's own fields; persistence and event
// emission belong to the engine.
type Participant struct {
	ID string `json:"-"`

	Currency int64 `json:"currency"`
	Points   int64 `json:"points"`

	ResourceLevel float64   `json:"resource_level"`
	ResourceStart time.Time `json:"resource_start"`

	LastActivity time.Time `json:"last_activity"`

	TransferredToday int64          `json:"transferred_today"`
	TransferDay      dayclock.Stamp `json:"transfer_day"`

	LastClaimDay dayclock.Stamp `json:"last_claim_day"`
	ClaimStreak  int            `json:"claim_streak"`

	LastRefreshDay dayclock.Stamp `json:"last_refresh_day"`

	ActivityCountToday int64          `json:"activity_count_today"`
	ActivityDay        dayclock.Stamp `json:"activity_day"`

	// ChannelID is the collaborator layer's per-participant channel
	// handle. Opaque to the engine, persisted so the collaborator can
	// recover it after a restart.
	ChannelID string `json:"channel_id,omitempty"`
}

// NewParticipant creates a fresh record with a full resource meter and
// the age clock started at now.
func NewParticipant(id string, maxResource float64, now time.Time) *Participant {
	return &Participant{
		ID:            id,
		ResourceLevel: maxResource,
		ResourceStart: now,
	}
}

// GrantReward adds points and currency. Points never decrease; callers
// pass non-negative deltas.
func (p *Participant) GrantReward(points, currency int64) {
	p.Points += points
	p.Currency += currency
}

// CanAfford reports whether the balance covers cost.
func (p *Participant) CanAfford(cost int64) bool {
	return p.Currency >= cost
}

// CanTransfer reports whether amount can be sent today. Normalizes the
// daily marker first so a stale counter never blocks a fresh day.
func (p *Participant) CanTransfer(amount, dailyCap int64, today dayclock.Stamp) bool {
	dayclock.Normalize(&p.TransferDay, &p.TransferredToday, today)
	return amount > 0 && p.Currency >= amount && p.TransferredToday+amount <= dailyCap
}

// ApplyTransferOut debits the sender and charges the daily counter.
// Caller must have validated via CanTransfer.
func (p *Participant) ApplyTransferOut(amount int64, today dayclock.Stamp) {
	dayclock.Normalize(&p.TransferDay, &p.TransferredToday, today)
	p.Currency -= amount
	p.TransferredToday += amount
}

// ApplyTransferIn credits the receiver.
func (p *Participant) ApplyTransferIn(amount int64) {
	p.Currency += amount
}

// Maintain debits cost and refills the resource meter. Returns false
// with no effect when the balance is short.
func (p *Participant) Maintain(cost int64, maxResource float64) bool {
	if p.Currency < cost {
		return false
	}
	p.Currency -= cost
	p.ResourceLevel = maxResource
	return true
}

// Decay lowers the resource meter. The level may go non-positive here;
// the decay scheduler treats <= 0 as dead and removes the record.
func (p *Participant) Decay(amount float64) {
	p.ResourceLevel -= amount
}

// IsAlive reports whether any resource remains.
func (p *Participant) IsAlive() bool {
	return p.ResourceLevel > 0
}

// Revive refills the resource meter and restarts the age clock.
// Currency and points survive across revivals.
func (p *Participant) Revive(maxResource float64, now time.Time) {
	p.ResourceLevel = maxResource
	p.ResourceStart = now
}

// AgeInDays returns the elapsed time since creation or last revival.
func (p *Participant) AgeInDays(now time.Time) float64 {
	return now.Sub(p.ResourceStart).Seconds() / 86400
}

// LevelTier maps accumulated points onto a display level: sub-linear,
// strictly increasing, starting at 1.
func (p *Participant) LevelTier() int {
	return int(math.Sqrt(float64(p.Points)/10)) + 1
}

// BumpActivity advances the cooldown clock and the local-day activity
// counter used by the survival monitor.
func (p *Participant) BumpActivity(now time.Time, today dayclock.Stamp) {
	p.LastActivity = now
	dayclock.Normalize(&p.ActivityDay, &p.ActivityCountToday, today)
	p.ActivityCountToday++
}

// OnCooldown reports whether an activity reward was granted too
// recently for another one.
func (p *Participant) OnCooldown(now time.Time, cooldown time.Duration) bool {
	return now.Sub(p.LastActivity) < cooldown
}

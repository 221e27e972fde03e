package model

import (
	"testing"
	"time"

	"GroveKeeper/internal/dayclock"
)

func TestMaintain_Affordability(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p := NewParticipant("u1", 100, now)
	p.Currency = 5
	p.ResourceLevel = 40

	if p.Maintain(10, 100) {
		t.Fatal("maintain should fail with currency 5 and cost 10")
	}
	if p.Currency != 5 {
		t.Errorf("failed maintain must not touch currency, got %d", p.Currency)
	}
	if p.ResourceLevel != 40 {
		t.Errorf("failed maintain must not touch resource, got %.1f", p.ResourceLevel)
	}

	p.Currency = 15
	if !p.Maintain(10, 100) {
		t.Fatal("maintain should succeed with currency 15 and cost 10")
	}
	if p.Currency != 5 {
		t.Errorf("expected currency 5 after maintain, got %d", p.Currency)
	}
	if p.ResourceLevel != 100 {
		t.Errorf("expected resource refilled to 100, got %.1f", p.ResourceLevel)
	}
}

func TestCanTransfer_DailyCap(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	today := dayclock.Stamp("2025-06-01")

	p := NewParticipant("u1", 100, now)
	p.Currency = 500
	p.TransferDay = today
	p.TransferredToday = 80

	if p.CanTransfer(30, 100, today) {
		t.Error("sending 30 with 80 already sent should exceed cap 100")
	}
	if !p.CanTransfer(20, 100, today) {
		t.Error("sending 20 with 80 already sent should be allowed at cap 100")
	}

	p.ApplyTransferOut(20, today)
	if p.TransferredToday != 100 {
		t.Errorf("expected transferredToday 100, got %d", p.TransferredToday)
	}
	if p.Currency != 480 {
		t.Errorf("expected currency 480, got %d", p.Currency)
	}
}

func TestCanTransfer_StaleMarkerResets(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p := NewParticipant("u1", 100, now)
	p.Currency = 50
	p.TransferDay = dayclock.Stamp("2025-05-31")
	p.TransferredToday = 100

	// New day: yesterday's total must not block today's send.
	if !p.CanTransfer(50, 100, dayclock.Stamp("2025-06-01")) {
		t.Fatal("stale marker should reset before the cap check")
	}
	if p.TransferredToday != 0 {
		t.Errorf("expected counter reset, got %d", p.TransferredToday)
	}
}

func TestCanTransfer_Rejections(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	today := dayclock.Stamp("2025-06-01")

	p := NewParticipant("u1", 100, now)
	p.Currency = 10

	tests := []struct {
		name   string
		amount int64
		want   bool
	}{
		{"zero amount", 0, false},
		{"negative amount", -5, false},
		{"more than balance", 11, false},
		{"exact balance", 10, true},
	}
	for _, tt := range tests {
		if got := p.CanTransfer(tt.amount, 100, today); got != tt.want {
			t.Errorf("%s: CanTransfer(%d) = %v, want %v", tt.name, tt.amount, got, tt.want)
		}
	}
}

func TestDecay_DeathBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p := NewParticipant("u1", 100, now)
	p.ResourceLevel = 1.5

	p.Decay(1)
	if !p.IsAlive() {
		t.Fatal("0.5 water should still be alive")
	}
	p.Decay(1)
	if p.IsAlive() {
		t.Fatal("non-positive water must be dead")
	}
}

func TestLevelTier_Monotonic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewParticipant("u1", 100, now)

	tests := []struct {
		points int64
		level  int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{39, 2},
		{40, 3},
		{1000, 11},
	}
	prev := 0
	for _, tt := range tests {
		p.Points = tt.points
		got := p.LevelTier()
		if got != tt.level {
			t.Errorf("points %d: expected level %d, got %d", tt.points, tt.level, got)
		}
		if got < prev {
			t.Errorf("level must not decrease with points, %d -> %d", prev, got)
		}
		prev = got
	}
}

func TestAgeInDays(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := NewParticipant("u1", 100, start)

	if age := p.AgeInDays(start.Add(36 * time.Hour)); age != 1.5 {
		t.Errorf("expected age 1.5 days, got %.2f", age)
	}

	p.Revive(100, start.Add(48*time.Hour))
	if age := p.AgeInDays(start.Add(48 * time.Hour)); age != 0 {
		t.Errorf("revive must restart the age clock, got %.2f", age)
	}
}

func TestBumpActivity_NewDayResets(t *testing.T) {
	now := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	p := NewParticipant("u1", 100, now)

	p.BumpActivity(now, dayclock.Stamp("2025-06-01"))
	p.BumpActivity(now.Add(time.Minute), dayclock.Stamp("2025-06-01"))
	if p.ActivityCountToday != 2 {
		t.Fatalf("expected 2 activities, got %d", p.ActivityCountToday)
	}

	next := now.Add(2 * time.Minute)
	p.BumpActivity(next, dayclock.Stamp("2025-06-02"))
	if p.ActivityCountToday != 1 {
		t.Errorf("new day should reset the counter, got %d", p.ActivityCountToday)
	}
	if p.ActivityDay != dayclock.Stamp("2025-06-02") {
		t.Errorf("marker should advance, got %s", p.ActivityDay)
	}
}

func TestGrantReward_PointsNeverDecrease(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := NewParticipant("u1", 100, now)

	p.GrantReward(5, 2)
	p.GrantReward(0, 0)
	if p.Points != 5 || p.Currency != 2 {
		t.Errorf("expected points=5 currency=2, got %d/%d", p.Points, p.Currency)
	}
}

package engine

import (
	"testing"
)

func TestDecayTick_DeathRemovesAndNotifiesOnce(t *testing.T) {
	eng, sink, _ := newTestEngine(t)
	dying := mustEnroll(t, eng, "dying")
	healthy := mustEnroll(t, eng, "healthy")
	dying.ResourceLevel = 0.5 // default decrease amount is 1

	report := eng.DecayTick()
	if len(report.Died) != 1 || report.Died[0] != "dying" {
		t.Fatalf("expected [dying] removed, got %v", report.Died)
	}
	if report.Active != 1 {
		t.Errorf("expected 1 active after tick, got %d", report.Active)
	}
	if len(sink.died) != 1 || sink.died[0] != "dying" {
		t.Fatalf("expected exactly one died event, got %v", sink.died)
	}
	if _, ok := eng.Get("dying"); ok {
		t.Error("dead participant must leave the active set within the tick")
	}
	if healthy.ResourceLevel != 99 {
		t.Errorf("survivor should have decayed by 1, got %.1f", healthy.ResourceLevel)
	}

	// A second tick over the already-removed entity is a no-op.
	report = eng.DecayTick()
	if len(report.Died) != 0 {
		t.Errorf("no one else should die, got %v", report.Died)
	}
	if len(sink.died) != 1 {
		t.Errorf("died event must not repeat, got %d", len(sink.died))
	}
}

func TestDecayTick_WarnsOnThresholdCrossing(t *testing.T) {
	eng, sink, _ := newTestEngine(t)
	p := mustEnroll(t, eng, "thirsty")
	p.ResourceLevel = 20.5 // default warn threshold is 20

	report := eng.DecayTick()
	if len(report.Warned) != 1 || report.Warned[0] != "thirsty" {
		t.Fatalf("expected [thirsty] warned, got %v", report.Warned)
	}
	if len(sink.lowWater) != 1 {
		t.Fatalf("expected one low-resource event, got %d", len(sink.lowWater))
	}

	// Already below threshold: no repeat warning.
	report = eng.DecayTick()
	if len(report.Warned) != 0 {
		t.Errorf("warning must fire only on the crossing tick, got %v", report.Warned)
	}
}

func TestDecayTick_ResourceStaysBounded(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	p := mustEnroll(t, eng, "u1")

	for i := 0; i < 5; i++ {
		eng.DecayTick()
	}
	if p.ResourceLevel != 95 {
		t.Errorf("expected 95 after 5 ticks, got %.1f", p.ResourceLevel)
	}
	if p.ResourceLevel < 0 || p.ResourceLevel > 100 {
		t.Errorf("resource out of bounds: %.1f", p.ResourceLevel)
	}
}

func TestEnforceActivityQuota(t *testing.T) {
	eng, sink, now := newTestEngine(t)
	yesterday := eng.local.Yesterday(*now)

	met := mustEnroll(t, eng, "met")
	met.ActivityDay = yesterday
	met.ActivityCountToday = 2

	below := mustEnroll(t, eng, "below")
	below.ActivityDay = yesterday
	below.ActivityCountToday = 0

	// Marker never touched yesterday at all.
	mustEnroll(t, eng, "stale")

	removed := eng.EnforceActivityQuota()
	if len(removed) != 2 {
		t.Fatalf("expected 2 removals, got %v", removed)
	}
	if _, ok := eng.Get("met"); !ok {
		t.Error("participant meeting the quota must stay")
	}
	if _, ok := eng.Get("below"); ok {
		t.Error("participant below the quota must go")
	}
	if _, ok := eng.Get("stale"); ok {
		t.Error("participant with a stale marker must go")
	}
	if len(sink.inactive) != 2 {
		t.Errorf("expected 2 insufficient-activity events, got %d", len(sink.inactive))
	}
	if len(sink.died) != 0 {
		t.Error("quota removals must not report as decay deaths")
	}
}

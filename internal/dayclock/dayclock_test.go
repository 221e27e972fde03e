package dayclock

import (
	"testing"
	"time"
)

func TestTodayYesterday_UTC(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("new clock: %v", err)
	}

	now := time.Date(2025, 6, 1, 0, 30, 0, 0, time.UTC)
	if got := c.Today(now); got != Stamp("2025-06-01") {
		t.Errorf("Today = %s", got)
	}
	if got := c.Yesterday(now); got != Stamp("2025-05-31") {
		t.Errorf("Yesterday = %s", got)
	}
}

func TestToday_ZoneShiftsDay(t *testing.T) {
	c, err := New("America/New_York")
	if err != nil {
		t.Fatalf("new clock: %v", err)
	}

	// 01:00 UTC is still the previous evening in New York.
	now := time.Date(2025, 6, 1, 1, 0, 0, 0, time.UTC)
	if got := c.Today(now); got != Stamp("2025-05-31") {
		t.Errorf("expected local day 2025-05-31, got %s", got)
	}
}

func TestNew_InvalidZone(t *testing.T) {
	if _, err := New("Nowhere/Special"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}

func TestNormalize(t *testing.T) {
	marker := Stamp("2025-05-31")
	count := int64(42)

	if !Normalize(&marker, &count, Stamp("2025-06-01")) {
		t.Fatal("stale marker should reset")
	}
	if marker != Stamp("2025-06-01") || count != 0 {
		t.Errorf("expected fresh marker and zero count, got %s/%d", marker, count)
	}

	count = 7
	if Normalize(&marker, &count, Stamp("2025-06-01")) {
		t.Fatal("same-day normalize must be a no-op")
	}
	if count != 7 {
		t.Errorf("same-day normalize must keep the count, got %d", count)
	}
}

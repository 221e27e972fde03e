package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"GroveKeeper/internal/leaderboard"
	"GroveKeeper/internal/model"
)

// FormatStats renders one participant's card for display.
func FormatStats(p *model.Participant, maxResource float64, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🌱 <b>Plant of %s</b>\n\n", p.ID))
	b.WriteString(fmt.Sprintf("Level: %d\n", p.LevelTier()))
	b.WriteString(fmt.Sprintf("Points: %s\n", humanize.Comma(p.Points)))
	b.WriteString(fmt.Sprintf("Coins: %s\n", humanize.Comma(p.Currency)))
	b.WriteString(fmt.Sprintf("Age: %.1f days\n", p.AgeInDays(now)))
	b.WriteString(fmt.Sprintf("Water: %s %d/%d\n",
		bar(leaderboard.Progress(p.ResourceLevel, maxResource), 10),
		int(p.ResourceLevel), int(maxResource)))
	if !p.LastClaimDay.IsZero() {
		b.WriteString(fmt.Sprintf("Claim streak: %d\n", p.ClaimStreak))
	}
	return b.String()
}

// FormatLeaderboard renders ranked entries as a numbered list. Bars are
// relative to the top entry's points.
func FormatLeaderboard(entries []leaderboard.Entry) string {
	if len(entries) == 0 {
		return "No participants yet."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🏆 <b>Leaderboard</b> | %s\n\n", time.Now().Format("2006-01-02")))

	top := float64(entries[0].Points)
	for i, e := range entries {
		b.WriteString(fmt.Sprintf("%d. <b>%s</b> — Level %d, %s pts, %.1fd, %s coins\n   %s\n",
			i+1, e.ID, e.Level,
			humanize.Comma(e.Points), e.AgeDays, humanize.Comma(e.Currency),
			bar(leaderboard.Progress(float64(e.Points), top), 12)))
	}
	return b.String()
}

// FormatDeath renders the removal notice for a given reason.
func FormatDeath(id string, reason model.RemovalReason) string {
	switch reason {
	case model.RemovalInactivity:
		return fmt.Sprintf("💤 <b>%s</b> missed the daily activity quota and left the grove.", id)
	case model.RemovalExternal:
		return fmt.Sprintf("👋 <b>%s</b> left the grove.", id)
	default:
		return fmt.Sprintf("🥀 The plant of <b>%s</b> dried out and died.", id)
	}
}

func bar(p float64, width int) string {
	filled := int(p*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

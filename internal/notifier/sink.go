package notifier

import "log"

// Sink is the engine's outbound boundary. The chat-platform layer
// implements it to revoke roles, delete channels and message users; the
// engine only reports what happened. A sink failure never rolls back an
// engine state transition.
type Sink interface {
	ParticipantDied(id, channelID string)
	InsufficientActivity(id, channelID string)
	Revived(id string)
	Claimed(id string, streak int, points, currency int64)
	LowResource(id string, level, max float64)
}

// LogSink writes every event to the process log. Used when no chat
// integration is wired, and as the delivery fallback in tests.
type LogSink struct{}

func NewLogSink() *LogSink { return &LogSink{} }

func (l *LogSink) ParticipantDied(id, channelID string) {
	log.Printf("[INFO] participant %s died (channel %s)", id, channelID)
}

func (l *LogSink) InsufficientActivity(id, channelID string) {
	log.Printf("[INFO] participant %s removed for insufficient activity (channel %s)", id, channelID)
}

func (l *LogSink) Revived(id string) {
	log.Printf("[INFO] participant %s revived", id)
}

func (l *LogSink) Claimed(id string, streak int, points, currency int64) {
	log.Printf("[INFO] participant %s claimed daily reward: streak=%d points=%d currency=%d", id, streak, points, currency)
}

func (l *LogSink) LowResource(id string, level, max float64) {
	log.Printf("[WARN] participant %s resource low: %.1f/%.1f", id, level, max)
}

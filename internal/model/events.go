package model

// EventKind labels an outbound lifecycle event consumed by the
// collaborator layer.
type EventKind string

const (
	EventDied                 EventKind = "DIED"
	EventInsufficientActivity EventKind = "INSUFFICIENT_ACTIVITY"
	EventRevived              EventKind = "REVIVED"
	EventClaimed              EventKind = "CLAIMED"
	EventLowResource          EventKind = "LOW_RESOURCE"
	EventEnrolled             EventKind = "ENROLLED"
	EventRemoved              EventKind = "REMOVED"
)

// RemovalReason distinguishes why a participant left the active set, so
// the collaborator can message users differently.
type RemovalReason string

const (
	RemovalDecay      RemovalReason = "DECAY"
	RemovalInactivity RemovalReason = "INSUFFICIENT_ACTIVITY"
	RemovalExternal   RemovalReason = "EXTERNAL"
)

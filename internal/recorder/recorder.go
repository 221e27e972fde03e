package recorder

import "GroveKeeper/internal/model"

// LifecycleEvent records a participant entering or leaving the active
// set, or a state change the collaborator is told about.
type LifecycleEvent struct {
	ParticipantID string
	Kind          model.EventKind
	Detail        string
}

// OperationEvent records one economy operation and its outcome.
type OperationEvent struct {
	ParticipantID string
	Operation     string // "MAINTAIN", "TRANSFER", "CLAIM", "ACTIVITY", "REFRESH"
	Result        string
	Points        int64
	Currency      int64
	Counterparty  string
}

// TickSummary records one decay tick over the whole active set.
type TickSummary struct {
	Active int
	Died   int
	Warned int
}

// Recorder persists historical events for later analysis. Recording is
// best effort; callers log failures and move on.
type Recorder interface {
	RecordLifecycle(ev *LifecycleEvent) error
	RecordOperation(ev *OperationEvent) error
	RecordTick(sum *TickSummary) error
	Close() error
}

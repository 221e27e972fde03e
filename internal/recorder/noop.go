package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordLifecycle(_ *LifecycleEvent) error { return nil }
func (n *NoopRecorder) RecordOperation(_ *OperationEvent) error { return nil }
func (n *NoopRecorder) RecordTick(_ *TickSummary) error         { return nil }
func (n *NoopRecorder) Close() error                            { return nil }

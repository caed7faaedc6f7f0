package workflow

import (
	"context"
	"time"
)

// EventKind names a workflow transition worth recording.
type EventKind string

const (
	EventGenerateRequested EventKind = "generate_requested"
	EventGenerateSucceeded EventKind = "generate_succeeded"
	EventGenerateFailed    EventKind = "generate_failed"
	EventApplySucceeded    EventKind = "apply_succeeded"
	EventApplyFailed       EventKind = "apply_failed"
	EventRefresh           EventKind = "refresh"
)

// Event describes one workflow transition. It carries snapshot metadata only;
// artifacts and prompt text never leave the Controller through events.
type Event struct {
	Kind     EventKind
	Model    string
	Workflow string
	Strength int
	Message  string
	Elapsed  time.Duration
	At       time.Time
}

// EventSink receives workflow events. Sinks must not block: the Controller
// calls them inline on the dispatch path.
type EventSink interface {
	WorkflowEvent(ctx context.Context, ev Event)
}

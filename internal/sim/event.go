package sim

import "conway/internal/core"

// EventKind identifies the state change that produced an Event.
type EventKind int

const (
	EventTick EventKind = iota
	EventAutoStop
	EventStep
	EventToggle
	EventClear
	EventRandomize
	EventStart
	EventPause
	EventSnapshot
)

var eventNames = [...]string{
	EventTick:      "tick",
	EventAutoStop:  "auto-stop",
	EventStep:      "step",
	EventToggle:    "toggle",
	EventClear:     "clear",
	EventRandomize: "randomize",
	EventStart:     "start",
	EventPause:     "pause",
	EventSnapshot:  "snapshot",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event describes the controller state right after a change.
type Event struct {
	// Seq increases with every state change; a snapshot carries the Seq of
	// the change it observes.
	Seq        uint64
	Kind       EventKind
	Generation int
	Running    bool
	Population int
	// Grid is a private copy; listeners may keep it.
	Grid *core.Grid
}

// Listener receives controller events in Seq order. It may read from the
// controller but must not issue commands synchronously.
type Listener func(Event)

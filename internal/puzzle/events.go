package puzzle

import "time"

// EventKind names something that happened to a session.
type EventKind string

const (
	EventToggled         EventKind = "toggled"
	EventPhase           EventKind = "phase"
	EventReset           EventKind = "reset"
	EventCompleted       EventKind = "completed"
	EventCompletionError EventKind = "completion_failed"
	EventClosed          EventKind = "closed"
)

// Event is delivered to observers after the session state has been updated.
type Event struct {
	Kind      EventKind     `json:"kind"`
	SessionID string        `json:"session_id"`
	LevelID   int           `json:"level_id"`
	Epoch     uint64        `json:"epoch"`
	At        time.Duration `json:"at"`
	Index     int           `json:"index"`
	Phase     Phase         `json:"phase"`
	Error     string        `json:"error,omitempty"`
	Snapshot  Snapshot      `json:"snapshot"`
	Previous  *Snapshot     `json:"previous,omitempty"` // State just before a reset
}

// Observer receives session events. Implementations must not call back into
// the session that emitted the event.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) { f(e) }

// Observers fans events out to several observers in order.
type Observers []Observer

// OnEvent delivers e to every non-nil observer.
func (o Observers) OnEvent(e Event) {
	for _, obs := range o {
		if obs != nil {
			obs.OnEvent(e)
		}
	}
}

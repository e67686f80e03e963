package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable record of a state transition. Aggregates record
// events as they mutate; the persistence layer drains and dispatches them
// after a successful save. Aggregates never dispatch their own events.
type Event struct {
	EventID     string         `json:"event_id"`
	OccurredOn  time.Time      `json:"occurred_on"`
	AggregateID string         `json:"aggregate_id"`
	EventType   string         `json:"event_type"`
	EventData   map[string]any `json:"event_data"`
}

func NewEvent(aggregateID, eventType string, data map[string]any) Event {
	if data == nil {
		data = map[string]any{}
	}
	return Event{
		EventID:     uuid.New().String(),
		OccurredOn:  time.Now(),
		AggregateID: aggregateID,
		EventType:   eventType,
		EventData:   data,
	}
}

// Recorder collects domain events on behalf of an aggregate root.
// Embed it by value; the zero value is ready to use.
type Recorder struct {
	events []Event
}

// Record appends an event to the pending list.
func (r *Recorder) Record(e Event) {
	r.events = append(r.events, e)
}

// Events returns the pending events in recording order.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// ClearEvents discards pending events. Called by the persistence layer after
// a successful flush.
func (r *Recorder) ClearEvents() {
	r.events = nil
}

// HasEvents reports whether undispatched events are pending.
func (r *Recorder) HasEvents() bool {
	return len(r.events) > 0
}

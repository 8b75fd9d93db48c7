// Package feed delivers row-change events from Postgres to in-process
// subscribers. Triggers on the watched tables NOTIFY a single channel with a
// JSON payload carrying the table name, the action, and the affected row(s);
// the Listener fans each event out to every subscriber registered for that
// table and action.
package feed

import "encoding/json"

// EventType is the kind of row change.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event is one row change on a watched table. New holds the row after an
// INSERT or UPDATE; Old holds the row before an UPDATE or DELETE.
type Event struct {
	Table  string          `json:"table"`
	Action EventType       `json:"action"`
	New    json.RawMessage `json:"new,omitempty"`
	Old    json.RawMessage `json:"old,omitempty"`
}

// Handler receives events. Handlers run on the listener's dispatch goroutine
// and must not block.
type Handler func(Event)

// Subscriber registers handlers for table changes. The returned function
// removes the subscription.
type Subscriber interface {
	Subscribe(table string, types []EventType, h Handler) func()
}

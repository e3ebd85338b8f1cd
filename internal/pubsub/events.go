// Package pubsub fans typed events out to in-process subscribers. The
// workspace publishes document changes through it and the logger publishes
// log lines for the debug overlay.
package pubsub

import "time"

// EventType names what happened.
type EventType string

// Schema-level events.
const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
)

// Document-level events.
const (
	LoadedEvent   EventType = "loaded"
	SavedEvent    EventType = "saved"
	ExportedEvent EventType = "exported"
	BackupEvent   EventType = "backup"
)

// LoggedEvent carries one formatted log line.
const LoggedEvent EventType = "logged"

// Event is one published value. Seq increases by one per Publish call on a
// broker, so a subscriber can tell when it missed events.
type Event[T any] struct {
	Type    EventType
	Payload T
	Seq     uint64
	Time    time.Time
}

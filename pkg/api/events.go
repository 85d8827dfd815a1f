package api

import (
	"context"
	"time"
)

// EventType identifies an automaton history event.
type EventType string

const (
	EventStarted    EventType = "automaton.started"
	EventTransition EventType = "automaton.transition"
	EventBlocked    EventType = "automaton.blocked"
	EventFailed     EventType = "automaton.failed"

	EventSnapshotSaved  EventType = "snapshot.saved"
	EventSnapshotLoaded EventType = "snapshot.loaded"
)

// Event is a minimal append-only history record for audit/debugging.
// It is intentionally small and stable; richer history can be layered later.
type Event struct {
	InstanceID string
	At         time.Time
	Type       EventType

	// Optional context.
	Automaton string
	From      StateID // NoState when not applicable
	To        StateID // NoState when not applicable

	// Small, human-oriented details (e.g. error string).
	// Keep this low-volume: do NOT dump large payloads here.
	Detail string
}

// Journal is an append-only history store for automaton execution events.
type Journal interface {
	Append(ctx context.Context, ev Event) error
	List(ctx context.Context, instanceID string) ([]Event, error)
}

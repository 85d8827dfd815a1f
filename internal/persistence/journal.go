package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/tempestive/DFAnet/pkg/api"
)

// NoopJournal discards all events.
type NoopJournal struct{}

func (NoopJournal) Append(ctx context.Context, ev api.Event) error { return nil }
func (NoopJournal) List(ctx context.Context, instanceID string) ([]api.Event, error) {
	return nil, nil
}

// MemoryJournal is a goroutine-safe api.Journal kept entirely in memory,
// grouped by instance ID in append order.
type MemoryJournal struct {
	mu     sync.RWMutex
	events map[string][]api.Event
}

var _ api.Journal = (*MemoryJournal)(nil)

// NewMemoryJournal creates an empty MemoryJournal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{
		events: make(map[string][]api.Event),
	}
}

func (j *MemoryJournal) Append(ctx context.Context, ev api.Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.events[ev.InstanceID] = append(j.events[ev.InstanceID], ev)
	return nil
}

func (j *MemoryJournal) List(ctx context.Context, instanceID string) ([]api.Event, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	events := j.events[instanceID]
	out := make([]api.Event, len(events))
	copy(out, events)
	return out, nil
}

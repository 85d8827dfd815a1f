package persistence

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/tempestive/DFAnet/pkg/api"
)

// MemorySnapshotStore is a goroutine-safe SnapshotStore backed by a map.
// Snapshots do not survive the process; it is primarily useful in tests.
//
// Documents are held in encoded form, so a saved snapshot is a true copy:
// mutating the automaton afterwards does not change what Load returns.
type MemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]memorySnapshot
}

type memorySnapshot struct {
	format api.Format
	data   []byte
}

var _ api.SnapshotStore = (*MemorySnapshotStore)(nil)

// NewMemorySnapshotStore creates an empty MemorySnapshotStore.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snapshots: make(map[string]memorySnapshot),
	}
}

func (s *MemorySnapshotStore) Save(ctx context.Context, key string, doc *api.Document, format api.Format) error {
	data, err := EncodeDocument(doc, format)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[key] = memorySnapshot{format: format, data: data}
	return nil
}

func (s *MemorySnapshotStore) Load(ctx context.Context, key string) (*api.Document, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[key]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, api.ErrSnapshotNotFound)
	}
	return DecodeDocument(snap.data, snap.format)
}

func (s *MemorySnapshotStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snapshots[key]; !ok {
		return fmt.Errorf("key %q: %w", key, api.ErrSnapshotNotFound)
	}
	delete(s.snapshots, key)
	return nil
}

func (s *MemorySnapshotStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.snapshots))
	for k := range s.snapshots {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

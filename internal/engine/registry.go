package engine

import (
	"fmt"
	"slices"

	"github.com/tempestive/DFAnet/pkg/api"
)

// stateRegistry owns the set of states of one automaton, indexed by ID.
// It is not goroutine-safe; the owning automaton serializes access.
type stateRegistry struct {
	byID map[api.StateID]*api.State
}

func newStateRegistry() *stateRegistry {
	return &stateRegistry{
		byID: make(map[api.StateID]*api.State),
	}
}

// register inserts the state at its own ID. Registering an ID that already
// exists silently overwrites the prior state.
func (r *stateRegistry) register(s api.State) {
	r.byID[s.ID] = &s
}

func (r *stateRegistry) get(id api.StateID) (*api.State, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("state %d: %w", id, api.ErrUnknownState)
	}
	return s, nil
}

func (r *stateRegistry) has(id api.StateID) bool {
	_, ok := r.byID[id]
	return ok
}

// all returns every registered state sorted by ascending ID. The order is
// independent of registration order; snapshots and tests rely on it being
// stable. The slice is freshly allocated on every call.
func (r *stateRegistry) all() []*api.State {
	out := make([]*api.State, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *api.State) int {
		return int(a.ID - b.ID)
	})
	return out
}

package engine

import "github.com/tempestive/DFAnet/pkg/api"

// edge is a single guarded entry in the transition table.
type edge struct {
	to    api.StateID
	guard api.Guard
}

// transitionTable maps ordered (from, to) pairs to guards. It is conceptually
// an ordered map from edge to guard: per source, edges keep the order their
// links were added, which is what makes Step's first-match tie-break
// deterministic. The table is purely in-memory and never persisted.
type transitionTable struct {
	bySource map[api.StateID][]edge
}

func newTransitionTable() *transitionTable {
	return &transitionTable{
		bySource: make(map[api.StateID][]edge),
	}
}

// link stores the guard for (from, to). Re-linking an existing pair replaces
// the guard in place, keeping the pair's original position in the iteration
// order. A nil guard means the edge is always open.
func (t *transitionTable) link(from, to api.StateID, g api.Guard) {
	edges := t.bySource[from]
	for i := range edges {
		if edges[i].to == to {
			edges[i].guard = g
			return
		}
	}
	t.bySource[from] = append(edges, edge{to: to, guard: g})
}

// guard returns the guard for (from, to) and whether the edge exists.
func (t *transitionTable) guard(from, to api.StateID) (api.Guard, bool) {
	for _, e := range t.bySource[from] {
		if e.to == to {
			return e.guard, true
		}
	}
	return nil, false
}

// from returns the targets reachable from the given source in link order.
// The slice is a copy; nil when the source has no outgoing edges.
func (t *transitionTable) from(id api.StateID) []api.StateID {
	edges := t.bySource[id]
	if len(edges) == 0 {
		return nil
	}
	out := make([]api.StateID, len(edges))
	for i, e := range edges {
		out[i] = e.to
	}
	return out
}

package engine

import (
	"fmt"
	"maps"

	"github.com/tempestive/DFAnet/pkg/api"
)

// Restore rebuilds an automaton from a snapshot document. The document only
// carries state payloads and the current position; everything executable is
// re-derived by running the definition routines into the new instance, then
// overlaying the persisted payloads by ID match:
//
//   - A state present in both keeps the definition's behavior and takes the
//     document's payload fields.
//   - A definition-only state is kept wholesale (the graph grew since the
//     snapshot was taken).
//   - A document-only state keeps its payload but has no behavior and no
//     outgoing edges (the definition no longer reaches it).
//
// The transition table is always the one the definition produced in full.
// If the persisted current ID is not among the definition's states, Restore
// fails with api.ErrGraphMismatch and returns no automaton.
func Restore(doc *api.Document, def api.Definition, opts ...Option) (api.Automaton, error) {
	if doc == nil {
		return nil, fmt.Errorf("restore: nil document")
	}

	built, err := New(def, opts...)
	if err != nil {
		return nil, err
	}
	a := built.(*automaton)

	// The set of IDs the definition itself produced, before the document's
	// states are merged in. Only these are valid resume positions.
	defined := make(map[api.StateID]bool, len(a.registry.byID))
	for id := range a.registry.byID {
		defined[id] = true
	}

	if doc.CurrentID != api.NoState && !defined[doc.CurrentID] {
		return nil, fmt.Errorf("persisted current state %d not in definition %q: %w",
			doc.CurrentID, def.Name, api.ErrGraphMismatch)
	}

	for _, ds := range doc.States {
		if s, ok := a.registry.byID[ds.ID]; ok {
			s.Name = ds.Name
			s.Data = maps.Clone(ds.Data)
			continue
		}
		a.registry.register(api.State{
			ID:   ds.ID,
			Name: ds.Name,
			Data: maps.Clone(ds.Data),
		})
	}

	// Resuming is not a move: the position is set without invoking the
	// current state's behavior.
	if doc.CurrentID != api.NoState {
		a.current = doc.CurrentID
		a.started = true
	}

	a.observer.OnSnapshotLoaded(a.info(), doc.CurrentID)
	return a, nil
}

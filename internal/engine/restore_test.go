package engine

import (
	"errors"
	"testing"

	"github.com/tempestive/DFAnet/pkg/api"
)

// counterDef is a three-state chain 0 -> 1 -> 2 whose behaviors count into
// hits and whose 1 -> 2 guard reads *gate. Used to verify that loading a
// document rebinds behaviors and guards from a re-run definition.
func counterDef(hits map[api.StateID]int, gate *bool) api.Definition {
	return api.Definition{
		Name: "counter",
		States: func(g api.Graph) error {
			for id := api.StateID(0); id <= 2; id++ {
				id := id
				g.Register(api.State{ID: id, Name: "n", Data: map[string]any{"seq": int(id)}, Behavior: func() error {
					hits[id]++
					return nil
				}})
			}
			return nil
		},
		Transitions: func(g api.Graph) error {
			if err := g.Link(0, 1, nil); err != nil {
				return err
			}
			return g.Link(1, 2, func() (bool, error) { return *gate, nil })
		},
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	hits := map[api.StateID]int{}
	gate := true
	a, err := New(counterDef(hits, &gate))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := a.StartFrom(0); err != nil {
		t.Fatalf("StartFrom failed: %v", err)
	}
	if _, err := a.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	doc := a.Snapshot()
	if doc.CurrentID != 1 {
		t.Fatalf("expected saved position 1, got %d", doc.CurrentID)
	}
	if doc.Automaton != "counter" {
		t.Fatalf("expected definition name in document, got %q", doc.Automaton)
	}

	loadedHits := map[api.StateID]int{}
	loadedGate := true
	loaded, err := Restore(doc, counterDef(loadedHits, &loadedGate))
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if current, ok := loaded.Current(); !ok || current != 1 {
		t.Fatalf("expected restored position 1, got %d (ok=%v)", current, ok)
	}
	for _, s := range loaded.States() {
		seq, ok := s.Data["seq"]
		if !ok {
			t.Fatalf("payload lost for state %d", s.ID)
		}
		// JSON-free path: the document was never encoded, values keep their type.
		if seq.(int) != int(s.ID) {
			t.Fatalf("payload mismatch for state %d: %v", s.ID, seq)
		}
	}

	// The loaded automaton must behave exactly like the original from here.
	res, err := loaded.Step()
	if err != nil {
		t.Fatalf("Step on loaded automaton failed: %v", err)
	}
	if !res.Moved || res.To != 2 {
		t.Fatalf("expected move 1 -> 2, got %+v", res)
	}
	if loadedHits[2] != 1 {
		t.Fatalf("rebound behavior must run exactly once, got %d", loadedHits[2])
	}
	if hits[2] != 0 {
		t.Fatalf("original behaviors must not be shared with the loaded instance")
	}
}

func TestRestoreRepopulatesTransitionTable(t *testing.T) {
	hits := map[api.StateID]int{}
	gate := false
	a, err := New(counterDef(hits, &gate))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := a.StartFrom(0); err != nil {
		t.Fatalf("StartFrom failed: %v", err)
	}

	loaded, err := Restore(a.Snapshot(), counterDef(map[api.StateID]int{}, &gate))
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	// The document carries no edges; every edge must come from the
	// freshly-run definition.
	if edges := loaded.EdgesFrom(0); len(edges) != 1 || edges[0] != 1 {
		t.Fatalf("expected edge 0 -> 1 after restore, got %v", edges)
	}
	if edges := loaded.EdgesFrom(1); len(edges) != 1 || edges[0] != 2 {
		t.Fatalf("expected edge 1 -> 2 after restore, got %v", edges)
	}

	// And the rebound guard reads the new instance's context.
	if ok, err := restartAndProbe(loaded); err != nil || ok {
		t.Fatalf("expected closed guard (gate=false), got ok=%v err=%v", ok, err)
	}
	gate = true
	if ok, err := restartAndProbe(loaded); err != nil || !ok {
		t.Fatalf("expected open guard (gate=true), got ok=%v err=%v", ok, err)
	}
}

func restartAndProbe(a api.Automaton) (bool, error) {
	if err := a.StartFrom(1); err != nil {
		return false, err
	}
	return a.CanMoveTo(2)
}

func TestRestoreGraphMismatch(t *testing.T) {
	doc := &api.Document{
		FormatVersion: api.DocumentFormatVersion,
		Automaton:     "counter",
		States: []api.DocumentState{
			{ID: 0}, {ID: 1}, {ID: 7},
		},
		CurrentID: 7, // state 7 does not exist in the definition
	}

	_, err := Restore(doc, counterDef(map[api.StateID]int{}, new(bool)))
	if !errors.Is(err, api.ErrGraphMismatch) {
		t.Fatalf("expected ErrGraphMismatch, got %v", err)
	}
}

func TestRestoreDocumentOnlyStateIsUnreachable(t *testing.T) {
	doc := &api.Document{
		FormatVersion: api.DocumentFormatVersion,
		States: []api.DocumentState{
			{ID: 0}, {ID: 1}, {ID: 2},
			{ID: 9, Name: "orphan", Data: map[string]any{"kept": true}},
		},
		CurrentID: 0,
	}

	loaded, err := Restore(doc, counterDef(map[api.StateID]int{}, new(bool)))
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	orphan, err := loaded.GetState(9)
	if err != nil {
		t.Fatalf("document-only state must stay registered: %v", err)
	}
	if orphan.Name != "orphan" || orphan.Data["kept"] != true {
		t.Fatalf("document-only payload lost: %+v", orphan)
	}
	if orphan.Behavior != nil {
		t.Fatalf("document-only state must have no behavior")
	}
	if edges := loaded.EdgesFrom(9); edges != nil {
		t.Fatalf("document-only state must have no edges, got %v", edges)
	}
}

func TestRestoreDefinitionOnlyStateSurvives(t *testing.T) {
	// Snapshot taken before state 2 existed in the definition.
	doc := &api.Document{
		FormatVersion: api.DocumentFormatVersion,
		States:        []api.DocumentState{{ID: 0}, {ID: 1}},
		CurrentID:     1,
	}

	gate := true
	hits := map[api.StateID]int{}
	loaded, err := Restore(doc, counterDef(hits, &gate))
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	res, err := loaded.Step()
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !res.Moved || res.To != 2 {
		t.Fatalf("definition-only state must be reachable, got %+v", res)
	}
}

func TestRestoreNeverStartedDocument(t *testing.T) {
	a, err := New(counterDef(map[api.StateID]int{}, new(bool)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	doc := a.Snapshot()
	if doc.CurrentID != api.NoState {
		t.Fatalf("expected NoState for a never-started automaton, got %d", doc.CurrentID)
	}

	loaded, err := Restore(doc, counterDef(map[api.StateID]int{}, new(bool)))
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if _, ok := loaded.Current(); ok {
		t.Fatalf("restored automaton must not have a position")
	}
}

func TestSnapshotIsIndependentOfLiveState(t *testing.T) {
	hits := map[api.StateID]int{}
	gate := true
	a, err := New(counterDef(hits, &gate))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := a.StartFrom(0); err != nil {
		t.Fatalf("StartFrom failed: %v", err)
	}

	doc := a.Snapshot()

	// Mutating the automaton after the snapshot must not bleed into it.
	if _, err := a.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	s, err := a.GetState(0)
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	s.Data["seq"] = 99

	if doc.CurrentID != 0 {
		t.Fatalf("snapshot position changed after the fact: %d", doc.CurrentID)
	}
	if doc.States[0].Data["seq"] != 0 {
		t.Fatalf("snapshot payload changed after the fact: %v", doc.States[0].Data["seq"])
	}
}

package dfanet

import (
	"errors"
	"strings"
	"testing"
)

func TestBuilderProducesWorkingDefinition(t *testing.T) {
	entered := ""
	def := NewBuilder("turnstile").
		State(0, "locked", nil).
		State(1, "unlocked", func() error { entered = "unlocked"; return nil }).
		Link(0, 1, GuardIf(func() bool { return true })).
		Always(1, 0).
		Build()

	if def.Name != "turnstile" {
		t.Fatalf("unexpected definition name %q", def.Name)
	}

	a, err := New(def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.StartFrom(0); err != nil {
		t.Fatalf("StartFrom: %v", err)
	}
	moved, err := a.MoveTo(1)
	if err != nil || !moved {
		t.Fatalf("MoveTo(1) = (%v, %v), want (true, nil)", moved, err)
	}
	if entered != "unlocked" {
		t.Fatalf("behavior did not run")
	}
	if got := a.EdgesFrom(1); len(got) != 1 || got[0] != 0 {
		t.Fatalf("EdgesFrom(1) = %v, want [0]", got)
	}
}

func TestBuilderLinkToUnregisteredState(t *testing.T) {
	def := NewBuilder("broken").
		State(0, "a", nil).
		Link(0, 99, nil).
		Build()

	if _, err := New(def); !errors.Is(err, ErrUnknownState) {
		t.Fatalf("expected ErrUnknownState, got %v", err)
	}
}

func TestBuilderNegativeIDPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic on negative state ID")
		}
		if !strings.Contains(r.(string), "negative id") {
			t.Fatalf("unexpected panic message %v", r)
		}
	}()
	NewBuilder("bad").State(-3, "ghost", nil)
}

// A definition built earlier must not see states added to the builder later:
// Build snapshots the recorded states and links.
func TestBuilderBuildIsStable(t *testing.T) {
	b := NewBuilder("growing").
		State(0, "a", nil).
		State(1, "b", nil).
		Always(0, 1)

	early := b.Build()

	b.State(2, "c", nil).Always(1, 2)
	late := b.Build()

	ea, err := New(early)
	if err != nil {
		t.Fatalf("New(early): %v", err)
	}
	if got := len(ea.States()); got != 2 {
		t.Fatalf("early definition has %d states, want 2", got)
	}

	la, err := New(late)
	if err != nil {
		t.Fatalf("New(late): %v", err)
	}
	if got := len(la.States()); got != 3 {
		t.Fatalf("late definition has %d states, want 3", got)
	}
}

func TestMustBuildPanicsOnBadDefinition(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic from MustBuild on invalid definition")
		}
	}()
	NewBuilder("broken").
		State(0, "a", nil).
		Link(5, 0, nil).
		MustBuild()
}

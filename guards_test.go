package dfanet

import (
	"errors"
	"testing"
)

var errGuard = errors.New("guard exploded")

func open() Guard   { return func() (bool, error) { return true, nil } }
func closed() Guard { return func() (bool, error) { return false, nil } }
func broken() Guard { return func() (bool, error) { return false, errGuard } }

func evalGuard(t *testing.T, g Guard) bool {
	t.Helper()
	ok, err := g()
	if err != nil {
		t.Fatalf("guard failed: %v", err)
	}
	return ok
}

func TestGuardIf(t *testing.T) {
	calls := 0
	g := GuardIf(func() bool { calls++; return calls < 2 })

	if !evalGuard(t, g) {
		t.Fatalf("first evaluation must be open")
	}
	if evalGuard(t, g) {
		t.Fatalf("second evaluation must be closed")
	}
}

func TestNot(t *testing.T) {
	if evalGuard(t, Not(open())) {
		t.Fatalf("Not(open) must be closed")
	}
	if !evalGuard(t, Not(closed())) {
		t.Fatalf("Not(closed) must be open")
	}
	// A nil guard is always open, so its negation is always closed.
	if evalGuard(t, Not(nil)) {
		t.Fatalf("Not(nil) must be closed")
	}
	if _, err := Not(broken())(); !errors.Is(err, errGuard) {
		t.Fatalf("Not must pass evaluation errors through, got %v", err)
	}
}

func TestAllOf(t *testing.T) {
	if !evalGuard(t, AllOf()) {
		t.Fatalf("empty AllOf must be open")
	}
	if !evalGuard(t, AllOf(open(), nil, open())) {
		t.Fatalf("nil members count as open")
	}
	if evalGuard(t, AllOf(open(), closed(), open())) {
		t.Fatalf("one closed member closes AllOf")
	}
	if _, err := AllOf(open(), broken())(); !errors.Is(err, errGuard) {
		t.Fatalf("AllOf must pass evaluation errors through, got %v", err)
	}

	// Evaluation stops at the first closed guard.
	evaluated := false
	g := AllOf(closed(), func() (bool, error) { evaluated = true; return true, nil })
	if evalGuard(t, g) || evaluated {
		t.Fatalf("AllOf must short-circuit after a closed guard")
	}
}

func TestAnyOf(t *testing.T) {
	if evalGuard(t, AnyOf()) {
		t.Fatalf("empty AnyOf must be closed")
	}
	if !evalGuard(t, AnyOf(closed(), open())) {
		t.Fatalf("one open member opens AnyOf")
	}
	if !evalGuard(t, AnyOf(closed(), nil)) {
		t.Fatalf("nil members count as open")
	}
	if evalGuard(t, AnyOf(closed(), closed())) {
		t.Fatalf("all closed members close AnyOf")
	}
	if _, err := AnyOf(closed(), broken())(); !errors.Is(err, errGuard) {
		t.Fatalf("AnyOf must pass evaluation errors through, got %v", err)
	}

	// Evaluation stops at the first open guard.
	evaluated := false
	g := AnyOf(open(), func() (bool, error) { evaluated = true; return false, nil })
	if !evalGuard(t, g) || evaluated {
		t.Fatalf("AnyOf must short-circuit after an open guard")
	}
}

// Combinators compose with the engine: a transition guarded by AllOf behaves
// like a transition guarded by each member in sequence.
func TestCombinatorsOnTransitions(t *testing.T) {
	coin, pushed := false, false

	a := NewBuilder("turnstile").
		State(0, "locked", nil).
		State(1, "unlocked", nil).
		Link(0, 1, AllOf(
			GuardIf(func() bool { return coin }),
			Not(GuardIf(func() bool { return pushed })),
		)).
		MustBuild()

	if err := a.StartFrom(0); err != nil {
		t.Fatalf("StartFrom: %v", err)
	}

	if ok, err := a.CanMoveTo(1); err != nil || ok {
		t.Fatalf("no coin yet: CanMoveTo = (%v, %v)", ok, err)
	}
	coin = true
	if ok, err := a.CanMoveTo(1); err != nil || !ok {
		t.Fatalf("coin inserted: CanMoveTo = (%v, %v)", ok, err)
	}
	pushed = true
	if ok, err := a.CanMoveTo(1); err != nil || ok {
		t.Fatalf("already pushed: CanMoveTo = (%v, %v)", ok, err)
	}
}

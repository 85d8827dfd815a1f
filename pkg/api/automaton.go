package api

// StateID identifies a state within one automaton instance. IDs are
// non-negative, unique per automaton, and states are compared and ordered
// solely by ID.
type StateID int

// NoState is the position of an automaton that has never been started.
// It is also used in journal records for fields that do not apply.
const NoState StateID = -1

// Behavior is the side-effecting action executed upon entering a state.
// It takes no inputs and is invoked exactly once per transition into its
// state. Errors are returned to the caller of MoveTo/Step unmodified; the
// engine never catches or rewrites them.
type Behavior func() error

// Guard is a zero-argument predicate gating a single transition. It is
// evaluated at decision time and may read mutable context captured by the
// closure (for example a value field on the concrete automaton). A guard
// evaluation error is reported to the caller as a *GuardError.
type Guard func() (bool, error)

// State is a node in the automaton graph. ID is the identity; Name and Data
// are payload fields carried by the persisted form; Behavior is executable
// and therefore never serialized.
type State struct {
	ID       StateID
	Name     string
	Data     map[string]any
	Behavior Behavior
}

// Transition is a guarded directed edge. A nil Guard means the edge is
// always open.
type Transition struct {
	From  StateID
	To    StateID
	Guard Guard
}

// StepResult reports the outcome of a single Step call.
// Moved is false when candidates existed but every guard evaluated false;
// in that case From is the (unchanged) current state and To is NoState.
type StepResult struct {
	From  StateID
	To    StateID
	Moved bool
}

// Graph is the definition-time surface of an automaton: registering states
// and linking guarded transitions between them. Definition routines receive
// it during construction; the topology is not meant to change afterwards
// (the engine does not enforce this).
type Graph interface {
	// Register inserts the state at its own ID, silently overwriting any
	// state previously registered under the same ID.
	Register(s State)

	// Link stores guard for the ordered pair (from, to), overwriting any
	// prior guard for the same pair without changing the pair's position in
	// the iteration order. Both IDs must already be registered; otherwise
	// Link fails with ErrUnknownState.
	Link(from, to StateID, g Guard) error
}

// Definition is the construction recipe supplied by a concrete automaton
// type. The engine runs States first and Transitions second, exactly once,
// inside New, and runs them again into a scratch instance when a snapshot
// is loaded, to rebind the behaviors and guards the persisted form cannot
// carry.
type Definition struct {
	// Name identifies the automaton type (not the instance). It is recorded
	// in journal entries and snapshot documents.
	Name string

	// States registers every state of the graph.
	States func(g Graph) error

	// Transitions links every guarded edge. It may reference only IDs
	// already registered by States.
	Transitions func(g Graph) error
}

// Automaton is a deterministic finite automaton: a registry of states, a
// table of guarded transitions, and a single current position driven
// step by step.
//
// Execution is synchronous and single-threaded: guards and behaviors run
// inline on the caller's goroutine and are never interrupted. One instance
// must not be mutated from multiple goroutines; callers that share an
// instance serialize access themselves.
type Automaton interface {
	Graph

	// Name returns the definition name.
	Name() string

	// InstanceID returns the opaque unique ID of this in-memory instance,
	// used to correlate journal records. It is not persisted.
	InstanceID() string

	// GetState returns the registered state, or ErrUnknownState.
	GetState(id StateID) (*State, error)

	// States returns all registered states ordered by ascending ID,
	// independent of registration order. The slice is freshly allocated on
	// every call.
	States() []*State

	// EdgesFrom returns the targets reachable from the given state, in the
	// order their links were added. It returns nil for states with no
	// outgoing transitions (including unregistered IDs).
	EdgesFrom(from StateID) []StateID

	// StartFrom sets the current position unconditionally. No behavior is
	// invoked: entering the start state is not a move. Fails with
	// ErrUnknownState if id is not registered.
	StartFrom(id StateID) error

	// Current returns the current position. ok is false before the first
	// successful StartFrom.
	Current() (id StateID, ok bool)

	// CanMoveTo reports whether a transition (current, to) exists and its
	// guard evaluates true right now. It is a pure query: no engine state
	// changes, no behavior runs. A guard evaluation error is returned as a
	// *GuardError. Fails with ErrNotStarted before StartFrom.
	CanMoveTo(to StateID) (bool, error)

	// MoveTo performs the transition (current, to) if its guard is open:
	// the current position becomes to and to's behavior runs exactly once.
	// A behavior error is returned as-is with moved == true: the move has
	// already happened. When the edge is missing or its guard evaluates
	// false, MoveTo returns (false, nil) and nothing changes; this is a
	// normal outcome, not an error.
	MoveTo(to StateID) (moved bool, err error)

	// NextCandidates returns the targets reachable from the current state
	// in link order. Fails with ErrNotStarted before StartFrom.
	NextCandidates() ([]StateID, error)

	// CandidatesFrom is NextCandidates for an explicit source state.
	CandidatesFrom(from StateID) []StateID

	// Step tries each candidate of the current state in link order and
	// takes the first whose guard is open, with MoveTo semantics. With no
	// candidates at all it fails with ErrNoOutgoingTransition. When
	// candidates exist but every guard is closed it returns
	// StepResult{Moved: false} and a nil error. First match wins; guard
	// authors keep at most one sibling guard true if they need behavior
	// stable under link reordering.
	Step() (StepResult, error)

	// Snapshot captures the persistable portion of the automaton: every
	// state's ID and payload fields, ordered by ID, plus the current
	// position. Guards, behaviors and the transition table are executable
	// and are deliberately absent; they are re-derived from the Definition
	// when the document is loaded.
	Snapshot() *Document
}

package engine

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/tempestive/DFAnet/pkg/api"
)

// automaton is the single synchronous implementation of api.Automaton.
// Guards and behaviors run inline on the caller's goroutine; the instance is
// exclusively owned and not safe for concurrent mutation.
type automaton struct {
	name       string
	instanceID string

	registry *stateRegistry
	table    *transitionTable

	current api.StateID
	started bool

	observer api.Observer
}

var _ api.Automaton = (*automaton)(nil)

// Option configures an automaton at construction time.
type Option func(*automaton)

// WithObserver attaches an observer to the automaton. The default is
// api.NoopObserver.
func WithObserver(obs api.Observer) Option {
	return func(a *automaton) {
		if obs != nil {
			a.observer = obs
		}
	}
}

// New constructs an automaton from a definition: it runs def.States first
// and def.Transitions second, exactly once. A Transitions routine that links
// an ID the States routine did not register fails with api.ErrUnknownState.
func New(def api.Definition, opts ...Option) (api.Automaton, error) {
	if def.States == nil {
		return nil, errors.New("definition has no states routine")
	}

	a := &automaton{
		name:       def.Name,
		instanceID: uuid.NewString(),
		registry:   newStateRegistry(),
		table:      newTransitionTable(),
		current:    api.NoState,
		observer:   api.NoopObserver{},
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := def.States(a); err != nil {
		return nil, fmt.Errorf("defining states of %q: %w", def.Name, err)
	}
	if def.Transitions != nil {
		if err := def.Transitions(a); err != nil {
			return nil, fmt.Errorf("defining transitions of %q: %w", def.Name, err)
		}
	}

	return a, nil
}

func (a *automaton) info() api.AutomatonInfo {
	return api.AutomatonInfo{Automaton: a.name, InstanceID: a.instanceID}
}

func (a *automaton) Name() string { return a.name }

func (a *automaton) InstanceID() string { return a.instanceID }

func (a *automaton) Register(s api.State) {
	a.registry.register(s)
}

func (a *automaton) Link(from, to api.StateID, g api.Guard) error {
	if !a.registry.has(from) {
		return fmt.Errorf("link source %d: %w", from, api.ErrUnknownState)
	}
	if !a.registry.has(to) {
		return fmt.Errorf("link target %d: %w", to, api.ErrUnknownState)
	}
	a.table.link(from, to, g)
	return nil
}

func (a *automaton) GetState(id api.StateID) (*api.State, error) {
	return a.registry.get(id)
}

func (a *automaton) States() []*api.State {
	return a.registry.all()
}

func (a *automaton) EdgesFrom(from api.StateID) []api.StateID {
	return a.table.from(from)
}

func (a *automaton) StartFrom(id api.StateID) error {
	if !a.registry.has(id) {
		return fmt.Errorf("start from %d: %w", id, api.ErrUnknownState)
	}
	a.current = id
	a.started = true
	a.observer.OnStart(a.info(), id)
	return nil
}

func (a *automaton) Current() (api.StateID, bool) {
	if !a.started {
		return api.NoState, false
	}
	return a.current, true
}

// evalGuard evaluates the guard of (from, to). The second result is false
// when the edge does not exist at all.
func (a *automaton) evalGuard(from, to api.StateID) (open bool, exists bool, err error) {
	g, ok := a.table.guard(from, to)
	if !ok {
		return false, false, nil
	}
	if g == nil {
		return true, true, nil
	}
	open, err = g()
	if err != nil {
		return false, true, &api.GuardError{From: from, To: to, Err: err}
	}
	return open, true, nil
}

func (a *automaton) CanMoveTo(to api.StateID) (bool, error) {
	if !a.started {
		return false, api.ErrNotStarted
	}
	open, _, err := a.evalGuard(a.current, to)
	if err != nil {
		a.observer.OnFailure(a.info(), a.current, to, err)
		return false, err
	}
	return open, nil
}

func (a *automaton) MoveTo(to api.StateID) (bool, error) {
	if !a.started {
		return false, api.ErrNotStarted
	}
	open, _, err := a.evalGuard(a.current, to)
	if err != nil {
		a.observer.OnFailure(a.info(), a.current, to, err)
		return false, err
	}
	if !open {
		// Missing edge or closed guard: a normal outcome, not an error.
		return false, nil
	}
	return true, a.perform(to)
}

// perform commits the move to an open target and runs its behavior exactly
// once. The position changes before the behavior runs; a behavior error is
// returned unmodified, with the move already done.
func (a *automaton) perform(to api.StateID) error {
	from := a.current
	a.current = to

	target, err := a.registry.get(to)
	if err != nil {
		// Unreachable when targets come through Link, which validates IDs.
		return err
	}

	start := time.Now()
	if target.Behavior != nil {
		if err := target.Behavior(); err != nil {
			a.observer.OnFailure(a.info(), from, to, err)
			return err
		}
	}
	a.observer.OnTransition(a.info(), from, to, time.Since(start))
	return nil
}

func (a *automaton) NextCandidates() ([]api.StateID, error) {
	if !a.started {
		return nil, api.ErrNotStarted
	}
	return a.table.from(a.current), nil
}

func (a *automaton) CandidatesFrom(from api.StateID) []api.StateID {
	return a.table.from(from)
}

func (a *automaton) Step() (api.StepResult, error) {
	if !a.started {
		return api.StepResult{From: api.NoState, To: api.NoState}, api.ErrNotStarted
	}

	from := a.current
	candidates := a.table.from(from)
	if len(candidates) == 0 {
		return api.StepResult{From: from, To: api.NoState},
			fmt.Errorf("state %d: %w", from, api.ErrNoOutgoingTransition)
	}

	for _, to := range candidates {
		open, _, err := a.evalGuard(from, to)
		if err != nil {
			a.observer.OnFailure(a.info(), from, to, err)
			return api.StepResult{From: from, To: api.NoState}, err
		}
		if !open {
			continue
		}
		// First match wins; remaining candidates are not evaluated.
		return api.StepResult{From: from, To: to, Moved: true}, a.perform(to)
	}

	a.observer.OnBlocked(a.info(), from)
	return api.StepResult{From: from, To: api.NoState}, nil
}

func (a *automaton) Snapshot() *api.Document {
	states := a.registry.all()
	doc := &api.Document{
		FormatVersion: api.DocumentFormatVersion,
		Automaton:     a.name,
		States:        make([]api.DocumentState, 0, len(states)),
		CurrentID:     api.NoState,
		SavedAt:       time.Now().UTC(),
	}
	for _, s := range states {
		doc.States = append(doc.States, api.DocumentState{
			ID:   s.ID,
			Name: s.Name,
			Data: maps.Clone(s.Data),
		})
	}
	if a.started {
		doc.CurrentID = a.current
	}
	a.observer.OnSnapshotSaved(a.info(), doc.CurrentID)
	return doc
}

package dfanet

import (
	"fmt"

	"github.com/tempestive/DFAnet/pkg/api"
)

// DefinitionBuilder provides a fluent API for defining automata:
//
//	def := dfanet.NewBuilder("turnstile").
//	    State(0, "locked", nil).
//	    State(1, "unlocked", playClick).
//	    Link(0, 1, coinInserted).
//	    Always(1, 0).
//	    Build()
//
//	a, err := dfanet.New(def)
//
// The builder records states and links in call order and replays them
// through the definition routines, so the resulting automaton behaves
// exactly as one defined by hand-written States/Transitions functions,
// including after a snapshot is loaded and the definition is re-run.
type DefinitionBuilder struct {
	name   string
	states []api.State
	links  []api.Transition
}

// NewBuilder creates a new definition builder with the given name.
func NewBuilder(name string) *DefinitionBuilder {
	return &DefinitionBuilder{name: name}
}

// Name returns the definition name.
func (b *DefinitionBuilder) Name() string {
	return b.name
}

// State adds a state with the given ID, display name and behavior routine.
// A nil behavior means entering the state has no side effect.
func (b *DefinitionBuilder) State(id StateID, name string, behavior Behavior) *DefinitionBuilder {
	return b.StateData(id, name, nil, behavior)
}

// StateData is State with automaton-specific payload fields. The data map
// travels with the snapshot document; keep it to document-serializable
// values.
func (b *DefinitionBuilder) StateData(id StateID, name string, data map[string]any, behavior Behavior) *DefinitionBuilder {
	if id < 0 {
		panic(fmt.Sprintf("dfanet: state %q has negative id %d", name, id))
	}
	b.states = append(b.states, api.State{
		ID:       id,
		Name:     name,
		Data:     data,
		Behavior: behavior,
	})
	return b
}

// Link adds a guarded transition from one state to another. Links are tried
// by Step in the order they were added.
func (b *DefinitionBuilder) Link(from, to StateID, g Guard) *DefinitionBuilder {
	b.links = append(b.links, api.Transition{From: from, To: to, Guard: g})
	return b
}

// Always adds an unconditional transition (a nil guard, always open).
func (b *DefinitionBuilder) Always(from, to StateID) *DefinitionBuilder {
	return b.Link(from, to, nil)
}

// Build produces the Definition. The builder can keep being used afterwards;
// the returned definition replays the states and links recorded so far.
func (b *DefinitionBuilder) Build() Definition {
	states := make([]api.State, len(b.states))
	copy(states, b.states)
	links := make([]api.Transition, len(b.links))
	copy(links, b.links)

	return Definition{
		Name: b.name,
		States: func(g Graph) error {
			for _, s := range states {
				g.Register(s)
			}
			return nil
		},
		Transitions: func(g Graph) error {
			for _, l := range links {
				if err := g.Link(l.From, l.To, l.Guard); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// MustBuild builds the definition and constructs an automaton from it,
// panicking on error. Useful for initialization in main().
func (b *DefinitionBuilder) MustBuild(opts ...Option) Automaton {
	a, err := New(b.Build(), opts...)
	if err != nil {
		panic(err)
	}
	return a
}

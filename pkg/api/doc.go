// Package api contains the core building blocks used by the dfanet automaton
// engine. It provides the low-level primitives for defining automata,
// describing their persisted form, and observing engine behavior.
//
// Most users interact with the higher-level dfanet package, which re-exports
// selected types and helpers from this package. The api package is intended
// for advanced use cases, custom integrations, or contributors extending the
// engine itself.
//
// # Concepts
//
// The api package centers around a small set of concepts:
//
//   - States, guards and behavior routines
//   - Definitions
//   - The Automaton interface
//   - Snapshot documents
//   - Observability and the journal
//
// # States, Guards and Behaviors
//
// A State is a node in the graph, identified by a non-negative integer ID
// unique within one automaton instance. Each state carries payload fields
// (a name and a free-form data map) plus a Behavior routine invoked exactly
// once per transition into the state.
//
// A Guard is a zero-argument predicate attached to a directed edge. It is
// evaluated at decision time and may read mutable context captured by its
// closure. Guards and behaviors are function values held per state and edge,
// not subclass dispatch: the registry and transition table stay homogeneous
// and data-driven.
//
// # Definitions
//
// A Definition is the construction recipe of a concrete automaton type: a
// States routine registering every state, then a Transitions routine linking
// every guarded edge. The engine runs them exactly once, in that order,
// inside New, and runs them again into a scratch instance when a snapshot
// is loaded, because the persisted form cannot carry executable code.
//
// # Snapshot Documents
//
// A Document is the persistable portion of an automaton: the ordered state
// list with payload fields, plus the current position. Guards, behaviors and
// the transition table never appear in a document; after load they are
// rebound from a freshly run Definition.
//
// # Observability
//
// The Observer interface reports lifecycle events: starts, transitions,
// blocked steps, failures, snapshot saves and loads. Ready-made
// implementations cover structured logging (log/slog), basic in-memory
// metrics, fan-out composition, and bridging events into an append-only
// Journal.
//
// # Usage
//
// Most applications should start from the dfanet package, using the
// DefinitionBuilder and the constructors provided there. The api package is
// useful when you need lower-level access or when contributing changes to
// the core engine.
package api

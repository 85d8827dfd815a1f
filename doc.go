// Package dfanet provides a lightweight, embeddable deterministic
// finite-automaton engine for Go.
//
// DFAnet lets a caller define an arbitrary directed graph of named states,
// attach a behavior routine to each state and a boolean guard to each edge,
// drive execution step by step, and persist the automaton's graph and
// current position across process runs. It runs fully in Go, supports
// multiple persistence backends, and integrates cleanly into existing
// codebases.
//
// # Core Concepts
//
// The programming model is intentionally small and idiomatic:
//
//  1. Definition
//  2. Automaton
//  3. DefinitionBuilder
//  4. SnapshotStore
//  5. Journal
//
// # Definition
//
// A Definition is the construction recipe of a concrete automaton type: a
// States routine registering every state (ID, payload fields, behavior) and
// a Transitions routine linking every guarded edge. New runs them exactly
// once, in that order. Linking an ID that States did not register fails with
// ErrUnknownState.
//
// The same routines are the key to persistence: behaviors and guards are
// function values and cannot be serialized, so loading a snapshot re-runs
// the definition and rebinds the executable parts by state ID. The
// definition must therefore be deterministic in the graph it produces.
//
// # Automaton
//
// An Automaton holds a registry of states indexed by unique integer ID, a
// transition table mapping ordered (from, to) pairs to guards, and a single
// current position. Execution is synchronous and single-threaded: StartFrom
// sets the position (no behavior runs), MoveTo takes one guarded edge and
// invokes the target's behavior exactly once, and Step tries the current
// state's candidates in link order, taking the first whose guard is open.
// First match wins; that fixed tie-break is the engine's sole
// non-determinism-resolution rule.
//
// A step with candidates but only closed guards is a normal outcome, not an
// error; a state with no outgoing edges at all reports
// ErrNoOutgoingTransition. Guard errors surface as *GuardError; behavior
// errors propagate to the caller unmodified.
//
// # DefinitionBuilder
//
// DefinitionBuilder is a fluent way to produce a Definition:
//
//	def := dfanet.NewBuilder("parity").
//	    State(0, "start", nil).
//	    State(1, "check", nil).
//	    Link(0, 1, nil).
//	    Build()
//
// # Persistence
//
// Snapshot captures a Document: the ordered state list with payload fields
// plus the current position. Save/Load move documents through a
// SnapshotStore; Write/Read work on raw streams. Documents encode as JSON or
// YAML and round-trip states and current position exactly.
//
// Stores are available backed by:
//
//   - Memory (non-durable, best for tests)
//   - Files (one atomically written file per key)
//   - SQLite (embedded durability)
//   - Redis
//
// Loading constructs a fresh instance by re-running the definition, overlays
// the persisted payloads and position, and fails with ErrGraphMismatch when
// the saved position no longer exists in the definition's graph.
//
// # Observability
//
// An Observer receives lifecycle callbacks: starts, transitions, blocked
// steps, failures, snapshot saves and loads. Ready-made implementations
// cover structured logging via log/slog, basic in-memory metrics, fan-out
// composition, and a bridge appending events to a Journal (in-memory or
// SQLite).
//
// See the examples directory for end-to-end usage, including saving an
// automaton mid-run and resuming it in a new process.
package dfanet

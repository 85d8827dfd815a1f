package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownState is returned when an operation references a state ID
	// that is not registered: StartFrom with a foreign ID, or Link during
	// definition with an endpoint that States did not register.
	ErrUnknownState = errors.New("unknown state")

	// ErrNotStarted is returned by execution operations invoked before the
	// first successful StartFrom.
	ErrNotStarted = errors.New("automaton not started")

	// ErrNoOutgoingTransition is returned by Step when the current state has
	// no candidate edges at all. It is distinct from the non-error outcome
	// where candidates exist but every guard is closed.
	ErrNoOutgoingTransition = errors.New("no outgoing transition")

	// ErrGraphMismatch is returned by Load when the persisted current ID is
	// not among the states the definition routines produce. The graph
	// changed between save and load; no automaton is returned.
	ErrGraphMismatch = errors.New("graph mismatch")

	// ErrUnsupportedFormat is returned when a snapshot encoding other than
	// the supported formats is requested.
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")

	// ErrSnapshotNotFound is returned by snapshot stores when no document
	// exists under the requested key.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// GuardError reports that a guard routine itself failed while being
// evaluated for the edge (From, To). The guard's own error is wrapped, never
// swallowed: errors.Is/As see through to the cause.
type GuardError struct {
	From StateID
	To   StateID
	Err  error
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("guard (%d -> %d) failed: %v", e.From, e.To, e.Err)
}

func (e *GuardError) Unwrap() error { return e.Err }

// AsGuardError returns the *GuardError in err's chain, if any.
func AsGuardError(err error) (*GuardError, bool) {
	var ge *GuardError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// SnapshotError reports an I/O or encoding failure while reading or writing
// a snapshot document. Op names the failing operation ("encode", "decode",
// "save", "load", ...); Format is the encoding involved, when known.
type SnapshotError struct {
	Op     string
	Format Format
	Err    error
}

func (e *SnapshotError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("snapshot %s (%s): %v", e.Op, e.Format, e.Err)
	}
	return fmt.Sprintf("snapshot %s: %v", e.Op, e.Err)
}

func (e *SnapshotError) Unwrap() error { return e.Err }

// AsSnapshotError returns the *SnapshotError in err's chain, if any.
func AsSnapshotError(err error) (*SnapshotError, bool) {
	var se *SnapshotError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

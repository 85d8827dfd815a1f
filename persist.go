package dfanet

import (
	"context"
	"io"

	"github.com/tempestive/DFAnet/internal/engine"
	"github.com/tempestive/DFAnet/internal/persistence"
	"github.com/tempestive/DFAnet/pkg/api"
)

// Save snapshots the automaton into the store under the given key, encoded
// in the given format. The document carries the ordered state list with
// payload fields plus the current position; guards, behaviors and the
// transition table are executable and never written.
func Save(ctx context.Context, a Automaton, store SnapshotStore, key string, format Format) error {
	return store.Save(ctx, key, a.Snapshot(), format)
}

// Load reads the document stored under key and reconstructs a working
// automaton from it. The definition routines are re-run into the new
// instance, so behaviors and transition guards come from def while payload
// fields and the current position come from the document; afterwards the
// automaton is indistinguishable in behavior from one that ran def natively.
//
// If the persisted current state is not among the states def produces, Load
// fails with ErrGraphMismatch.
func Load(ctx context.Context, store SnapshotStore, key string, def Definition, opts ...Option) (Automaton, error) {
	doc, err := store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	return engine.Restore(doc, def, opts...)
}

// Write encodes the automaton's snapshot document to w in the given format.
// It is the stream-level counterpart of Save for callers that manage their
// own storage.
func Write(w io.Writer, a Automaton, format Format) error {
	data, err := persistence.EncodeDocument(a.Snapshot(), format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return &api.SnapshotError{Op: "write", Format: format, Err: err}
	}
	return nil
}

// Read decodes a snapshot document from r and reconstructs a working
// automaton from it, with the same rebinding semantics as Load.
func Read(r io.Reader, format Format, def Definition, opts ...Option) (Automaton, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &api.SnapshotError{Op: "read", Format: format, Err: err}
	}
	doc, err := persistence.DecodeDocument(data, format)
	if err != nil {
		return nil, err
	}
	return engine.Restore(doc, def, opts...)
}

// Restore reconstructs a working automaton directly from an already decoded
// document, with the same rebinding semantics as Load.
func Restore(doc *Document, def Definition, opts ...Option) (Automaton, error) {
	return engine.Restore(doc, def, opts...)
}

package api

import "context"

// SnapshotStore is a keyed store of snapshot documents. Implementations
// encode the document in the caller's chosen format on Save and decode it
// with the format recorded alongside on Load, so a store can hold snapshots
// in mixed encodings.
//
// A snapshot is an independent copy, never a live reference: stores must not
// retain pointers into the saved document.
//
// Load for a missing key fails with ErrSnapshotNotFound. I/O and codec
// failures are reported as *SnapshotError.
type SnapshotStore interface {
	Save(ctx context.Context, key string, doc *Document, format Format) error
	Load(ctx context.Context, key string) (*Document, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]string, error)
}

package dfanet

import "database/sql"

// SQLiteBundle wires together a durable snapshot store and an event journal
// sharing the same SQLite database.
//
// Typical usage:
//
//	db, _ := sql.Open("sqlite", "file:dfanet.db?_journal=WAL")
//	bundle, err := dfanet.NewSQLiteBundle(db)
//	a, _ := dfanet.New(def, dfanet.WithObserver(
//	    dfanet.NewJournalObserver(bundle.Journal, nil)))
//	// ... drive a, then dfanet.Save(ctx, a, bundle.Store, "run-1", dfanet.FormatJSON)
type SQLiteBundle struct {
	Store   SnapshotStore
	Journal Journal
}

// NewSQLiteBundle initializes the snapshot and journal schemas in the given
// database and returns the wired bundle.
func NewSQLiteBundle(db *sql.DB) (*SQLiteBundle, error) {
	store, err := NewSQLiteSnapshotStore(db)
	if err != nil {
		return nil, err
	}

	journal, err := NewSQLiteJournal(db)
	if err != nil {
		return nil, err
	}

	return &SQLiteBundle{
		Store:   store,
		Journal: journal,
	}, nil
}

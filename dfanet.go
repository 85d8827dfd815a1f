package dfanet

import (
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tempestive/DFAnet/internal/engine"
	"github.com/tempestive/DFAnet/internal/persistence"
	"github.com/tempestive/DFAnet/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	StateID       = api.StateID
	State         = api.State
	Behavior      = api.Behavior
	Guard         = api.Guard
	Transition    = api.Transition
	Definition    = api.Definition
	Graph         = api.Graph
	Automaton     = api.Automaton
	StepResult    = api.StepResult
	Document      = api.Document
	DocumentState = api.DocumentState
	Format        = api.Format

	Observer             = api.Observer
	AutomatonInfo        = api.AutomatonInfo
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	CompositeObserver    = api.CompositeObserver
	NoopObserver         = api.NoopObserver

	Event     = api.Event
	EventType = api.EventType
	Journal   = api.Journal

	GuardError    = api.GuardError
	SnapshotError = api.SnapshotError
)

// Option configures an automaton at construction and load time.
type Option = engine.Option

// SnapshotStore is the keyed document store interface implemented by the
// memory, file, SQLite and Redis stores.
type SnapshotStore = api.SnapshotStore

// Re-export common observer helpers.

var (
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
	NewJournalObserver   = api.NewJournalObserver
)

// Re-export error kinds and helpers.

var (
	ErrUnknownState         = api.ErrUnknownState
	ErrNotStarted           = api.ErrNotStarted
	ErrNoOutgoingTransition = api.ErrNoOutgoingTransition
	ErrGraphMismatch        = api.ErrGraphMismatch
	ErrUnsupportedFormat    = api.ErrUnsupportedFormat
	ErrSnapshotNotFound     = api.ErrSnapshotNotFound

	AsGuardError    = api.AsGuardError
	AsSnapshotError = api.AsSnapshotError
)

// Re-export constants for convenience.

const (
	NoState = api.NoState

	FormatJSON = api.FormatJSON
	FormatYAML = api.FormatYAML

	EventStarted        = api.EventStarted
	EventTransition     = api.EventTransition
	EventBlocked        = api.EventBlocked
	EventFailed         = api.EventFailed
	EventSnapshotSaved  = api.EventSnapshotSaved
	EventSnapshotLoaded = api.EventSnapshotLoaded
)

// Automaton constructors
// These wrap the internal/engine package so external callers
// never need to import internal packages.

// New constructs an automaton from a definition, running its States routine
// first and its Transitions routine second, exactly once.
func New(def Definition, opts ...Option) (Automaton, error) {
	return engine.New(def, opts...)
}

// WithObserver attaches an observer to the automaton.
func WithObserver(obs Observer) Option {
	return engine.WithObserver(obs)
}

// Snapshot store constructors

// NewMemorySnapshotStore returns a non-durable SnapshotStore backed by a map.
func NewMemorySnapshotStore() SnapshotStore {
	return persistence.NewMemorySnapshotStore()
}

// NewFileSnapshotStore returns a SnapshotStore keeping one atomically
// written file per key under basePath.
func NewFileSnapshotStore(basePath string) SnapshotStore {
	return persistence.NewFileSnapshotStore(basePath)
}

// NewSQLiteSnapshotStore returns a SnapshotStore that persists documents in
// a SQLite database. The caller imports the driver, e.g. "modernc.org/sqlite".
func NewSQLiteSnapshotStore(db *sql.DB) (SnapshotStore, error) {
	return persistence.NewSQLiteSnapshotStore(db)
}

// NewRedisSnapshotStore returns a SnapshotStore that persists documents in
// Redis under the given key prefix.
func NewRedisSnapshotStore(client *redis.Client, prefix string) SnapshotStore {
	return persistence.NewRedisSnapshotStore(client, prefix)
}

// NewRedisSnapshotStoreTTL is NewRedisSnapshotStore with snapshots expiring
// after ttl.
func NewRedisSnapshotStoreTTL(client *redis.Client, prefix string, ttl time.Duration) SnapshotStore {
	return persistence.NewRedisSnapshotStore(client, prefix, persistence.WithTTL(ttl))
}

// Journal constructors

// NewNoopJournal returns a Journal that discards all events.
func NewNoopJournal() Journal {
	return persistence.NoopJournal{}
}

// NewMemoryJournal returns a non-durable in-memory Journal.
func NewMemoryJournal() Journal {
	return persistence.NewMemoryJournal()
}

// NewSQLiteJournal returns a Journal that appends events to a SQLite
// database.
func NewSQLiteJournal(db *sql.DB) (Journal, error) {
	return persistence.NewSQLiteJournal(db)
}

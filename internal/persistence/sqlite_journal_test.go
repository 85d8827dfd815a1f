package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/tempestive/DFAnet/pkg/api"
)

func newTestSQLiteJournal(t *testing.T) *SQLiteJournal {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	journal, err := NewSQLiteJournal(db)
	if err != nil {
		t.Fatalf("NewSQLiteJournal failed: %v", err)
	}
	return journal
}

func TestSQLiteJournalRoundTrip(t *testing.T) {
	journal := newTestSQLiteJournal(t)
	ctx := context.Background()

	at := time.Date(2025, 11, 3, 10, 30, 0, 42, time.UTC)
	events := []api.Event{
		{InstanceID: "inst-1", At: at, Type: api.EventStarted, Automaton: "parity", From: api.NoState, To: 0},
		{InstanceID: "inst-1", At: at.Add(time.Second), Type: api.EventTransition, Automaton: "parity", From: 0, To: 1},
		{InstanceID: "inst-1", At: at.Add(2 * time.Second), Type: api.EventFailed, Automaton: "parity", From: 1, To: 3, Detail: "boom"},
		{InstanceID: "other", At: at, Type: api.EventStarted, Automaton: "parity", From: api.NoState, To: 0},
	}
	for _, ev := range events {
		require.NoError(t, journal.Append(ctx, ev))
	}

	got, err := journal.List(ctx, "inst-1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, api.EventStarted, got[0].Type)
	assert.Equal(t, api.NoState, got[0].From)
	assert.Equal(t, api.StateID(0), got[0].To)
	assert.True(t, got[0].At.Equal(at))

	assert.Equal(t, api.EventTransition, got[1].Type)
	assert.Equal(t, api.StateID(0), got[1].From)
	assert.Equal(t, api.StateID(1), got[1].To)

	assert.Equal(t, api.EventFailed, got[2].Type)
	assert.Equal(t, "boom", got[2].Detail)
}

func TestSQLiteJournalStampsMissingTime(t *testing.T) {
	journal := newTestSQLiteJournal(t)
	ctx := context.Background()

	require.NoError(t, journal.Append(ctx, api.Event{InstanceID: "inst-1", Type: api.EventStarted}))

	got, err := journal.List(ctx, "inst-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].At.IsZero())
}

func TestSQLiteJournalUnknownInstance(t *testing.T) {
	journal := newTestSQLiteJournal(t)

	got, err := journal.List(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempestive/DFAnet/pkg/api"
)

func TestMemoryJournalAppendAndList(t *testing.T) {
	journal := NewMemoryJournal()
	ctx := context.Background()

	events := []api.Event{
		{InstanceID: "inst-1", Type: api.EventStarted, From: api.NoState, To: 0},
		{InstanceID: "inst-1", Type: api.EventTransition, From: 0, To: 1},
		{InstanceID: "inst-2", Type: api.EventStarted, From: api.NoState, To: 0},
		{InstanceID: "inst-1", Type: api.EventBlocked, From: 1, To: api.NoState},
	}
	for _, ev := range events {
		require.NoError(t, journal.Append(ctx, ev))
	}

	got, err := journal.List(ctx, "inst-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, api.EventStarted, got[0].Type)
	assert.Equal(t, api.EventTransition, got[1].Type)
	assert.Equal(t, api.EventBlocked, got[2].Type)
	for _, ev := range got {
		assert.False(t, ev.At.IsZero(), "append must stamp a missing time")
	}

	got, err = journal.List(ctx, "inst-2")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = journal.List(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryJournalListReturnsCopy(t *testing.T) {
	journal := NewMemoryJournal()
	ctx := context.Background()

	require.NoError(t, journal.Append(ctx, api.Event{InstanceID: "inst-1", Type: api.EventStarted}))

	first, err := journal.List(ctx, "inst-1")
	require.NoError(t, err)
	first[0].Type = api.EventFailed

	second, err := journal.List(ctx, "inst-1")
	require.NoError(t, err)
	assert.Equal(t, api.EventStarted, second[0].Type)
}

func TestNoopJournalDiscards(t *testing.T) {
	journal := NoopJournal{}
	ctx := context.Background()

	require.NoError(t, journal.Append(ctx, api.Event{InstanceID: "inst-1"}))
	got, err := journal.List(ctx, "inst-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

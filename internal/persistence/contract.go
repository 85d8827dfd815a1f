package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempestive/DFAnet/pkg/api"
)

// RunSnapshotStoreContract runs a suite of tests verifying that a
// SnapshotStore implementation adheres to the interface contract. Every
// store's own test file calls it against a fresh store.
func RunSnapshotStoreContract(t *testing.T, store api.SnapshotStore) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405.000000000")

	doc := &api.Document{
		FormatVersion: api.DocumentFormatVersion,
		Automaton:     "contract",
		States: []api.DocumentState{
			{ID: 0, Name: "start"},
			{ID: 1, Name: "work", Data: map[string]any{"weight": "heavy"}},
			{ID: 2, Name: "done"},
		},
		CurrentID: 1,
	}

	t.Run("SaveAndLoad", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, doc, api.FormatJSON))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, doc.CurrentID, loaded.CurrentID)
		require.Len(t, loaded.States, 3)
		assert.Equal(t, api.StateID(1), loaded.States[1].ID)
		assert.Equal(t, "work", loaded.States[1].Name)
		assert.Equal(t, "heavy", loaded.States[1].Data["weight"])
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		changed := *doc
		changed.CurrentID = 2
		require.NoError(t, store.Save(ctx, key, &changed, api.FormatYAML))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, api.StateID(2), loaded.CurrentID)
	})

	t.Run("SnapshotIsIndependentCopy", func(t *testing.T) {
		mutable := &api.Document{
			FormatVersion: api.DocumentFormatVersion,
			States:        []api.DocumentState{{ID: 0, Data: map[string]any{"v": "before"}}},
			CurrentID:     0,
		}
		require.NoError(t, store.Save(ctx, key+"-copy", mutable, api.FormatJSON))
		mutable.States[0].Data["v"] = "after"
		mutable.CurrentID = api.NoState

		loaded, err := store.Load(ctx, key+"-copy")
		require.NoError(t, err)
		assert.Equal(t, api.StateID(0), loaded.CurrentID)
		assert.Equal(t, "before", loaded.States[0].Data["v"])

		require.NoError(t, store.Delete(ctx, key+"-copy"))
	})

	t.Run("LoadNonExistent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, api.ErrSnapshotNotFound)
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		err := store.Save(ctx, key, doc, api.Format("xml"))
		assert.ErrorIs(t, err, api.ErrUnsupportedFormat)
	})

	t.Run("List", func(t *testing.T) {
		id1 := key + "-1"
		id2 := key + "-2"
		require.NoError(t, store.Save(ctx, id1, doc, api.FormatJSON))
		require.NoError(t, store.Save(ctx, id2, doc, api.FormatYAML))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, id1)
		assert.Contains(t, keys, id2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, key))

		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, api.ErrSnapshotNotFound)

		err = store.Delete(ctx, key)
		assert.ErrorIs(t, err, api.ErrSnapshotNotFound)
	})
}

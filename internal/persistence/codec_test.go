package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempestive/DFAnet/pkg/api"
)

func sampleDocument() *api.Document {
	return &api.Document{
		FormatVersion: api.DocumentFormatVersion,
		Automaton:     "sample",
		States: []api.DocumentState{
			{ID: 0, Name: "start"},
			{ID: 1, Name: "check", Data: map[string]any{"threshold": "low"}},
			{ID: 4, Name: "done"},
		},
		CurrentID: 1,
		SavedAt:   time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC),
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, format := range []api.Format{api.FormatJSON, api.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			doc := sampleDocument()

			data, err := EncodeDocument(doc, format)
			require.NoError(t, err)

			decoded, err := DecodeDocument(data, format)
			require.NoError(t, err)

			assert.Equal(t, doc.FormatVersion, decoded.FormatVersion)
			assert.Equal(t, doc.Automaton, decoded.Automaton)
			assert.Equal(t, doc.CurrentID, decoded.CurrentID)
			require.Len(t, decoded.States, len(doc.States))
			for i, s := range doc.States {
				assert.Equal(t, s.ID, decoded.States[i].ID)
				assert.Equal(t, s.Name, decoded.States[i].Name)
			}
			assert.Equal(t, "low", decoded.States[1].Data["threshold"])
			assert.True(t, doc.SavedAt.Equal(decoded.SavedAt))
		})
	}
}

func TestCodecUnsupportedFormat(t *testing.T) {
	_, err := EncodeDocument(sampleDocument(), api.Format("xml"))
	assert.ErrorIs(t, err, api.ErrUnsupportedFormat)

	_, err = DecodeDocument([]byte("{}"), api.Format(""))
	assert.ErrorIs(t, err, api.ErrUnsupportedFormat)
}

func TestCodecDecodeFailureIsSnapshotError(t *testing.T) {
	_, err := DecodeDocument([]byte("{not json"), api.FormatJSON)
	se, ok := api.AsSnapshotError(err)
	require.True(t, ok, "expected SnapshotError, got %v", err)
	assert.Equal(t, "decode", se.Op)
	assert.Equal(t, api.FormatJSON, se.Format)
}

func TestDecodeNormalizesStateOrder(t *testing.T) {
	data := []byte(`{"format_version":1,"states":[{"id":4},{"id":0},{"id":2}],"current_id":0}`)

	doc, err := DecodeDocument(data, api.FormatJSON)
	require.NoError(t, err)

	ids := make([]api.StateID, 0, len(doc.States))
	for _, s := range doc.States {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []api.StateID{0, 2, 4}, ids)
}

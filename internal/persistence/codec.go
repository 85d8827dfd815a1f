package persistence

import (
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/tempestive/DFAnet/pkg/api"
)

// EncodeDocument serializes a snapshot document in the given format.
// Supported formats are api.FormatJSON and api.FormatYAML; anything else
// fails with api.ErrUnsupportedFormat.
func EncodeDocument(doc *api.Document, format api.Format) ([]byte, error) {
	switch format {
	case api.FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, &api.SnapshotError{Op: "encode", Format: format, Err: err}
		}
		return data, nil
	case api.FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, &api.SnapshotError{Op: "encode", Format: format, Err: err}
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%q: %w", format, api.ErrUnsupportedFormat)
	}
}

// DecodeDocument parses a snapshot document from data in the given format.
// The returned document's states are normalized to ascending ID order, so
// downstream code can rely on the ordering regardless of how the document
// was produced.
func DecodeDocument(data []byte, format api.Format) (*api.Document, error) {
	var doc api.Document
	switch format {
	case api.FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &api.SnapshotError{Op: "decode", Format: format, Err: err}
		}
	case api.FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &api.SnapshotError{Op: "decode", Format: format, Err: err}
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, api.ErrUnsupportedFormat)
	}

	slices.SortFunc(doc.States, func(a, b api.DocumentState) int {
		return int(a.ID - b.ID)
	})
	return &doc, nil
}

package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tempestive/DFAnet/pkg/api"
)

// FileSnapshotStore is a SnapshotStore keeping one file per key in a base
// directory. The file extension records the encoding ("parity.json",
// "parity.yaml"), so Load does not need the caller to remember the format.
//
// Writes are atomic: the document is written to a temp file in the same
// directory, fsynced, closed, and renamed over the destination. A failure on
// any path leaves either the old snapshot or none, never a partial file.
type FileSnapshotStore struct {
	BasePath string
}

var _ api.SnapshotStore = (*FileSnapshotStore)(nil)

var fileFormats = []api.Format{api.FormatJSON, api.FormatYAML}

// NewFileSnapshotStore creates a FileSnapshotStore rooted at basePath.
// If basePath is empty, it defaults to ".dfanet/snapshots".
func NewFileSnapshotStore(basePath string) *FileSnapshotStore {
	if basePath == "" {
		basePath = filepath.Join(".dfanet", "snapshots")
	}
	return &FileSnapshotStore{BasePath: basePath}
}

func (s *FileSnapshotStore) path(key string, format api.Format) string {
	return filepath.Join(s.BasePath, key+"."+string(format))
}

func (s *FileSnapshotStore) Save(ctx context.Context, key string, doc *api.Document, format api.Format) error {
	if key == "" {
		return fmt.Errorf("snapshot key cannot be empty")
	}

	data, err := EncodeDocument(doc, format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return &api.SnapshotError{Op: "save", Format: format, Err: err}
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(s.BasePath, "tmp-"+key+"-*")
	if err != nil {
		return &api.SnapshotError{Op: "save", Format: format, Err: err}
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmp.Write(data); err != nil {
		return &api.SnapshotError{Op: "save", Format: format, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &api.SnapshotError{Op: "save", Format: format, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &api.SnapshotError{Op: "save", Format: format, Err: err}
	}

	if err := os.Rename(tmpPath, s.path(key, format)); err != nil {
		return &api.SnapshotError{Op: "save", Format: format, Err: err}
	}

	// A save in one format supersedes the key's snapshot in the other.
	for _, f := range fileFormats {
		if f != format {
			_ = os.Remove(s.path(key, f))
		}
	}
	return nil
}

func (s *FileSnapshotStore) Load(ctx context.Context, key string) (*api.Document, error) {
	if key == "" {
		return nil, fmt.Errorf("snapshot key cannot be empty")
	}

	for _, format := range fileFormats {
		data, err := os.ReadFile(s.path(key, format))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, &api.SnapshotError{Op: "load", Format: format, Err: err}
		}
		return DecodeDocument(data, format)
	}
	return nil, fmt.Errorf("key %q: %w", key, api.ErrSnapshotNotFound)
}

func (s *FileSnapshotStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("snapshot key cannot be empty")
	}

	deleted := false
	for _, format := range fileFormats {
		err := os.Remove(s.path(key, format))
		if err == nil {
			deleted = true
			continue
		}
		if !os.IsNotExist(err) {
			return &api.SnapshotError{Op: "delete", Format: format, Err: err}
		}
	}
	if !deleted {
		return fmt.Errorf("key %q: %w", key, api.ErrSnapshotNotFound)
	}
	return nil
}

func (s *FileSnapshotStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &api.SnapshotError{Op: "list", Err: err}
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, format := range fileFormats {
			suffix := "." + string(format)
			if strings.HasSuffix(name, suffix) {
				keys = append(keys, strings.TrimSuffix(name, suffix))
				break
			}
		}
	}
	slices.Sort(keys)
	return slices.Compact(keys), nil
}

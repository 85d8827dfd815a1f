package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tempestive/DFAnet/pkg/api"
)

// SQLiteSnapshotStore is a SnapshotStore backed by SQLite.
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing
// the driver, e.g.:
//
//	import _ "modernc.org/sqlite"
//
// The SQL uses only ? placeholders and standard types, so the store also
// works unchanged against other database/sql drivers with that placeholder
// style.
type SQLiteSnapshotStore struct {
	db *sql.DB
}

var _ api.SnapshotStore = (*SQLiteSnapshotStore)(nil)

// NewSQLiteSnapshotStore initializes the required schema in the given
// database and returns a new SQLiteSnapshotStore.
func NewSQLiteSnapshotStore(db *sql.DB) (*SQLiteSnapshotStore, error) {
	s := &SQLiteSnapshotStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSnapshotStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			format TEXT NOT NULL,
			document BLOB NOT NULL,
			saved_at INTEGER NOT NULL
		);`,
	)
	return err
}

func (s *SQLiteSnapshotStore) Save(ctx context.Context, key string, doc *api.Document, format api.Format) error {
	data, err := EncodeDocument(doc, format)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, format, document, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			format = excluded.format,
			document = excluded.document,
			saved_at = excluded.saved_at`,
		key,
		string(format),
		data,
		time.Now().UnixNano(),
	)
	if err != nil {
		return &api.SnapshotError{Op: "save", Format: format, Err: err}
	}
	return nil
}

func (s *SQLiteSnapshotStore) Load(ctx context.Context, key string) (*api.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT format, document FROM snapshots WHERE key = ?`,
		key,
	)

	var formatStr string
	var data []byte
	if err := row.Scan(&formatStr, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("key %q: %w", key, api.ErrSnapshotNotFound)
		}
		return nil, &api.SnapshotError{Op: "load", Err: err}
	}

	return DecodeDocument(data, api.Format(formatStr))
}

func (s *SQLiteSnapshotStore) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key)
	if err != nil {
		return &api.SnapshotError{Op: "delete", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &api.SnapshotError{Op: "delete", Err: err}
	}
	if affected == 0 {
		return fmt.Errorf("key %q: %w", key, api.ErrSnapshotNotFound)
	}
	return nil
}

func (s *SQLiteSnapshotStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM snapshots ORDER BY key ASC`)
	if err != nil {
		return nil, &api.SnapshotError{Op: "list", Err: err}
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, &api.SnapshotError{Op: "list", Err: err}
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, &api.SnapshotError{Op: "list", Err: err}
	}
	return keys, nil
}

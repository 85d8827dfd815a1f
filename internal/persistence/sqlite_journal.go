package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/tempestive/DFAnet/pkg/api"
)

// SQLiteJournal stores automaton events in SQLite.
type SQLiteJournal struct {
	db *sql.DB
}

var _ api.Journal = (*SQLiteJournal)(nil)

func NewSQLiteJournal(db *sql.DB) (*SQLiteJournal, error) {
	j := &SQLiteJournal{db: db}
	if err := j.initSchema(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *SQLiteJournal) initSchema() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS automaton_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			instance_id TEXT NOT NULL,
			at INTEGER NOT NULL,
			type TEXT NOT NULL,
			automaton TEXT NOT NULL DEFAULT '',
			from_state INTEGER NOT NULL DEFAULT -1,
			to_state INTEGER NOT NULL DEFAULT -1,
			detail TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_automaton_events_instance_id ON automaton_events(instance_id, id);
	`)
	return err
}

func (j *SQLiteJournal) Append(ctx context.Context, ev api.Event) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO automaton_events (instance_id, at, type, automaton, from_state, to_state, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.InstanceID,
		at.UnixNano(),
		string(ev.Type),
		ev.Automaton,
		int(ev.From),
		int(ev.To),
		ev.Detail,
	)
	return err
}

func (j *SQLiteJournal) List(ctx context.Context, instanceID string) ([]api.Event, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT instance_id, at, type, automaton, from_state, to_state, detail
		FROM automaton_events
		WHERE instance_id = ?
		ORDER BY id ASC`, instanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.Event
	for rows.Next() {
		var (
			id        string
			atN       int64
			typ       string
			automaton string
			from      int
			to        int
			detail    string
		)
		if err := rows.Scan(&id, &atN, &typ, &automaton, &from, &to, &detail); err != nil {
			return nil, err
		}
		out = append(out, api.Event{
			InstanceID: id,
			At:         time.Unix(0, atN),
			Type:       api.EventType(typ),
			Automaton:  automaton,
			From:       api.StateID(from),
			To:         api.StateID(to),
			Detail:     detail,
		})
	}
	return out, rows.Err()
}

// Package journal keeps an on-device trail of notable events (commands
// applied, errors reported, session transitions, detection outcomes)
// in a single-file sqlite database. The journal backs the error-report
// channel and the portal's recent-activity view.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event types recorded by the node.
const (
	TypeCommand   = "COMMAND"
	TypeError     = "ERROR"
	TypeSession   = "SESSION"
	TypeDetection = "DETECTION"
	TypeOTA       = "OTA"
	TypeReset     = "RESET"
)

// Event is a single journal entry.
type Event struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	Metadata   any       `json:"metadata,omitempty"`
}

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	From  time.Time
	To    time.Time
	Type  string
	Limit int
}

// Journal is the append/list contract consumed by the reporter and the
// portal.
type Journal interface {
	Append(ctx context.Context, e Event) error
	List(ctx context.Context, f Filter) ([]Event, error)
}

// SQLite is the sqlite-backed Journal.
type SQLite struct {
	db *sql.DB
}

// NewSQLite returns a journal over an initialized database handle.
func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

// Append inserts a new event. Empty IDs and zero timestamps are filled in.
func (j *SQLite) Append(ctx context.Context, e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO device_events (id, occurred_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`,
		e.ID,
		e.OccurredAt.Format("2006-01-02 15:04:05"),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Message,
		metaPtr,
	)
	return err
}

// List returns events matching the filter, most recent first.
func (j *SQLite) List(ctx context.Context, f Filter) ([]Event, error) {
	var (
		conds []string
		args  []any
	)
	if !f.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, f.To.UTC())
	}
	if typ := strings.ToUpper(strings.TrimSpace(f.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, occurred_at, type, message, meta FROM device_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0, 32)
	for rows.Next() {
		var ev Event
		var metaStr sql.NullString
		if err := rows.Scan(&ev.ID, &ev.OccurredAt, &ev.Type, &ev.Message, &metaStr); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

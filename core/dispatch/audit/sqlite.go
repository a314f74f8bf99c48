package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists audit records to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS assignment_audit (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ts INTEGER,
        outcome TEXT,
        record TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("init schema: %v (close: %v)", err, cerr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assignment_audit (ts, outcome, record) VALUES (?, ?, ?)`,
		rec.Timestamp.UnixMilli(), rec.Outcome, string(data))
	return err
}

func (s *SQLiteStore) List(ctx context.Context, from, to time.Time) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record FROM assignment_audit ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("corrupt audit record: %w", err)
		}
		if inWindow(rec.Timestamp, from, to) {
			recs = append(recs, rec)
		}
	}
	return recs, rows.Err()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// Package history persists completed interview sessions so past
// performance can be reviewed and exported later.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/querybox-dev/querybox/internal/summary"
	"github.com/querybox-dev/querybox/internal/transcript"
)

// Record is one completed interview as stored.
type Record struct {
	SessionID      string
	Role           string
	Mode           string
	OverallScore   float64
	TotalQuestions int
	CompletedAt    time.Time
	Summary        *summary.Summary
	Transcript     []transcript.Entry
}

// Store provides SQLite-backed persistence for completed interviews.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates the schema
// if it doesn't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS interviews (
		session_id TEXT PRIMARY KEY,
		role TEXT NOT NULL,
		mode TEXT NOT NULL,
		overall_score REAL NOT NULL,
		total_questions INTEGER NOT NULL,
		completed_at DATETIME NOT NULL,
		summary_json TEXT NOT NULL,
		transcript_json TEXT NOT NULL
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Save stores a completed interview. Saving the same session id again
// replaces the previous record.
func (s *Store) Save(rec *Record) error {
	summaryJSON, err := json.Marshal(rec.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	transcriptJSON, err := json.Marshal(rec.Transcript)
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO interviews
		 (session_id, role, mode, overall_score, total_questions, completed_at, summary_json, transcript_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Role, rec.Mode, rec.OverallScore, rec.TotalQuestions,
		rec.CompletedAt, string(summaryJSON), string(transcriptJSON),
	)
	if err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}
	return nil
}

// Get retrieves one interview by session id. Returns (nil, nil) when
// the session is unknown.
func (s *Store) Get(sessionID string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT session_id, role, mode, overall_score, total_questions, completed_at, summary_json, transcript_json
		 FROM interviews WHERE session_id = ?`,
		sessionID,
	)
	return scanRecord(row)
}

// List returns the most recently completed interviews, newest first.
// Transcripts are omitted from list results; use Get for the full record.
func (s *Store) List(limit int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT session_id, role, mode, overall_score, total_questions, completed_at
		 FROM interviews
		 ORDER BY completed_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.SessionID, &rec.Role, &rec.Mode, &rec.OverallScore, &rec.TotalQuestions, &rec.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}

func scanRecord(row *sql.Row) (*Record, error) {
	var rec Record
	var summaryJSON, transcriptJSON string
	err := row.Scan(&rec.SessionID, &rec.Role, &rec.Mode, &rec.OverallScore, &rec.TotalQuestions, &rec.CompletedAt, &summaryJSON, &transcriptJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan interview: %w", err)
	}

	if err := json.Unmarshal([]byte(summaryJSON), &rec.Summary); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}
	if err := json.Unmarshal([]byte(transcriptJSON), &rec.Transcript); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	return &rec, nil
}

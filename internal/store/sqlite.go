// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mmeet/career-engine/pkg/types"
)

const dbFile = "career-engine.db"

// SQLiteStore is the local gateway used for development and offline runs.
// Documents are stored as JSON blobs keyed by uid, mirroring the remote
// store's document model, plus a run-history table (R1.3, R4.1).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at dataDir/career-engine.db
// and creates the schema if needed.
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			uid TEXT PRIMARY KEY,
			email TEXT,
			doc TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			uid TEXT PRIMARY KEY,
			doc TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			uid TEXT NOT NULL,
			courses INTEGER NOT NULL,
			jobs INTEGER NOT NULL,
			analysis_complete INTEGER NOT NULL,
			warnings INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			started_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_uid ON runs(uid)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// WriteSnapshot overwrites the user's snapshot document.
func (s *SQLiteStore) WriteSnapshot(ctx context.Context, uid string, snap types.RecommendationSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (uid, doc, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(uid) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		uid, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing snapshot for %s: %w", uid, err)
	}
	return nil
}

// ReadSnapshot returns the user's snapshot, or ErrNotFound.
func (s *SQLiteStore) ReadSnapshot(ctx context.Context, uid string) (types.RecommendationSnapshot, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM snapshots WHERE uid = ?`, uid).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return types.RecommendationSnapshot{}, ErrNotFound
	}
	if err != nil {
		return types.RecommendationSnapshot{}, fmt.Errorf("reading snapshot for %s: %w", uid, err)
	}

	var snap types.RecommendationSnapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		return types.RecommendationSnapshot{}, fmt.Errorf("unmarshaling snapshot for %s: %w", uid, err)
	}
	return snap, nil
}

// WriteProfile overwrites the user's profile document.
func (s *SQLiteStore) WriteProfile(ctx context.Context, p types.UserProfile) error {
	if p.UID == "" {
		return fmt.Errorf("profile has no uid")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (uid, email, doc, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(uid) DO UPDATE SET email = excluded.email, doc = excluded.doc, updated_at = excluded.updated_at`,
		p.UID, p.Email, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing profile for %s: %w", p.UID, err)
	}
	return nil
}

// ReadProfile returns the user's profile, or ErrNotFound.
func (s *SQLiteStore) ReadProfile(ctx context.Context, uid string) (types.UserProfile, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM profiles WHERE uid = ?`, uid).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return types.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return types.UserProfile{}, fmt.Errorf("reading profile for %s: %w", uid, err)
	}

	var p types.UserProfile
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return types.UserProfile{}, fmt.Errorf("unmarshaling profile for %s: %w", uid, err)
	}
	return p, nil
}

// ListUsers returns the uids of all stored profiles.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT uid FROM profiles ORDER BY uid`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var uids []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("scanning uid: %w", err)
		}
		uids = append(uids, uid)
	}
	return uids, rows.Err()
}

// RecordRun appends a run record to the history table.
func (s *SQLiteStore) RecordRun(ctx context.Context, rec RunRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, uid, courses, jobs, analysis_complete, warnings, duration_ms, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.UID, rec.Courses, rec.Jobs, boolToInt(rec.AnalysisComplete),
		rec.Warnings, rec.Duration.Milliseconds(), rec.StartedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording run for %s: %w", rec.UID, err)
	}
	return nil
}

// ListRuns returns the user's most recent run records, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, uid string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, uid, courses, jobs, analysis_complete, warnings, duration_ms, started_at
		 FROM runs WHERE uid = ? ORDER BY rowid DESC LIMIT ?`, uid, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs for %s: %w", uid, err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var complete, durationMS int64
		var startedAt string
		if err := rows.Scan(&rec.RunID, &rec.UID, &rec.Courses, &rec.Jobs,
			&complete, &rec.Warnings, &durationMS, &startedAt); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}
		rec.AnalysisComplete = complete != 0
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		if t, parseErr := time.Parse(time.RFC3339, startedAt); parseErr == nil {
			rec.StartedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

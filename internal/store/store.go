// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists user profiles and recommendation snapshots against
// a document store keyed by user identity.
// Implements: prd006-snapshot-store (R1-R4);
//
//	docs/ARCHITECTURE.md § Snapshot Store.
//
// Two backends exist: a Redis document store for deployments and a local
// SQLite database for development and offline runs. Both speak the same
// Gateway contract; the orchestrator does not know which one it writes to.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/mmeet/career-engine/pkg/types"
)

// ErrNotFound is returned by reads when no document exists for the user.
// Callers treat it as "no prior data", not as a failure (R2.3).
var ErrNotFound = errors.New("store: not found")

// RunRecord summarizes one completed pipeline run for observability.
type RunRecord struct {
	RunID            string        `json:"run_id"`
	UID              string        `json:"uid"`
	Courses          int           `json:"courses"`
	Jobs             int           `json:"jobs"`
	AnalysisComplete bool          `json:"analysis_complete"`
	Warnings         int           `json:"warnings"`
	Duration         time.Duration `json:"duration"`
	StartedAt        time.Time     `json:"started_at"`
}

// Gateway is the snapshot store contract consumed by the orchestrator and
// the refresh worker. Snapshot writes overwrite unconditionally;
// last-writer-wins is the accepted semantics for concurrent runs on the
// same user (R3.2).
type Gateway interface {
	// WriteSnapshot overwrites the user's recommendation snapshot.
	WriteSnapshot(ctx context.Context, uid string, snap types.RecommendationSnapshot) error

	// ReadSnapshot returns the user's snapshot, or ErrNotFound.
	ReadSnapshot(ctx context.Context, uid string) (types.RecommendationSnapshot, error)

	// WriteProfile overwrites the user's canonical profile document.
	WriteProfile(ctx context.Context, p types.UserProfile) error

	// ReadProfile returns the user's profile, or ErrNotFound.
	ReadProfile(ctx context.Context, uid string) (types.UserProfile, error)

	// ListUsers returns the uids of all stored profiles.
	ListUsers(ctx context.Context) ([]string, error)

	// RecordRun appends a run record to the user's history.
	RecordRun(ctx context.Context, rec RunRecord) error

	// ListRuns returns the user's most recent run records, newest first.
	ListRuns(ctx context.Context, uid string, limit int) ([]RunRecord, error)

	// Close releases the underlying connection.
	Close() error
}

// New opens the gateway selected by the config: Redis when a URL is
// configured, the local SQLite store otherwise (R1.1).
func New(ctx context.Context, cfg types.StoreConfig) (Gateway, error) {
	if cfg.RedisURL != "" {
		return NewRedisStore(ctx, cfg.RedisURL)
	}
	return NewSQLiteStore(cfg.DataDir)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mmeet/career-engine/pkg/types"
)

// runHistoryLimit caps how many run records are kept per user in Redis.
const runHistoryLimit = 20

// RedisStore is the remote document store gateway: one JSON document per
// user key (R1.2).
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore parses redisURL, verifies connectivity, and returns the
// gateway.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func snapshotKey(uid string) string { return "user:" + uid + ":recommendations" }
func profileKey(uid string) string  { return "user:" + uid + ":profile" }
func runsKey(uid string) string     { return "user:" + uid + ":runs" }

const usersKey = "users"

// WriteSnapshot overwrites the user's snapshot document.
func (s *RedisStore) WriteSnapshot(ctx context.Context, uid string, snap types.RecommendationSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := s.client.Set(ctx, snapshotKey(uid), data, 0).Err(); err != nil {
		return fmt.Errorf("writing snapshot for %s: %w", uid, err)
	}
	return nil
}

// ReadSnapshot returns the user's snapshot, or ErrNotFound when the key is
// absent.
func (s *RedisStore) ReadSnapshot(ctx context.Context, uid string) (types.RecommendationSnapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey(uid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.RecommendationSnapshot{}, ErrNotFound
	}
	if err != nil {
		return types.RecommendationSnapshot{}, fmt.Errorf("reading snapshot for %s: %w", uid, err)
	}

	var snap types.RecommendationSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return types.RecommendationSnapshot{}, fmt.Errorf("unmarshaling snapshot for %s: %w", uid, err)
	}
	return snap, nil
}

// WriteProfile overwrites the user's profile document and registers the uid.
func (s *RedisStore) WriteProfile(ctx context.Context, p types.UserProfile) error {
	if p.UID == "" {
		return fmt.Errorf("profile has no uid")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, profileKey(p.UID), data, 0)
	pipe.SAdd(ctx, usersKey, p.UID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("writing profile for %s: %w", p.UID, err)
	}
	return nil
}

// ReadProfile returns the user's profile, or ErrNotFound.
func (s *RedisStore) ReadProfile(ctx context.Context, uid string) (types.UserProfile, error) {
	data, err := s.client.Get(ctx, profileKey(uid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return types.UserProfile{}, fmt.Errorf("reading profile for %s: %w", uid, err)
	}

	var p types.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return types.UserProfile{}, fmt.Errorf("unmarshaling profile for %s: %w", uid, err)
	}
	return p, nil
}

// ListUsers returns all registered uids.
func (s *RedisStore) ListUsers(ctx context.Context) ([]string, error) {
	uids, err := s.client.SMembers(ctx, usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return uids, nil
}

// RecordRun prepends the record to the user's capped run history list.
func (s *RedisStore) RecordRun(ctx context.Context, rec RunRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling run record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, runsKey(rec.UID), data)
	pipe.LTrim(ctx, runsKey(rec.UID), 0, runHistoryLimit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recording run for %s: %w", rec.UID, err)
	}
	return nil
}

// ListRuns returns the newest run records first.
func (s *RedisStore) ListRuns(ctx context.Context, uid string, limit int) ([]RunRecord, error) {
	if limit <= 0 || limit > runHistoryLimit {
		limit = runHistoryLimit
	}
	rows, err := s.client.LRange(ctx, runsKey(uid), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing runs for %s: %w", uid, err)
	}

	records := make([]RunRecord, 0, len(rows))
	for _, row := range rows {
		var rec RunRecord
		if err := json.Unmarshal([]byte(row), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refresh

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/mmeet/career-engine/internal/store"
	"github.com/mmeet/career-engine/pkg/types"
)

type fakeRunner struct {
	mu      sync.Mutex
	ran     []string
	failUID string
}

func (r *fakeRunner) Run(_ context.Context, p types.UserProfile, _ io.Writer) (*types.RecommendationSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.UID == r.failUID {
		return nil, fmt.Errorf("model unavailable")
	}
	r.ran = append(r.ran, p.UID)
	return &types.RecommendationSnapshot{RunID: "run-" + p.UID}, nil
}

type fakeGateway struct {
	profiles  map[string]types.UserProfile
	snapshots map[string]types.RecommendationSnapshot
	listErr   error
}

func (g *fakeGateway) WriteSnapshot(context.Context, string, types.RecommendationSnapshot) error {
	return nil
}

func (g *fakeGateway) ReadSnapshot(_ context.Context, uid string) (types.RecommendationSnapshot, error) {
	snap, ok := g.snapshots[uid]
	if !ok {
		return types.RecommendationSnapshot{}, store.ErrNotFound
	}
	return snap, nil
}

func (g *fakeGateway) WriteProfile(context.Context, types.UserProfile) error { return nil }

func (g *fakeGateway) ReadProfile(_ context.Context, uid string) (types.UserProfile, error) {
	p, ok := g.profiles[uid]
	if !ok {
		return types.UserProfile{}, store.ErrNotFound
	}
	return p, nil
}

func (g *fakeGateway) ListUsers(context.Context) ([]string, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	var uids []string
	for uid := range g.profiles {
		uids = append(uids, uid)
	}
	return uids, nil
}

func (g *fakeGateway) RecordRun(context.Context, store.RunRecord) error { return nil }

func (g *fakeGateway) ListRuns(context.Context, string, int) ([]store.RunRecord, error) {
	return nil, nil
}

func (g *fakeGateway) Close() error { return nil }

func TestStale(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	week := 7 * 24 * time.Hour

	tests := []struct {
		name string
		snap types.RecommendationSnapshot
		want bool
	}{
		{
			name: "fresh complete snapshot",
			snap: types.RecommendationSnapshot{
				AnalysisComplete: true,
				LastAnalysisDate: now.Add(-time.Hour),
			},
			want: false,
		},
		{
			name: "older than the window",
			snap: types.RecommendationSnapshot{
				AnalysisComplete: true,
				LastAnalysisDate: now.Add(-8 * 24 * time.Hour),
			},
			want: true,
		},
		{
			name: "incomplete runs are retried immediately",
			snap: types.RecommendationSnapshot{
				AnalysisComplete: false,
				LastAnalysisDate: now.Add(-time.Minute),
			},
			want: true,
		},
		{
			name: "exactly at the window boundary",
			snap: types.RecommendationSnapshot{
				AnalysisComplete: true,
				LastAnalysisDate: now.Add(-week),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stale(tt.snap, now, week); got != tt.want {
				t.Errorf("Stale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunOnceRefreshesStaleUsers(t *testing.T) {
	now := time.Now().UTC()
	gw := &fakeGateway{
		profiles: map[string]types.UserProfile{
			"fresh":   {UID: "fresh"},
			"stale":   {UID: "stale"},
			"nosnap":  {UID: "nosnap"},
			"partial": {UID: "partial"},
		},
		snapshots: map[string]types.RecommendationSnapshot{
			"fresh":   {AnalysisComplete: true, LastAnalysisDate: now.Add(-time.Hour)},
			"stale":   {AnalysisComplete: true, LastAnalysisDate: now.Add(-30 * 24 * time.Hour)},
			"partial": {AnalysisComplete: false, LastAnalysisDate: now.Add(-time.Hour)},
		},
	}
	runner := &fakeRunner{}
	wk := &Worker{Store: gw, Runner: runner, Config: types.RefreshConfig{}}

	if err := wk.RunOnce(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	ran := make(map[string]bool)
	for _, uid := range runner.ran {
		ran[uid] = true
	}
	if ran["fresh"] {
		t.Error("fresh user was refreshed")
	}
	for _, uid := range []string{"stale", "nosnap", "partial"} {
		if !ran[uid] {
			t.Errorf("user %s was not refreshed", uid)
		}
	}
}

func TestRunOnceSkipsFailedUser(t *testing.T) {
	now := time.Now().UTC()
	gw := &fakeGateway{
		profiles: map[string]types.UserProfile{
			"bad":  {UID: "bad"},
			"good": {UID: "good"},
		},
		snapshots: map[string]types.RecommendationSnapshot{
			"bad":  {AnalysisComplete: true, LastAnalysisDate: now.Add(-30 * 24 * time.Hour)},
			"good": {AnalysisComplete: true, LastAnalysisDate: now.Add(-30 * 24 * time.Hour)},
		},
	}
	runner := &fakeRunner{failUID: "bad"}
	wk := &Worker{Store: gw, Runner: runner, Config: types.RefreshConfig{}}

	var out bytes.Buffer
	if err := wk.RunOnce(context.Background(), &out); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	if len(runner.ran) != 1 || runner.ran[0] != "good" {
		t.Errorf("ran = %v, want only good user", runner.ran)
	}
	if got := out.String(); !bytes.Contains([]byte(got), []byte("refreshing bad")) {
		t.Errorf("output %q does not record the failed user", got)
	}
}

func TestRunOnceListFailure(t *testing.T) {
	gw := &fakeGateway{listErr: fmt.Errorf("store offline")}
	wk := &Worker{Store: gw, Runner: &fakeRunner{}, Config: types.RefreshConfig{}}

	if err := wk.RunOnce(context.Background(), &bytes.Buffer{}); err == nil {
		t.Fatal("expected error when listing users fails")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	wk := &Worker{
		Store:  &fakeGateway{},
		Runner: &fakeRunner{},
		Config: types.RefreshConfig{Schedule: "not a cron expression"},
	}
	if err := wk.Start(context.Background(), &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

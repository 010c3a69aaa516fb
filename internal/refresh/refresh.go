// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refresh re-runs the recommendation pipeline for stored profiles
// whose snapshots have gone stale.
// Implements: prd007-refresh (R1.1-R1.3); docs/ARCHITECTURE.md § Refresh.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mmeet/career-engine/internal/store"
	"github.com/mmeet/career-engine/pkg/types"
)

const (
	defaultSchedule  = "0 3 * * *"
	defaultStaleness = 7 * 24 * time.Hour
)

// Runner executes one pipeline run for a profile. Satisfied by
// *recommend.Pipeline.
type Runner interface {
	Run(ctx context.Context, p types.UserProfile, w io.Writer) (*types.RecommendationSnapshot, error)
}

// Worker walks stored profiles on a cron schedule and re-analyzes the
// stale ones. Users whose runs fail are skipped until the next round;
// their previous snapshot stays in place.
type Worker struct {
	Store  store.Gateway
	Runner Runner
	Config types.RefreshConfig

	cron *cron.Cron
}

// Start schedules refresh rounds and begins running them in the
// background. It returns immediately; call Stop to drain.
func (wk *Worker) Start(ctx context.Context, w io.Writer) error {
	schedule := wk.Config.Schedule
	if schedule == "" {
		schedule = defaultSchedule
	}

	wk.cron = cron.New()
	_, err := wk.cron.AddFunc(schedule, func() {
		if err := wk.RunOnce(ctx, w); err != nil {
			fmt.Fprintf(w, "warning: refresh round: %v\n", err)
		}
	})
	if err != nil {
		return fmt.Errorf("parsing refresh schedule %q: %w", schedule, err)
	}

	wk.cron.Start()
	fmt.Fprintf(w, "refresh worker started (schedule %q)\n", schedule)
	return nil
}

// Stop halts the schedule and waits for an in-flight round to finish.
func (wk *Worker) Stop() {
	if wk.cron != nil {
		<-wk.cron.Stop().Done()
	}
}

// RunOnce performs a single refresh round: every stored profile whose
// snapshot is older than the staleness window (or missing) is re-run.
// Individual failures are reported to w and do not abort the round; the
// returned error covers only the user listing itself.
func (wk *Worker) RunOnce(ctx context.Context, w io.Writer) error {
	uids, err := wk.Store.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	staleness := wk.Config.Staleness
	if staleness <= 0 {
		staleness = defaultStaleness
	}
	now := time.Now().UTC()

	refreshed := 0
	for _, uid := range uids {
		snap, err := wk.Store.ReadSnapshot(ctx, uid)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(w, "warning: reading snapshot for %s: %v\n", uid, err)
			continue
		}
		if err == nil && !Stale(snap, now, staleness) {
			continue
		}

		p, err := wk.Store.ReadProfile(ctx, uid)
		if err != nil {
			fmt.Fprintf(w, "warning: reading profile for %s: %v\n", uid, err)
			continue
		}

		if _, err := wk.Runner.Run(ctx, p, w); err != nil {
			fmt.Fprintf(w, "warning: refreshing %s: %v\n", uid, err)
			continue
		}
		refreshed++
	}

	fmt.Fprintf(w, "refresh round complete: %d of %d users refreshed\n", refreshed, len(uids))
	return nil
}

// Stale reports whether a snapshot is due for re-analysis. Incomplete
// runs are always stale: a degraded snapshot should be retried on the
// next round rather than waiting out the full window.
func Stale(snap types.RecommendationSnapshot, now time.Time, staleness time.Duration) bool {
	if !snap.AnalysisComplete {
		return true
	}
	return now.Sub(snap.LastAnalysisDate) > staleness
}

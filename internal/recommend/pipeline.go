// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend coordinates the full recommendation pipeline: candidate
// discovery, model ranking, per-item analysis, fallback selection, and
// snapshot persistence.
// Implements: prd005-orchestration (R1-R5);
//
//	docs/ARCHITECTURE.md § Orchestration.
package recommend

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mmeet/career-engine/internal/catalog"
	"github.com/mmeet/career-engine/internal/profile"
	"github.com/mmeet/career-engine/internal/rank"
	"github.com/mmeet/career-engine/internal/store"
	"github.com/mmeet/career-engine/pkg/types"
)

// Ranker selects candidate ids for a profile. Satisfied by *rank.Agent;
// tests supply a scripted implementation.
type Ranker interface {
	Rank(ctx context.Context, p types.UserProfile, courses, jobs []types.CandidateItem) (rank.Selection, error)
}

// Analyzer enriches one candidate with a summary/reason pair. Satisfied by
// *analyze.Agent.
type Analyzer interface {
	Analyze(ctx context.Context, item types.CandidateItem, p types.UserProfile) (types.AnalyzedItem, error)
}

// defaultAnalysisConcurrency bounds the per-item analysis fan-out; those
// calls are the pipeline's main burst load against the model endpoint.
const defaultAnalysisConcurrency = 3

// Pipeline wires the pipeline stages together. It holds no per-run state:
// Run is a pure, repeatable entry point over the injected collaborators,
// and concurrent runs for different users may share one Pipeline (R1.1).
type Pipeline struct {
	Sources  []catalog.Source
	Ranker   Ranker
	Analyzer Analyzer
	Store    store.Gateway
	Config   types.PipelineConfig
}

// Run executes one full orchestration for the given profile and returns the
// resulting snapshot.
//
// Every external degradation — a source outage, a ranking failure, a
// per-item analysis failure — is absorbed and reflected in the snapshot's
// AnalysisComplete flag and warning list. The one failure Run surfaces is
// the snapshot write: callers must know the refresh did not take effect.
// Even then the in-memory snapshot is returned alongside the error so
// stale-but-present data can be shown (R5.1, R5.2).
func (pl *Pipeline) Run(ctx context.Context, p types.UserProfile, w io.Writer) (*types.RecommendationSnapshot, error) {
	started := time.Now()
	snap := &types.RecommendationSnapshot{
		RunID:              uuid.NewString(),
		RecommendedCourses: []types.AnalyzedItem{},
		RecommendedJobs:    []types.AnalyzedItem{},
	}

	// Discovery: both kinds fetched concurrently, each source already
	// degrades to an empty list on failure (R2.1).
	query := catalog.Query{
		Keywords:    profile.Keywords(p),
		RegionTerms: p.RemoteCountries,
		RemoteOnly:  len(p.RemoteCountries) > 0,
	}
	fmt.Fprintf(w, "searching for %q\n", query.Keywords)

	fetched := catalog.FetchAll(ctx, query, pl.Sources, pl.Config.Catalog, w)
	snap.Warnings = append(snap.Warnings, fetched.Warnings...)
	fmt.Fprintf(w, "found %d courses and %d jobs\n", len(fetched.Courses), len(fetched.Jobs))

	degraded := false

	if len(fetched.Courses) == 0 && len(fetched.Jobs) == 0 {
		// Legitimate terminal state, not an error: persist an empty,
		// incomplete snapshot (R2.2).
		snap.Warnings = append(snap.Warnings, "no candidates found for keywords "+query.Keywords)
		return pl.persist(ctx, p, snap, false, started, w)
	}

	// Ranking: a failed or empty selection degrades to the deterministic
	// fallback per kind below (R2.3).
	sel, err := pl.Ranker.Rank(ctx, p, fetched.Courses, fetched.Jobs)
	if err != nil {
		snap.Warnings = append(snap.Warnings, fmt.Sprintf("ranking: %v", err))
		fmt.Fprintf(w, "warning: ranking failed: %v\n", err)
		sel = rank.Selection{}
	}

	// Unknown ids are dropped silently: the model may hallucinate
	// identifiers that match no fetched candidate (R2.4).
	selCourses := resolveIDs(sel.CourseIDs, fetched.Courses)
	selJobs := resolveIDs(sel.JobIDs, fetched.Jobs)

	if len(selCourses) == 0 && len(fetched.Courses) > 0 {
		snap.RecommendedCourses = SelectFallback(fetched.Courses, rank.MaxSelections)
		snap.Warnings = append(snap.Warnings, "courses selected by fallback policy")
		degraded = true
	} else {
		snap.RecommendedCourses = pl.analyzeAll(ctx, selCourses, p, snap, w)
	}

	if len(selJobs) == 0 && len(fetched.Jobs) > 0 {
		snap.RecommendedJobs = SelectFallback(fetched.Jobs, rank.MaxSelections)
		snap.Warnings = append(snap.Warnings, "jobs selected by fallback policy")
		degraded = true
	} else {
		snap.RecommendedJobs = pl.analyzeAll(ctx, selJobs, p, snap, w)
	}

	return pl.persist(ctx, p, snap, !degraded, started, w)
}

// analyzeAll fans the analysis agent out over the selected candidates with
// bounded concurrency. Results keep selection order regardless of
// completion order, and one item's failure never blocks its siblings: the
// agent substitutes fallback content itself (R3.1-R3.3). Per-item
// degradations are recorded as warnings but do not mark the run incomplete.
func (pl *Pipeline) analyzeAll(ctx context.Context, items []types.CandidateItem, p types.UserProfile, snap *types.RecommendationSnapshot, w io.Writer) []types.AnalyzedItem {
	if len(items) == 0 {
		return []types.AnalyzedItem{}
	}

	concurrency := pl.Config.Analysis.MaxConcurrency
	if concurrency <= 0 {
		concurrency = defaultAnalysisConcurrency
	}

	results := make([]types.AnalyzedItem, len(items))
	itemErrs := make([]error, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			results[i], itemErrs[i] = pl.Analyzer.Analyze(gctx, item, p)
			return nil
		})
	}
	g.Wait()

	for i, err := range itemErrs {
		if err != nil {
			snap.Warnings = append(snap.Warnings, fmt.Sprintf("analysis of %s: %v", items[i].ID, err))
			fmt.Fprintf(w, "warning: analysis failed for %s, using defaults\n", items[i].ID)
		}
	}
	return results
}

// persist finalizes and writes the snapshot. A write failure is the
// pipeline's only hard error; the snapshot is still returned so the caller
// can show stale-but-present data (R5.1).
func (pl *Pipeline) persist(ctx context.Context, p types.UserProfile, snap *types.RecommendationSnapshot, complete bool, started time.Time, w io.Writer) (*types.RecommendationSnapshot, error) {
	snap.AnalysisComplete = complete
	snap.LastAnalysisDate = time.Now().UTC()

	if err := pl.Store.WriteSnapshot(ctx, p.UID, *snap); err != nil {
		return snap, fmt.Errorf("persisting snapshot for %s: %w", p.UID, err)
	}

	// Run history is best-effort observability; a failure here must not
	// fail an otherwise persisted run.
	rec := store.RunRecord{
		RunID:            snap.RunID,
		UID:              p.UID,
		Courses:          len(snap.RecommendedCourses),
		Jobs:             len(snap.RecommendedJobs),
		AnalysisComplete: snap.AnalysisComplete,
		Warnings:         len(snap.Warnings),
		Duration:         time.Since(started),
		StartedAt:        started.UTC(),
	}
	if err := pl.Store.RecordRun(ctx, rec); err != nil {
		fmt.Fprintf(w, "warning: recording run history: %v\n", err)
	}

	fmt.Fprintf(w, "run %s: %d courses, %d jobs, complete=%v\n",
		snap.RunID, len(snap.RecommendedCourses), len(snap.RecommendedJobs), snap.AnalysisComplete)
	return snap, nil
}

// resolveIDs maps selected ids back to fetched candidates, preserving the
// model's id order and dropping ids that match nothing.
func resolveIDs(ids []string, candidates []types.CandidateItem) []types.CandidateItem {
	byID := make(map[string]types.CandidateItem, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	var out []types.CandidateItem
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

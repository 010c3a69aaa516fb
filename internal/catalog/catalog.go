// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog queries external course and job search services and
// normalizes their responses into the common candidate-item shape.
// Implements: prd002-discovery (R1-R4);
//
//	docs/ARCHITECTURE.md § Discovery.
package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mmeet/career-engine/pkg/types"
)

// Source searches a single external service for candidates of one kind.
// Each source (course catalog, JSearch) implements this interface per the
// Strategy pattern (R2.4).
type Source interface {
	Name() string
	Kind() types.ItemKind
	Fetch(ctx context.Context, query Query, cfg types.CatalogConfig) ([]types.CandidateItem, error)
}

// Query holds the search parameters shared by all sources (R1.1).
type Query struct {
	// Keywords is the space-joined search string derived from the profile.
	Keywords string

	// RegionTerms are geographic terms appended by job sources for
	// region-targeted search. Course sources ignore them.
	RegionTerms []string

	// RemoteOnly restricts job results to remote listings.
	RemoteOnly bool
}

// IsEmpty reports whether the query has no searchable terms.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Keywords) == ""
}

// FetchOutput holds the per-kind candidate lists and collected warnings.
// Candidates of the two kinds stay in separate collections: source ids are
// only unique within one batch (R1.3).
type FetchOutput struct {
	Courses  []types.CandidateItem
	Jobs     []types.CandidateItem
	Warnings []string
}

// FetchAll fans the query out to all sources concurrently and gathers the
// results by kind. A source failure of any sort (transport error, non-2xx
// status, malformed payload) degrades to an empty list for that source and
// a warning line; it never aborts the fetch or affects the other kind
// (R3.1-R3.3). Per-kind results are capped at cfg.MaxCandidates in source
// order.
func FetchAll(ctx context.Context, query Query, sources []Source, cfg types.CatalogConfig, w io.Writer) FetchOutput {
	type sourceResult struct {
		items []types.CandidateItem
		err   error
		name  string
		kind  types.ItemKind
	}

	ch := make(chan sourceResult, len(sources))
	var wg sync.WaitGroup

	for _, s := range sources {
		wg.Add(1)
		go func(s Source) {
			defer wg.Done()
			items, err := s.Fetch(ctx, query, cfg)
			ch <- sourceResult{items: items, err: err, name: s.Name(), kind: s.Kind()}
		}(s)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var out FetchOutput
	for sr := range ch {
		if sr.err != nil {
			msg := fmt.Sprintf("%s: %v", sr.name, sr.err)
			out.Warnings = append(out.Warnings, msg)
			fmt.Fprintf(w, "warning: source %s failed: %v\n", sr.name, sr.err)
			continue
		}
		switch sr.kind {
		case types.KindCourse:
			out.Courses = append(out.Courses, sr.items...)
		case types.KindJob:
			out.Jobs = append(out.Jobs, sr.items...)
		}
	}

	max := cfg.MaxCandidates
	if max <= 0 {
		max = 25
	}
	if len(out.Courses) > max {
		out.Courses = out.Courses[:max]
	}
	if len(out.Jobs) > max {
		out.Jobs = out.Jobs[:max]
	}

	return out
}

// matchesKeywords reports whether any keyword token appears in one of the
// given fields, case-insensitively. Sources that filter a full catalog
// locally share this rule (R2.2).
func matchesKeywords(keywords string, fields ...string) bool {
	tokens := strings.Fields(strings.ToLower(keywords))
	if len(tokens) == 0 {
		return false
	}
	for _, f := range fields {
		lf := strings.ToLower(f)
		for _, tok := range tokens {
			if strings.Contains(lf, tok) {
				return true
			}
		}
	}
	return false
}

// orDefault returns s trimmed, or def when s is blank. Normalization fills
// missing optional fields with sentinel defaults so downstream code never
// branches on presence (R2.3).
func orDefault(s, def string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return def
}

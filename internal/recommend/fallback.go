// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"github.com/mmeet/career-engine/internal/analyze"
	"github.com/mmeet/career-engine/pkg/types"
)

// SelectFallback is the deterministic, non-AI selection policy: the first n
// candidates in the order the source adapters returned them, each wrapped
// with the generic analysis defaults. It engages when the ranking agent
// selected nothing for a kind that has candidates, guaranteeing a non-empty
// result whenever data exists (R3.1-R3.3).
func SelectFallback(candidates []types.CandidateItem, n int) []types.AnalyzedItem {
	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]types.AnalyzedItem, 0, n)
	for _, item := range candidates[:n] {
		out = append(out, analyze.Fallback(item))
	}
	return out
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze asks the generative model for a personalized
// summary/justification pair for one selected candidate at a time.
// Implements: prd004-analysis (R1-R3);
//
//	docs/ARCHITECTURE.md § Analysis.
package analyze

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/mmeet/career-engine/internal/genai"
	"github.com/mmeet/career-engine/internal/rank"
	"github.com/mmeet/career-engine/pkg/types"
)

// FallbackReason is the canned justification substituted when the model
// cannot produce one. An AnalyzedItem never carries an empty reason (R2.4).
const FallbackReason = "This is a popular choice for users with your interests."

// analysisPromptTmpl requests a two-field structured result for a single
// item (R2.1). One prompt per item keeps failures independent.
var analysisPromptTmpl = template.Must(template.New("analysis").Parse(`You are a career advisor. Analyze the user's profile and the provided {{.Kind}}.
Your task is to provide a concise, engaging summary and a personalized reason why this is a good fit for the user.

USER PROFILE:
{{.Profile}}
ITEM TO ANALYZE:
---
Title: {{.Title}}
Description: {{.Description}}
---

INSTRUCTIONS:
Return a single, valid JSON object with two keys: "summary" and "reason".
- "summary": A one-sentence summary of the {{.Kind}}.
- "reason": A personalized, one-sentence explanation of why this {{.Kind}} is a great match for this specific user.
The output must be only the JSON object.
`))

// analysisResponse is the structured payload expected from the model.
type analysisResponse struct {
	Summary string `json:"summary"`
	Reason  string `json:"reason"`
}

// Agent sends one analysis prompt per item and parses the response.
type Agent struct {
	Client genai.Client
	Config types.AnalysisConfig
}

// Analyze enriches one candidate with a model-generated summary and
// reason. It always returns a usable AnalyzedItem: on any transport or
// parse failure, or when the model leaves a field blank, the generic
// defaults from Fallback are substituted. The returned error is diagnostic
// only and never blocks sibling items (R2.2-R2.4).
func (a *Agent) Analyze(ctx context.Context, item types.CandidateItem, p types.UserProfile) (types.AnalyzedItem, error) {
	prompt, err := renderPrompt(item, p)
	if err != nil {
		return Fallback(item), fmt.Errorf("rendering analysis prompt: %w", err)
	}

	text, err := genai.GenerateWithRetry(ctx, a.Client, prompt, a.Config.MaxRetries)
	if err != nil {
		return Fallback(item), fmt.Errorf("analysis call for %s: %w", item.ID, err)
	}

	var resp analysisResponse
	if err := genai.DecodeJSON(text, &resp); err != nil {
		return Fallback(item), fmt.Errorf("analysis response for %s: %w", item.ID, err)
	}

	out := types.AnalyzedItem{
		CandidateItem: item,
		Summary:       strings.TrimSpace(resp.Summary),
		Reason:        strings.TrimSpace(resp.Reason),
	}
	if out.Summary == "" {
		out.Summary = item.Description
	}
	if out.Reason == "" {
		out.Reason = FallbackReason
	}
	return out, nil
}

// Fallback wraps a candidate with the generic analysis defaults: the item's
// own description as the summary and the canned justification as the
// reason (R2.4).
func Fallback(item types.CandidateItem) types.AnalyzedItem {
	summary := strings.TrimSpace(item.Description)
	if summary == "" {
		summary = item.Title
	}
	return types.AnalyzedItem{
		CandidateItem: item,
		Summary:       summary,
		Reason:        FallbackReason,
	}
}

// renderPrompt executes the analysis template for one item.
func renderPrompt(item types.CandidateItem, p types.UserProfile) (string, error) {
	data := struct {
		Kind        string
		Profile     string
		Title       string
		Description string
	}{
		Kind:        string(item.Kind),
		Profile:     rank.ProfileSummary(p),
		Title:       item.Title,
		Description: item.Description,
	}

	var buf bytes.Buffer
	if err := analysisPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

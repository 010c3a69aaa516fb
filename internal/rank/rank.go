// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank asks the generative model to select the best candidates for
// a profile and parses the returned identifier lists.
// Implements: prd003-ranking (R1-R4);
//
//	docs/ARCHITECTURE.md § Ranking.
package rank

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/mmeet/career-engine/internal/genai"
	"github.com/mmeet/career-engine/pkg/types"
)

// MaxSelections caps how many items the model may select per kind (R1.4).
const MaxSelections = 3

// rankingPromptTmpl embeds the profile summary and a compact {id, title}
// projection of each candidate list. Full item bodies are withheld to bound
// prompt size (R2.2).
var rankingPromptTmpl = template.Must(template.New("ranking").Parse(`You are a career advisor. Select the best matches for the user below.

USER PROFILE:
{{.Profile}}

AVAILABLE COURSES (id: title):
{{if .Courses}}{{range .Courses}}- {{.ID}}: {{.Title}}
{{end}}{{else}}(none)
{{end}}
AVAILABLE JOBS (id: title):
{{if .Jobs}}{{range .Jobs}}- {{.ID}}: {{.Title}}
{{end}}{{else}}(none)
{{end}}
INSTRUCTIONS:
Return a single, valid JSON object with two keys: "recommendedCourseIds" and "recommendedJobIds".
- "recommendedCourseIds": up to {{.Max}} course ids from the list above, best match first.
- "recommendedJobIds": up to {{.Max}} job ids from the list above, best match first.
Use only ids that appear in the lists. If a list is empty, return an empty array for it.
The output must be only the JSON object.
`))

// Selection holds the model's ranked identifier choices, at most
// MaxSelections per kind, in model order (R1.2, R1.3).
type Selection struct {
	CourseIDs []string `json:"recommendedCourseIds"`
	JobIDs    []string `json:"recommendedJobIds"`
}

// IsEmpty reports whether the model selected nothing of either kind.
func (s Selection) IsEmpty() bool {
	return len(s.CourseIDs) == 0 && len(s.JobIDs) == 0
}

// Agent sends the ranking prompt and parses the response.
type Agent struct {
	Client genai.Client
	Config types.RankingConfig
}

// Rank asks the model to select up to MaxSelections candidates per kind.
// The model's ordering is trusted entirely; there is no local re-ranking,
// and output is not guaranteed deterministic across runs (R1.5).
//
// A returned error is diagnostic only: on any transport or parse failure
// the selection is empty and the caller degrades to the deterministic
// fallback, so ranking failures never abort the pipeline (R4.1).
func (a *Agent) Rank(ctx context.Context, p types.UserProfile, courses, jobs []types.CandidateItem) (Selection, error) {
	prompt, err := renderPrompt(p, courses, jobs)
	if err != nil {
		return Selection{}, fmt.Errorf("rendering ranking prompt: %w", err)
	}

	text, err := genai.GenerateWithRetry(ctx, a.Client, prompt, a.Config.MaxRetries)
	if err != nil {
		return Selection{}, fmt.Errorf("ranking call: %w", err)
	}

	var sel Selection
	if err := genai.DecodeJSON(text, &sel); err != nil {
		return Selection{}, fmt.Errorf("ranking response: %w", err)
	}

	sel.CourseIDs = clampIDs(sel.CourseIDs)
	sel.JobIDs = clampIDs(sel.JobIDs)
	return sel, nil
}

// clampIDs trims blanks, drops duplicates, and caps the list at
// MaxSelections while preserving model order (R1.4).
func clampIDs(ids []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		if len(out) == MaxSelections {
			break
		}
	}
	return out
}

// renderPrompt executes the ranking template with the profile summary and
// candidate projections.
func renderPrompt(p types.UserProfile, courses, jobs []types.CandidateItem) (string, error) {
	type idTitle struct {
		ID    string
		Title string
	}
	project := func(items []types.CandidateItem) []idTitle {
		out := make([]idTitle, 0, len(items))
		for _, item := range items {
			out = append(out, idTitle{ID: item.ID, Title: item.Title})
		}
		return out
	}

	data := struct {
		Profile string
		Courses []idTitle
		Jobs    []idTitle
		Max     int
	}{
		Profile: ProfileSummary(p),
		Courses: project(courses),
		Jobs:    project(jobs),
		Max:     MaxSelections,
	}

	var buf bytes.Buffer
	if err := rankingPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ProfileSummary renders the profile fields the prompts embed. Shared with
// the analysis stage so both agents describe the user identically (R2.1).
func ProfileSummary(p types.UserProfile) string {
	var b strings.Builder
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "- %s: %s\n", label, value)
		}
	}
	line("Goal", p.CareerGoal)
	line("Employment status", p.EmploymentStatus)
	line("Experience level", p.ExperienceLevel)
	line("Experienced in", strings.Join(p.FieldExperience, ", "))
	line("Wants to move into", strings.Join(p.DesiredFields, ", "))
	line("Dream job", p.DreamJob)
	line("Languages", strings.Join(p.Languages, ", "))
	line("Region", p.Region)

	if b.Len() == 0 {
		return "- (no profile details provided)\n"
	}
	return b.String()
}

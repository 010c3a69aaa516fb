// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ItemKind distinguishes the two candidate collections. Candidate IDs are
// only unique within a source batch, so courses and jobs are always tracked
// in separate collections keyed by kind. Per prd002-discovery R1.3.
type ItemKind string

const (
	KindCourse ItemKind = "course"
	KindJob    ItemKind = "job"
)

// CandidateItem is a course or job surfaced by a source adapter, normalized
// into the common shape. Candidates are created fresh on every pipeline run
// and never persisted on their own; only the selected subset survives,
// embedded in the final snapshot. Per prd002-discovery R1.1, R1.2.
type CandidateItem struct {
	// ID is the source-assigned identifier, unique within one batch only.
	ID string `json:"id" yaml:"id"`

	// Kind is course or job.
	Kind ItemKind `json:"kind" yaml:"kind"`

	// Title is the listing or course title.
	Title string `json:"title" yaml:"title"`

	// Description is the listing body or course synopsis.
	Description string `json:"description" yaml:"description"`

	// Provider is the course provider or the hiring company.
	Provider string `json:"provider" yaml:"provider"`

	// Location is the job location. Empty for courses.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// Level is the difficulty or seniority level.
	Level string `json:"level" yaml:"level"`

	// Duration is the course duration ("Self-paced" when the source omits
	// it). Empty for jobs.
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`

	// Salary is the advertised pay ("Not disclosed" when the source omits
	// it). Empty for courses.
	Salary string `json:"salary,omitempty" yaml:"salary,omitempty"`

	// SourceURL links to the original listing or course page.
	SourceURL string `json:"source_url" yaml:"source_url"`
}

// AnalyzedItem is a CandidateItem enriched with a model-generated synopsis
// and a personalized justification. Summary and Reason are never empty: when
// the analysis stage fails for an item, canned defaults are substituted.
// Per prd004-analysis R2.1, R2.4.
type AnalyzedItem struct {
	CandidateItem `yaml:",inline"`

	// Summary is a one-sentence synopsis of the item.
	Summary string `json:"summary" yaml:"summary"`

	// Reason is a one-sentence justification tied to the requesting
	// profile.
	Reason string `json:"reason" yaml:"reason"`
}

// RecommendationSnapshot is the persisted output of one orchestration run.
// It is exclusively owned and overwritten by the orchestrator; readers treat
// it as a passive projection. Per prd005-orchestration R4.
type RecommendationSnapshot struct {
	// RunID identifies the pipeline run that produced this snapshot.
	RunID string `json:"run_id" yaml:"run_id"`

	// RecommendedCourses holds at most three analyzed courses, in
	// selection order.
	RecommendedCourses []AnalyzedItem `json:"recommended_courses" yaml:"recommended_courses"`

	// RecommendedJobs holds at most three analyzed jobs, in selection
	// order.
	RecommendedJobs []AnalyzedItem `json:"recommended_jobs" yaml:"recommended_jobs"`

	// AnalysisComplete is true only when the run selected items without
	// falling back to the deterministic selector for any kind that had
	// candidates. Readers treat false as "incomplete, safe to retry".
	AnalysisComplete bool `json:"analysis_complete" yaml:"analysis_complete"`

	// LastAnalysisDate is the generation timestamp.
	LastAnalysisDate time.Time `json:"last_analysis_date" yaml:"last_analysis_date"`

	// Warnings collects non-fatal degradations observed during the run
	// (source outages, ranking fallbacks). Informational only.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// IsEmpty reports whether the snapshot carries no recommendations at all.
func (s RecommendationSnapshot) IsEmpty() bool {
	return len(s.RecommendedCourses) == 0 && len(s.RecommendedJobs) == 0
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the career-engine pipeline.
// Implements: prd001-profile (UserProfile);
//
//	prd002-discovery (CandidateItem);
//	prd004-analysis (AnalyzedItem);
//	prd005-orchestration (RecommendationSnapshot).
//
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

// UserProfile is the canonical representation of a user derived from the
// questionnaire answer bag. All fields are always present after
// normalization: collections may be empty but are never nil, so downstream
// stages never branch on presence. Per prd001-profile R2.1.
type UserProfile struct {
	// UID is the opaque user identifier from the identity provider.
	// Immutable once set; used as the snapshot persistence key.
	UID string `json:"uid" yaml:"uid"`

	// Email is the account email from the identity provider. Immutable.
	Email string `json:"email" yaml:"email"`

	// CareerGoal is the user's stated motivation (free text or one of the
	// questionnaire's enumerated choices).
	CareerGoal string `json:"career_goal" yaml:"career_goal"`

	// EmploymentStatus classifies the user's current situation
	// (e.g. "employed", "unemployed", "student").
	EmploymentStatus string `json:"employment_status" yaml:"employment_status"`

	// ExperienceLevel classifies overall professional experience
	// (e.g. "entry", "mid", "senior").
	ExperienceLevel string `json:"experience_level" yaml:"experience_level"`

	// FieldExperience lists domain areas the user has worked in. May
	// include free-text "Other" entries.
	FieldExperience []string `json:"field_experience" yaml:"field_experience"`

	// DesiredFields lists domain areas the user wants to move into.
	DesiredFields []string `json:"desired_fields" yaml:"desired_fields"`

	// DreamJob is an optional free-text description of the target role.
	DreamJob string `json:"dream_job,omitempty" yaml:"dream_job,omitempty"`

	// RemoteCountries lists countries the user would work in remotely.
	RemoteCountries []string `json:"remote_countries" yaml:"remote_countries"`

	// Languages lists languages the user is fluent in.
	Languages []string `json:"languages" yaml:"languages"`

	// Region is the user's home region, free text.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// University is an optional institution name.
	University string `json:"university,omitempty" yaml:"university,omitempty"`

	// Documents holds URLs of already-uploaded documents (CVs,
	// certificates). Carried opaquely for storage; the ranking and
	// analysis stages do not read it.
	Documents []string `json:"documents" yaml:"documents"`
}

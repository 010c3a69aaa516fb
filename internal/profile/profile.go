// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile converts raw questionnaire answers into a canonical
// UserProfile and a derived search-keyword string.
// Implements: prd001-profile (R1-R3);
//
//	docs/ARCHITECTURE.md § Profile.
package profile

import (
	"strings"

	"github.com/mmeet/career-engine/pkg/types"
)

// FallbackKeywords is used when the answer bag yields no searchable terms,
// so a profile always resolves to a non-empty keyword string (R3.4).
const FallbackKeywords = "professional development"

// Normalize converts the loosely typed answer bag collected by the
// questionnaire into a canonical UserProfile plus the keyword string the
// discovery stage searches with. It is a pure transformation: identical
// input yields identical output, and every profile field is populated
// (collections may be empty but are never nil) so later stages need no
// presence checks (R2.1, R2.2).
//
// Keyword derivation order, first non-empty wins (R3.1-R3.4):
// fieldExperience (joined), desiredFields (joined), careerGoal, then
// FallbackKeywords.
func Normalize(answers map[string]any) (types.UserProfile, string) {
	p := types.UserProfile{
		UID:              stringAnswer(answers, "uid"),
		Email:            stringAnswer(answers, "email"),
		CareerGoal:       stringAnswer(answers, "careerGoal"),
		EmploymentStatus: stringAnswer(answers, "employmentStatus"),
		ExperienceLevel:  stringAnswer(answers, "experience", "experienceLevel"),
		FieldExperience:  listAnswer(answers, "field", "fieldExperience"),
		DesiredFields:    listAnswer(answers, "desiredFields", "desiredField"),
		DreamJob:         stringAnswer(answers, "dreamJob"),
		RemoteCountries:  listAnswer(answers, "remoteCountries"),
		Languages:        listAnswer(answers, "languages"),
		Region:           stringAnswer(answers, "region"),
		University:       stringAnswer(answers, "university"),
		Documents:        listAnswer(answers, "documents"),
	}

	return p, Keywords(p)
}

// Keywords derives the search-keyword string from a canonical profile
// (R3.1-R3.4).
func Keywords(p types.UserProfile) string {
	if s := strings.Join(p.FieldExperience, " "); strings.TrimSpace(s) != "" {
		return s
	}
	if s := strings.Join(p.DesiredFields, " "); strings.TrimSpace(s) != "" {
		return s
	}
	if strings.TrimSpace(p.CareerGoal) != "" {
		return strings.TrimSpace(p.CareerGoal)
	}
	return FallbackKeywords
}

// stringAnswer returns the first non-empty string value among the given
// keys, trimmed. Non-string values are ignored (R1.2).
func stringAnswer(answers map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := answers[key].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// listAnswer coerces the first present value among keys into a string set.
// Questionnaire clients send either a list or a single comma-separated
// string; both are accepted (R1.3). Duplicates are dropped, input order is
// preserved, and the result is never nil.
func listAnswer(answers map[string]any, keys ...string) []string {
	out := []string{}
	seen := make(map[string]bool)

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[strings.ToLower(s)] {
			return
		}
		seen[strings.ToLower(s)] = true
		out = append(out, s)
	}

	for _, key := range keys {
		v, ok := answers[key]
		if !ok {
			continue
		}
		switch vv := v.(type) {
		case []string:
			for _, s := range vv {
				add(s)
			}
		case []any:
			for _, e := range vv {
				if s, ok := e.(string); ok {
					add(s)
				}
			}
		case string:
			for _, s := range strings.Split(vv, ",") {
				add(s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return out
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNormalizeKeywordDerivationOrder(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]any
		want    string
	}{
		{
			name: "field experience wins",
			answers: map[string]any{
				"field":         []any{"Cybersecurity", "Networking"},
				"desiredFields": []any{"Data Science"},
				"careerGoal":    "Switching careers",
			},
			want: "Cybersecurity Networking",
		},
		{
			name: "desired fields when no experience",
			answers: map[string]any{
				"desiredFields": []any{"Data Science"},
				"careerGoal":    "Switching careers",
			},
			want: "Data Science",
		},
		{
			name: "career goal when no field sets",
			answers: map[string]any{
				"careerGoal": "Finding a job in my field of expertise",
			},
			want: "Finding a job in my field of expertise",
		},
		{
			name:    "literal fallback when everything is empty",
			answers: map[string]any{},
			want:    FallbackKeywords,
		},
		{
			name: "blank entries do not count",
			answers: map[string]any{
				"field":      []any{"  ", ""},
				"careerGoal": "  ",
			},
			want: FallbackKeywords,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := Normalize(tt.answers)
			if got != tt.want {
				t.Errorf("keywords = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeAllFieldsPresent(t *testing.T) {
	p, _ := Normalize(map[string]any{})

	if p.FieldExperience == nil || p.DesiredFields == nil ||
		p.RemoteCountries == nil || p.Languages == nil || p.Documents == nil {
		t.Errorf("collections must be non-nil after normalization: %+v", p)
	}
}

func TestNormalizeFullBag(t *testing.T) {
	answers := map[string]any{
		"uid":              "user-42",
		"email":            "u@example.com",
		"careerGoal":       "Changing fields",
		"employmentStatus": "unemployed",
		"experience":       "entry",
		"field":            []any{"Cybersecurity"},
		"desiredFields":    []any{"Cloud Computing", "Cybersecurity"},
		"dreamJob":         "Security analyst",
		"remoteCountries":  []any{"UAE", "Qatar"},
		"languages":        "Arabic, English",
		"region":           "Gulf",
		"university":       "Birzeit",
		"documents":        []any{"https://example.com/cv.pdf"},
	}

	p, kw := Normalize(answers)

	if p.UID != "user-42" || p.Email != "u@example.com" {
		t.Errorf("identity fields wrong: %+v", p)
	}
	if p.ExperienceLevel != "entry" {
		t.Errorf("ExperienceLevel = %q, want entry", p.ExperienceLevel)
	}
	if !reflect.DeepEqual(p.Languages, []string{"Arabic", "English"}) {
		t.Errorf("Languages = %v, comma-separated string should split", p.Languages)
	}
	if !reflect.DeepEqual(p.RemoteCountries, []string{"UAE", "Qatar"}) {
		t.Errorf("RemoteCountries = %v", p.RemoteCountries)
	}
	if kw != "Cybersecurity" {
		t.Errorf("keywords = %q, want Cybersecurity", kw)
	}
}

func TestNormalizeAliasKeys(t *testing.T) {
	p, _ := Normalize(map[string]any{
		"experienceLevel": "senior",
		"fieldExperience": []any{"Design"},
	})
	if p.ExperienceLevel != "senior" {
		t.Errorf("experienceLevel alias not accepted: %q", p.ExperienceLevel)
	}
	if !reflect.DeepEqual(p.FieldExperience, []string{"Design"}) {
		t.Errorf("fieldExperience alias not accepted: %v", p.FieldExperience)
	}
}

func TestNormalizeDeduplicatesCaseInsensitively(t *testing.T) {
	p, _ := Normalize(map[string]any{
		"field": []any{"Cybersecurity", "cybersecurity", "Networking"},
	})
	if !reflect.DeepEqual(p.FieldExperience, []string{"Cybersecurity", "Networking"}) {
		t.Errorf("FieldExperience = %v, want deduplicated", p.FieldExperience)
	}
}

// Normalize must be a pure function: calling it twice with the same bag
// yields identical output.
func TestNormalizeIdempotent(t *testing.T) {
	answers := map[string]any{
		"field":      []any{"Cybersecurity"},
		"careerGoal": "Switching careers",
		"languages":  []any{"Arabic", "English"},
	}

	p1, kw1 := Normalize(answers)
	p2, kw2 := Normalize(answers)

	if !reflect.DeepEqual(p1, p2) {
		t.Errorf("profiles differ across calls:\n%+v\n%+v", p1, p2)
	}
	if kw1 != kw2 {
		t.Errorf("keywords differ across calls: %q vs %q", kw1, kw2)
	}
}

func TestLoadAnswers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "answers.yaml")
	content := "careerGoal: Switching careers\nfield:\n  - Cybersecurity\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	answers, err := LoadAnswers(path)
	if err != nil {
		t.Fatalf("LoadAnswers: %v", err)
	}

	_, kw := Normalize(answers)
	if kw != "Cybersecurity" {
		t.Errorf("keywords = %q, want Cybersecurity", kw)
	}
}

func TestLoadAnswersMissingFile(t *testing.T) {
	_, err := LoadAnswers(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing answers file")
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmeet/career-engine/pkg/types"
)

// Built-in catalogs let the pipeline run end to end with no network
// credentials configured (offline mode, R4.4). The catalogs are generated
// deterministically so repeated runs and tests see identical candidates.

var builtinCourseTopics = []struct {
	title  string
	skills []string
}{
	{"Introduction to Artificial Intelligence", []string{"Machine Learning", "Python", "Neural Networks"}},
	{"Fundamentals of Cybersecurity", []string{"Encryption", "Network Security", "Incident Response"}},
	{"Web Development Bootcamp", []string{"HTML", "CSS", "JavaScript", "React"}},
	{"Data Science Essentials", []string{"Python", "Statistics", "Data Visualization"}},
	{"Basics of Digital Marketing", []string{"SEO", "Social Media", "Analytics"}},
	{"Project Management Basics", []string{"Agile", "Scrum", "Scheduling"}},
	{"UX/UI Design Principles", []string{"Figma", "User Research", "Prototyping"}},
	{"Cloud Computing Basics", []string{"AWS", "Azure", "Deployment"}},
	{"Basics of Financial Accounting", []string{"Bookkeeping", "Balance Sheets", "Budgeting"}},
	{"Effective Communication", []string{"Listening", "Clarity", "Persuasion"}},
}

var builtinProviders = []string{
	"MIT", "Columbia", "Harvard", "Stanford", "Berkeley",
}

var builtinJobTitles = []string{
	"Software Developer",
	"Data Analyst",
	"Cybersecurity Specialist",
	"UI/UX Designer",
	"Project Manager",
	"Cloud Engineer",
	"Mobile App Developer",
	"Business Analyst",
	"DevOps Engineer",
	"Quality Assurance Engineer",
}

var builtinCompanies = []string{
	"TechCorp Middle East",
	"Digital Solutions Arabia",
	"Innovation Hub Qatar",
	"Smart Systems Kuwait",
	"Future Tech UAE",
}

var builtinLocations = []string{
	"Dubai, UAE",
	"Riyadh, Saudi Arabia",
	"Doha, Qatar",
	"Amman, Jordan",
	"Ramallah, Palestine",
}

var builtinLevels = []string{"Entry Level", "Mid Level", "Senior Level"}

// BuiltinCourses returns the deterministic offline course catalog.
func BuiltinCourses() []types.CandidateItem {
	items := make([]types.CandidateItem, 0, len(builtinCourseTopics))
	for i, topic := range builtinCourseTopics {
		provider := builtinProviders[i%len(builtinProviders)]
		items = append(items, types.CandidateItem{
			ID:          fmt.Sprintf("course_builtin_%02d", i+1),
			Kind:        types.KindCourse,
			Title:       topic.title,
			Description: fmt.Sprintf("Covers %s.", strings.Join(topic.skills, ", ")),
			Provider:    provider,
			Level:       builtinLevels[i%len(builtinLevels)],
			Duration:    "Self-paced",
			SourceURL:   fmt.Sprintf("https://courses.example.com/%02d", i+1),
		})
	}
	return items
}

// BuiltinJobs returns the deterministic offline job catalog.
func BuiltinJobs() []types.CandidateItem {
	items := make([]types.CandidateItem, 0, len(builtinJobTitles))
	for i, title := range builtinJobTitles {
		items = append(items, types.CandidateItem{
			ID:          fmt.Sprintf("job_builtin_%02d", i+1),
			Kind:        types.KindJob,
			Title:       title,
			Description: fmt.Sprintf("Join %s as a %s working on regional projects.", builtinCompanies[i%len(builtinCompanies)], title),
			Provider:    builtinCompanies[i%len(builtinCompanies)],
			Location:    builtinLocations[i%len(builtinLocations)],
			Level:       builtinLevels[i%len(builtinLevels)],
			Salary:      "Not disclosed",
			SourceURL:   fmt.Sprintf("https://jobs.example.com/%02d", i+1),
		})
	}
	return items
}

// BuiltinSource serves one of the built-in catalogs through the Source
// interface, filtered by the query keywords with the shared matching rule.
type BuiltinSource struct {
	kind  types.ItemKind
	items []types.CandidateItem
}

// NewBuiltinCourseSource returns the offline course source.
func NewBuiltinCourseSource() *BuiltinSource {
	return &BuiltinSource{kind: types.KindCourse, items: BuiltinCourses()}
}

// NewBuiltinJobSource returns the offline job source.
func NewBuiltinJobSource() *BuiltinSource {
	return &BuiltinSource{kind: types.KindJob, items: BuiltinJobs()}
}

// Name returns the source identifier.
func (s *BuiltinSource) Name() string { return "builtin_" + string(s.kind) }

// Kind returns the candidate kind this source produces.
func (s *BuiltinSource) Kind() types.ItemKind { return s.kind }

// Fetch filters the built-in catalog by keyword. Like the course catalog
// source, a miss yields a handful of general entries rather than nothing.
func (s *BuiltinSource) Fetch(_ context.Context, query Query, _ types.CatalogConfig) ([]types.CandidateItem, error) {
	var matched []types.CandidateItem
	for _, item := range s.items {
		if matchesKeywords(query.Keywords, item.Title, item.Description) {
			matched = append(matched, item)
		}
	}
	if len(matched) == 0 {
		n := courseFallbackCount
		if n > len(s.items) {
			n = len(s.items)
		}
		matched = s.items[:n]
	}
	return matched, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mmeet/career-engine/pkg/types"
)

// defaultCourseCatalogURL is the public course catalog endpoint used when
// the config does not override it.
const defaultCourseCatalogURL = "https://raw.githubusercontent.com/srikanth-gde/GDE-Course-API/main/src/data/courses.json"

// courseFallbackCount is how many catalog entries are returned when the
// keyword filter matches nothing: an obscure keyword still yields general
// courses rather than an empty list (R2.5).
const courseFallbackCount = 5

// CourseCatalogSource fetches the full public course catalog and filters it
// locally by keyword (R2.1).
type CourseCatalogSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *CourseCatalogSource) Name() string { return "course_catalog" }

// Kind returns the candidate kind this source produces.
func (s *CourseCatalogSource) Kind() types.ItemKind { return types.KindCourse }

// catalogCourse mirrors one entry of the course catalog JSON.
type catalogCourse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Duration    string `json:"duration"`
	URL         string `json:"url"`
}

// Fetch downloads the catalog and returns the entries matching the query
// keywords, normalized into CandidateItems (R2.1-R2.3).
func (s *CourseCatalogSource) Fetch(ctx context.Context, query Query, cfg types.CatalogConfig) ([]types.CandidateItem, error) {
	catalogURL := cfg.CourseCatalogURL
	if catalogURL == "" {
		catalogURL = defaultCourseCatalogURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, catalogURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("course catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("course catalog returned HTTP %d", resp.StatusCode)
	}

	var all []catalogCourse
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		return nil, fmt.Errorf("parsing course catalog: %w", err)
	}

	var matched []catalogCourse
	for _, c := range all {
		if matchesKeywords(query.Keywords, c.Title, c.Description) {
			matched = append(matched, c)
		}
	}

	// No keyword hits: surface a handful of general courses instead of
	// nothing (R2.5).
	if len(matched) == 0 {
		n := courseFallbackCount
		if n > len(all) {
			n = len(all)
		}
		matched = all[:n]
	}

	items := make([]types.CandidateItem, 0, len(matched))
	for _, c := range matched {
		if c.ID == "" || c.Title == "" {
			continue
		}
		items = append(items, types.CandidateItem{
			ID:          c.ID,
			Kind:        types.KindCourse,
			Title:       c.Title,
			Description: orDefault(c.Description, "No description provided."),
			Provider:    orDefault(c.Author, "Independent"),
			Level:       orDefault(c.Level, "All levels"),
			Duration:    courseDuration(c.Duration),
			SourceURL:   c.URL,
		})
	}
	return items, nil
}

// courseDuration renders the catalog's numeric hour count as a display
// string, falling back to the self-paced sentinel (R2.3).
func courseDuration(raw string) string {
	if raw == "" {
		return "Self-paced"
	}
	return raw + " hours"
}

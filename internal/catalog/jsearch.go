// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmeet/career-engine/internal/httputil"
	"github.com/mmeet/career-engine/pkg/types"
)

// jsearchAPIBase is the JSearch job search endpoint. Declared as a var so
// tests can substitute an httptest server.
var jsearchAPIBase = "https://jsearch.p.rapidapi.com/search"

const jsearchAPIHost = "jsearch.p.rapidapi.com"

// JSearchSource queries the JSearch API on RapidAPI for job listings
// (R2.2). An empty API key disables the source: Fetch returns no items and
// no error, so a missing credential reads as "search yielded nothing"
// rather than an outage.
type JSearchSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *JSearchSource) Name() string { return "jsearch" }

// Kind returns the candidate kind this source produces.
func (s *JSearchSource) Kind() types.ItemKind { return types.KindJob }

// jsearchResponse mirrors the top-level JSearch JSON response.
type jsearchResponse struct {
	Data []jsearchJob `json:"data"`
}

// jsearchJob mirrors a single JSearch listing.
type jsearchJob struct {
	JobID          string  `json:"job_id"`
	Title          string  `json:"job_title"`
	EmployerName   string  `json:"employer_name"`
	City           string  `json:"job_city"`
	Country        string  `json:"job_country"`
	Description    string  `json:"job_description"`
	ApplyLink      string  `json:"job_apply_link"`
	EmploymentType string  `json:"job_employment_type"`
	MinSalary      float64 `json:"job_min_salary"`
	MaxSalary      float64 `json:"job_max_salary"`
	SalaryPeriod   string  `json:"job_salary_period"`
}

// Fetch queries JSearch with the profile keywords plus any geographic
// filter terms and returns normalized job candidates (R2.2, R2.3).
func (s *JSearchSource) Fetch(ctx context.Context, query Query, cfg types.CatalogConfig) ([]types.CandidateItem, error) {
	if cfg.JSearchAPIKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("query", buildJobQuery(query))
	params.Set("page", "1")
	if query.RemoteOnly {
		params.Set("remote_jobs_only", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jsearchAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", cfg.JSearchAPIKey)
	req.Header.Set("X-RapidAPI-Host", jsearchAPIHost)
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("JSearch API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JSearch API returned HTTP %d", resp.StatusCode)
	}

	var jr jsearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&jr); err != nil {
		return nil, fmt.Errorf("parsing JSearch response: %w", err)
	}

	items := make([]types.CandidateItem, 0, len(jr.Data))
	for _, j := range jr.Data {
		if j.JobID == "" || j.Title == "" {
			continue
		}
		items = append(items, types.CandidateItem{
			ID:          j.JobID,
			Kind:        types.KindJob,
			Title:       j.Title,
			Description: orDefault(j.Description, "No description provided."),
			Provider:    orDefault(j.EmployerName, "N/A"),
			Location:    jobLocation(j.City, j.Country),
			Level:       orDefault(j.EmploymentType, "Full-time"),
			Salary:      jobSalary(j.MinSalary, j.MaxSalary, j.SalaryPeriod),
			SourceURL:   j.ApplyLink,
		})
	}
	return items, nil
}

// buildJobQuery appends the geographic filter terms to the keyword string
// the way the JSearch free-text query expects ("<keywords> in A, B, C").
func buildJobQuery(query Query) string {
	q := strings.TrimSpace(query.Keywords)
	if len(query.RegionTerms) > 0 {
		q = q + " in " + strings.Join(query.RegionTerms, ", ")
	}
	return q
}

// jobLocation renders "City, Country", degrading to the remote sentinel
// when the listing carries no city (R2.3).
func jobLocation(city, country string) string {
	if city == "" {
		return "Remote"
	}
	if country == "" {
		return city
	}
	return city + ", " + country
}

// jobSalary renders the advertised range, or the undisclosed sentinel when
// the listing has none (R2.3).
func jobSalary(min, max float64, period string) string {
	if min <= 0 && max <= 0 {
		return "Not disclosed"
	}
	p := strings.ToLower(period)
	if p == "" {
		p = "year"
	}
	if min > 0 && max > 0 {
		return fmt.Sprintf("$%.0f-$%.0f per %s", min, max, p)
	}
	if min > 0 {
		return fmt.Sprintf("from $%.0f per %s", min, p)
	}
	return fmt.Sprintf("up to $%.0f per %s", max, p)
}

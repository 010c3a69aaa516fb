// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmeet/career-engine/pkg/types"
)

const jsearchJSON = `{
	"data": [
		{"job_id": "jx1", "job_title": "Security Analyst",
		 "employer_name": "TechCorp", "job_city": "Dubai", "job_country": "UAE",
		 "job_description": "Monitor and respond to incidents.",
		 "job_apply_link": "https://jobs.example.com/jx1",
		 "job_employment_type": "FULLTIME",
		 "job_min_salary": 60000, "job_max_salary": 80000, "job_salary_period": "YEAR"},
		{"job_id": "jx2", "job_title": "Junior Developer",
		 "employer_name": "", "job_city": "", "job_country": "",
		 "job_description": "", "job_apply_link": "https://jobs.example.com/jx2"}
	]
}`

// jsearchServer swaps the package-level API base for an httptest server.
func jsearchServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, types.CatalogConfig) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := jsearchAPIBase
	jsearchAPIBase = ts.URL
	t.Cleanup(func() { jsearchAPIBase = old })

	cfg := testCfg()
	cfg.JSearchAPIKey = "test-key"
	return ts, cfg
}

func TestJSearchFetchNormalizes(t *testing.T) {
	var gotQuery, gotKey string
	ts, cfg := jsearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotKey = r.Header.Get("X-RapidAPI-Key")
		w.Write([]byte(jsearchJSON))
	})

	src := &JSearchSource{Client: ts.Client()}
	query := Query{
		Keywords:    "cybersecurity",
		RegionTerms: []string{"UAE", "Qatar"},
		RemoteOnly:  true,
	}

	items, err := src.Fetch(context.Background(), query, cfg)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if gotQuery != "cybersecurity in UAE, Qatar" {
		t.Errorf("query = %q, want region terms appended", gotQuery)
	}
	if gotKey != "test-key" {
		t.Errorf("X-RapidAPI-Key = %q", gotKey)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	first := items[0]
	if first.Kind != types.KindJob || first.ID != "jx1" {
		t.Errorf("unexpected first item: %+v", first)
	}
	if first.Location != "Dubai, UAE" {
		t.Errorf("Location = %q", first.Location)
	}
	if first.Salary != "$60000-$80000 per year" {
		t.Errorf("Salary = %q", first.Salary)
	}

	second := items[1]
	if second.Provider != "N/A" {
		t.Errorf("Provider = %q, want N/A", second.Provider)
	}
	if second.Location != "Remote" {
		t.Errorf("Location = %q, want Remote", second.Location)
	}
	if second.Level != "Full-time" {
		t.Errorf("Level = %q, want Full-time", second.Level)
	}
	if second.Salary != "Not disclosed" {
		t.Errorf("Salary = %q, want Not disclosed", second.Salary)
	}
	if second.Description != "No description provided." {
		t.Errorf("Description = %q", second.Description)
	}
}

func TestJSearchFetchDisabledWithoutKey(t *testing.T) {
	called := false
	ts, cfg := jsearchServer(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.Write([]byte(jsearchJSON))
	})
	cfg.JSearchAPIKey = ""

	src := &JSearchSource{Client: ts.Client()}
	items, err := src.Fetch(context.Background(), Query{Keywords: "go"}, cfg)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if items != nil || called {
		t.Errorf("source should be inert without an API key (items=%v called=%v)", items, called)
	}
}

func TestJSearchFetchHTTPError(t *testing.T) {
	ts, cfg := jsearchServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	src := &JSearchSource{Client: ts.Client()}
	_, err := src.Fetch(context.Background(), Query{Keywords: "go"}, cfg)
	if err == nil {
		t.Error("expected error for HTTP 403")
	}
}

func TestJSearchFetchMalformedJSON(t *testing.T) {
	ts, cfg := jsearchServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": "not an array"}`))
	})

	src := &JSearchSource{Client: ts.Client()}
	_, err := src.Fetch(context.Background(), Query{Keywords: "go"}, cfg)
	if err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestBuildJobQueryWithoutRegions(t *testing.T) {
	q := buildJobQuery(Query{Keywords: "data science"})
	if q != "data science" {
		t.Errorf("buildJobQuery = %q", q)
	}
}

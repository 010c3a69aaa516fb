// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmeet/career-engine/pkg/types"
)

const courseCatalogJSON = `[
	{"id": "c1", "title": "Fundamentals of Cybersecurity", "author": "MIT",
	 "description": "Encryption and network security.", "level": "Beginner",
	 "duration": "12", "url": "https://courses.example.com/c1"},
	{"id": "c2", "title": "Data Science Essentials", "author": "",
	 "description": "Statistics with Python.", "level": "",
	 "duration": "", "url": "https://courses.example.com/c2"},
	{"id": "c3", "title": "Creative Writing Workshop", "author": "Yale",
	 "description": "Storytelling and editing.", "level": "Beginner",
	 "duration": "6", "url": "https://courses.example.com/c3"}
]`

func courseServer(t *testing.T, status int, body string) (*httptest.Server, types.CatalogConfig) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	cfg := testCfg()
	cfg.CourseCatalogURL = ts.URL
	return ts, cfg
}

func TestCourseCatalogFetchFiltersAndNormalizes(t *testing.T) {
	ts, cfg := courseServer(t, http.StatusOK, courseCatalogJSON)
	src := &CourseCatalogSource{Client: ts.Client()}

	items, err := src.Fetch(context.Background(), Query{Keywords: "cybersecurity"}, cfg)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	got := items[0]
	if got.ID != "c1" || got.Kind != types.KindCourse {
		t.Errorf("unexpected item: %+v", got)
	}
	if got.Duration != "12 hours" {
		t.Errorf("Duration = %q, want \"12 hours\"", got.Duration)
	}
}

func TestCourseCatalogFetchSentinelDefaults(t *testing.T) {
	ts, cfg := courseServer(t, http.StatusOK, courseCatalogJSON)
	src := &CourseCatalogSource{Client: ts.Client()}

	items, err := src.Fetch(context.Background(), Query{Keywords: "statistics"}, cfg)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}

	got := items[0]
	if got.Provider != "Independent" {
		t.Errorf("Provider = %q, want Independent", got.Provider)
	}
	if got.Level != "All levels" {
		t.Errorf("Level = %q, want All levels", got.Level)
	}
	if got.Duration != "Self-paced" {
		t.Errorf("Duration = %q, want Self-paced", got.Duration)
	}
}

func TestCourseCatalogFetchFallsBackOnMiss(t *testing.T) {
	ts, cfg := courseServer(t, http.StatusOK, courseCatalogJSON)
	src := &CourseCatalogSource{Client: ts.Client()}

	items, err := src.Fetch(context.Background(), Query{Keywords: "zzzznope"}, cfg)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	// Catalog has 3 entries, fewer than the fallback count.
	if len(items) != 3 {
		t.Errorf("items = %d, want whole catalog", len(items))
	}
}

func TestCourseCatalogFetchHTTPError(t *testing.T) {
	ts, cfg := courseServer(t, http.StatusInternalServerError, "nope")
	src := &CourseCatalogSource{Client: ts.Client()}

	_, err := src.Fetch(context.Background(), Query{Keywords: "go"}, cfg)
	if err == nil {
		t.Error("expected error for HTTP 500")
	}
}

func TestCourseCatalogFetchMalformedJSON(t *testing.T) {
	ts, cfg := courseServer(t, http.StatusOK, `{"not": "a list"`)
	src := &CourseCatalogSource{Client: ts.Client()}

	_, err := src.Fetch(context.Background(), Query{Keywords: "go"}, cfg)
	if err == nil {
		t.Error("expected error for malformed payload")
	}
}

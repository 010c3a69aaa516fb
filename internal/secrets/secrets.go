// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: gemini-api-key, jsearch-api-key, redis-url.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmeet/career-engine/pkg/types"
)

// Key file names recognized by Apply.
const (
	KeyGemini  = "gemini-api-key"
	KeyJSearch = "jsearch-api-key"
	KeyRedis   = "redis-url"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply copies recognized secrets into cfg. Values already set on cfg
// (from flags or environment) win over file-based secrets.
func Apply(secrets map[string]string, cfg *types.PipelineConfig) {
	if cfg.Ranking.APIKey == "" {
		cfg.Ranking.APIKey = secrets[KeyGemini]
	}
	if cfg.Analysis.APIKey == "" {
		cfg.Analysis.APIKey = secrets[KeyGemini]
	}
	if cfg.Catalog.JSearchAPIKey == "" {
		cfg.Catalog.JSearchAPIKey = secrets[KeyJSearch]
	}
	if cfg.Store.RedisURL == "" {
		cfg.Store.RedisURL = secrets[KeyRedis]
	}
}

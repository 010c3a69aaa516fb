// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeet/career-engine/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "gemini-api-key", "  AIzaSyAbc123  \n")
				writeFile(t, dir, "jsearch-api-key", "rapid_xyz789")
				writeFile(t, dir, "redis-url", "redis://localhost:6379/0\n")
				return dir
			},
			want: map[string]string{
				"gemini-api-key":  "AIzaSyAbc123",
				"jsearch-api-key": "rapid_xyz789",
				"redis-url":       "redis://localhost:6379/0",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "gemini-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"gemini-api-key": "valid-key",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "jsearch-api-key", "rapid_real")
				return dir
			},
			want: map[string]string{
				"jsearch-api-key": "rapid_real",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "gemini-api-key", "AIza123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"gemini-api-key": "AIza123",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	// The good file should still be returned; the bad file is skipped with a warning.
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func TestApply(t *testing.T) {
	loaded := map[string]string{
		KeyGemini:  "AIza-from-file",
		KeyJSearch: "rapid-from-file",
		KeyRedis:   "redis://secrets:6379",
	}

	t.Run("fills unset fields", func(t *testing.T) {
		var cfg types.PipelineConfig
		Apply(loaded, &cfg)
		assert.Equal(t, "AIza-from-file", cfg.Ranking.APIKey)
		assert.Equal(t, "AIza-from-file", cfg.Analysis.APIKey)
		assert.Equal(t, "rapid-from-file", cfg.Catalog.JSearchAPIKey)
		assert.Equal(t, "redis://secrets:6379", cfg.Store.RedisURL)
	})

	t.Run("existing values win", func(t *testing.T) {
		var cfg types.PipelineConfig
		cfg.Analysis.APIKey = "AIza-from-env"
		cfg.Store.RedisURL = "redis://env:6379"
		Apply(loaded, &cfg)
		assert.Equal(t, "AIza-from-env", cfg.Analysis.APIKey)
		assert.Equal(t, "redis://env:6379", cfg.Store.RedisURL)
		assert.Equal(t, "AIza-from-file", cfg.Ranking.APIKey)
	})

	t.Run("missing secrets leave fields empty", func(t *testing.T) {
		var cfg types.PipelineConfig
		Apply(map[string]string{}, &cfg)
		assert.Empty(t, cfg.Analysis.APIKey)
		assert.Empty(t, cfg.Catalog.JSearchAPIKey)
	})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

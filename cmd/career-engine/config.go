// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmeet/career-engine/internal/analyze"
	"github.com/mmeet/career-engine/internal/catalog"
	"github.com/mmeet/career-engine/internal/genai"
	"github.com/mmeet/career-engine/internal/rank"
	"github.com/mmeet/career-engine/internal/recommend"
	"github.com/mmeet/career-engine/internal/secrets"
	"github.com/mmeet/career-engine/internal/store"
	"github.com/mmeet/career-engine/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "career-engine/0.1"
	defaultModel     = "gemini-1.5-flash"
)

// pipelineConfig builds the full configuration from the config file,
// environment, flags, and loaded secrets. Precedence: flags, then
// environment/config file, then .secrets/ files.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	viper.SetDefault("catalog.timeout", defaultTimeout)
	viper.SetDefault("catalog.max_candidates", 0)
	viper.SetDefault("ai.model", defaultModel)
	viper.SetDefault("store.data_dir", "data")
	viper.SetDefault("refresh.schedule", "")
	viper.SetDefault("refresh.staleness", 0)

	ai := types.AIConfig{
		Model:  viper.GetString("ai.model"),
		APIKey: viper.GetString("ai.api_key"),
	}

	cfg := types.PipelineConfig{
		Catalog: types.CatalogConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("catalog.timeout"),
				UserAgent: defaultUserAgent,
			},
			MaxCandidates:    viper.GetInt("catalog.max_candidates"),
			CourseCatalogURL: viper.GetString("catalog.course_catalog_url"),
			JSearchAPIKey:    viper.GetString("catalog.jsearch_api_key"),
		},
		Ranking:  types.RankingConfig{AIConfig: ai},
		Analysis: types.AnalysisConfig{AIConfig: ai, MaxConcurrency: viper.GetInt("analysis.max_concurrency")},
		Store: types.StoreConfig{
			RedisURL: viper.GetString("store.redis_url"),
			DataDir:  viper.GetString("store.data_dir"),
		},
		Refresh: types.RefreshConfig{
			Schedule:  viper.GetString("refresh.schedule"),
			Staleness: viper.GetDuration("refresh.staleness"),
		},
	}

	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.Store.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("redis-url"); v != "" {
		cfg.Store.RedisURL = v
	}
	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		cfg.Catalog.Offline = true
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Ranking.Model = model
		cfg.Analysis.Model = model
	}

	secrets.Apply(loadedSecrets, &cfg)
	return cfg
}

// openStore opens the snapshot store gateway selected by cfg.
func openStore(ctx context.Context, cfg types.PipelineConfig) (store.Gateway, error) {
	return store.New(ctx, cfg.Store)
}

// buildPipeline assembles the pipeline stages from cfg. With --offline or
// no model API key, the built-in catalogs replace the network sources so
// the pipeline still produces a (fallback-analyzed) snapshot.
func buildPipeline(cfg types.PipelineConfig, gw store.Gateway) *recommend.Pipeline {
	httpClient := &http.Client{Timeout: cfg.Catalog.Timeout}

	var sources []catalog.Source
	if cfg.Catalog.Offline {
		sources = []catalog.Source{
			catalog.NewBuiltinCourseSource(),
			catalog.NewBuiltinJobSource(),
		}
	} else {
		sources = []catalog.Source{
			&catalog.CourseCatalogSource{Client: httpClient},
			&catalog.JSearchSource{Client: httpClient},
		}
	}

	model := &genai.GeminiClient{
		Config: cfg.Analysis.AIConfig,
		HTTP:   &http.Client{Timeout: cfg.Catalog.Timeout},
	}

	return &recommend.Pipeline{
		Sources:  sources,
		Ranker:   &rank.Agent{Client: model, Config: cfg.Ranking},
		Analyzer: &analyze.Agent{Client: model, Config: cfg.Analysis},
		Store:    gw,
		Config:   cfg,
	}
}

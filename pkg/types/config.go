package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests. Timeout bounds every outbound call; a hung external dependency
// must never hang the pipeline.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "career-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CatalogConfig holds settings for the candidate discovery stage.
// Per prd002-discovery R4.1-R4.4.
type CatalogConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxCandidates caps the number of candidates kept per kind
	// (default 25). Keeps the ranking prompt bounded.
	MaxCandidates int `json:"max_candidates" yaml:"max_candidates"`

	// CourseCatalogURL is the course catalog endpoint.
	CourseCatalogURL string `json:"course_catalog_url" yaml:"course_catalog_url"`

	// JSearchAPIKey authenticates against the JSearch job API. Empty
	// disables the job source.
	JSearchAPIKey string `json:"jsearch_api_key,omitempty" yaml:"jsearch_api_key,omitempty"`

	// Offline substitutes the built-in catalogs for both network sources.
	Offline bool `json:"offline" yaml:"offline"`
}

// AIConfig holds shared settings for stages that call the generative-model
// endpoint.
type AIConfig struct {
	// Model is the model identifier (e.g. "gemini-1.5-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed model calls
	// (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// RankingConfig holds settings for the ranking stage.
// Per prd003-ranking R3.1.
type RankingConfig struct {
	AIConfig `yaml:",inline"`
}

// AnalysisConfig holds settings for the per-item analysis stage.
// Per prd004-analysis R3.1-R3.2.
type AnalysisConfig struct {
	AIConfig `yaml:",inline"`

	// MaxConcurrency bounds the number of in-flight analysis calls
	// (default 3). The per-item fan-out is the pipeline's main source of
	// burst load against the rate-limited model endpoint.
	MaxConcurrency int `json:"max_concurrency" yaml:"max_concurrency"`
}

// StoreConfig holds settings for the snapshot store gateway.
// Per prd006-snapshot-store R1.1-R1.3.
type StoreConfig struct {
	// RedisURL selects the remote document store (redis://host:port/db).
	// Empty selects the local SQLite store.
	RedisURL string `json:"redis_url,omitempty" yaml:"redis_url,omitempty"`

	// DataDir is the directory holding the local SQLite database
	// (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// RefreshConfig holds settings for the scheduled re-analysis worker.
// Per prd007-refresh R1.1-R1.3.
type RefreshConfig struct {
	// Schedule is a cron expression controlling refresh rounds
	// (default "0 3 * * *").
	Schedule string `json:"schedule" yaml:"schedule"`

	// Staleness is the snapshot age beyond which a profile is re-analyzed
	// (default 168h).
	Staleness time.Duration `json:"staleness" yaml:"staleness"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Catalog  CatalogConfig  `json:"catalog" yaml:"catalog"`
	Ranking  RankingConfig  `json:"ranking" yaml:"ranking"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Refresh  RefreshConfig  `json:"refresh" yaml:"refresh"`
}

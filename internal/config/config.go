// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Paths
	Resume string `json:"resume,omitempty"` // Path to resume text file
	Job    string `json:"job,omitempty"`    // Path to job posting text file

	// Analysis
	JobTitle         string `json:"job_title,omitempty"`          // Job title used as normalization context
	SkipLearning     bool   `json:"skip_learning,omitempty"`      // Omit learning recommendations
	SkipExperience   bool   `json:"skip_experience,omitempty"`    // Omit experience-gap analysis
	SkipEducation    bool   `json:"skip_education,omitempty"`     // Omit education-match analysis
	CacheCapacity    int    `json:"cache_capacity,omitempty"`     // Response cache entry bound
	RequestTimeoutMS int    `json:"request_timeout_ms,omitempty"` // Per-call provider timeout

	// Models
	LiteModel      string `json:"lite_model,omitempty"`      // Override for the lite tier
	StandardModel  string `json:"standard_model,omitempty"`  // Override for the standard tier
	AdvancedModel  string `json:"advanced_model,omitempty"`  // Override for the advanced tier
	EmbeddingModel string `json:"embedding_model,omitempty"` // Override for the embedding model

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for the vector store
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills unset fields from environment variables. Flags and config
// file values win over the environment.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.CacheCapacity < 0 {
		return fmt.Errorf("config error: 'cache_capacity' must be non-negative")
	}
	if c.RequestTimeoutMS < 0 {
		return fmt.Errorf("config error: 'request_timeout_ms' must be non-negative")
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobTitle == "" {
		result.JobTitle = defaults.JobTitle
	}
	if result.LiteModel == "" {
		result.LiteModel = defaults.LiteModel
	}
	if result.StandardModel == "" {
		result.StandardModel = defaults.StandardModel
	}
	if result.AdvancedModel == "" {
		result.AdvancedModel = defaults.AdvancedModel
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.CacheCapacity == 0 {
		result.CacheCapacity = defaults.CacheCapacity
	}
	if result.RequestTimeoutMS == 0 {
		result.RequestTimeoutMS = defaults.RequestTimeoutMS
	}

	if !result.SkipLearning {
		result.SkipLearning = defaults.SkipLearning
	}
	if !result.SkipExperience {
		result.SkipExperience = defaults.SkipExperience
	}
	if !result.SkipEducation {
		result.SkipEducation = defaults.SkipEducation
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeTempConfig(t, `{
			"job_title": "Backend Engineer",
			"cache_capacity": 128,
			"verbose": true,
			"standard_model": "gemini-2.5-flash"
		}`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", cfg.JobTitle)
		assert.Equal(t, 128, cfg.CacheCapacity)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "gemini-2.5-flash", cfg.StandardModel)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeTempConfig(t, `{not json`)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		assert.NoError(t, (&Config{}).Validate())
	})

	t.Run("negative cache capacity", func(t *testing.T) {
		cfg := &Config{CacheCapacity: -1}
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing resume file", func(t *testing.T) {
		cfg := &Config{Resume: filepath.Join(t.TempDir(), "missing.txt")}
		assert.Error(t, cfg.Validate())
	})

	t.Run("existing files pass", func(t *testing.T) {
		resume := filepath.Join(t.TempDir(), "resume.txt")
		require.NoError(t, os.WriteFile(resume, []byte("resume"), 0o644))
		cfg := &Config{Resume: resume}
		assert.NoError(t, cfg.Validate())
	})
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{JobTitle: "set", CacheCapacity: 64}
	defaults := Config{
		JobTitle:      "default title",
		APIKey:        "default-key",
		CacheCapacity: 256,
		Verbose:       true,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "set", merged.JobTitle, "explicit values win")
	assert.Equal(t, 64, merged.CacheCapacity)
	assert.Equal(t, "default-key", merged.APIKey, "empty values fill from defaults")
	assert.True(t, merged.Verbose)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg := &Config{}
	cfg.FromEnv()
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)

	explicit := &Config{APIKey: "explicit"}
	explicit.FromEnv()
	assert.Equal(t, "explicit", explicit.APIKey, "environment must not override explicit values")
}

package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/cache"
	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/llm"
)

func TestLoadMergedConfigAppliesDefaults(t *testing.T) {
	cfg, err := loadMergedConfig("")
	require.NoError(t, err)

	assert.Equal(t, cache.DefaultCapacity, cfg.CacheCapacity)
	assert.Equal(t, int(llm.DefaultConfig().Timeout().Milliseconds()), cfg.RequestTimeoutMS)
}

func TestLoadMergedConfigFileValuesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cache_capacity": 64, "request_timeout_ms": 5000}`), 0o644))

	cfg, err := loadMergedConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.CacheCapacity)
	assert.Equal(t, 5000, cfg.RequestTimeoutMS)
}

func TestAnalyzeOptionsFrom(t *testing.T) {
	opts := analyzeOptionsFrom(&config.Config{})
	assert.True(t, opts.IncludeLearningRecommendations)
	assert.True(t, opts.IncludeExperienceAnalysis)
	assert.True(t, opts.IncludeEducationAnalysis)

	opts = analyzeOptionsFrom(&config.Config{SkipLearning: true, SkipEducation: true})
	assert.False(t, opts.IncludeLearningRecommendations)
	assert.True(t, opts.IncludeExperienceAnalysis)
	assert.False(t, opts.IncludeEducationAnalysis)
}

func TestBuildEngineCleanupLogsCacheStats(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	eng, cleanup, err := buildEngine(context.Background(), &config.Config{APIKey: "test-key"}, log, false)
	require.NoError(t, err)
	require.NotNil(t, eng)

	cleanup()
	assert.Contains(t, buf.String(), "response cache stats")
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jonathan/skillmatch/internal/cache"
	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/embedding"
	"github.com/jonathan/skillmatch/internal/engine"
	"github.com/jonathan/skillmatch/internal/extraction"
	"github.com/jonathan/skillmatch/internal/llm"
	"github.com/jonathan/skillmatch/internal/normalization"
	"github.com/jonathan/skillmatch/internal/vectorstore"
	"github.com/jonathan/skillmatch/pkg/logger"
)

// defaultConfig holds the built-in fallbacks applied beneath any config file
// or flag values.
func defaultConfig() config.Config {
	return config.Config{
		CacheCapacity:    cache.DefaultCapacity,
		RequestTimeoutMS: int(llm.DefaultConfig().Timeout().Milliseconds()),
	}
}

// loadMergedConfig loads the optional config file, fills empty fields from the
// built-in defaults and the environment, and validates the result.
func loadMergedConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(defaultConfig())
	cfg = &merged

	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// llmConfigFrom applies model overrides from the CLI config.
func llmConfigFrom(cfg *config.Config) *llm.Config {
	llmCfg := llm.DefaultConfig()
	if cfg.LiteModel != "" {
		llmCfg.Models[llm.TierLite] = cfg.LiteModel
	}
	if cfg.StandardModel != "" {
		llmCfg.Models[llm.TierStandard] = cfg.StandardModel
	}
	if cfg.AdvancedModel != "" {
		llmCfg.Models[llm.TierAdvanced] = cfg.AdvancedModel
	}
	if cfg.EmbeddingModel != "" {
		llmCfg.EmbeddingModel = cfg.EmbeddingModel
	}
	if cfg.RequestTimeoutMS > 0 {
		llmCfg.RequestTimeout = time.Duration(cfg.RequestTimeoutMS) * time.Millisecond
	}
	return llmCfg
}

// buildEngine assembles the analysis engine from configuration. The returned
// cleanup closes every held resource and is safe to defer immediately.
func buildEngine(ctx context.Context, cfg *config.Config, log *slog.Logger, withStore bool) (*engine.Engine, func(), error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("API key is required (pass --api-key or set GEMINI_API_KEY)")
	}

	llmCfg := llmConfigFrom(cfg)
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	responseCache := cache.New(&cache.Config{Capacity: cfg.CacheCapacity})
	cleanup := func() {
		stats := responseCache.GetStats()
		log.Debug("response cache stats",
			"size", stats.Size,
			"hits", stats.Hits,
			"misses", stats.Misses,
			"evictions", stats.Evictions)
		_ = client.Close()
	}

	opts := engine.Options{
		Extractor:  extraction.NewService(client, responseCache, log),
		Normalizer: normalization.NewService(client, responseCache, log),
		Logger:     log,
	}

	if withStore {
		if cfg.DatabaseURL == "" {
			cleanup()
			return nil, nil, fmt.Errorf("database URL is required (pass --db-url or set DATABASE_URL)")
		}

		provider, err := embedding.NewGeminiProvider(ctx, llmCfg, cfg.APIKey)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to create embedding provider: %w", err)
		}

		store, err := vectorstore.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			_ = provider.Close()
			cleanup()
			return nil, nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			_ = provider.Close()
			cleanup()
			return nil, nil, err
		}

		opts.Embedder = provider
		opts.Store = store
		inner := cleanup
		cleanup = func() {
			store.Close()
			_ = provider.Close()
			inner()
		}
	}

	return engine.New(opts), cleanup, nil
}

func setupLogging(verbose bool) *slog.Logger {
	return logger.Setup(verbose)
}

func readTextFile(path, label string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%s file is required", label)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s file: %w", label, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%s file %s is empty", label, path)
	}
	return text, nil
}

// writeJSON renders the result as indented JSON to stdout or a file.
func writeJSON(outputPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if outputPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outputPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

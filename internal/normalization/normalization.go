// Package normalization maps raw skill labels to canonical names, categories
// and alias sets via the LLM. Requests are batched up to an enforced maximum;
// a failed batch never invalidates results obtained from sibling batches.
package normalization

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/skillmatch/internal/cache"
	"github.com/jonathan/skillmatch/internal/llm"
	"github.com/jonathan/skillmatch/internal/prompts"
	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/jonathan/skillmatch/internal/types"
)

// MaxBatchSize bounds labels per LLM call, keeping cost, latency and context
// size in check. Larger requests are split transparently.
const MaxBatchSize = 25

// ParseError indicates a normalization response could not be parsed even
// after the stricter retry.
type ParseError struct {
	Batch    []string
	Attempts int
	Cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("skill normalization of %d labels failed to parse after %d attempts: %v", len(e.Batch), e.Attempts, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Result holds the normalization mapping plus degradation metadata.
type Result struct {
	// Mapping keys are the raw labels as given.
	Mapping map[string]types.NormalizedSkill
	// Failed lists labels whose batch failed; they appear in Mapping as
	// identity mappings at the documented fallback confidence.
	Failed []string
	// Degraded is set when any batch fell back to identity mapping.
	Degraded bool
}

// Service normalizes raw skill labels through the LLM client with batch-level
// caching.
type Service struct {
	client    llm.Client
	cache     *cache.Cache
	ttl       time.Duration
	batchSize int
	logger    *slog.Logger
}

// NewService creates a skill normalization service. The cache is optional.
func NewService(client llm.Client, responseCache *cache.Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:    client,
		cache:     responseCache,
		ttl:       cache.DefaultTTL,
		batchSize: MaxBatchSize,
		logger:    logger,
	}
}

// Normalize maps each raw label to its canonical skill. Labels are processed
// in deterministic batches; a batch whose LLM call or parse fails is isolated
// and its labels fall back to identity mappings, flagged through Failed and
// Degraded. An error is returned only when every batch failed.
func (s *Service) Normalize(ctx context.Context, rawLabels []string, contextHint string) (*Result, error) {
	labels := dedupe(rawLabels)
	if len(labels) == 0 {
		return &Result{Mapping: map[string]types.NormalizedSkill{}}, nil
	}

	result := &Result{Mapping: make(map[string]types.NormalizedSkill, len(labels))}
	var firstErr error
	failedBatches := 0
	totalBatches := 0

	for start := 0; start < len(labels); start += s.batchSize {
		end := min(start+s.batchSize, len(labels))
		batch := labels[start:end]
		totalBatches++

		mapping, err := s.normalizeBatch(ctx, batch, contextHint)
		if err != nil {
			failedBatches++
			if firstErr == nil {
				firstErr = err
			}
			s.logger.Warn("normalization batch failed, falling back to identity mapping",
				"batch_size", len(batch), "error", err)
			for _, label := range batch {
				result.Mapping[label] = identityMapping(label)
				result.Failed = append(result.Failed, label)
			}
			result.Degraded = true
			continue
		}

		for _, label := range batch {
			if normalized, ok := mapping[types.NormalizeSkillKey(label)]; ok {
				normalized.Original = label
				result.Mapping[label] = normalized
			} else {
				// The model skipped this label; identity-map it rather than
				// dropping it from the result.
				result.Mapping[label] = identityMapping(label)
				result.Failed = append(result.Failed, label)
				result.Degraded = true
			}
		}
	}

	if failedBatches == totalBatches && firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

// normalizeBatch runs one batch through the cache and LLM, returning the
// mapping keyed by lowercased original label.
func (s *Service) normalizeBatch(ctx context.Context, batch []string, contextHint string) (map[string]types.NormalizedSkill, error) {
	compute := func() (any, error) {
		return s.callLLM(ctx, batch, contextHint)
	}

	if s.cache == nil {
		payload, err := compute()
		if err != nil {
			return nil, err
		}
		return payload.(map[string]types.NormalizedSkill), nil
	}

	fingerprint := cache.Fingerprint("normalize_skills", contextHint, strings.Join(batch, "\n"))
	payload, err := s.cache.GetOrCompute(fingerprint, s.ttl, compute)
	if err != nil {
		return nil, err
	}

	mapping, ok := payload.(map[string]types.NormalizedSkill)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T for normalization", payload)
	}
	return mapping, nil
}

type normalizationResponse struct {
	NormalizedSkills []types.NormalizedSkill `json:"normalized_skills"`
}

func (s *Service) callLLM(ctx context.Context, batch []string, contextHint string) (map[string]types.NormalizedSkill, error) {
	template, err := prompts.Get("normalization.json", "skill_normalization")
	if err != nil {
		return nil, err
	}

	contextBlock := ""
	if contextHint != "" {
		contextBlock = fmt.Sprintf("Context: %s\n\n", contextHint)
	}
	prompt := prompts.Format(template, map[string]string{
		"Context": contextBlock,
		"Labels":  "- " + strings.Join(batch, "\n- "),
	})

	var lastParseErr error
	const maxParseAttempts = 2
	for attempt := 1; attempt <= maxParseAttempts; attempt++ {
		requestPrompt := prompt
		if attempt > 1 {
			requestPrompt += prompts.MustGet("normalization.json", "strict_retry_suffix")
		}

		raw, err := s.client.GenerateJSON(ctx, requestPrompt, llm.TierLite)
		if err != nil {
			return nil, fmt.Errorf("skill normalization failed: %w", err)
		}

		mapping, parseErr := parseResponse(raw)
		if parseErr == nil {
			return mapping, nil
		}
		s.logger.Warn("normalization response failed validation, retrying stricter",
			"attempt", attempt, "error", parseErr)
		lastParseErr = parseErr
	}

	return nil, &ParseError{Batch: batch, Attempts: maxParseAttempts, Cause: lastParseErr}
}

func parseResponse(raw string) (map[string]types.NormalizedSkill, error) {
	if err := schemas.ValidateResponse("skill_normalization", schemas.Normalization, raw); err != nil {
		return nil, err
	}

	var resp normalizationResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode normalization response: %w", err)
	}

	mapping := make(map[string]types.NormalizedSkill, len(resp.NormalizedSkills))
	for _, skill := range resp.NormalizedSkills {
		mapping[types.NormalizeSkillKey(skill.Original)] = skill
	}
	return mapping, nil
}

// identityMapping is the degraded fallback for labels that could not be
// normalized: canonical equals the raw label at the fallback confidence.
func identityMapping(label string) types.NormalizedSkill {
	return types.NormalizedSkill{
		Original:   label,
		Canonical:  label,
		Confidence: types.UnknownConfidence,
	}
}

func dedupe(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		trimmed := strings.TrimSpace(label)
		if trimmed == "" {
			continue
		}
		key := types.NormalizeSkillKey(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}

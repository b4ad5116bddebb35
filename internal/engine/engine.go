// Package engine orchestrates extraction, normalization, matching, and
// embedding into the top-level analysis operations. It owns the degraded-mode
// policy: a partial upstream failure produces a flagged report instead of an
// error, as long as at least one side yielded skills.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillmatch/internal/embedding"
	"github.com/jonathan/skillmatch/internal/matching"
	"github.com/jonathan/skillmatch/internal/normalization"
	"github.com/jonathan/skillmatch/internal/similarity"
	"github.com/jonathan/skillmatch/internal/types"
	"github.com/jonathan/skillmatch/internal/vectorstore"
)

// InsufficientDataError indicates neither the resume nor the job text yielded
// any skills, so no analysis is possible.
type InsufficientDataError struct {
	ResumeErr error
	JobErr    error
}

func (e *InsufficientDataError) Error() string {
	return "no skills could be extracted from either the resume or the job description"
}

// Extractor is the skill-extraction dependency of the engine.
type Extractor interface {
	Extract(ctx context.Context, text string, role types.ExtractionRole, contextHint string) (*types.SkillSet, error)
}

// Normalizer is the skill-normalization dependency of the engine.
type Normalizer interface {
	Normalize(ctx context.Context, rawLabels []string, contextHint string) (*normalization.Result, error)
}

// Engine wires the analysis services together. Embedder and Store are
// optional; the embedding operations fail cleanly when they are absent.
type Engine struct {
	extractor  Extractor
	normalizer Normalizer
	matcher    *matching.Analyzer
	embedder   embedding.Provider
	store      *vectorstore.Store
	logger     *slog.Logger
}

// Options configures an Engine.
type Options struct {
	Extractor  Extractor
	Normalizer Normalizer
	Matcher    *matching.Analyzer
	Embedder   embedding.Provider
	Store      *vectorstore.Store
	Logger     *slog.Logger
}

// New creates an engine from its dependencies. Extractor and Normalizer are
// required for AnalyzeGap; Matcher defaults to the standard heuristics.
func New(opts Options) *Engine {
	if opts.Matcher == nil {
		opts.Matcher = matching.NewAnalyzer(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{
		extractor:  opts.Extractor,
		normalizer: opts.Normalizer,
		matcher:    opts.Matcher,
		embedder:   opts.Embedder,
		store:      opts.Store,
		logger:     opts.Logger,
	}
}

// ExtractSkills extracts the skill set from a single text.
func (e *Engine) ExtractSkills(ctx context.Context, text string, role types.ExtractionRole, contextHint string) (*types.SkillSet, error) {
	return e.extractor.Extract(ctx, text, role, contextHint)
}

// NormalizeSkills normalizes a batch of raw skill labels.
func (e *Engine) NormalizeSkills(ctx context.Context, rawLabels []string, contextHint string) (*normalization.Result, error) {
	return e.normalizer.Normalize(ctx, rawLabels, contextHint)
}

// RankJobsByFit ranks candidate job embeddings against a resume embedding by
// cosine similarity. Pure computation over already-produced embeddings.
func (e *Engine) RankJobsByFit(subjectID string, resumeEmbedding []float64, candidates []similarity.Candidate) ([]types.MatchResult, error) {
	return similarity.Rank(subjectID, resumeEmbedding, candidates)
}

// AnalyzeGap runs the full resume-vs-job analysis: both sides are extracted
// concurrently, their labels normalized, and the matcher invoked. An LLM
// failure on one path degrades the report instead of failing it; only the
// total absence of skills on both sides is an error.
func (e *Engine) AnalyzeGap(ctx context.Context, req *types.AnalyzeRequest) (*types.GapReport, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analyze request: %w", err)
	}
	opts := req.Options

	var resume, job *types.SkillSet
	var resumeErr, jobErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resume, resumeErr = e.extractor.Extract(gctx, req.ResumeText, types.RoleResume, "")
		return nil
	})
	g.Go(func() error {
		job, jobErr = e.extractor.Extract(gctx, req.JobText, types.RoleJob, req.JobTitle)
		return nil
	})
	// Extraction failures degrade rather than abort; the goroutines never
	// return an error, so Wait only surfaces context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if resumeErr != nil {
		e.logger.Warn("resume extraction failed, degrading analysis", "error", resumeErr)
		resume = &types.SkillSet{}
	}
	if jobErr != nil {
		e.logger.Warn("job extraction failed, degrading analysis", "error", jobErr)
		job = &types.SkillSet{}
	}

	if len(resume.Claims) == 0 && len(job.Requirements) == 0 {
		return nil, &InsufficientDataError{ResumeErr: resumeErr, JobErr: jobErr}
	}

	degradedReason := ""
	switch {
	case resumeErr != nil:
		degradedReason = "resume skill extraction failed"
	case jobErr != nil:
		degradedReason = "job skill extraction failed"
	}

	normalized, normReason := e.normalizeBoth(ctx, resume, job, req.JobTitle)
	if normReason != "" && degradedReason == "" {
		degradedReason = normReason
	}

	if len(job.Requirements) == 0 {
		// Nothing to match against. Report the resume side only.
		if degradedReason == "" {
			degradedReason = "no job requirements extracted"
		}
		report := &types.GapReport{
			Strengths:      []types.Strength{},
			SkillGaps:      []types.SkillGap{},
			MatchSummary:   "No job requirements were available; match percentage could not be computed.",
			Degraded:       true,
			DegradedReason: degradedReason,
		}
		return report, nil
	}

	report, err := e.matcher.Analyze(resume, job, normalized, opts)
	if err != nil {
		return nil, fmt.Errorf("gap analysis failed: %w", err)
	}

	if degradedReason != "" {
		report.Degraded = true
		report.DegradedReason = degradedReason
	}

	return report, nil
}

// normalizeBoth normalizes every label from both skill sets into one mapping.
// Returns an empty reason on success, or a degraded reason when normalization
// was partially or fully unavailable.
func (e *Engine) normalizeBoth(ctx context.Context, resume, job *types.SkillSet, contextHint string) (map[string]types.NormalizedSkill, string) {
	labels := make([]string, 0, len(resume.Claims)+len(job.Requirements))
	for _, claim := range resume.Claims {
		labels = append(labels, claim.RawLabel)
	}
	for _, req := range job.Requirements {
		labels = append(labels, req.CanonicalName)
	}
	if len(labels) == 0 {
		return nil, ""
	}

	result, err := e.normalizer.Normalize(ctx, labels, contextHint)
	if err != nil {
		e.logger.Warn("skill normalization failed, matching on raw labels", "error", err)
		return nil, "skill normalization unavailable"
	}

	// The matcher looks skills up by normalized key, not by raw label.
	mapping := make(map[string]types.NormalizedSkill, len(result.Mapping))
	for label, normalized := range result.Mapping {
		mapping[types.NormalizeSkillKey(label)] = normalized
	}

	if result.Degraded {
		e.logger.Warn("skill normalization partially failed", "failed_labels", len(result.Failed))
		return mapping, "skill normalization partially unavailable"
	}
	return mapping, ""
}

// EmbedAndStore embeds the text and persists the vector for the entity.
func (e *Engine) EmbedAndStore(ctx context.Context, entityID uuid.UUID, kind vectorstore.EntityKind, text string) error {
	if e.embedder == nil || e.store == nil {
		return fmt.Errorf("embedding support is not configured")
	}

	vector, err := e.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed %s %s: %w", kind, entityID, err)
	}
	if err := e.store.Upsert(ctx, entityID, kind, vector); err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}
	return nil
}

// DeleteEmbedding removes the stored embedding for an entity.
func (e *Engine) DeleteEmbedding(ctx context.Context, entityID uuid.UUID, kind vectorstore.EntityKind) error {
	if e.store == nil {
		return fmt.Errorf("embedding support is not configured")
	}
	if err := e.store.Delete(ctx, entityID, kind); err != nil {
		return fmt.Errorf("failed to delete %s embedding: %w", kind, err)
	}
	return nil
}

// FindNearest loads the subject's stored embedding and returns the closest
// candidate entities of the given kind, ranked store-side.
func (e *Engine) FindNearest(ctx context.Context, subjectID uuid.UUID, subjectKind, candidateKind vectorstore.EntityKind, limit int) ([]types.MatchResult, error) {
	if e.store == nil {
		return nil, fmt.Errorf("embedding support is not configured")
	}

	query, err := e.store.Get(ctx, subjectID, subjectKind)
	if err != nil {
		return nil, fmt.Errorf("failed to load subject embedding: %w", err)
	}
	return e.store.QueryNearest(ctx, subjectID, query, candidateKind, limit)
}

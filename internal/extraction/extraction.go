// Package extraction provides LLM-based skill extraction from resume and job
// posting text. Responses are schema-validated at the boundary; a malformed
// response gets exactly one stricter retry before the whole extraction fails.
package extraction

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

// ParseError indicates the LLM response could not be parsed into skill claims
// even after the stricter retry. Extraction is atomic: no partially-typed
// result is ever returned alongside it.
type ParseError struct {
	Role     types.ExtractionRole
	Attempts int
	Cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("skill extraction for %s failed to parse after %d attempts: %v", e.Role, e.Attempts, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Service extracts structured skill claims from free text via the LLM client,
// caching validated results by content fingerprint.
type Service struct {
	client llm.Client
	cache  *cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewService creates a skill extraction service. The cache is optional; a nil
// cache disables caching, useful in tests.
func NewService(client llm.Client, responseCache *cache.Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		cache:  responseCache,
		ttl:    cache.DefaultTTL,
		logger: logger,
	}
}

// Extract obtains the raw, unnormalized skill set claimed by a resume or
// demanded by a job posting. The context hint (typically the job title) is
// folded into the job prompt; resume extraction ignores it.
func (s *Service) Extract(ctx context.Context, text string, role types.ExtractionRole, contextHint string) (*types.SkillSet, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%s text cannot be empty", role)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown extraction role %q", role)
	}

	if s.cache == nil {
		return s.extract(ctx, text, role, contextHint)
	}

	fingerprint := cache.Fingerprint("extract_skills", string(role), contextHint, text)
	payload, err := s.cache.GetOrCompute(fingerprint, s.ttl, func() (any, error) {
		return s.extract(ctx, text, role, contextHint)
	})
	if err != nil {
		return nil, err
	}

	skillSet, ok := payload.(*types.SkillSet)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T for extraction", payload)
	}
	return skillSet, nil
}

func (s *Service) extract(ctx context.Context, text string, role types.ExtractionRole, contextHint string) (*types.SkillSet, error) {
	prompt, err := buildPrompt(role, text, contextHint)
	if err != nil {
		return nil, err
	}

	var lastParseErr error
	const maxParseAttempts = 2
	for attempt := 1; attempt <= maxParseAttempts; attempt++ {
		requestPrompt := prompt
		if attempt > 1 {
			requestPrompt += prompts.MustGet("extraction.json", "strict_retry_suffix")
		}

		raw, err := s.client.GenerateJSON(ctx, requestPrompt, llm.TierStandard)
		if err != nil {
			return nil, fmt.Errorf("skill extraction for %s failed: %w", role, err)
		}

		skillSet, parseErr := parseResponse(role, raw)
		if parseErr == nil {
			s.logger.Debug("extracted skills",
				"role", string(role),
				"claims", len(skillSet.Claims),
				"requirements", len(skillSet.Requirements),
				"attempt", attempt)
			return skillSet, nil
		}

		s.logger.Warn("skill extraction response failed validation, retrying stricter",
			"role", string(role), "attempt", attempt, "error", parseErr)
		lastParseErr = parseErr
	}

	return nil, &ParseError{Role: role, Attempts: maxParseAttempts, Cause: lastParseErr}
}

func buildPrompt(role types.ExtractionRole, text, contextHint string) (string, error) {
	switch role {
	case types.RoleResume:
		template, err := prompts.Get("extraction.json", "resume_skill_extraction")
		if err != nil {
			return "", err
		}
		return prompts.Format(template, map[string]string{"Text": text}), nil
	case types.RoleJob:
		template, err := prompts.Get("extraction.json", "job_skill_extraction")
		if err != nil {
			return "", err
		}
		contextBlock := ""
		if hint := strings.TrimSpace(contextHint); hint != "" {
			contextBlock = fmt.Sprintf("Job title: %s\n\n", hint)
		}
		return prompts.Format(template, map[string]string{"Text": text, "Context": contextBlock}), nil
	default:
		return "", fmt.Errorf("unknown extraction role %q", role)
	}
}

// resumeResponse mirrors the resume extraction JSON shape. Confidence is a
// pointer so a missing field stays distinguishable from zero.
type resumeResponse struct {
	TechnicalSkills []struct {
		Name            string   `json:"name"`
		Level           string   `json:"level"`
		YearsExperience float64  `json:"years_experience"`
		Evidence        string   `json:"evidence"`
		Confidence      *float64 `json:"confidence"`
	} `json:"technical_skills"`
	SoftSkills           []string `json:"soft_skills"`
	Education            []string `json:"education"`
	TotalExperienceYears float64  `json:"total_experience_years"`
}

type jobResponse struct {
	RequiredSkills          []jobSkill `json:"required_skills"`
	PreferredSkills         []jobSkill `json:"preferred_skills"`
	RequiredExperienceYears float64    `json:"required_experience_years"`
	EducationRequired       string     `json:"education_required"`
}

type jobSkill struct {
	Name       string `json:"name"`
	Level      string `json:"level"`
	Category   string `json:"category"`
	Importance string `json:"importance"`
}

func parseResponse(role types.ExtractionRole, raw string) (*types.SkillSet, error) {
	schema := schemas.ResumeExtraction
	if role == types.RoleJob {
		schema = schemas.JobExtraction
	}
	if err := schemas.ValidateResponse("skill_extraction", schema, raw); err != nil {
		return nil, err
	}

	if role == types.RoleResume {
		return parseResumeResponse(raw)
	}
	return parseJobResponse(raw)
}

func parseResumeResponse(raw string) (*types.SkillSet, error) {
	var resp resumeResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode resume extraction response: %w", err)
	}

	skillSet := &types.SkillSet{
		TotalYears: resp.TotalExperienceYears,
		Education:  resp.Education,
	}

	for _, skill := range resp.TechnicalSkills {
		level, _ := types.ParseLevel(skill.Level)
		skillSet.Claims = append(skillSet.Claims, types.SkillClaim{
			RawLabel:        skill.Name,
			Level:           level,
			YearsExperience: skill.YearsExperience,
			EvidenceSnippet: skill.Evidence,
			Confidence:      skill.Confidence,
		})
	}
	for _, name := range resp.SoftSkills {
		skillSet.Claims = append(skillSet.Claims, types.SkillClaim{
			RawLabel: name,
			Category: "soft_skill",
			// Soft skills are listed without a level; claims with
			// LevelUnknown get the documented default at comparison time.
			Level: types.LevelUnknown,
		})
	}

	return skillSet, nil
}

func parseJobResponse(raw string) (*types.SkillSet, error) {
	var resp jobResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode job extraction response: %w", err)
	}

	skillSet := &types.SkillSet{
		RequiredYears:     resp.RequiredExperienceYears,
		EducationRequired: resp.EducationRequired,
	}

	for _, skill := range resp.RequiredSkills {
		skillSet.Requirements = append(skillSet.Requirements, toRequirement(skill, types.ImportanceMedium))
	}
	for _, skill := range resp.PreferredSkills {
		skillSet.Requirements = append(skillSet.Requirements, toRequirement(skill, types.ImportanceLow))
	}

	return skillSet, nil
}

func toRequirement(skill jobSkill, defaultImportance types.Importance) types.SkillRequirement {
	level, ok := types.ParseLevel(skill.Level)
	if !ok {
		// A job asking for a skill without a recognizable level is read as
		// asking for working proficiency.
		level = types.LevelIntermediate
	}

	importance := defaultImportance
	if skill.Importance != "" {
		importance = types.ParseImportance(skill.Importance)
	}

	return types.SkillRequirement{
		CanonicalName: skill.Name,
		Category:      skill.Category,
		RequiredLevel: level,
		Importance:    importance,
	}
}

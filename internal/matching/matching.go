package matching

import (
	"fmt"
	"math"

	"github.com/jonathan/skillmatch/internal/types"
)

// InvalidLevelError indicates a requirement whose level does not resolve to a
// position in the level hierarchy.
type InvalidLevelError struct {
	Skill string
	Level types.SkillLevel
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("skill %q has level %q outside the level hierarchy", e.Skill, e.Level)
}

// Analyzer derives gap reports from normalized skill sets.
type Analyzer struct {
	config *Config
}

// NewAnalyzer creates an analyzer with the given heuristics, or defaults.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Analyzer{config: config}
}

// matchKind records how a requirement found its candidate claim.
type matchKind int

const (
	matchNone matchKind = iota
	matchDirect
	matchAlias
	matchRelated
)

// Analyze reconciles the candidate's claims against the job's requirements
// and produces the gap report. The normalized mapping (keyed by
// types.NormalizeSkillKey of the raw label) supplies alias and related-skill
// data for soft matching; it may be nil when normalization was unavailable.
func (a *Analyzer) Analyze(resume, job *types.SkillSet, normalized map[string]types.NormalizedSkill, opts types.AnalyzeOptions) (*types.GapReport, error) {
	if job == nil || len(job.Requirements) == 0 {
		return nil, fmt.Errorf("job skill set has no requirements")
	}
	if resume == nil {
		resume = &types.SkillSet{}
	}

	index := a.buildCandidateIndex(resume.Claims, normalized)

	report := &types.GapReport{
		Strengths: []types.Strength{},
		SkillGaps: []types.SkillGap{},
	}

	var totalWeight, earnedWeight float64

	for _, req := range job.Requirements {
		if _, ok := req.RequiredLevel.Rank(); !ok {
			return nil, &InvalidLevelError{Skill: req.CanonicalName, Level: req.RequiredLevel}
		}

		weight := req.Importance.Weight()
		totalWeight += weight

		claim, kind := a.findMatch(req, index, normalized)
		if kind == matchNone {
			report.SkillGaps = append(report.SkillGaps, a.unmatchedGap(req))
			continue
		}

		level := claim.Level
		if _, ok := level.Rank(); !ok {
			level = a.config.DefaultClaimLevel
		}

		if level.Meets(req.RequiredLevel) {
			credit := 1.0
			if kind == matchRelated {
				credit = a.config.SoftMatchTransferability
			}
			earnedWeight += weight * credit
			report.Strengths = append(report.Strengths, types.Strength{
				Skill:      req.CanonicalName,
				Reason:     strengthReason(claim, level, req, kind),
				Confidence: claim.EffectiveConfidence(),
			})
			continue
		}

		report.SkillGaps = append(report.SkillGaps, a.matchedGap(req, level, kind))
	}

	if totalWeight > 0 {
		report.OverallMatchPercentage = math.Round(earnedWeight/totalWeight*1000) / 10
	}

	sortGaps(report.SkillGaps)

	report.MatchSummary = matchSummary(len(report.Strengths), len(job.Requirements), report.OverallMatchPercentage)
	report.ApplicationAdvice = applicationAdvice(report.OverallMatchPercentage)
	report.RecommendedNextSteps = recommendedNextSteps(report.SkillGaps)

	if opts.IncludeLearningRecommendations {
		report.LearningRecommendations = a.learningRecommendations(report.SkillGaps, normalized)
	}
	if opts.IncludeExperienceAnalysis {
		report.ExperienceGap = experienceGap(resume, job)
	}
	if opts.IncludeEducationAnalysis {
		report.EducationMatch = educationMatch(resume, job)
	}

	return report, nil
}

// buildCandidateIndex maps every lookup key a claim can answer to (canonical
// name, base skill, aliases) onto the claim. First claim wins on collisions.
func (a *Analyzer) buildCandidateIndex(claims []types.SkillClaim, normalized map[string]types.NormalizedSkill) map[string]*types.SkillClaim {
	index := make(map[string]*types.SkillClaim, len(claims)*2)

	add := func(key string, claim *types.SkillClaim) {
		if key == "" {
			return
		}
		if _, exists := index[key]; !exists {
			index[key] = claim
		}
	}

	for i := range claims {
		claim := &claims[i]
		key := types.NormalizeSkillKey(claim.Name())
		add(key, claim)
		add(baseSkillKey(claim.Name()), claim)

		if norm, ok := normalized[types.NormalizeSkillKey(claim.RawLabel)]; ok {
			add(types.NormalizeSkillKey(norm.Canonical), claim)
			for _, alias := range norm.Aliases {
				add(types.NormalizeSkillKey(alias), claim)
			}
		}
	}

	return index
}

// findMatch locates the candidate claim answering a requirement: exact
// canonical name first, then base-skill collapse, then alias overlap, then
// related-skill transferability as a soft match.
func (a *Analyzer) findMatch(req types.SkillRequirement, index map[string]*types.SkillClaim, normalized map[string]types.NormalizedSkill) (*types.SkillClaim, matchKind) {
	reqKey := types.NormalizeSkillKey(req.CanonicalName)
	if claim, ok := index[reqKey]; ok {
		return claim, matchDirect
	}

	if claim, ok := index[baseSkillKey(req.CanonicalName)]; ok {
		return claim, matchDirect
	}

	norm, hasNorm := normalized[reqKey]
	if !hasNorm {
		return nil, matchNone
	}

	if claim, ok := index[types.NormalizeSkillKey(norm.Canonical)]; ok {
		return claim, matchDirect
	}
	for _, alias := range norm.Aliases {
		if claim, ok := index[types.NormalizeSkillKey(alias)]; ok {
			return claim, matchAlias
		}
	}
	for _, related := range norm.RelatedSkills {
		if claim, ok := index[types.NormalizeSkillKey(related)]; ok {
			return claim, matchRelated
		}
	}

	return nil, matchNone
}

// matchedGap classifies a requirement the candidate holds below the required
// level. Severity grows monotonically with the level shortfall and is lifted
// by the requirement's importance floor.
func (a *Analyzer) matchedGap(req types.SkillRequirement, current types.SkillLevel, kind matchKind) types.SkillGap {
	distance := current.Distance(req.RequiredLevel)
	severity := a.config.severityForDistance(distance)
	severity = severity.Max(a.config.MatchedSeverityFloor[req.Importance])

	gap := types.SkillGap{
		Skill:         req.CanonicalName,
		RequiredLevel: req.RequiredLevel,
		CurrentLevel:  current,
		GapSeverity:   severity,
		Priority:      priorityFor(req.Importance, severity),
		Impact:        fmt.Sprintf("current %s level needs improvement to %s", current, req.RequiredLevel),
	}
	if kind == matchRelated {
		gap.SoftMatch = true
		gap.Transferability = a.config.SoftMatchTransferability
	}
	return gap
}

// unmatchedGap classifies a requirement the candidate does not hold at all.
func (a *Analyzer) unmatchedGap(req types.SkillRequirement) types.SkillGap {
	requiredRank, _ := req.RequiredLevel.Rank()
	severity := a.config.severityForDistance(requiredRank)
	severity = severity.Max(a.config.UnmatchedSeverityFloor[req.Importance])

	return types.SkillGap{
		Skill:         req.CanonicalName,
		RequiredLevel: req.RequiredLevel,
		CurrentLevel:  types.LevelNone,
		GapSeverity:   severity,
		Priority:      priorityFor(req.Importance, severity),
		Impact:        fmt.Sprintf("%s importance requirement with no matching candidate skill", req.Importance),
	}
}

func strengthReason(claim *types.SkillClaim, level types.SkillLevel, req types.SkillRequirement, kind matchKind) string {
	margin := -level.Distance(req.RequiredLevel)
	switch {
	case kind == matchRelated:
		return fmt.Sprintf("transferable from %s at %s level", claim.Name(), level)
	case margin > 0:
		return fmt.Sprintf("%s level exceeds %s requirement by %d level(s)", level, req.RequiredLevel, margin)
	default:
		return fmt.Sprintf("%s level meets %s requirement", level, req.RequiredLevel)
	}
}

// priorityFor combines importance and severity into a remediation priority.
// Both push priority up; the mapping is deterministic.
func priorityFor(importance types.Importance, severity types.GapSeverity) types.Priority {
	score := importance.Rank() + severity.Rank()
	switch {
	case score >= 4:
		return types.PriorityHigh
	case score >= 2:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}

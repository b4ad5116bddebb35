package matching

import (
	"fmt"
	"strings"

	"github.com/jonathan/skillmatch/internal/types"
)

// slowDomainTerms marks skills whose ecosystems take longer to learn.
var slowDomainTerms = []string{"aws", "azure", "gcp", "cloud", "ai", "machine learning", "kubernetes"}

func isSlowDomain(skill string) bool {
	lowered := strings.ToLower(skill)
	for _, term := range slowDomainTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// estimatedLearningTime maps gap severity onto a coarse duration band.
// Broad-platform skills get the longer band at high severities.
func estimatedLearningTime(severity types.GapSeverity, skill string) string {
	if severity.Rank() >= types.SeverityMajor.Rank() {
		if isSlowDomain(skill) {
			return "6-12 weeks"
		}
		return "4-8 weeks"
	}
	return "2-4 weeks"
}

// learningRecommendations turns gaps at or above the configured priority
// threshold into study plans. Prerequisites come from the requirement's
// related skills when normalization supplied them.
func (a *Analyzer) learningRecommendations(gaps []types.SkillGap, normalized map[string]types.NormalizedSkill) []types.LearningRecommendation {
	recommendations := make([]types.LearningRecommendation, 0, len(gaps))

	for _, gap := range gaps {
		if gap.Priority.Rank() < a.config.RecommendationThreshold.Rank() {
			continue
		}

		approach := fmt.Sprintf("Focus on %s fundamentals and practical application", gap.Skill)
		if gap.CurrentLevel != types.LevelNone {
			approach = fmt.Sprintf("Build on existing %s %s experience toward %s-level projects", gap.Skill, gap.CurrentLevel, gap.RequiredLevel)
		}

		var prerequisites []string
		if norm, ok := normalized[types.NormalizeSkillKey(gap.Skill)]; ok {
			prerequisites = norm.RelatedSkills
		}

		recommendations = append(recommendations, types.LearningRecommendation{
			Skill:                 gap.Skill,
			Priority:              gap.Priority,
			EstimatedLearningTime: estimatedLearningTime(gap.GapSeverity, gap.Skill),
			SuggestedApproach:     approach,
			Prerequisites:         prerequisites,
			Resources:             []string{"Online courses", "Official documentation", "Hands-on projects"},
		})
	}

	return recommendations
}

// Package matching reconciles a candidate's skill claims against a job's
// skill requirements and derives the gap report. It is pure logic: no network
// calls, no I/O; it fails only on malformed input.
package matching

import "github.com/jonathan/skillmatch/internal/types"

// Config holds the tunable cut points of the gap heuristics. The specific
// values are product decisions; the monotonicity of severity in level distance
// is the hard contract and holds for any configuration of these maps.
type Config struct {
	// DefaultClaimLevel is assumed for claims whose level could not be
	// determined during extraction.
	DefaultClaimLevel types.SkillLevel

	// SeverityByDistance maps the level shortfall of a matched requirement to
	// a severity. Distances beyond the largest key use the largest entry.
	SeverityByDistance map[int]types.GapSeverity

	// MatchedSeverityFloor lifts the severity of a matched-but-short
	// requirement based on its importance.
	MatchedSeverityFloor map[types.Importance]types.GapSeverity

	// UnmatchedSeverityFloor lifts the severity of a completely missing
	// requirement: missing a must-have outright is worse than trailing one
	// level on a nice-to-have.
	UnmatchedSeverityFloor map[types.Importance]types.GapSeverity

	// RecommendationThreshold is the minimum gap priority that earns a
	// learning recommendation.
	RecommendationThreshold types.Priority

	// SoftMatchTransferability weighs a related-skill match relative to a
	// direct canonical match.
	SoftMatchTransferability float64
}

// DefaultConfig returns the standard gap heuristics.
func DefaultConfig() *Config {
	return &Config{
		DefaultClaimLevel: types.LevelIntermediate,
		SeverityByDistance: map[int]types.GapSeverity{
			0: types.SeverityNone,
			1: types.SeverityMinor,
			2: types.SeverityModerate,
			3: types.SeverityMajor,
		},
		MatchedSeverityFloor: map[types.Importance]types.GapSeverity{
			types.ImportanceCritical: types.SeverityModerate,
			types.ImportanceHigh:     types.SeverityMinor,
		},
		UnmatchedSeverityFloor: map[types.Importance]types.GapSeverity{
			types.ImportanceCritical: types.SeverityCritical,
			types.ImportanceHigh:     types.SeverityMajor,
			types.ImportanceMedium:   types.SeverityMajor,
			types.ImportanceLow:      types.SeverityModerate,
		},
		RecommendationThreshold:  types.PriorityMedium,
		SoftMatchTransferability: 0.5,
	}
}

// severityForDistance resolves the severity for a level shortfall.
func (c *Config) severityForDistance(distance int) types.GapSeverity {
	if distance <= 0 {
		return types.SeverityNone
	}
	maxKey := 0
	for k := range c.SeverityByDistance {
		if k > maxKey {
			maxKey = k
		}
	}
	if distance > maxKey {
		distance = maxKey
	}
	return c.SeverityByDistance[distance]
}

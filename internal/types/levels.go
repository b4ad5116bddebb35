// Package types provides type definitions for structured data used throughout the skillmatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// SkillLevel represents a proficiency level on the shared ordered hierarchy.
// The zero value is LevelUnknown, which has no rank and must be resolved
// before level comparison.
type SkillLevel string

// Skill level constants, ordered from lowest to highest proficiency
const (
	LevelUnknown      SkillLevel = ""
	LevelNone         SkillLevel = "none"
	LevelEntry        SkillLevel = "entry"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelSenior       SkillLevel = "senior"
)

// levelRanks maps each level to its position in the hierarchy.
// LevelUnknown is deliberately absent: unranked levels are not admitted downstream.
var levelRanks = map[SkillLevel]int{
	LevelNone:         0,
	LevelEntry:        1,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
	LevelSenior:       4,
}

// levelAliases maps common synonyms produced by LLMs to canonical levels.
var levelAliases = map[string]SkillLevel{
	"none":         LevelNone,
	"entry":        LevelEntry,
	"beginner":     LevelEntry,
	"basic":        LevelEntry,
	"junior":       LevelEntry,
	"intermediate": LevelIntermediate,
	"mid":          LevelIntermediate,
	"advanced":     LevelAdvanced,
	"senior":       LevelSenior,
	"expert":       LevelSenior,
}

// ParseLevel resolves a raw level string to a canonical SkillLevel.
// Returns false when the string does not map to any position in the hierarchy.
func ParseLevel(s string) (SkillLevel, bool) {
	level, ok := levelAliases[strings.ToLower(strings.TrimSpace(s))]
	return level, ok
}

// Rank returns the level's position in the hierarchy.
// Returns false for LevelUnknown or any level outside the hierarchy.
func (l SkillLevel) Rank() (int, bool) {
	rank, ok := levelRanks[l]
	return rank, ok
}

// Meets reports whether the level meets or exceeds the required level.
// Both levels must be ranked; unranked levels never meet anything.
func (l SkillLevel) Meets(required SkillLevel) bool {
	have, ok := l.Rank()
	if !ok {
		return false
	}
	want, ok := required.Rank()
	if !ok {
		return false
	}
	return have >= want
}

// Distance returns how many hierarchy steps the level falls short of required.
// A non-positive result means the requirement is met.
func (l SkillLevel) Distance(required SkillLevel) int {
	have, haveOK := l.Rank()
	want, wantOK := required.Rank()
	if !haveOK || !wantOK {
		return 0
	}
	return want - have
}

// Importance represents how essential a requirement is to a job.
type Importance string

// Importance constants, ordered from most to least essential
const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
)

// importanceWeights drive the weighted overall match percentage: missing one
// critical skill costs more than missing one low-importance skill.
var importanceWeights = map[Importance]float64{
	ImportanceCritical: 4,
	ImportanceHigh:     3,
	ImportanceMedium:   2,
	ImportanceLow:      1,
}

// ParseImportance resolves a raw importance string, defaulting to medium
// for unrecognized values so a sloppy LLM label never drops a requirement.
func ParseImportance(s string) Importance {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical", "must", "must-have":
		return ImportanceCritical
	case "high":
		return ImportanceHigh
	case "low", "nice-to-have", "optional":
		return ImportanceLow
	default:
		return ImportanceMedium
	}
}

// Weight returns the requirement weight used in match percentage calculations.
func (i Importance) Weight() float64 {
	if w, ok := importanceWeights[i]; ok {
		return w
	}
	return importanceWeights[ImportanceMedium]
}

// Rank returns the importance position, higher meaning more essential.
func (i Importance) Rank() int {
	switch i {
	case ImportanceCritical:
		return 3
	case ImportanceHigh:
		return 2
	case ImportanceMedium:
		return 1
	default:
		return 0
	}
}

// GapSeverity represents the qualitative distance between required and held level.
type GapSeverity string

// Gap severity constants, ordered from no gap to worst gap
const (
	SeverityNone     GapSeverity = "none"
	SeverityMinor    GapSeverity = "minor"
	SeverityModerate GapSeverity = "moderate"
	SeverityMajor    GapSeverity = "major"
	SeverityCritical GapSeverity = "critical"
)

// Rank returns the severity position, higher meaning a worse gap.
func (s GapSeverity) Rank() int {
	switch s {
	case SeverityMinor:
		return 1
	case SeverityModerate:
		return 2
	case SeverityMajor:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// Max returns the more severe of the two severities.
func (s GapSeverity) Max(other GapSeverity) GapSeverity {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// Priority represents the remediation priority of a skill gap.
type Priority string

// Priority constants for gap remediation ordering
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the priority position, higher meaning more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

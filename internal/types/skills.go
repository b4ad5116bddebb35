package types

import "strings"

// SkillClaim represents a skill a candidate claims, extracted from resume text.
// Confidence is nil when the model provided no confidence field; callers must
// use EffectiveConfidence rather than assuming full confidence.
type SkillClaim struct {
	RawLabel        string     `json:"raw_label"`
	CanonicalName   string     `json:"canonical_name,omitempty"`
	Category        string     `json:"category,omitempty"`
	Level           SkillLevel `json:"level"`
	YearsExperience float64    `json:"years_experience,omitempty"`
	EvidenceSnippet string     `json:"evidence_snippet,omitempty"`
	Confidence      *float64   `json:"confidence,omitempty"`
}

// UnknownConfidence is the documented fallback used when the extraction model
// provides no confidence field. Deliberately neutral: not biased upward to 1.0.
const UnknownConfidence = 0.5

// EffectiveConfidence returns the claim confidence, or the documented
// fallback constant when the model provided none.
func (c *SkillClaim) EffectiveConfidence() float64 {
	if c.Confidence == nil {
		return UnknownConfidence
	}
	return *c.Confidence
}

// Name returns the canonical name when normalization has run, else the raw label.
func (c *SkillClaim) Name() string {
	if c.CanonicalName != "" {
		return c.CanonicalName
	}
	return c.RawLabel
}

// SkillRequirement represents a job's ask for a single skill.
type SkillRequirement struct {
	CanonicalName string     `json:"canonical_name"`
	Category      string     `json:"category,omitempty"`
	RequiredLevel SkillLevel `json:"required_level"`
	Importance    Importance `json:"importance"`
}

// NormalizedSkill is the normalization result for one raw label.
type NormalizedSkill struct {
	Original      string   `json:"original"`
	Canonical     string   `json:"canonical"`
	Category      string   `json:"category,omitempty"`
	Confidence    float64  `json:"confidence"`
	Aliases       []string `json:"aliases,omitempty"`
	RelatedSkills []string `json:"related_skills,omitempty"`
}

// SkillSet holds the extraction output for one side (resume or job),
// including the side-level fields used for experience and education analysis.
type SkillSet struct {
	Claims            []SkillClaim       `json:"claims,omitempty"`
	Requirements      []SkillRequirement `json:"requirements,omitempty"`
	TotalYears        float64            `json:"total_experience_years,omitempty"`
	RequiredYears     float64            `json:"required_experience_years,omitempty"`
	Education         []string           `json:"education,omitempty"`
	EducationRequired string             `json:"education_required,omitempty"`
}

// ExtractionRole identifies which side of the analysis a text belongs to.
type ExtractionRole string

// Extraction role constants
const (
	RoleResume ExtractionRole = "resume"
	RoleJob    ExtractionRole = "job"
)

// Valid reports whether the role is one of the supported extraction roles.
func (r ExtractionRole) Valid() bool {
	return r == RoleResume || r == RoleJob
}

// NormalizeSkillKey lowercases and trims a skill name for map lookups.
func NormalizeSkillKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

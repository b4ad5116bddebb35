package types

import (
	"github.com/go-playground/validator/v10"
)

// MatchResult represents a ranked similarity match between a resume and one job.
// Fully derived from the two embeddings; recomputable at any time.
type MatchResult struct {
	SubjectID       string  `json:"subject_id"`
	CandidateID     string  `json:"candidate_id"`
	SimilarityScore float64 `json:"similarity_score"`
	Rank            int     `json:"rank"`
}

// Strength represents a requirement the candidate meets or exceeds.
// Confidence is the backing claim's extraction confidence, falling back to
// UnknownConfidence when the model reported none.
type Strength struct {
	Skill      string  `json:"skill"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// SkillGap represents a requirement the candidate falls short on.
type SkillGap struct {
	Skill         string      `json:"skill"`
	RequiredLevel SkillLevel  `json:"required_level"`
	CurrentLevel  SkillLevel  `json:"current_level"`
	Priority      Priority    `json:"priority"`
	Impact        string      `json:"impact,omitempty"`
	GapSeverity   GapSeverity `json:"gap_severity"`
	// SoftMatch is set when the candidate skill matched only through
	// related-skill transferability, weighted below a direct match.
	SoftMatch       bool    `json:"soft_match,omitempty"`
	Transferability float64 `json:"transferability,omitempty"`
}

// LearningRecommendation suggests how to close a single skill gap.
type LearningRecommendation struct {
	Skill                 string   `json:"skill"`
	Priority              Priority `json:"priority"`
	EstimatedLearningTime string   `json:"estimated_learning_time"`
	SuggestedApproach     string   `json:"suggested_approach,omitempty"`
	Prerequisites         []string `json:"prerequisites,omitempty"`
	Resources             []string `json:"resources,omitempty"`
}

// ExperienceGap compares candidate years against the job's requirement.
// Absent from the report when either side omits experience data.
type ExperienceGap struct {
	RequiredYears  float64 `json:"required_years"`
	CandidateYears float64 `json:"candidate_years"`
	Gap            float64 `json:"gap"`
	Assessment     string  `json:"assessment,omitempty"`
}

// EducationMatch compares candidate education against the job's requirement.
// Absent from the report when either side omits education data.
type EducationMatch struct {
	Required   string `json:"required"`
	Candidate  string `json:"candidate"`
	Matches    bool   `json:"matches"`
	Assessment string `json:"assessment,omitempty"`
}

// GapReport is the full skill-gap analysis between one resume and one job.
// It is a derived report, regenerable from the two skill sets at any time.
type GapReport struct {
	OverallMatchPercentage  float64                  `json:"overall_match_percentage"`
	MatchSummary            string                   `json:"match_summary,omitempty"`
	Strengths               []Strength               `json:"strengths"`
	SkillGaps               []SkillGap               `json:"skill_gaps"`
	LearningRecommendations []LearningRecommendation `json:"learning_recommendations,omitempty"`
	ExperienceGap           *ExperienceGap           `json:"experience_gap,omitempty"`
	EducationMatch          *EducationMatch          `json:"education_match,omitempty"`
	RecommendedNextSteps    []string                 `json:"recommended_next_steps,omitempty"`
	ApplicationAdvice       string                   `json:"application_advice,omitempty"`
	// Degraded marks a report produced despite a partial upstream failure,
	// so callers can communicate reduced confidence.
	Degraded       bool   `json:"degraded,omitempty"`
	DegradedReason string `json:"degraded_reason,omitempty"`
}

// AnalyzeOptions controls which optional sub-reports AnalyzeGap produces.
type AnalyzeOptions struct {
	IncludeLearningRecommendations bool `json:"include_learning_recommendations"`
	IncludeExperienceAnalysis      bool `json:"include_experience_analysis"`
	IncludeEducationAnalysis       bool `json:"include_education_analysis"`
}

// DefaultAnalyzeOptions enables every optional sub-report.
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{
		IncludeLearningRecommendations: true,
		IncludeExperienceAnalysis:      true,
		IncludeEducationAnalysis:       true,
	}
}

// AnalyzeRequest is the orchestrator input for a gap analysis.
type AnalyzeRequest struct {
	ResumeText string         `json:"resume_text" validate:"required"`
	JobText    string         `json:"job_text" validate:"required"`
	JobTitle   string         `json:"job_title,omitempty"`
	Options    AnalyzeOptions `json:"options"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

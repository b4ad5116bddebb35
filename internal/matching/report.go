package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/skillmatch/internal/types"
)

// Advice thresholds on the overall match percentage.
const (
	strongMatchThreshold   = 80.0
	goodMatchThreshold     = 60.0
	moderateMatchThreshold = 40.0
)

// sortGaps orders gaps most urgent first: priority, then severity, then
// skill name for a stable presentation order.
func sortGaps(gaps []types.SkillGap) {
	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].Priority.Rank() != gaps[j].Priority.Rank() {
			return gaps[i].Priority.Rank() > gaps[j].Priority.Rank()
		}
		if gaps[i].GapSeverity.Rank() != gaps[j].GapSeverity.Rank() {
			return gaps[i].GapSeverity.Rank() > gaps[j].GapSeverity.Rank()
		}
		return gaps[i].Skill < gaps[j].Skill
	})
}

func matchSummary(strengths, requirements int, percentage float64) string {
	return fmt.Sprintf("Candidate meets %d of %d requirements for a weighted match of %.1f%%.",
		strengths, requirements, percentage)
}

func applicationAdvice(percentage float64) string {
	switch {
	case percentage >= strongMatchThreshold:
		return "Strong match. Apply with confidence and highlight your strongest overlapping skills."
	case percentage >= goodMatchThreshold:
		return "Good match. Apply, and address the remaining gaps directly in your cover letter."
	case percentage >= moderateMatchThreshold:
		return "Moderate match. Consider applying if you can close the high-priority gaps quickly, or target the role after targeted upskilling."
	default:
		return "Weak match. Focus on building the critical missing skills before applying to this role."
	}
}

// recommendedNextSteps names the most urgent gaps as concrete actions,
// capped at three so the advice stays actionable.
func recommendedNextSteps(gaps []types.SkillGap) []string {
	const maxSteps = 3

	steps := make([]string, 0, maxSteps)
	for _, gap := range gaps {
		if gap.Priority != types.PriorityHigh {
			continue
		}
		if gap.CurrentLevel == types.LevelNone {
			steps = append(steps, fmt.Sprintf("Start learning %s; the role requires %s level.", gap.Skill, gap.RequiredLevel))
		} else {
			steps = append(steps, fmt.Sprintf("Deepen %s from %s to %s level.", gap.Skill, gap.CurrentLevel, gap.RequiredLevel))
		}
		if len(steps) == maxSteps {
			return steps
		}
	}

	if len(steps) < maxSteps {
		for _, gap := range gaps {
			if gap.Priority == types.PriorityHigh {
				continue
			}
			steps = append(steps, fmt.Sprintf("Improve %s toward %s level.", gap.Skill, gap.RequiredLevel))
			if len(steps) == maxSteps {
				break
			}
		}
	}

	if len(steps) == 0 {
		steps = append(steps, "Requirements are covered. Tailor your resume to emphasize the matched skills.")
	}
	return steps
}

// experienceGap compares total years of experience when both sides carry the
// figure. Returns nil when either side is missing the data.
func experienceGap(resume, job *types.SkillSet) *types.ExperienceGap {
	if job.RequiredYears <= 0 {
		return nil
	}

	gap := job.RequiredYears - resume.TotalYears
	assessment := "meets the experience requirement"
	switch {
	case gap > 2:
		assessment = fmt.Sprintf("%.0f years short of the requirement, a significant gap", gap)
	case gap > 0:
		assessment = fmt.Sprintf("%.1f years short of the requirement, a modest gap", gap)
	case gap < 0:
		assessment = fmt.Sprintf("exceeds the requirement by %.1f years", -gap)
	}

	return &types.ExperienceGap{
		RequiredYears:  job.RequiredYears,
		CandidateYears: resume.TotalYears,
		Gap:            nonNegative(gap),
		Assessment:     assessment,
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// degreeRanks orders recognized education keywords. Unrecognized strings
// rank at zero and are compared verbatim.
var degreeRanks = []struct {
	keyword string
	rank    int
}{
	{"phd", 5},
	{"doctor", 5},
	{"master", 4},
	{"bachelor", 3},
	{"associate", 2},
	{"diploma", 1},
	{"certificate", 1},
}

func degreeRank(education string) int {
	lowered := strings.ToLower(education)
	for _, d := range degreeRanks {
		if strings.Contains(lowered, d.keyword) {
			return d.rank
		}
	}
	return 0
}

// highestEducation picks the entry with the best degree rank. Ties go to the
// first entry listed.
func highestEducation(entries []string) (string, int) {
	best := ""
	bestRank := -1
	for _, entry := range entries {
		if rank := degreeRank(entry); rank > bestRank {
			best, bestRank = entry, rank
		}
	}
	return best, bestRank
}

// educationMatch compares stated education against the requirement by degree
// rank. Returns nil when the job states no requirement.
func educationMatch(resume, job *types.SkillSet) *types.EducationMatch {
	if job.EducationRequired == "" {
		return nil
	}

	candidate, candidateRank := highestEducation(resume.Education)
	requiredRank := degreeRank(job.EducationRequired)
	matches := requiredRank > 0 && candidateRank >= requiredRank

	assessment := "education requirement is met"
	switch {
	case len(resume.Education) == 0:
		matches = false
		assessment = "no education information found on the resume"
	case requiredRank == 0:
		matches = strings.EqualFold(strings.TrimSpace(candidate), strings.TrimSpace(job.EducationRequired))
		if !matches {
			assessment = "education requirement could not be compared automatically"
		}
	case !matches:
		assessment = fmt.Sprintf("resume education %q falls below the required %q", candidate, job.EducationRequired)
	case candidateRank > requiredRank:
		assessment = "education exceeds the requirement"
	}

	return &types.EducationMatch{
		Required:   job.EducationRequired,
		Candidate:  candidate,
		Matches:    matches,
		Assessment: assessment,
	}
}

package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/types"
)

func claim(name string, level types.SkillLevel) types.SkillClaim {
	return types.SkillClaim{RawLabel: name, CanonicalName: name, Level: level}
}

func requirement(name string, level types.SkillLevel, importance types.Importance) types.SkillRequirement {
	return types.SkillRequirement{CanonicalName: name, RequiredLevel: level, Importance: importance}
}

func TestAnalyzeIdenticalSetsFullMatch(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	resume := &types.SkillSet{Claims: []types.SkillClaim{
		claim("python", types.LevelAdvanced),
		claim("docker", types.LevelIntermediate),
		claim("postgresql", types.LevelEntry),
	}}
	job := &types.SkillSet{Requirements: []types.SkillRequirement{
		requirement("python", types.LevelAdvanced, types.ImportanceCritical),
		requirement("docker", types.LevelIntermediate, types.ImportanceMedium),
		requirement("postgresql", types.LevelEntry, types.ImportanceLow),
	}}

	report, err := analyzer.Analyze(resume, job, nil, types.DefaultAnalyzeOptions())
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.OverallMatchPercentage)
	assert.Len(t, report.Strengths, 3)
	assert.Empty(t, report.SkillGaps)
}

func TestAnalyzeStrengthConfidence(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	reported := 0.85
	resume := &types.SkillSet{Claims: []types.SkillClaim{
		{RawLabel: "python", CanonicalName: "python", Level: types.LevelAdvanced, Confidence: &reported},
		claim("docker", types.LevelIntermediate),
	}}
	job := &types.SkillSet{Requirements: []types.SkillRequirement{
		requirement("python", types.LevelAdvanced, types.ImportanceCritical),
		requirement("docker", types.LevelIntermediate, types.ImportanceMedium),
	}}

	report, err := analyzer.Analyze(resume, job, nil, types.DefaultAnalyzeOptions())
	require.NoError(t, err)

	require.Len(t, report.Strengths, 2)
	assert.Equal(t, reported, report.Strengths[0].Confidence)
	assert.Equal(t, types.UnknownConfidence, report.Strengths[1].Confidence,
		"a claim without extraction confidence gets the documented fallback")
}

func TestAnalyzeNoOverlapZeroMatch(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	resume := &types.SkillSet{Claims: []types.SkillClaim{
		claim("cobol", types.LevelSenior),
	}}
	job := &types.SkillSet{Requirements: []types.SkillRequirement{
		requirement("rust", types.LevelIntermediate, types.ImportanceHigh),
		requirement("kubernetes", types.LevelAdvanced, types.ImportanceCritical),
	}}

	report, err := analyzer.Analyze(resume, job, nil, types.DefaultAnalyzeOptions())
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.OverallMatchPercentage)
	assert.Empty(t, report.Strengths)
	assert.Len(t, report.SkillGaps, 2)
}

func TestAnalyzeLevelShortfall(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	resume := &types.SkillSet{Claims: []types.SkillClaim{
		claim("python", types.LevelAdvanced),
	}}
	job := &types.SkillSet{Requirements: []types.SkillRequirement{
		requirement("python", types.LevelSenior, types.ImportanceCritical),
	}}

	report, err := analyzer.Analyze(resume, job, nil, types.DefaultAnalyzeOptions())
	require.NoError(t, err)

	require.Len(t, report.SkillGaps, 1)
	gap := report.SkillGaps[0]
	assert.Equal(t, "python", gap.Skill)
	assert.Equal(t, types.LevelAdvanced, gap.CurrentLevel)
	assert.Equal(t, types.LevelSenior, gap.RequiredLevel)
	assert.GreaterOrEqual(t, gap.GapSeverity.Rank(), types.SeverityModerate.Rank(),
		"critical importance lifts a one-level shortfall to at least moderate")
	assert.Equal(t, types.PriorityHigh, gap.Priority)
	assert.Equal(t, 0.0, report.OverallMatchPercentage)
}

func TestAnalyzeUnmatchedMediumRequirement(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	resume := &types.SkillSet{Claims: []types.SkillClaim{
		claim("python", types.LevelSenior),
	}}
	job := &types.SkillSet{Requirements: []types.SkillRequirement{
		requirement("python", types.LevelIntermediate, types.ImportanceCritical),
		requirement("docker", types.LevelIntermediate, types.ImportanceMedium),
	}}

	report, err := analyzer.Analyze(resume, job, nil, types.DefaultAnalyzeOptions())
	require.NoError(t, err)

	require.Len(t, report.SkillGaps, 1)
	gap := report.SkillGaps[0]
	assert.Equal(t, "docker", gap.Skill)
	assert.Equal(t, types.LevelNone, gap.CurrentLevel)
	assert.GreaterOrEqual(t, gap.GapSeverity.Rank(), types.SeverityMajor.Rank())

	// critical 4 + medium 2 weights, only the critical one earned
	assert.InDelta(t, 66.7, report.OverallMatchPercentage, 0.1)
}

func TestAnalyzeEveryRequirementAccountedFor(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	resume := &types.SkillSet{Claims: []types.SkillClaim{
		claim("go", types.LevelAdvanced),
		claim("terraform", types.LevelEntry),
	}}
	job := &types.SkillSet{Requirements: []types.SkillRequirement{
		requirement("go", types.LevelIntermediate, types.ImportanceHigh),
		requirement("terraform", types.LevelAdvanced, types.ImportanceMedium),
		requirement("kafka", types.LevelEntry, types.ImportanceLow),
	}}

	report, err := analyzer.Analyze(resume, job, nil, types.DefaultAnalyzeOptions())
	require.NoError(t, err)

	assert.Equal(t, len(job.Requirements), len(report.Strengths)+len(report.SkillGaps))
}

func TestAnalyzeInvalidRequirementLevel(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	job := &types.SkillSet{Requirements: []types.SkillRequirement{
		requirement("python", types.SkillLevel("wizard"), types.ImportanceHigh),
	}}

	_, err := analyzer.Analyze(&types.SkillSet{}, job, nil, types.DefaultAnalyzeOptions())
	require.Error(t, err)

	var levelErr *InvalidLevelError
	require.ErrorAs(t, err, &levelErr)
	assert.Equal(t, "python", levelErr.Skill)
}

func TestAnalyzeUnknownClaimLevelDefaultsIntermediate(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	resume := &types.SkillSet{Claims: []types.SkillClaim{
		claim("python", types.LevelUnknown),
	}}

	t.Run("meets intermediate requirement", func(t *testing.T) {
		job := &types.SkillSet{Requirements: []types.SkillRequirement{
			requirement("python", types.LevelIntermediate, types.ImportanceHigh),
		}}
		report, err := analyzer.Analyze(resume, job, nil, types.DefaultAnalyzeOptions())
		require.NoError(t, err)
		assert.Len(t, report.Strengths, 1)
	})

	t.Run("falls short of senior requirement", func(t *testing.T) {
		job := &types.SkillSet{Requirements: []types.SkillRequirement{
			requirement("python", types.LevelSenior, types.ImportanceHigh),
		}}
		report, err := analyzer.Analyze(resume, job, nil, types.DefaultAnalyzeOptions())
		require.NoError(t, err)
		require.Len(t, report.SkillGaps, 1)
		assert.Equal(t, types.LevelIntermediate, report.SkillGaps[0].CurrentLevel)
	})
}

func TestAnalyzeBaseSkillCollapse(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	resume := &types.SkillSet{Claims: []types.SkillClaim{
		claim("AWS SageMaker", types.LevelAdvanced),
	}}
	job := &types.SkillSet{Requirements: []types.SkillRequirement{
		requirement("aws", types.LevelIntermediate, types.ImportanceHigh),
	}}

	report, err := analyzer.Analyze(resume, job, nil, types.DefaultAnalyzeOptions())
	require.NoError(t, err)

	assert.Len(t, report.Strengths, 1)
	assert.Equal(t, 100.0, report.OverallMatchPercentage)
}

func TestAnalyzeAliasMatch(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	resume := &types.SkillSet{Claims: []types.SkillClaim{
		claim("k8s", types.LevelAdvanced),
	}}
	job := &types.SkillSet{Requirements: []types.SkillRequirement{
		requirement("kubernetes", types.LevelIntermediate, types.ImportanceCritical),
	}}
	normalized := map[string]types.NormalizedSkill{
		"k8s": {
			Original:  "k8s",
			Canonical: "kubernetes",
			Aliases:   []string{"k8s"},
		},
	}

	report, err := analyzer.Analyze(resume, job, normalized, types.DefaultAnalyzeOptions())
	require.NoError(t, err)

	assert.Len(t, report.Strengths, 1)
	assert.Equal(t, 100.0, report.OverallMatchPercentage)
}

func TestAnalyzeRelatedSkillSoftMatch(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	resume := &types.SkillSet{Claims: []types.SkillClaim{
		claim("postgresql", types.LevelAdvanced),
	}}
	job := &types.SkillSet{Requirements: []types.SkillRequirement{
		requirement("mysql", types.LevelIntermediate, types.ImportanceMedium),
	}}
	normalized := map[string]types.NormalizedSkill{
		"mysql": {
			Original:      "mysql",
			Canonical:     "mysql",
			RelatedSkills: []string{"postgresql", "mariadb"},
		},
	}

	report, err := analyzer.Analyze(resume, job, normalized, types.DefaultAnalyzeOptions())
	require.NoError(t, err)

	require.Len(t, report.Strengths, 1)
	assert.Contains(t, report.Strengths[0].Reason, "transferable")
	assert.InDelta(t, 50.0, report.OverallMatchPercentage, 0.1,
		"soft match earns transferability-weighted credit")
}

func TestSeverityMonotonicInDistance(t *testing.T) {
	config := DefaultConfig()

	previous := -1
	for distance := 0; distance <= 5; distance++ {
		severity := config.severityForDistance(distance)
		assert.GreaterOrEqual(t, severity.Rank(), previous,
			"severity must never decrease as distance grows")
		previous = severity.Rank()
	}
}

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		name       string
		importance types.Importance
		severity   types.GapSeverity
		want       types.Priority
	}{
		{"critical moderate", types.ImportanceCritical, types.SeverityModerate, types.PriorityHigh},
		{"critical critical", types.ImportanceCritical, types.SeverityCritical, types.PriorityHigh},
		{"medium major", types.ImportanceMedium, types.SeverityMajor, types.PriorityHigh},
		{"medium minor", types.ImportanceMedium, types.SeverityMinor, types.PriorityMedium},
		{"low minor", types.ImportanceLow, types.SeverityMinor, types.PriorityLow},
		{"low moderate", types.ImportanceLow, types.SeverityModerate, types.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, priorityFor(tt.importance, tt.severity))
		})
	}
}

func TestGapOrdering(t *testing.T) {
	gaps := []types.SkillGap{
		{Skill: "b", Priority: types.PriorityLow, GapSeverity: types.SeverityMinor},
		{Skill: "a", Priority: types.PriorityHigh, GapSeverity: types.SeverityModerate},
		{Skill: "c", Priority: types.PriorityHigh, GapSeverity: types.SeverityCritical},
		{Skill: "d", Priority: types.PriorityMedium, GapSeverity: types.SeverityMajor},
	}

	sortGaps(gaps)

	got := make([]string, len(gaps))
	for i, g := range gaps {
		got[i] = g.Skill
	}
	assert.Equal(t, []string{"c", "a", "d", "b"}, got)
}

func TestBaseSkillKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"AWS SageMaker", "aws"},
		{"aws bedrock", "aws"},
		{"Azure Functions", "azure"},
		{"Node.js", "nodejs"},
		{"React.js", "react"},
		{"python", "python"},
		{"machine learning", "machine learning"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, baseSkillKey(tt.input))
		})
	}
}

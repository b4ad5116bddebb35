package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/types"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full skill-gap analysis between a resume and a job posting",
	Long: `Extracts skills from both texts, normalizes them to canonical names, and
produces the gap report: overall match percentage, strengths, prioritized
skill gaps, learning recommendations, and experience/education comparisons.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeJob        string
	analyzeJobTitle   string
	analyzeAPIKey     string
	analyzeOutput     string
	analyzeSkipLearn  bool
	analyzeSkipExp    bool
	analyzeSkipEdu    bool
	analyzeVerbose    bool
)

func init() {
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCommand.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume text file")
	analyzeCommand.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job posting text file")
	analyzeCommand.Flags().StringVar(&analyzeJobTitle, "job-title", "", "Job title, used as context for skill normalization")
	analyzeCommand.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the report to a file instead of stdout")
	analyzeCommand.Flags().BoolVar(&analyzeSkipLearn, "skip-learning", false, "Omit learning recommendations")
	analyzeCommand.Flags().BoolVar(&analyzeSkipExp, "skip-experience", false, "Omit the experience-gap analysis")
	analyzeCommand.Flags().BoolVar(&analyzeSkipEdu, "skip-education", false, "Omit the education-match analysis")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(analyzeCommand)
}

// analyzeOptionsFrom starts from the full set of sub-reports and disables the
// ones the configuration skips.
func analyzeOptionsFrom(cfg *config.Config) types.AnalyzeOptions {
	opts := types.DefaultAnalyzeOptions()
	if cfg.SkipLearning {
		opts.IncludeLearningRecommendations = false
	}
	if cfg.SkipExperience {
		opts.IncludeExperienceAnalysis = false
	}
	if cfg.SkipEducation {
		opts.IncludeEducationAnalysis = false
	}
	return opts
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(analyzeConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("resume") {
		cfg.Resume = analyzeResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = analyzeJob
	}
	if cmd.Flags().Changed("job-title") {
		cfg.JobTitle = analyzeJobTitle
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("skip-learning") {
		cfg.SkipLearning = analyzeSkipLearn
	}
	if cmd.Flags().Changed("skip-experience") {
		cfg.SkipExperience = analyzeSkipExp
	}
	if cmd.Flags().Changed("skip-education") {
		cfg.SkipEducation = analyzeSkipEdu
	}
	if analyzeVerbose {
		cfg.Verbose = true
	}

	log := setupLogging(cfg.Verbose)

	resumeText, err := readTextFile(cfg.Resume, "resume")
	if err != nil {
		return err
	}
	jobText, err := readTextFile(cfg.Job, "job")
	if err != nil {
		return err
	}

	eng, cleanup, err := buildEngine(ctx, cfg, log, false)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := eng.AnalyzeGap(ctx, &types.AnalyzeRequest{
		ResumeText: resumeText,
		JobText:    jobText,
		JobTitle:   cfg.JobTitle,
		Options:    analyzeOptionsFrom(cfg),
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if report.Degraded {
		log.Warn("analysis completed in degraded mode", "reason", report.DegradedReason)
	}

	return writeJSON(analyzeOutput, report)
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var normalizeCommand = &cobra.Command{
	Use:   "normalize [skill labels...]",
	Short: "Normalize raw skill labels to canonical names",
	Long: `Maps raw skill labels (as they appear in resumes and job postings) to
canonical skill names with aliases and related skills, e.g. "K8s" to
"kubernetes". Labels whose normalization fails fall back to identity
mappings and are listed as failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalizeCmd,
}

var (
	normalizeConfigPath string
	normalizeContext    string
	normalizeAPIKey     string
	normalizeOutput     string
	normalizeVerbose    bool
)

func init() {
	normalizeCommand.Flags().StringVar(&normalizeConfigPath, "config", "", "Path to config.json file")
	normalizeCommand.Flags().StringVar(&normalizeContext, "context", "", "Optional context hint, e.g. the job title")
	normalizeCommand.Flags().StringVarP(&normalizeOutput, "output", "o", "", "Write the mapping to a file instead of stdout")
	normalizeCommand.Flags().BoolVarP(&normalizeVerbose, "verbose", "v", false, "Print detailed debug information")
	normalizeCommand.Flags().StringVar(&normalizeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(normalizeCommand)
}

func runNormalizeCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(normalizeConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = normalizeAPIKey
	}
	if normalizeVerbose {
		cfg.Verbose = true
	}

	log := setupLogging(cfg.Verbose)

	eng, cleanup, err := buildEngine(ctx, cfg, log, false)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := eng.NormalizeSkills(ctx, args, normalizeContext)
	if err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}

	if result.Degraded {
		log.Warn("some labels could not be normalized", "failed", result.Failed)
	}

	return writeJSON(normalizeOutput, result.Mapping)
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/types"
)

var extractCommand = &cobra.Command{
	Use:   "extract",
	Short: "Extract the raw skill set from a resume or job posting",
	RunE:  runExtractCmd,
}

var (
	extractConfigPath string
	extractInput      string
	extractRole       string
	extractContext    string
	extractAPIKey     string
	extractOutput     string
	extractVerbose    bool
)

func init() {
	extractCommand.Flags().StringVar(&extractConfigPath, "config", "", "Path to config.json file")
	extractCommand.Flags().StringVarP(&extractInput, "input", "i", "", "Path to the text file to extract from")
	extractCommand.Flags().StringVar(&extractRole, "role", "resume", "Text role: resume or job")
	extractCommand.Flags().StringVar(&extractContext, "context", "", "Context hint for job extraction, e.g. the job title")
	extractCommand.Flags().StringVarP(&extractOutput, "output", "o", "", "Write the skill set to a file instead of stdout")
	extractCommand.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed debug information")
	extractCommand.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(extractCommand)
}

func runExtractCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(extractConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = extractAPIKey
	}
	if extractVerbose {
		cfg.Verbose = true
	}

	role := types.ExtractionRole(extractRole)
	if !role.Valid() {
		return fmt.Errorf("invalid role %q: must be %q or %q", extractRole, types.RoleResume, types.RoleJob)
	}

	log := setupLogging(cfg.Verbose)

	text, err := readTextFile(extractInput, string(role))
	if err != nil {
		return err
	}

	eng, cleanup, err := buildEngine(ctx, cfg, log, false)
	if err != nil {
		return err
	}
	defer cleanup()

	skillSet, err := eng.ExtractSkills(ctx, text, role, extractContext)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	return writeJSON(extractOutput, skillSet)
}

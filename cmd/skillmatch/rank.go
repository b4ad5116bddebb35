package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/vectorstore"
)

var rankCommand = &cobra.Command{
	Use:   "rank",
	Short: "Rank stored jobs by similarity to a stored resume",
	Long: `Loads the subject's stored embedding and returns the most similar
entities of the opposite kind, ordered by cosine similarity. Both sides
must have been embedded first with the embed command.`,
	RunE: runRankCmd,
}

var (
	rankConfigPath string
	rankSubjectID  string
	rankKind       string
	rankLimit      int
	rankAPIKey     string
	rankDBURL      string
	rankOutput     string
	rankVerbose    bool
)

func init() {
	rankCommand.Flags().StringVar(&rankConfigPath, "config", "", "Path to config.json file")
	rankCommand.Flags().StringVar(&rankSubjectID, "id", "", "Subject entity UUID (required)")
	rankCommand.Flags().StringVar(&rankKind, "kind", "resume", "Subject kind: resume or job")
	rankCommand.Flags().IntVarP(&rankLimit, "limit", "n", 10, "Maximum number of matches to return")
	rankCommand.Flags().StringVarP(&rankOutput, "output", "o", "", "Write the matches to a file instead of stdout")
	rankCommand.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print detailed debug information")
	rankCommand.Flags().StringVar(&rankAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	rankCommand.Flags().StringVar(&rankDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	_ = rankCommand.MarkFlagRequired("id")

	rootCmd.AddCommand(rankCommand)
}

func runRankCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(rankConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = rankAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = rankDBURL
	}
	if rankVerbose {
		cfg.Verbose = true
	}

	subjectKind, err := parseEntityKind(rankKind)
	if err != nil {
		return err
	}
	candidateKind := vectorstore.KindJob
	if subjectKind == vectorstore.KindJob {
		candidateKind = vectorstore.KindResume
	}

	subjectID, err := uuid.Parse(rankSubjectID)
	if err != nil {
		return fmt.Errorf("invalid subject ID: %w", err)
	}

	log := setupLogging(cfg.Verbose)

	eng, cleanup, err := buildEngine(ctx, cfg, log, true)
	if err != nil {
		return err
	}
	defer cleanup()

	matches, err := eng.FindNearest(ctx, subjectID, subjectKind, candidateKind, rankLimit)
	if err != nil {
		return err
	}

	return writeJSON(rankOutput, matches)
}

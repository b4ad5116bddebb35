package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/vectorstore"
)

var embedCommand = &cobra.Command{
	Use:   "embed",
	Short: "Embed a resume or job text and store the vector",
	Long: `Generates the embedding vector for a text and upserts it into the
PostgreSQL vector store under the given entity ID, for later similarity
ranking with the rank command.`,
	RunE: runEmbedCmd,
}

var (
	embedConfigPath string
	embedInput      string
	embedID         string
	embedKind       string
	embedAPIKey     string
	embedDBURL      string
	embedDelete     bool
	embedVerbose    bool
)

func init() {
	embedCommand.Flags().StringVar(&embedConfigPath, "config", "", "Path to config.json file")
	embedCommand.Flags().StringVarP(&embedInput, "input", "i", "", "Path to the text file to embed")
	embedCommand.Flags().StringVar(&embedID, "id", "", "Entity UUID (generated when omitted)")
	embedCommand.Flags().StringVar(&embedKind, "kind", "resume", "Entity kind: resume or job")
	embedCommand.Flags().BoolVar(&embedDelete, "delete", false, "Delete the stored embedding for --id instead of embedding")
	embedCommand.Flags().BoolVarP(&embedVerbose, "verbose", "v", false, "Print detailed debug information")
	embedCommand.Flags().StringVar(&embedAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	embedCommand.Flags().StringVar(&embedDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(embedCommand)
}

func parseEntityKind(s string) (vectorstore.EntityKind, error) {
	switch vectorstore.EntityKind(s) {
	case vectorstore.KindResume:
		return vectorstore.KindResume, nil
	case vectorstore.KindJob:
		return vectorstore.KindJob, nil
	default:
		return "", fmt.Errorf("invalid kind %q: must be %q or %q", s, vectorstore.KindResume, vectorstore.KindJob)
	}
}

func runEmbedCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(embedConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = embedAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = embedDBURL
	}
	if embedVerbose {
		cfg.Verbose = true
	}

	kind, err := parseEntityKind(embedKind)
	if err != nil {
		return err
	}

	entityID := uuid.New()
	if embedID != "" {
		entityID, err = uuid.Parse(embedID)
		if err != nil {
			return fmt.Errorf("invalid entity ID: %w", err)
		}
	}

	log := setupLogging(cfg.Verbose)

	if embedDelete {
		if embedID == "" {
			return fmt.Errorf("--delete requires --id")
		}

		eng, cleanup, err := buildEngine(ctx, cfg, log, true)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := eng.DeleteEmbedding(ctx, entityID, kind); err != nil {
			return err
		}
		log.Info("embedding deleted", "entity_id", entityID.String(), "kind", string(kind))
		return nil
	}

	text, err := readTextFile(embedInput, string(kind))
	if err != nil {
		return err
	}

	eng, cleanup, err := buildEngine(ctx, cfg, log, true)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.EmbedAndStore(ctx, entityID, kind, text); err != nil {
		return err
	}

	log.Info("embedding stored", "entity_id", entityID.String(), "kind", string(kind))
	fmt.Println(entityID.String())
	return nil
}

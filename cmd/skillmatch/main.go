// Package main provides the entry point for the skillmatch CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillmatch",
	Short: "Resume and job matching engine",
	Long:  "Skillmatch extracts skills from resumes and job postings, normalizes them to canonical names, and produces ranked matches and skill-gap reports with learning recommendations.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

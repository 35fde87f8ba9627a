package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ranker/internal/observability"
	"github.com/jonathan/ats-ranker/internal/scoring"
)

var rankCmd = &cobra.Command{
	Use:   "rank --job JOB CV [CV...]",
	Short: "Rank several CVs against one job description",
	Long: `Score every candidate file against the job description in parallel and print
them best first. Each candidate is identified by its file name without extension.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

var (
	rankJob     string
	rankWorkers int
	rankJSON    bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path or URL of the job description (required)")
	rankCmd.Flags().IntVarP(&rankWorkers, "workers", "w", 4, "Number of candidates scored in parallel")
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "Print the ranking as JSON")

	if err := rankCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	jobText, err := readDocument(cmd.Context(), rankJob)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(args))
	candidates := make([]scoring.Candidate, 0, len(args))
	for _, path := range args {
		if path == "-" {
			return fmt.Errorf("candidates must be files, not stdin")
		}
		id := documentID(path)
		if seen[id] {
			return fmt.Errorf("duplicate candidate name %q", id)
		}
		seen[id] = true

		text, err := readDocument(cmd.Context(), path)
		if err != nil {
			return err
		}
		candidates = append(candidates, scoring.Candidate{ID: id, Text: text})
	}

	ranked, err := scoring.RankCandidates(cmd.Context(), jobText, candidates, rankWorkers)
	if err != nil {
		return fmt.Errorf("failed to rank candidates: %w", err)
	}

	out := cmd.OutOrStdout()
	if rankJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}
	observability.NewPrinter(out).PrintRanking(ranked)
	return nil
}

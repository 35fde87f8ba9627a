package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ranker/internal/observability"
	"github.com/jonathan/ats-ranker/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a CV against a job description",
	Long: `Score a candidate document against a job description with TF-IDF weighted
1-2 gram cosine similarity and list the top matching and missing terms.
Documents may be .txt, .md, .html, .pdf or .docx files; "-" reads stdin and an
http(s) URL downloads a job posting.`,
	RunE: runScore,
}

var (
	scoreJob       string
	scoreCandidate string
	scoreJSON      bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path or URL of the job description (required)")
	scoreCmd.Flags().StringVarP(&scoreCandidate, "candidate", "c", "", "Path to the candidate CV (required)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the result as JSON")

	if err := scoreCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("candidate"); err != nil {
		panic(fmt.Sprintf("failed to mark candidate flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if scoreJob == "-" && scoreCandidate == "-" {
		return fmt.Errorf("only one of --job and --candidate can read stdin")
	}

	jobText, err := readDocument(cmd.Context(), scoreJob)
	if err != nil {
		return err
	}
	candidateText, err := readDocument(cmd.Context(), scoreCandidate)
	if err != nil {
		return err
	}

	result := scoring.Score(jobText, candidateText)

	out := cmd.OutOrStdout()
	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	observability.NewPrinter(out).PrintScore(result)
	return nil
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ranker/internal/coach"
	"github.com/jonathan/ats-ranker/internal/observability"
	"github.com/jonathan/ats-ranker/internal/scoring"
)

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Produce coaching advice for tailoring a CV to a job",
	Long: `Score the CV first, then ask the configured language model for a coaching report
using the matches and gaps as hints. Without GEMINI_API_KEY, or with --offline,
a deterministic template report is produced instead.`,
	RunE: runCoach,
}

var (
	coachJob       string
	coachCandidate string
	coachOffline   bool
	coachJSON      bool
)

func init() {
	coachCmd.Flags().StringVarP(&coachJob, "job", "j", "", "Path or URL of the job description (required)")
	coachCmd.Flags().StringVarP(&coachCandidate, "candidate", "c", "", "Path to the candidate CV (required)")
	coachCmd.Flags().BoolVar(&coachOffline, "offline", false, "Skip the language model and use the template report")
	coachCmd.Flags().BoolVar(&coachJSON, "json", false, "Print the report as JSON")

	if err := coachCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := coachCmd.MarkFlagRequired("candidate"); err != nil {
		panic(fmt.Sprintf("failed to mark candidate flag as required: %v", err))
	}

	rootCmd.AddCommand(coachCmd)
}

func runCoach(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	jobText, err := readDocument(cmd.Context(), coachJob)
	if err != nil {
		return err
	}
	candidateText, err := readDocument(cmd.Context(), coachCandidate)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	service, closeCoach, err := newCoachService(ctx, cfg, logger, coachOffline)
	if err != nil {
		return err
	}
	defer closeCoach()

	scored := scoring.Score(jobText, candidateText)
	outcome := service.Coach(ctx, coach.Input{
		JobText:       jobText,
		CandidateText: candidateText,
		Matches:       scored.Matches,
		Gaps:          scored.Gaps,
	})

	out := cmd.OutOrStdout()
	if coachJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Source coach.Source `json:"source"`
			Report any          `json:"coach"`
		}{Source: outcome.Source, Report: outcome.Report})
	}
	observability.NewPrinter(out).PrintCoachingReport(outcome.Report, string(outcome.Source))
	return nil
}

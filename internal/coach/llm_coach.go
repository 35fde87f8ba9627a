package coach

import (
	"context"
	"encoding/json"

	"github.com/jonathan/ats-ranker/internal/llm"
	"github.com/jonathan/ats-ranker/internal/prompts"
	"github.com/jonathan/ats-ranker/internal/schemas"
	"github.com/jonathan/ats-ranker/internal/types"
)

const promptFile = "coach.json"

// LLMCoach generates coaching reports with a language model. Responses are
// checked against the coaching report schema before use.
type LLMCoach struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMCoach wraps an LLM client. A nil client yields ErrUnavailable on every call.
func NewLLMCoach(client llm.Client) *LLMCoach {
	return &LLMCoach{client: client, tier: llm.TierStandard}
}

// Generate asks the model for a report.
func (c *LLMCoach) Generate(ctx context.Context, in Input) (types.CoachingReport, error) {
	if c == nil || c.client == nil {
		return types.CoachingReport{}, ErrUnavailable
	}

	prompt, err := buildCoachPrompt(in)
	if err != nil {
		return types.CoachingReport{}, err
	}

	responseText, err := c.client.GenerateJSON(ctx, prompt, c.tier)
	if err != nil {
		return types.CoachingReport{}, &APICallError{Message: "failed to generate coaching report", Cause: err}
	}

	return parseCoachingReport(responseText)
}

func buildCoachPrompt(in Input) (string, error) {
	instructions, err := prompts.Get(promptFile, "coach-instructions")
	if err != nil {
		return "", err
	}
	hints, err := prompts.Render(promptFile, "coach-hints", map[string]string{
		"Matches": jsonList(in.Matches),
		"Gaps":    jsonList(in.Gaps),
	})
	if err != nil {
		return "", err
	}

	return llm.BuildJSONPrompt(instructions, llm.CoachingReportSchema(),
		llm.Section{Label: "JOB DESCRIPTION", Body: in.JobText},
		llm.Section{Label: "CANDIDATE CV", Body: in.CandidateText},
		llm.Section{Label: "HINTS", Body: hints},
	), nil
}

func parseCoachingReport(responseText string) (types.CoachingReport, error) {
	var report types.CoachingReport
	if err := schemas.ValidateCoachingReport(responseText); err != nil {
		return report, &ParseError{Message: "response does not match coaching report schema", Cause: err}
	}
	if err := json.Unmarshal([]byte(responseText), &report); err != nil {
		return report, &ParseError{Message: "failed to decode coaching report", Cause: err}
	}
	return report, nil
}

func jsonList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

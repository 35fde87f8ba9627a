package coach

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_UsesHints(t *testing.T) {
	report := Fallback(Input{
		JobText:       "ignored",
		CandidateText: "ignored",
		Matches:       []string{"python", "docker"},
		Gaps:          []string{"kubernetes"},
	})

	assert.Equal(t, []string{"Solid evidence of “python”.", "Solid evidence of “docker”."}, report.Strengths)
	assert.Equal(t, []string{"Limited mention of “kubernetes” — add a concrete example."}, report.Gaps)
}

func TestFallback_InfersFromText(t *testing.T) {
	report := Fallback(Input{
		JobText:       "Python engineer with Docker and Kubernetes. Python again.",
		CandidateText: "I write python and ship with docker",
	})

	assert.Equal(t, []string{
		"Solid evidence of “python”.",
		"Solid evidence of “with”.",
		"Solid evidence of “docker”.",
		"Solid evidence of “and”.",
	}, report.Strengths)
	assert.Equal(t, []string{
		"Limited mention of “engineer” — add a concrete example.",
		"Limited mention of “kubernetes” — add a concrete example.",
		"Limited mention of “again” — add a concrete example.",
	}, report.Gaps)
}

func TestFallback_InfersOnlyMissingList(t *testing.T) {
	report := Fallback(Input{
		JobText:       "golang kubernetes",
		CandidateText: "golang",
		Matches:       []string{"custom"},
	})

	assert.Equal(t, []string{"Solid evidence of “custom”."}, report.Strengths)
	assert.Equal(t, []string{"Limited mention of “kubernetes” — add a concrete example."}, report.Gaps)
}

func TestFallback_CapsRenderedTerms(t *testing.T) {
	terms := make([]string, 15)
	for i := range terms {
		terms[i] = fmt.Sprintf("term%d", i)
	}

	report := Fallback(Input{Matches: terms, Gaps: terms})

	assert.Len(t, report.Strengths, maxRenderedTerms)
	assert.Len(t, report.Gaps, maxRenderedTerms)
	assert.Equal(t, "Solid evidence of “term0”.", report.Strengths[0])
}

func TestFallback_FixedCatalog(t *testing.T) {
	report := Fallback(Input{JobText: "a", CandidateText: "b"})

	assert.Len(t, report.ActionBullets, 8)
	assert.Len(t, report.RevisedResumeBullets, 4)
	assert.Len(t, report.InterviewQuestions, 5)
	assert.NotEmpty(t, report.Summary)
	assert.NotEmpty(t, report.TailoredSummary)
	assert.Empty(t, report.Strengths)
	assert.Empty(t, report.Gaps)
}

func TestFallback_Deterministic(t *testing.T) {
	in := Input{
		JobText:       "Senior Go engineer, PostgreSQL, gRPC, Kubernetes, observability",
		CandidateText: "Go developer with PostgreSQL and Prometheus",
	}
	first := Fallback(in)
	second := Fallback(in)
	assert.Equal(t, first, second)
}

func TestFallback_CatalogNotShared(t *testing.T) {
	first := Fallback(Input{})
	first.ActionBullets[0] = "mutated"

	second := Fallback(Input{})
	require.NotEmpty(t, second.ActionBullets)
	assert.NotEqual(t, "mutated", second.ActionBullets[0])
}

func TestInferTerms(t *testing.T) {
	tests := []struct {
		name        string
		job         string
		candidate   string
		wantMatches []string
		wantGaps    []string
	}{
		{
			name:        "short tokens skipped",
			job:         "go ci aws rust",
			candidate:   "go aws",
			wantMatches: []string{"aws"},
			wantGaps:    []string{"rust"},
		},
		{
			name:        "allowed punctuation kept",
			job:         "c++ node.js c#",
			candidate:   "node.js",
			wantMatches: []string{"node.js"},
			wantGaps:    []string{"c++"},
		},
		{
			name:      "empty job",
			job:       "",
			candidate: "anything here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, gaps := inferTerms(tt.job, tt.candidate)
			assert.Equal(t, tt.wantMatches, matches)
			assert.Equal(t, tt.wantGaps, gaps)
		})
	}
}

func TestInferTerms_CapsAtTwelve(t *testing.T) {
	job := ""
	for i := 0; i < 20; i++ {
		job += fmt.Sprintf("skill%02d ", i)
	}

	matches, gaps := inferTerms(job, job)
	assert.Len(t, matches, maxInferredTerms)
	assert.Empty(t, gaps)
}

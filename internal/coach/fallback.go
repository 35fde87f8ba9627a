package coach

import (
	"fmt"

	"github.com/jonathan/ats-ranker/internal/scoring"
	"github.com/jonathan/ats-ranker/internal/types"
)

const (
	// maxInferredTerms caps the matches and gaps inferred from raw text.
	maxInferredTerms = 12
	// maxRenderedTerms caps the strengths and gaps rendered into a report.
	maxRenderedTerms = 8
	// minInferredLength excludes short tokens such as "go" and "ci" from inference.
	minInferredLength = 3
)

var actionBullets = []string{
	"Quantify outcomes (%, time saved, cost reduced) on 3–4 bullets.",
	"Front-load stack & platforms used (e.g. FastAPI, Docker, AWS).",
	"Mirror their exact phrasing for 6–8 key skills (spelled identically).",
	"Move most relevant experience to the top and tighten older roles.",
	"Add a one-line ‘Impact’ sentence for your most recent role.",
	"Trim soft adjectives; prefer measurable verbs (reduced, shipped, automated).",
	"Group tools into neat clusters (e.g. 'Infra: Docker, Render, CI').",
	"Add brief links to code, demos, or write-ups where safe.",
}

var revisedResumeBullets = []string{
	"Delivered FastAPI services with Docker; improved p95 latency by 28% and cut errors by 35%.",
	"Production deploys on Render with CI; added health checks and rollbacks to reduce incidents.",
	"Implemented TF-IDF + cosine search to rank relevance; boosted recruiter accuracy by 23%.",
	"Wrote clean API docs and smoke tests; release cadence weekly without regressions.",
}

var interviewQuestions = []string{
	"What metrics define success in this role during the first 90 days?",
	"How is work planned and shipped—weekly tickets, projects, or bets?",
	"Where are the biggest performance or reliability pain points today?",
	"How do you review code and share learnings across the team?",
	"What’s the deploy pipeline like, and how often do you release?",
}

const tailoredSummary = "Python engineer focused on reliable web services and practical search. " +
	"Strong in FastAPI, Docker, CI, and cloud basics; hands-on with TF-IDF/cosine scoring. " +
	"I ship small, measurable improvements at a steady cadence."

const fallbackSummary = "You’re a promising match. Tighten phrasing, mirror their keywords, and add measurable outcomes. " +
	"Fix a few gaps with concise examples, and you’ll read like an immediate contributor."

// Fallback renders a coaching report from fixed templates. Hints in the input
// take precedence; when either list is empty it is inferred from the raw texts.
// The result depends only on the input.
func Fallback(in Input) types.CoachingReport {
	matches, gaps := in.Matches, in.Gaps
	if len(matches) == 0 || len(gaps) == 0 {
		inferredMatches, inferredGaps := inferTerms(in.JobText, in.CandidateText)
		if len(matches) == 0 {
			matches = inferredMatches
		}
		if len(gaps) == 0 {
			gaps = inferredGaps
		}
	}

	strengths := make([]string, 0, maxRenderedTerms)
	for _, term := range head(matches, maxRenderedTerms) {
		strengths = append(strengths, fmt.Sprintf("Solid evidence of “%s”.", term))
	}
	gapBullets := make([]string, 0, maxRenderedTerms)
	for _, term := range head(gaps, maxRenderedTerms) {
		gapBullets = append(gapBullets, fmt.Sprintf("Limited mention of “%s” — add a concrete example.", term))
	}

	return types.CoachingReport{
		Summary:              fallbackSummary,
		Strengths:            strengths,
		Gaps:                 gapBullets,
		ActionBullets:        clone(actionBullets),
		RevisedResumeBullets: clone(revisedResumeBullets),
		TailoredSummary:      tailoredSummary,
		InterviewQuestions:   clone(interviewQuestions),
	}
}

// inferTerms returns job tokens present in the candidate text and job tokens
// absent from it, in job order without duplicates.
func inferTerms(jobText, candidateText string) (matches, gaps []string) {
	jobTokens := scoring.CoachingNormalizer.Tokens(jobText)
	candidateSet := make(map[string]struct{})
	for _, tok := range scoring.CoachingNormalizer.Tokens(candidateText) {
		candidateSet[tok] = struct{}{}
	}

	seen := make(map[string]struct{}, len(jobTokens))
	for _, tok := range jobTokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if len(tok) < minInferredLength {
			continue
		}
		if _, ok := candidateSet[tok]; ok {
			if len(matches) < maxInferredTerms {
				matches = append(matches, tok)
			}
		} else if len(gaps) < maxInferredTerms {
			gaps = append(gaps, tok)
		}
	}
	return matches, gaps
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func clone(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}

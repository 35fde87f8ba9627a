// Package observability provides logging setup and formatted output for
// verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/ats-ranker/internal/scoring"
	"github.com/jonathan/ats-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// pad right-fills s with spaces to width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// writeList writes up to limit items as bullets, noting how many were left out.
func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintScore outputs the score, its breakdown and the top matches and gaps.
func (p *Printer) PrintScore(result scoring.Result) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score:       %.4f (%d%%)\n", result.Score, result.Percent()))
	sb.WriteString(fmt.Sprintf("Method:      %s\n", result.Meta.Method))
	sb.WriteString(fmt.Sprintf("Job terms:   %d\n", result.Meta.JobTermCount))
	sb.WriteString(fmt.Sprintf("CV terms:    %d\n", result.Meta.CandidateTermCount))
	sb.WriteString(fmt.Sprintf("Vocabulary:  %d\n", result.Meta.VocabularySize))
	sb.WriteString("\n")

	if len(result.Matches) > 0 {
		sb.WriteString("Matches:\n")
		writeList(&sb, result.Matches, maxItemsToShow)
		sb.WriteString("\n")
	}
	if len(result.Gaps) > 0 {
		sb.WriteString("Gaps:\n")
		writeList(&sb, result.Gaps, maxItemsToShow)
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs candidates in rank order.
func (p *Printer) PrintRanking(ranked []scoring.RankedCandidate) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", len(ranked)))

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", c.Rank, c.ID))
		sb.WriteString(fmt.Sprintf("    Score: %.4f (%d%%)\n", c.Result.Score, c.Result.Percent()))
		if len(c.Result.Matches) > 0 {
			sb.WriteString(fmt.Sprintf("    Matches: %s\n", strings.Join(c.Result.Matches, ", ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(ranked)-maxItemsToShow))
	}

	p.printBox("CANDIDATE RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoachingReport outputs a coaching report. source names where it came from.
func (p *Printer) PrintCoachingReport(report types.CoachingReport, source string) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Source: %s\n\n", source))
	sb.WriteString(report.Summary + "\n\n")

	sections := []struct {
		title string
		items []string
	}{
		{"Strengths:", report.Strengths},
		{"Gaps:", report.Gaps},
		{"Edits:", report.ActionBullets},
		{"Ready-to-paste bullets:", report.RevisedResumeBullets},
		{"Questions to ask:", report.InterviewQuestions},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		sb.WriteString(s.title + "\n")
		writeList(&sb, s.items, maxItemsToShow)
		sb.WriteString("\n")
	}

	if report.TailoredSummary != "" {
		sb.WriteString("Tailored summary:\n")
		sb.WriteString("  " + report.TailoredSummary + "\n")
	}

	p.printBox("COACHING REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

package scoring

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// defaultWorkers bounds parallel scoring when the caller passes workers <= 0.
const defaultWorkers = 4

// Candidate is one document to rank against a job description.
type Candidate struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// RankedCandidate pairs a candidate ID with its score result.
type RankedCandidate struct {
	ID     string `json:"id"`
	Rank   int    `json:"rank"`
	Result Result `json:"result"`
}

// RankCandidates scores every candidate against job in parallel and returns
// them ordered by score, highest first. Ties keep input order.
func RankCandidates(ctx context.Context, job string, candidates []Candidate, workers int) ([]RankedCandidate, error) {
	if workers <= 0 {
		workers = defaultWorkers
	}

	ranked := make([]RankedCandidate, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range candidates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return fmt.Errorf("ranking candidate %q: %w", c.ID, err)
			}
			ranked[i] = RankedCandidate{ID: c.ID, Result: Score(job, c.Text)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Score > ranked[j].Result.Score
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

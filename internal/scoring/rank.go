package scoring

import "sort"

// MaxRankedTerms caps the matches and gaps lists.
const MaxRankedTerms = 20

// minTermLength drops single-character terms from matches and gaps.
const minTermLength = 2

type weightedTerm struct {
	term         string
	jobWeight    float64
	hasCandidate bool
}

// RankTerms orders vocab by job weight (descending, stable) and splits it into
// terms present in the candidate (matches) and absent ones (gaps), each capped
// at limit. jobWeights must be aligned to vocab.
func RankTerms(vocab []string, jobWeights []float64, candidateTF map[string]float64, limit int) (matches, gaps []string) {
	weighted := make([]weightedTerm, len(vocab))
	for i, t := range vocab {
		var w float64
		if i < len(jobWeights) {
			w = jobWeights[i]
		}
		weighted[i] = weightedTerm{
			term:         t,
			jobWeight:    w,
			hasCandidate: candidateTF[t] > 0,
		}
	}

	sort.SliceStable(weighted, func(i, j int) bool {
		return weighted[i].jobWeight > weighted[j].jobWeight
	})

	matches = make([]string, 0)
	gaps = make([]string, 0)
	for _, wt := range weighted {
		if len(wt.term) < minTermLength {
			continue
		}
		if wt.hasCandidate {
			if len(matches) < limit {
				matches = append(matches, wt.term)
			}
		} else if len(gaps) < limit {
			gaps = append(gaps, wt.term)
		}
	}
	return matches, gaps
}

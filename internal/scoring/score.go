package scoring

import "math"

// Method identifies the scoring algorithm in responses.
const Method = "tfidf-1-2gram-cosine"

// Meta describes the inputs behind a Result.
type Meta struct {
	JobTermCount       int    `json:"job_term_count"`
	CandidateTermCount int    `json:"candidate_term_count"`
	VocabularySize     int    `json:"vocabulary_size"`
	Method             string `json:"method"`
}

// Result is the outcome of scoring a candidate document against a job description.
type Result struct {
	Score   float64  `json:"score"`
	Matches []string `json:"matches"`
	Gaps    []string `json:"gaps"`
	Meta    Meta     `json:"meta"`
}

// Percent returns the score as a rounded integer percentage.
func (r Result) Percent() int {
	return int(math.Round(r.Score * 100))
}

// Score compares candidate against job. The vocabulary comes from job alone,
// so Score(a, b) and Score(b, a) generally differ.
func Score(job, candidate string) Result {
	jobTerms := DocumentTerms(job)
	candidateTerms := DocumentTerms(candidate)

	idf := InverseDocumentFrequency([][]string{jobTerms, candidateTerms})
	vocab := Vocabulary(jobTerms)

	jobTF := TermFrequency(jobTerms)
	candidateTF := TermFrequency(candidateTerms)
	jobVec := Project(jobTF, idf, vocab)
	candidateVec := Project(candidateTF, idf, vocab)

	matches, gaps := RankTerms(vocab, jobVec, candidateTF, MaxRankedTerms)

	return Result{
		Score:   Cosine(jobVec, candidateVec),
		Matches: matches,
		Gaps:    gaps,
		Meta: Meta{
			JobTermCount:       len(jobTerms),
			CandidateTermCount: len(candidateTerms),
			VocabularySize:     len(vocab),
			Method:             Method,
		},
	}
}

package server

import (
	"net/http"

	"github.com/jonathan/ats-ranker/internal/coach"
	"github.com/jonathan/ats-ranker/internal/scoring"
	"github.com/jonathan/ats-ranker/internal/types"
)

const (
	scoreInputMessage = "Provide job_text and candidate_text"
	rankInputMessage  = "Provide job_text and between 1 and 50 candidates, each with id and text"
)

// rankWorkers bounds parallel scoring for one rank request.
const rankWorkers = 4

// ScoreResponse is the body of a successful score request.
type ScoreResponse struct {
	OK       bool         `json:"ok"`
	Score    float64      `json:"score"`
	ScorePct int          `json:"score_pct"`
	Matches  []string     `json:"matches"`
	Gaps     []string     `json:"gaps"`
	Meta     scoring.Meta `json:"meta"`
}

// CoachResponse is the body of a successful coach request.
type CoachResponse struct {
	OK    bool                 `json:"ok"`
	Coach types.CoachingReport `json:"coach"`
}

// RankResponse is the body of a successful rank request.
type RankResponse struct {
	OK     bool                      `json:"ok"`
	Ranked []scoring.RankedCandidate `json:"ranked"`
}

// handleScoreDocs describes the score endpoint.
func (s *Server) handleScoreDocs(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"ok":     true,
		"about":  "POST job_text and candidate_text to get a deterministic TF-IDF + cosine score.",
		"method": scoring.Method,
		"quota": map[string]int{
			"anonymous_daily": s.cfg.Quota.AnonymousScore,
			"signed_in_daily": s.cfg.Quota.SignedIn,
		},
		"request_example": map[string]string{
			"job_text":       "Looking for Python + FastAPI developer with Docker and CI.",
			"candidate_text": "Built REST APIs in FastAPI, containerized with Docker, set up CI.",
		},
		"response_shape": map[string]any{
			"ok":        true,
			"score":     "number in [0,1]",
			"score_pct": "integer in [0,100]",
			"matches":   []string{"array", "of", "strings"},
			"gaps":      []string{"array", "of", "strings"},
			"meta": map[string]any{
				"job_term_count":       0,
				"candidate_term_count": 0,
				"vocabulary_size":      0,
				"method":               scoring.Method,
			},
		},
	})
}

// handleScore scores a candidate document against a job description.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := s.callerFor(r)

	if err := s.checkQuota(ctx, s.scoreGate, caller, CodeQuotaExceeded, scoreLimitMessage); err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}

	var req types.ScoreRequest
	if err := decodeJSON(w, r, &req, scoreInputMessage); err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "job_text,candidate_text", Message: scoreInputMessage}, CodeServerError)
		return
	}

	res, err := s.consumeQuota(ctx, s.scoreGate, caller, CodeQuotaExceeded, scoreLimitMessage)
	if err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}

	result := scoring.Score(req.JobText, req.CandidateText)
	setQuotaCookie(w, res)
	s.jsonResponse(w, http.StatusOK, ScoreResponse{
		OK:       true,
		Score:    result.Score,
		ScorePct: result.Percent(),
		Matches:  result.Matches,
		Gaps:     result.Gaps,
		Meta:     result.Meta,
	})
}

// handleCoach returns a coaching report, generated when a model is
// configured and from templates otherwise.
func (s *Server) handleCoach(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := s.callerFor(r)

	var req types.CoachRequest
	if err := decodeJSON(w, r, &req, scoreInputMessage); err != nil {
		s.writeError(w, r, err, CodeCoachFailed)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "job_text,candidate_text", Message: scoreInputMessage}, CodeCoachFailed)
		return
	}

	if err := s.checkQuota(ctx, s.coachGate, caller, CodeRateLimited, coachLimitMessage); err != nil {
		s.writeError(w, r, err, CodeCoachFailed)
		return
	}
	if _, err := s.consumeQuota(ctx, s.coachGate, caller, CodeRateLimited, coachLimitMessage); err != nil {
		s.writeError(w, r, err, CodeCoachFailed)
		return
	}

	outcome := s.coach.Coach(ctx, coach.Input{
		JobText:       req.JobText,
		CandidateText: req.CandidateText,
		Matches:       req.Matches,
		Gaps:          req.Gaps,
	})

	s.jsonResponse(w, http.StatusOK, CoachResponse{OK: true, Coach: outcome.Report})
}

// handleRank ranks several candidate documents against one job description.
// A rank request costs one score unit.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := s.callerFor(r)

	if err := s.checkQuota(ctx, s.scoreGate, caller, CodeQuotaExceeded, scoreLimitMessage); err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}

	var req types.RankRequest
	if err := decodeJSON(w, r, &req, rankInputMessage); err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "candidates", Message: rankInputMessage}, CodeServerError)
		return
	}

	res, err := s.consumeQuota(ctx, s.scoreGate, caller, CodeQuotaExceeded, scoreLimitMessage)
	if err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}

	candidates := make([]scoring.Candidate, len(req.Candidates))
	for i, c := range req.Candidates {
		candidates[i] = scoring.Candidate{ID: c.ID, Text: c.Text}
	}
	ranked, err := scoring.RankCandidates(ctx, req.JobText, candidates, rankWorkers)
	if err != nil {
		s.writeError(w, r, err, CodeServerError)
		return
	}

	setQuotaCookie(w, res)
	s.jsonResponse(w, http.StatusOK, RankResponse{OK: true, Ranked: ranked})
}

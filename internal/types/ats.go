package types

import "encoding/json"

// ScoreRequest is the body of a scoring request.
// jd_text and cv_text are accepted as aliases for job_text and candidate_text.
type ScoreRequest struct {
	JobText       string `json:"job_text" validate:"required"`
	CandidateText string `json:"candidate_text" validate:"required"`
}

// UnmarshalJSON accepts both the canonical and the legacy field names.
func (r *ScoreRequest) UnmarshalJSON(data []byte) error {
	var raw documentPairJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.JobText, r.CandidateText = raw.job(), raw.candidate()
	return nil
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// CoachRequest is the body of a coaching request. Matches and Gaps are
// optional hints, usually the lists returned by a prior score call.
type CoachRequest struct {
	JobText       string   `json:"job_text" validate:"required"`
	CandidateText string   `json:"candidate_text" validate:"required"`
	Matches       []string `json:"matches,omitempty"`
	Gaps          []string `json:"gaps,omitempty"`
}

// UnmarshalJSON accepts both the canonical and the legacy field names.
func (r *CoachRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		documentPairJSON
		Matches []string `json:"matches"`
		Gaps    []string `json:"gaps"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.JobText, r.CandidateText = raw.job(), raw.candidate()
	r.Matches, r.Gaps = raw.Matches, raw.Gaps
	return nil
}

// Validate validates the CoachRequest using the validator.
func (r *CoachRequest) Validate() error {
	return validate.Struct(r)
}

// RankRequest asks for several candidate documents to be ranked against one job.
type RankRequest struct {
	JobText    string          `json:"job_text" validate:"required"`
	Candidates []RankCandidate `json:"candidates" validate:"required,min=1,max=50,dive"`
}

// RankCandidate is one entry of a RankRequest.
type RankCandidate struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// Validate validates the RankRequest using the validator.
func (r *RankRequest) Validate() error {
	return validate.Struct(r)
}

type documentPairJSON struct {
	JobText       string `json:"job_text"`
	CandidateText string `json:"candidate_text"`
	JDText        string `json:"jd_text"`
	CVText        string `json:"cv_text"`
}

func (d documentPairJSON) job() string {
	if d.JobText != "" {
		return d.JobText
	}
	return d.JDText
}

func (d documentPairJSON) candidate() string {
	if d.CandidateText != "" {
		return d.CandidateText
	}
	return d.CVText
}

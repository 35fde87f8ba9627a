package types

// CoachingReport is the structured advice returned by the coach endpoint,
// whether produced by the language model or by the template fallback.
type CoachingReport struct {
	Summary              string   `json:"summary"`
	Strengths            []string `json:"strengths"`
	Gaps                 []string `json:"gaps"`
	ActionBullets        []string `json:"action_bullets"`
	RevisedResumeBullets []string `json:"revised_resume_bullets"`
	TailoredSummary      string   `json:"tailored_summary"`
	InterviewQuestions   []string `json:"interview_questions"`
}

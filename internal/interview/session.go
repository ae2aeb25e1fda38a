package interview

// Session is the single source of truth for the active interview.
// SessionID is assigned by the engine on start and immutable for the
// session's lifetime; it is empty iff no session has been started since
// the last reset. While Completed is false,
// 1 <= CurrentQuestionNumber <= TotalQuestions holds.
type Session struct {
	SessionID             string
	Role                  string
	Mode                  string
	CurrentQuestionNumber int // 1-based ordinal of the question awaiting an answer
	TotalQuestions        int // fixed at start
	Completed             bool
}

// Active reports whether a session has been started and not yet reset.
func (s Session) Active() bool {
	return s.SessionID != ""
}

// Feedback is the scored evaluation of the most recently submitted
// answer. It stays current until superseded by the next submit or
// cleared by a retry. Scores are on the engine's 0-10 design range.
type Feedback struct {
	OverallScore float64
	Clarity      float64
	Correctness  float64
	Completeness float64
	Text         string
}

package tui

import (
	"github.com/querybox-dev/querybox/internal/interview"
	"github.com/querybox-dev/querybox/internal/summary"
)

// ============================================================================
// Setup Messages
// ============================================================================

// StartInterviewMsg carries the setup form's result: the user wants to
// begin an interview with these parameters.
type StartInterviewMsg struct {
	Role      string
	Mode      string
	Questions int
}

// ============================================================================
// Session Messages
// ============================================================================

// InterviewStartedMsg signals that the start request finished.
type InterviewStartedMsg struct {
	Err error
}

// AnswerResultMsg carries the synchronous outcome of a submit.
type AnswerResultMsg struct {
	Outcome *interview.Outcome
	Err     error
}

// QuestionRevealedMsg signals that the pacing delay elapsed and the next
// question landed in the transcript. OK is false when the controller's
// event channel has closed.
type QuestionRevealedMsg struct {
	Event interview.Event
	OK    bool
}

// RetryRequestedMsg signals that the user wants to re-answer the current
// question.
type RetryRequestedMsg struct{}

// SkipRequestedMsg signals that the user wants to skip the current
// question.
type SkipRequestedMsg struct{}

// SubmitRequestedMsg carries an answer the user wants to submit.
type SubmitRequestedMsg struct {
	Answer string
}

// AbandonMsg signals that the user wants to abandon the session and
// return to setup.
type AbandonMsg struct{}

// ============================================================================
// Summary Messages
// ============================================================================

// ExportRequestedMsg signals that the user wants the summary written to
// disk.
type ExportRequestedMsg struct{}

// SummaryExportedMsg signals that the export finished.
type SummaryExportedMsg struct {
	Path string
	Err  error
}

// HistorySavedMsg signals that the completed session was persisted.
type HistorySavedMsg struct {
	Err error
}

// NewSessionMsg signals that the user wants a fresh interview.
type NewSessionMsg struct{}

// ============================================================================
// Utility Messages
// ============================================================================

// ErrorMsg is a generic error message for unrecoverable errors.
type ErrorMsg struct {
	Err error
}

// SummaryReadyMsg hands the assembled summary to the summary view.
type SummaryReadyMsg struct {
	Summary *summary.Summary
}

package interview

import "github.com/querybox-dev/querybox/internal/transcript"

// EventKind identifies an asynchronous controller event.
type EventKind int

const (
	// EventQuestionRevealed fires when the pacing delay elapses and the
	// next question lands in the transcript. QuestionNumber has already
	// advanced to the revealed question's ordinal.
	EventQuestionRevealed EventKind = iota
)

// Event is an asynchronous notification from the controller. Synchronous
// outcomes (feedback, completion, errors) are returned directly from
// Start and Submit; only delayed effects travel on the events channel.
type Event struct {
	Kind           EventKind
	Entry          transcript.Entry
	QuestionNumber int
	TotalQuestions int
}

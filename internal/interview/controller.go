package interview

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/querybox-dev/querybox/internal/api"
	qlog "github.com/querybox-dev/querybox/internal/log"
	"github.com/querybox-dev/querybox/internal/summary"
	"github.com/querybox-dev/querybox/internal/transcript"
)

// State is the controller's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateAwaitingAnswer
	StateSubmitting
	StateCompleted
	StateErrored
)

// String returns the state's display name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// SkipSentinel is the fixed answer text a skip submits. Skips travel the
// normal submit path and are scored by the engine like any other answer;
// the protocol does not distinguish them.
const SkipSentinel = "I would like to skip this question."

// RetryPrompt is appended to the transcript when the user retries.
const RetryPrompt = "Feel free to try answering this question again."

// Outcome is the synchronous result of a successful Submit.
type Outcome struct {
	Feedback  Feedback
	Completed bool
	// Summary is non-nil iff Completed. When the post-completion fetch
	// fails it is the synthesized fallback, never nil.
	Summary *summary.Summary
}

// Config configures a Controller.
type Config struct {
	Engine Engine
	// Pacing is the delay between feedback and the next question's
	// appearance in the transcript.
	Pacing time.Duration
	// Logger receives lifecycle events; may be nil.
	Logger *qlog.Logger
}

// Controller drives one interview session. It is session-scoped: callers
// construct one per interview rather than sharing process-wide state.
// All methods are safe for concurrent use, though the state machine
// admits at most one outstanding start or submit at a time.
type Controller struct {
	mu       sync.Mutex
	engine   Engine
	pacing   time.Duration
	logger   *qlog.Logger
	state    State
	sess     Session
	feedback *Feedback
	log      *transcript.Log
	lastErr  error
	events   chan Event
	pending  *time.Timer
	// epoch invalidates in-flight work across Reset/Close: responses and
	// pending reveals captured under an older epoch are discarded.
	epoch  uint64
	closed bool
}

// New creates an idle Controller.
func New(cfg Config) *Controller {
	return &Controller{
		engine: cfg.Engine,
		pacing: cfg.Pacing,
		logger: cfg.Logger,
		state:  StateIdle,
		log:    transcript.NewLog(),
		events: make(chan Event, 16),
	}
}

// Events returns the channel carrying delayed controller events. The
// channel is closed by Close.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns a copy of the session state.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// CurrentFeedback returns a copy of the latest feedback, or nil when no
// feedback is current.
func (c *Controller) CurrentFeedback() *Feedback {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.feedback == nil {
		return nil
	}
	fb := *c.feedback
	return &fb
}

// Transcript returns a snapshot of the transcript entries.
func (c *Controller) Transcript() []transcript.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.Snapshot()
}

// LastError returns the error recorded by the most recent failed start
// or submit, or nil.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Busy reports whether a start or submit is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateStarting || c.state == StateSubmitting
}

// Start begins a new interview. On success the session is populated, the
// transcript receives the welcome and first-question entries, and the
// controller awaits an answer. On failure no session id is retained and
// the state becomes Errored; Reset returns to Idle.
func (c *Controller) Start(ctx context.Context, role, mode string, n int) error {
	c.mu.Lock()
	if c.sess.Active() || (c.state != StateIdle && c.state != StateErrored) {
		c.mu.Unlock()
		return fmt.Errorf("interview: session already active")
	}
	c.state = StateStarting
	epoch := c.epoch
	c.mu.Unlock()

	resp, err := c.engine.Start(ctx, role, mode, n)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		// Reset raced the start; discard the result.
		return nil
	}
	if err != nil {
		c.state = StateErrored
		c.lastErr = err
		c.logEvent(qlog.LogEvent{Event: qlog.EventTransportError, Role: role, Mode: mode, Error: err.Error()})
		return err
	}

	c.sess = Session{
		SessionID:             resp.SessionID,
		Role:                  role,
		Mode:                  mode,
		CurrentQuestionNumber: 1,
		TotalQuestions:        resp.TotalQuestions,
	}
	c.log.Append(transcript.RoleAssistant, fmt.Sprintf(
		"Welcome to your %s interview for the %s position! I'll ask you %d questions. Let's begin!",
		mode, role, resp.TotalQuestions,
	))
	c.log.AppendQuestion(resp.Question)
	c.state = StateAwaitingAnswer
	c.lastErr = nil
	c.logEvent(qlog.LogEvent{
		Event:          qlog.EventSessionStarted,
		SessionID:      resp.SessionID,
		Role:           role,
		Mode:           mode,
		TotalQuestions: resp.TotalQuestions,
	})
	return nil
}

// Submit sends the answer for scoring. Empty or whitespace-only answers,
// re-entrant submits while a request is in flight, submits after
// completion, and submits while a failed start blocks the session are
// all silent no-ops returning (nil, nil).
//
// The user's entry is appended optimistically before the request is
// sent; a transport failure never rolls it back. On an in-progress
// response the next question is revealed on the events channel after
// the pacing delay; on a completed response the returned Outcome carries
// the summary.
func (c *Controller) Submit(ctx context.Context, answer string) (*Outcome, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, nil
	}

	c.mu.Lock()
	switch c.state {
	case StateStarting, StateSubmitting, StateCompleted:
		c.mu.Unlock()
		return nil, nil
	case StateIdle:
		c.mu.Unlock()
		return nil, &api.Error{Op: "submit", Kind: api.KindPrecondition, Message: "no active interview session"}
	case StateErrored:
		if !c.sess.Active() {
			// Start failed; there is nothing to submit against.
			c.mu.Unlock()
			return nil, nil
		}
		// A failed submit left an active session; this is the manual retry.
	}

	c.state = StateSubmitting
	epoch := c.epoch
	sessionID := c.sess.SessionID
	qnum := c.sess.CurrentQuestionNumber
	c.log.Append(transcript.RoleUser, answer)
	c.mu.Unlock()

	c.logEvent(qlog.LogEvent{Event: qlog.EventAnswerSubmitted, SessionID: sessionID, QuestionNumber: qnum})

	resp, err := c.engine.Submit(ctx, sessionID, answer)

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return nil, nil
	}
	if err != nil {
		// The optimistic user entry and the question counter stay as
		// they are; the user's path forward is an explicit retry.
		c.state = StateErrored
		c.lastErr = err
		c.log.Append(transcript.RoleAssistant, fmt.Sprintf(
			"Sorry, there was an error processing your answer: %s", failureMessage(err),
		))
		c.mu.Unlock()
		c.logEvent(qlog.LogEvent{Event: qlog.EventTransportError, SessionID: sessionID, QuestionNumber: qnum, Error: err.Error()})
		return nil, err
	}

	fb := Feedback{
		OverallScore: float64(resp.Score),
		Clarity:      float64(resp.Clarity),
		Correctness:  float64(resp.Correctness),
		Completeness: float64(resp.Completeness),
		Text:         resp.Feedback,
	}
	c.feedback = &fb
	c.lastErr = nil
	c.log.Append(transcript.RoleAssistant, resp.Feedback)

	if resp.Completed {
		c.sess.Completed = true
		c.state = StateCompleted
		c.mu.Unlock()
		c.logEvent(qlog.LogEvent{Event: qlog.EventFeedbackReceived, SessionID: sessionID, QuestionNumber: qnum, Score: fb.OverallScore})
		return c.finishSession(ctx, epoch, fb)
	}

	next := resp.NextQuestion
	nextNum := resp.QuestionNumber
	total := resp.TotalQuestions
	if total == 0 {
		total = c.sess.TotalQuestions
	}
	c.pending = time.AfterFunc(c.pacing, func() {
		c.revealNext(epoch, next, nextNum, total)
	})
	c.mu.Unlock()

	c.logEvent(qlog.LogEvent{Event: qlog.EventFeedbackReceived, SessionID: sessionID, QuestionNumber: qnum, Score: fb.OverallScore})
	return &Outcome{Feedback: fb}, nil
}

// finishSession fetches the end-of-session summary. Completion has
// already happened and is never retracted: a fetch failure synthesizes
// the minimal fallback summary instead of surfacing an error.
func (c *Controller) finishSession(ctx context.Context, epoch uint64, fb Feedback) (*Outcome, error) {
	c.mu.Lock()
	sessionID := c.sess.SessionID
	role := c.sess.Role
	total := c.sess.TotalQuestions
	c.mu.Unlock()

	var sum *summary.Summary
	payload, err := c.engine.Summary(ctx, sessionID)
	if err != nil {
		sum = summary.Fallback(sessionID, role, fb.OverallScore, total)
	} else {
		sum = summary.Assemble(payload)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return nil, nil
	}
	c.logEvent(qlog.LogEvent{Event: qlog.EventSessionCompleted, SessionID: sessionID, Score: sum.OverallScore, TotalQuestions: total})
	return &Outcome{Feedback: fb, Completed: true, Summary: sum}, nil
}

// revealNext runs when the pacing timer fires: it appends the next
// question entry, then advances the question counter, then emits the
// reveal event. A stale epoch means the session was reset or torn down
// during the delay and the reveal is dropped.
func (c *Controller) revealNext(epoch uint64, question string, num, total int) {
	c.mu.Lock()
	if c.epoch != epoch || c.state != StateSubmitting {
		c.mu.Unlock()
		return
	}
	entry := c.log.AppendQuestion(question)
	c.sess.CurrentQuestionNumber = num
	c.state = StateAwaitingAnswer
	c.pending = nil
	c.emit(Event{
		Kind:           EventQuestionRevealed,
		Entry:          entry,
		QuestionNumber: num,
		TotalQuestions: total,
	})
	c.mu.Unlock()

	c.logEvent(qlog.LogEvent{Event: qlog.EventQuestionRevealed, QuestionNumber: num, TotalQuestions: total})
}

// Skip submits the fixed sentinel answer through the normal submit path.
// It consumes a question slot exactly like a real answer.
func (c *Controller) Skip(ctx context.Context) (*Outcome, error) {
	return c.Submit(ctx, SkipSentinel)
}

// Retry clears the current feedback so the same question can be
// re-answered, and appends the retry prompt. It is a pure local reset:
// no network call, no change to the question counter. Returns false
// when no feedback is current (making repeated calls idempotent).
func (c *Controller) Retry() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.feedback == nil || c.state == StateCompleted {
		return false
	}
	c.feedback = nil
	c.log.Append(transcript.RoleAssistant, RetryPrompt)
	return true
}

// Reset abandons the session from any state: clears the session and
// feedback, discards the transcript, cancels any pending question
// reveal, and returns to Idle. The engine is not notified; server-side
// session lifetime is independent.
func (c *Controller) Reset() {
	c.mu.Lock()
	sessionID := c.sess.SessionID
	c.epoch++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.state = StateIdle
	c.sess = Session{}
	c.feedback = nil
	c.lastErr = nil
	c.log = transcript.NewLog()
	c.mu.Unlock()

	if sessionID != "" {
		c.logEvent(qlog.LogEvent{Event: qlog.EventSessionReset, SessionID: sessionID})
	}
}

// Close tears the controller down: cancels pending work and closes the
// events channel. The controller must not be used afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.epoch++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.closed = true
	close(c.events)
}

// emit delivers an event without blocking. Callers hold c.mu.
func (c *Controller) emit(e Event) {
	if c.closed {
		return
	}
	select {
	case c.events <- e:
	default:
		// Consumer gone or stalled; dropping beats deadlocking.
	}
}

func (c *Controller) logEvent(e qlog.LogEvent) {
	if c.logger == nil {
		return
	}
	_ = c.logger.Append(e)
}

// failureMessage extracts the human-readable message from a client
// error, falling back to the raw error text.
func failureMessage(err error) string {
	if apiErr, ok := err.(*api.Error); ok {
		return apiErr.Message
	}
	return err.Error()
}

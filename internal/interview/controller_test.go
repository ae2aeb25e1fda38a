package interview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/querybox-dev/querybox/internal/api"
	"github.com/querybox-dev/querybox/internal/testutil"
	"github.com/querybox-dev/querybox/internal/transcript"
)

const testPacing = 5 * time.Millisecond

func newController(engine *testutil.FakeEngine) *Controller {
	return New(Config{Engine: engine, Pacing: testPacing})
}

func startSession(t *testing.T, c *Controller) {
	t.Helper()
	if err := c.Start(context.Background(), "Software Engineer", "technical", 3); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
}

func waitReveal(t *testing.T, c *Controller) Event {
	t.Helper()
	select {
	case ev := <-c.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for question reveal")
		return Event{}
	}
}

func inProgressStep(question string, num int) testutil.SubmitStep {
	return testutil.SubmitStep{Response: &api.SubmitResponse{
		Message:        "Answer submitted successfully",
		Feedback:       "Good answer.",
		Score:          7,
		Clarity:        7,
		Correctness:    6,
		Completeness:   7,
		NextQuestion:   question,
		QuestionNumber: num,
		TotalQuestions: 3,
	}}
}

func completedStep() testutil.SubmitStep {
	return testutil.SubmitStep{Response: &api.SubmitResponse{
		Message:      "Answer submitted successfully",
		Feedback:     "Solid finish.",
		Score:        8,
		Clarity:      8,
		Correctness:  8,
		Completeness: 7,
		Completed:    true,
	}}
}

func TestStartPopulatesSessionAndTranscript(t *testing.T) {
	engine := &testutil.FakeEngine{StartResponse: &api.StartResponse{
		SessionID:      "sess-1",
		Question:       "What is a goroutine?",
		QuestionNumber: 1,
		TotalQuestions: 3,
	}}
	c := newController(engine)
	defer c.Close()

	startSession(t, c)

	if c.State() != StateAwaitingAnswer {
		t.Errorf("state: got %v, want awaiting_answer", c.State())
	}
	sess := c.Session()
	if sess.SessionID != "sess-1" || sess.CurrentQuestionNumber != 1 || sess.TotalQuestions != 3 {
		t.Errorf("session: got %+v", sess)
	}

	entries := c.Transcript()
	if len(entries) != 2 {
		t.Fatalf("transcript: got %d entries, want 2", len(entries))
	}
	want := "Welcome to your technical interview for the Software Engineer position! I'll ask you 3 questions. Let's begin!"
	if entries[0].Content != want {
		t.Errorf("welcome: got %q", entries[0].Content)
	}
	if !entries[1].IsQuestion || entries[1].Content != "What is a goroutine?" {
		t.Errorf("question entry: got %+v", entries[1])
	}
}

func TestStartFailureBlocksSubmitsUntilReset(t *testing.T) {
	engine := &testutil.FakeEngine{StartErr: &api.Error{Op: "start", Kind: api.KindTransport, Message: "Backend service is not available"}}
	c := newController(engine)
	defer c.Close()

	if err := c.Start(context.Background(), "Software Engineer", "technical", 3); err == nil {
		t.Fatal("Start should surface the transport error")
	}
	if c.State() != StateErrored {
		t.Errorf("state: got %v, want errored", c.State())
	}
	if c.Session().Active() {
		t.Error("failed start must not retain a session id")
	}

	out, err := c.Submit(context.Background(), "hello")
	if out != nil || err != nil {
		t.Errorf("submit after failed start: got (%v, %v), want silent no-op", out, err)
	}
	if engine.SubmitCalls != 0 {
		t.Errorf("engine saw %d submits, want 0", engine.SubmitCalls)
	}

	c.Reset()
	if c.State() != StateIdle {
		t.Errorf("state after reset: got %v, want idle", c.State())
	}
	engine.StartErr = nil
	startSession(t, c)
}

func TestSubmitWithoutSessionNeverCallsEngine(t *testing.T) {
	engine := &testutil.FakeEngine{}
	c := newController(engine)
	defer c.Close()

	_, err := c.Submit(context.Background(), "an answer")
	if !api.IsPrecondition(err) {
		t.Errorf("got %v, want precondition error", err)
	}
	if engine.SubmitCalls != 0 {
		t.Errorf("engine saw %d submits, want 0", engine.SubmitCalls)
	}
}

func TestSubmitEmptyAnswerIsNoOp(t *testing.T) {
	engine := &testutil.FakeEngine{}
	c := newController(engine)
	defer c.Close()
	startSession(t, c)

	for _, answer := range []string{"", "   ", "\n\t"} {
		out, err := c.Submit(context.Background(), answer)
		if out != nil || err != nil {
			t.Errorf("Submit(%q): got (%v, %v), want no-op", answer, out, err)
		}
	}
	if engine.SubmitCalls != 0 {
		t.Errorf("engine saw %d submits, want 0", engine.SubmitCalls)
	}
}

func TestSubmitInProgressAppendsThreeEntriesInOrder(t *testing.T) {
	engine := &testutil.FakeEngine{SubmitScript: []testutil.SubmitStep{
		inProgressStep("What is a channel?", 2),
	}}
	c := newController(engine)
	defer c.Close()
	startSession(t, c)

	out, err := c.Submit(context.Background(), "A goroutine is a lightweight thread.")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if out.Completed {
		t.Error("mid-session submit must not complete")
	}
	if out.Feedback.OverallScore != 7 || out.Feedback.Text != "Good answer." {
		t.Errorf("feedback: got %+v", out.Feedback)
	}

	// During the pacing window the controller is still submitting and
	// the question number has not moved.
	if got := c.Session().CurrentQuestionNumber; got != 1 {
		t.Errorf("question number before reveal: got %d, want 1", got)
	}

	ev := waitReveal(t, c)
	if ev.Kind != EventQuestionRevealed || ev.QuestionNumber != 2 {
		t.Fatalf("event: got %+v", ev)
	}
	if !ev.Entry.IsQuestion || ev.Entry.Content != "What is a channel?" {
		t.Errorf("revealed entry: got %+v", ev.Entry)
	}
	if got := c.Session().CurrentQuestionNumber; got != 2 {
		t.Errorf("question number after reveal: got %d, want 2", got)
	}
	if c.State() != StateAwaitingAnswer {
		t.Errorf("state after reveal: got %v", c.State())
	}

	entries := c.Transcript()
	if len(entries) != 5 {
		t.Fatalf("transcript: got %d entries, want 5", len(entries))
	}
	if entries[2].Role != transcript.RoleUser || entries[2].Content != "A goroutine is a lightweight thread." {
		t.Errorf("user entry: got %+v", entries[2])
	}
	if entries[3].Role != transcript.RoleAssistant || entries[3].Content != "Good answer." {
		t.Errorf("feedback entry: got %+v", entries[3])
	}
	if !entries[4].IsQuestion {
		t.Errorf("question entry: got %+v", entries[4])
	}
}

func TestSubmitWhileSubmittingIsNoOp(t *testing.T) {
	engine := &testutil.FakeEngine{SubmitScript: []testutil.SubmitStep{
		inProgressStep("Next?", 2),
	}}
	c := New(Config{Engine: engine, Pacing: time.Second})
	defer c.Close()
	startSession(t, c)

	if _, err := c.Submit(context.Background(), "first"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	// Pacing still running: the controller holds at submitting.
	out, err := c.Submit(context.Background(), "second")
	if out != nil || err != nil {
		t.Errorf("re-entrant submit: got (%v, %v), want no-op", out, err)
	}
	if engine.SubmitCalls != 1 {
		t.Errorf("engine saw %d submits, want 1", engine.SubmitCalls)
	}
}

func TestSubmitCompletedFetchesSummary(t *testing.T) {
	engine := &testutil.FakeEngine{
		SubmitScript: []testutil.SubmitStep{completedStep()},
		SummaryPayload: &api.SummaryPayload{
			FinalScore:     7.5,
			TotalQuestions: 3,
			Strengths:      []string{"Strong fundamentals"},
			Improvements:   []string{"Slow down"},
			Resources:      []string{"Mock interviews"},
			SessionID:      "fake-session",
			Role:           "Software Engineer",
		},
	}
	c := newController(engine)
	defer c.Close()
	startSession(t, c)

	out, err := c.Submit(context.Background(), "final answer")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !out.Completed || out.Summary == nil {
		t.Fatalf("outcome: got %+v", out)
	}
	if out.Summary.OverallScore != 7.5 || out.Summary.Strengths[0] != "Strong fundamentals" {
		t.Errorf("summary: got %+v", out.Summary)
	}
	if c.State() != StateCompleted {
		t.Errorf("state: got %v, want completed", c.State())
	}
	if !c.Session().Completed {
		t.Error("session should be marked completed")
	}
	if engine.SummaryCalls != 1 {
		t.Errorf("engine saw %d summary calls, want 1", engine.SummaryCalls)
	}
}

func TestCompletionSurvivesSummaryFailure(t *testing.T) {
	engine := &testutil.FakeEngine{
		SubmitScript: []testutil.SubmitStep{completedStep()},
		SummaryErr:   errors.New("summary backend down"),
	}
	c := newController(engine)
	defer c.Close()
	startSession(t, c)

	out, err := c.Submit(context.Background(), "final answer")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !out.Completed {
		t.Fatal("completion must not be retracted by a summary failure")
	}
	if out.Summary == nil {
		t.Fatal("fallback summary expected")
	}
	if out.Summary.OverallScore != 8 {
		t.Errorf("fallback score: got %v, want last answer's 8", out.Summary.OverallScore)
	}
	if out.Summary.Weaknesses[0] != "Summary generation failed" {
		t.Errorf("fallback weaknesses: got %v", out.Summary.Weaknesses)
	}
	if c.State() != StateCompleted {
		t.Errorf("state: got %v, want completed", c.State())
	}

	// Completed is one-way: further submits are ignored.
	out, err = c.Submit(context.Background(), "one more")
	if out != nil || err != nil {
		t.Errorf("post-completion submit: got (%v, %v), want no-op", out, err)
	}
	if engine.SubmitCalls != 1 {
		t.Errorf("engine saw %d submits, want 1", engine.SubmitCalls)
	}
}

func TestSubmitTransportFailureAllowsManualRetry(t *testing.T) {
	engine := &testutil.FakeEngine{SubmitScript: []testutil.SubmitStep{
		{Err: &api.Error{Op: "submit", Kind: api.KindTransport, Message: "Failed to submit answer"}},
		inProgressStep("What is a mutex?", 2),
	}}
	c := newController(engine)
	defer c.Close()
	startSession(t, c)

	_, err := c.Submit(context.Background(), "my answer")
	if err == nil {
		t.Fatal("transport failure should surface")
	}
	if c.State() != StateErrored {
		t.Errorf("state: got %v, want errored", c.State())
	}
	if got := c.Session().CurrentQuestionNumber; got != 1 {
		t.Errorf("question number must not advance on failure: got %d", got)
	}

	entries := c.Transcript()
	last := entries[len(entries)-1]
	if !strings.HasPrefix(last.Content, "Sorry, there was an error processing your answer:") {
		t.Errorf("error entry: got %q", last.Content)
	}
	if entries[len(entries)-2].Role != transcript.RoleUser {
		t.Error("optimistic user entry must survive the failure")
	}

	// The session is still active; re-submitting is the manual retry.
	out, err := c.Submit(context.Background(), "my answer again")
	if err != nil {
		t.Fatalf("re-submit failed: %v", err)
	}
	if out == nil || out.Feedback.Text != "Good answer." {
		t.Errorf("re-submit outcome: got %+v", out)
	}
	waitReveal(t, c)
}

func TestRetryClearsFeedbackOnce(t *testing.T) {
	engine := &testutil.FakeEngine{SubmitScript: []testutil.SubmitStep{
		inProgressStep("Next question?", 2),
	}}
	c := newController(engine)
	defer c.Close()
	startSession(t, c)

	if _, err := c.Submit(context.Background(), "weak answer"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	waitReveal(t, c)

	if c.CurrentFeedback() == nil {
		t.Fatal("feedback should be current after submit")
	}
	before := len(c.Transcript())

	if !c.Retry() {
		t.Fatal("first retry should succeed")
	}
	if c.CurrentFeedback() != nil {
		t.Error("retry must clear feedback")
	}
	entries := c.Transcript()
	if len(entries) != before+1 {
		t.Fatalf("retry should append exactly one entry: %d -> %d", before, len(entries))
	}
	last := entries[len(entries)-1]
	if last.Role != transcript.RoleAssistant || last.Content != RetryPrompt {
		t.Errorf("retry entry: got %+v", last)
	}
	if got := c.Session().CurrentQuestionNumber; got != 2 {
		t.Errorf("retry must not move the question counter: got %d", got)
	}

	// Second retry with no feedback is a no-op.
	if c.Retry() {
		t.Error("retry without feedback should report false")
	}
	if len(c.Transcript()) != before+1 {
		t.Error("no-op retry must not append")
	}
}

func TestSkipSubmitsSentinel(t *testing.T) {
	engine := &testutil.FakeEngine{SubmitScript: []testutil.SubmitStep{
		inProgressStep("Next?", 2),
	}}
	c := newController(engine)
	defer c.Close()
	startSession(t, c)

	out, err := c.Skip(context.Background())
	if err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if out == nil {
		t.Fatal("skip should return the scored outcome")
	}
	if engine.LastAnswer != SkipSentinel {
		t.Errorf("engine saw %q, want the skip sentinel", engine.LastAnswer)
	}
	entries := c.Transcript()
	if entries[2].Content != SkipSentinel || entries[2].Role != transcript.RoleUser {
		t.Errorf("skip entry: got %+v", entries[2])
	}
	waitReveal(t, c)
}

func TestResetCancelsPendingReveal(t *testing.T) {
	engine := &testutil.FakeEngine{SubmitScript: []testutil.SubmitStep{
		inProgressStep("Should never appear", 2),
	}}
	c := New(Config{Engine: engine, Pacing: 20 * time.Millisecond})
	defer c.Close()
	startSession(t, c)

	if _, err := c.Submit(context.Background(), "answer"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	c.Reset()

	time.Sleep(60 * time.Millisecond)
	if c.State() != StateIdle {
		t.Errorf("state: got %v, want idle", c.State())
	}
	if len(c.Transcript()) != 0 {
		t.Errorf("stray entries after reset: %+v", c.Transcript())
	}
	if c.Session().Active() {
		t.Error("reset must clear the session")
	}
	if c.CurrentFeedback() != nil {
		t.Error("reset must clear feedback")
	}
	select {
	case ev := <-c.Events():
		t.Errorf("stray event after reset: %+v", ev)
	default:
	}
}

func TestResetFromCompletedAllowsNewSession(t *testing.T) {
	engine := &testutil.FakeEngine{SubmitScript: []testutil.SubmitStep{completedStep()}}
	c := newController(engine)
	defer c.Close()
	startSession(t, c)

	if _, err := c.Submit(context.Background(), "final"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	c.Reset()
	startSession(t, c)
	if c.State() != StateAwaitingAnswer {
		t.Errorf("state: got %v, want awaiting_answer", c.State())
	}
	if len(c.Transcript()) != 2 {
		t.Errorf("fresh transcript: got %d entries, want 2", len(c.Transcript()))
	}
}

func TestStartWhileActiveFails(t *testing.T) {
	engine := &testutil.FakeEngine{}
	c := newController(engine)
	defer c.Close()
	startSession(t, c)

	if err := c.Start(context.Background(), "Data Analyst", "behavioral", 2); err == nil {
		t.Error("second start without reset should fail")
	}
	if engine.StartCalls != 1 {
		t.Errorf("engine saw %d starts, want 1", engine.StartCalls)
	}
}

func TestCloseClosesEvents(t *testing.T) {
	c := newController(&testutil.FakeEngine{})
	c.Close()
	if _, ok := <-c.Events(); ok {
		t.Error("events channel should be closed")
	}
	// Close is idempotent.
	c.Close()
}

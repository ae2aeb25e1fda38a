package server

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/querybox-dev/querybox/internal/api"
)

func startTestServer(t *testing.T) *api.Client {
	t.Helper()
	srv, err := NewServer("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	go srv.Start()
	t.Cleanup(func() { srv.Stop() })
	return api.NewClient("http://"+srv.Addr(), 5*time.Second)
}

func TestFullInterviewFlow(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	start, err := client.Start(ctx, "Software Engineer", "technical", 2)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if start.SessionID == "" || start.Question == "" {
		t.Fatalf("start response incomplete: %+v", start)
	}
	if start.TotalQuestions != 2 || start.QuestionNumber != 1 {
		t.Errorf("question numbering: got %d/%d", start.QuestionNumber, start.TotalQuestions)
	}
	if !strings.Contains(start.Message, "Software Engineer") {
		t.Errorf("welcome message: got %q", start.Message)
	}

	answer := "I would profile the service first to find the bottleneck, then add a cache in front of the database and measure latency again to confirm the fix."
	first, err := client.Submit(ctx, start.SessionID, answer)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if first.Completed {
		t.Fatal("first of two answers must not complete the session")
	}
	if first.NextQuestion == "" || first.QuestionNumber != 2 {
		t.Errorf("next question: got %q (#%d)", first.NextQuestion, first.QuestionNumber)
	}
	if first.Score < 1 || first.Score > 10 {
		t.Errorf("score out of range: %v", first.Score)
	}

	second, err := client.Submit(ctx, start.SessionID, answer)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !second.Completed {
		t.Fatal("last answer should complete the session")
	}
	if second.NextQuestion != "" {
		t.Errorf("completed response should carry no next question: %q", second.NextQuestion)
	}

	sum, err := client.Summary(ctx, start.SessionID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if sum.SessionID != start.SessionID || sum.Role != "Software Engineer" {
		t.Errorf("summary provenance: %+v", sum)
	}
	if sum.TotalQuestions != 2 || len(sum.Strengths) == 0 || len(sum.Resources) == 0 {
		t.Errorf("summary content: %+v", sum)
	}
	// The server sends "x.x/10"; the client's Score type parses it.
	if sum.FinalScore < 1 || sum.FinalScore > 10 {
		t.Errorf("final score: got %v", sum.FinalScore)
	}
}

func TestStartValidation(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	// Question count is clamped, not rejected.
	start, err := client.Start(ctx, "Data Analyst", "behavioral", 25)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if start.TotalQuestions != maxQuestions {
		t.Errorf("clamp: got %d, want %d", start.TotalQuestions, maxQuestions)
	}
}

func TestUnknownModeFallsBackToTechnical(t *testing.T) {
	client := startTestServer(t)

	start, err := client.Start(context.Background(), "Engineer", "underwater-basket-weaving", 1)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if start.Question == "" {
		t.Error("unknown mode should still produce a question")
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	client := startTestServer(t)

	_, err := client.Submit(context.Background(), "no-such-session", "answer")
	if err == nil {
		t.Fatal("unknown session should fail")
	}
	if !strings.Contains(err.Error(), "Session not found") {
		t.Errorf("error should carry the server's message: %v", err)
	}
}

func TestSubmitAfterCompletionRejected(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	start, err := client.Start(ctx, "Engineer", "technical", 1)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := client.Submit(ctx, start.SessionID, "done"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := client.Submit(ctx, start.SessionID, "again"); err == nil {
		t.Error("submit after completion should fail")
	}
}

func TestHealth(t *testing.T) {
	client := startTestServer(t)

	h, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if h.Status != "healthy" {
		t.Errorf("status: got %q", h.Status)
	}
}

func TestEvaluateBands(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   float64
	}{
		{"very short", "yes", 3},
		{"short", "I would look at the logs first and go from there", 5},
		{"short with keyword", "I would check the database index and the cache hit rate first", 6},
		{"medium", strings.Repeat("word ", 30), 7},
		{"long", strings.Repeat("word ", 60), 8},
		{"long with keyword", strings.Repeat("word ", 60) + " latency", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := evaluate(tt.answer)
			if ev.Score != tt.want {
				t.Errorf("score: got %v, want %v", ev.Score, tt.want)
			}
			if ev.Clarity != ev.Score || ev.Completeness != ev.Score {
				t.Errorf("clarity/completeness should track score: %+v", ev)
			}
			if ev.Correctness < 5 {
				t.Errorf("correctness floor: got %v", ev.Correctness)
			}
			if ev.Feedback == "" {
				t.Error("feedback must never be empty")
			}
		})
	}
}

func TestBuildQuestionsCyclesBank(t *testing.T) {
	qs := buildQuestions("Engineer", "behavioral", 12)
	if len(qs) != 12 {
		t.Fatalf("got %d questions, want 12", len(qs))
	}
	if qs[0] != qs[10] {
		t.Error("bank should cycle past its length")
	}
	for _, q := range qs {
		if strings.Contains(q, "%s") {
			t.Errorf("unfilled role placeholder: %q", q)
		}
	}
}

func TestSummaryBands(t *testing.T) {
	for _, avg := range []float64{9, 7, 4} {
		s, i, r := summaryBand(avg)
		if len(s) == 0 || len(i) == 0 || len(r) == 0 {
			t.Errorf("band %v produced empty lists", avg)
		}
	}
}

// Package testutil provides deterministic fakes shared across test
// packages.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/querybox-dev/querybox/internal/api"
)

// FakeEngine is a scripted Engine implementation. Responses are served
// from the configured slices in order; call counts are recorded so
// tests can assert which operations ran.
type FakeEngine struct {
	mu sync.Mutex

	StartResponse  *api.StartResponse
	StartErr       error
	SubmitScript   []SubmitStep
	SummaryPayload *api.SummaryPayload
	SummaryErr     error
	HealthStatus   *api.HealthStatus
	HealthErr      error

	StartCalls   int
	SubmitCalls  int
	SummaryCalls int
	HealthCalls  int

	// LastAnswer records the most recent answer passed to Submit.
	LastAnswer string
}

// SubmitStep is one scripted response to Submit.
type SubmitStep struct {
	Response *api.SubmitResponse
	Err      error
}

func (f *FakeEngine) Start(ctx context.Context, role, mode string, n int) (*api.StartResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StartCalls++
	if f.StartErr != nil {
		return nil, f.StartErr
	}
	if f.StartResponse != nil {
		return f.StartResponse, nil
	}
	return &api.StartResponse{
		SessionID:      "fake-session",
		Question:       "Tell me about yourself.",
		QuestionNumber: 1,
		TotalQuestions: n,
	}, nil
}

func (f *FakeEngine) Submit(ctx context.Context, sessionID, answer string) (*api.SubmitResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SubmitCalls++
	f.LastAnswer = answer
	i := f.SubmitCalls - 1
	if i >= len(f.SubmitScript) {
		return nil, fmt.Errorf("testutil: unscripted submit #%d", f.SubmitCalls)
	}
	step := f.SubmitScript[i]
	return step.Response, step.Err
}

func (f *FakeEngine) Summary(ctx context.Context, sessionID string) (*api.SummaryPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SummaryCalls++
	if f.SummaryErr != nil {
		return nil, f.SummaryErr
	}
	if f.SummaryPayload != nil {
		return f.SummaryPayload, nil
	}
	return &api.SummaryPayload{
		FinalScore:     7,
		TotalQuestions: 1,
		Strengths:      []string{"fake strength"},
		Improvements:   []string{"fake improvement"},
		Resources:      []string{"fake resource"},
		SessionID:      sessionID,
	}, nil
}

func (f *FakeEngine) Health(ctx context.Context) (*api.HealthStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.HealthCalls++
	if f.HealthErr != nil {
		return nil, f.HealthErr
	}
	if f.HealthStatus != nil {
		return f.HealthStatus, nil
	}
	return &api.HealthStatus{Status: "healthy"}, nil
}

// Calls returns the per-operation call counts as a snapshot.
func (f *FakeEngine) Calls() (start, submit, summary, health int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.StartCalls, f.SubmitCalls, f.SummaryCalls, f.HealthCalls
}

// Package api implements the HTTP client for the interview engine.
// The request and response field names below are the engine's wire
// contract and must not be renamed.
package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Score is a numeric score that the engine may deliver as a JSON number,
// a string like "7.5/10", or the literal "N/A" (which decodes to 0).
type Score float64

// UnmarshalJSON accepts the three wire encodings of a score.
func (s *Score) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Score(n)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("score: unsupported JSON value %s", data)
	}

	str = strings.TrimSpace(str)
	if str == "" || strings.EqualFold(str, "N/A") {
		*s = 0
		return nil
	}

	// "7.5/10" carries the denominator on the wire; only the numerator counts.
	if idx := strings.IndexByte(str, '/'); idx >= 0 {
		str = str[:idx]
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return fmt.Errorf("score: parsing %q: %w", str, err)
	}
	*s = Score(n)
	return nil
}

// MarshalJSON always emits a plain number.
func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(s))
}

// StartRequest is the body of POST /start_interview.
type StartRequest struct {
	Role         string `json:"role"`
	Mode         string `json:"mode"`
	NumQuestions int    `json:"num_questions"`
}

// StartResponse is the engine's reply to a start request.
type StartResponse struct {
	SessionID      string `json:"sessionId"`
	Question       string `json:"question"`
	QuestionNumber int    `json:"questionNumber"`
	TotalQuestions int    `json:"totalQuestions"`
	Message        string `json:"message"`
}

// SubmitRequest is the body of POST /submit_answer.
type SubmitRequest struct {
	SessionID string `json:"sessionId"`
	Answer    string `json:"answer"`
}

// SubmitResponse is the engine's evaluation of one answer. NextQuestion,
// QuestionNumber and TotalQuestions are present only when Completed is false.
type SubmitResponse struct {
	Message        string `json:"message"`
	Feedback       string `json:"feedback"`
	Score          Score  `json:"score"`
	Clarity        Score  `json:"clarity"`
	Correctness    Score  `json:"correctness"`
	Completeness   Score  `json:"completeness"`
	Completed      bool   `json:"completed"`
	NextQuestion   string `json:"nextQuestion,omitempty"`
	QuestionNumber int    `json:"questionNumber,omitempty"`
	TotalQuestions int    `json:"totalQuestions,omitempty"`
}

// SummaryPayload is the reply to GET /get_summary/{sessionId}.
type SummaryPayload struct {
	FinalScore        Score    `json:"final_score"`
	TotalQuestions    int      `json:"totalQuestions"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"areas_for_improvement"`
	Resources         []string `json:"suggested_resources"`
	SessionID         string   `json:"sessionId"`
	Role              string   `json:"role"`
	CompletedAt       string   `json:"completedAt"`
}

// HealthStatus is the reply to GET /health. The engine's payload beyond
// Status is implementation-defined; Raw preserves it for display.
type HealthStatus struct {
	Status string          `json:"status"`
	Raw    json.RawMessage `json:"-"`
}

// errorBody is the uniform error shape the engine returns on failure.
type errorBody struct {
	Error string `json:"error"`
}

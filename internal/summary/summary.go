// Package summary normalizes the engine's end-of-session report into the
// stable shape the rest of the application consumes, and writes the JSON
// export artifact.
package summary

import (
	"github.com/querybox-dev/querybox/internal/api"
)

// Summary is the normalized end-of-session report. Created once when a
// session completes; immutable thereafter. The JSON field names below are
// the export artifact's format.
type Summary struct {
	OverallScore   float64  `json:"overallScore"`
	TotalQuestions int      `json:"totalQuestions"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Resources      []string `json:"resources"`
	SessionID      string   `json:"sessionId"`
	Role           string   `json:"role"`
	CompletedAt    string   `json:"completedAt"`
}

// Assemble converts the engine's wire payload into a Summary. Missing
// arrays become empty slices so consumers never see nil.
func Assemble(payload *api.SummaryPayload) *Summary {
	return &Summary{
		OverallScore:   float64(payload.FinalScore),
		TotalQuestions: payload.TotalQuestions,
		Strengths:      orEmpty(payload.Strengths),
		Weaknesses:     orEmpty(payload.Improvements),
		Resources:      orEmpty(payload.Resources),
		SessionID:      payload.SessionID,
		Role:           payload.Role,
		CompletedAt:    payload.CompletedAt,
	}
}

// Fallback synthesizes a minimal summary when the post-completion fetch
// fails. lastScore is the score of the final answer; the interview itself
// has already concluded, so this is never surfaced as an error.
func Fallback(sessionID, role string, lastScore float64, totalQuestions int) *Summary {
	return &Summary{
		OverallScore:   lastScore,
		TotalQuestions: totalQuestions,
		Strengths:      []string{"Completed the interview"},
		Weaknesses:     []string{"Summary generation failed"},
		Resources:      []string{"Please try again"},
		SessionID:      sessionID,
		Role:           role,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

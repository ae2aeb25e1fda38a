// Package commands provides Bubble Tea commands that bridge the TUI to
// the session controller and storage.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/querybox-dev/querybox/internal/history"
	"github.com/querybox-dev/querybox/internal/interview"
	"github.com/querybox-dev/querybox/internal/summary"
	"github.com/querybox-dev/querybox/internal/tui"
)

// StartInterviewCmd starts a new session on the controller.
func StartInterviewCmd(ctrl *interview.Controller, role, mode string, n int) tea.Cmd {
	return func() tea.Msg {
		err := ctrl.Start(context.Background(), role, mode, n)
		return tui.InterviewStartedMsg{Err: err}
	}
}

// SubmitAnswerCmd submits an answer for scoring.
func SubmitAnswerCmd(ctrl *interview.Controller, answer string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := ctrl.Submit(context.Background(), answer)
		return tui.AnswerResultMsg{Outcome: outcome, Err: err}
	}
}

// SkipQuestionCmd skips the current question.
func SkipQuestionCmd(ctrl *interview.Controller) tea.Cmd {
	return func() tea.Msg {
		outcome, err := ctrl.Skip(context.Background())
		return tui.AnswerResultMsg{Outcome: outcome, Err: err}
	}
}

// WaitForRevealCmd blocks on the controller's event channel and converts
// the next event into a message. Re-issue it after every
// QuestionRevealedMsg to keep listening.
func WaitForRevealCmd(ctrl *interview.Controller) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ctrl.Events()
		return tui.QuestionRevealedMsg{Event: ev, OK: ok}
	}
}

// ExportSummaryCmd writes the summary artifact into dir.
func ExportSummaryCmd(dir string, s *summary.Summary) tea.Cmd {
	return func() tea.Msg {
		path, err := summary.WriteFile(dir, s)
		return tui.SummaryExportedMsg{Path: path, Err: err}
	}
}

// SaveHistoryCmd persists a completed session. A nil store is a no-op.
func SaveHistoryCmd(store *history.Store, rec *history.Record) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return tui.HistorySavedMsg{}
		}
		if rec.CompletedAt.IsZero() {
			rec.CompletedAt = time.Now()
		}
		return tui.HistorySavedMsg{Err: store.Save(rec)}
	}
}

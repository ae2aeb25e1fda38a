// Package app provides the main TUI application that wires all views together.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/querybox-dev/querybox/internal/config"
	"github.com/querybox-dev/querybox/internal/history"
	"github.com/querybox-dev/querybox/internal/interview"
	"github.com/querybox-dev/querybox/internal/tui"
	"github.com/querybox-dev/querybox/internal/tui/commands"
	"github.com/querybox-dev/querybox/internal/tui/views"
)

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model

	// View models
	setupView   views.SetupModel
	chatView    views.ChatModel
	summaryView views.SummaryModel
}

// New creates a new App with the given configuration and wiring. store
// may be nil when history persistence is disabled.
func New(cfg *config.Config, ctrl *interview.Controller, store *history.Store) *App {
	model := tui.NewModel(cfg, ctrl, store)
	return &App{
		model: model,
		setupView: views.NewSetupModel(
			cfg.Interview.Role, cfg.Interview.Mode, cfg.Interview.Questions,
			model.Width, model.Height,
		),
	}
}

// Init returns the initial command for the TUI. The reveal listener is
// armed once here and re-armed after every reveal; events only flow
// while an interview is running.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.setupView.Init(), commands.WaitForRevealCmd(a.model.Ctrl))
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		var cmd tea.Cmd
		switch a.model.State {
		case tui.StateSetup:
			a.setupView, cmd = a.setupView.Update(msg)
		case tui.StateInterview:
			a.chatView, cmd = a.chatView.Update(msg)
		case tui.StateSummary:
			a.summaryView, cmd = a.summaryView.Update(msg)
		}
		return a, cmd

	case tui.StartInterviewMsg:
		a.setupView.SetStarting(true)
		return a, commands.StartInterviewCmd(a.model.Ctrl, msg.Role, msg.Mode, msg.Questions)

	case tui.InterviewStartedMsg:
		if msg.Err != nil {
			a.model.Ctrl.Reset()
			a.setupView.SetError(msg.Err.Error())
			return a, nil
		}
		a.model.State = tui.StateInterview
		a.chatView = views.NewChatModel(a.model.Width, a.model.Height)
		a.refreshChat()
		sess := a.model.Ctrl.Session()
		a.chatView.SetProgress(sess.CurrentQuestionNumber, sess.TotalQuestions)
		return a, a.chatView.Init()

	case tui.SubmitRequestedMsg:
		a.chatView.SetBusy(true)
		a.chatView.SetFeedback(nil)
		return a, commands.SubmitAnswerCmd(a.model.Ctrl, msg.Answer)

	case tui.SkipRequestedMsg:
		a.chatView.SetBusy(true)
		a.chatView.SetFeedback(nil)
		return a, commands.SkipQuestionCmd(a.model.Ctrl)

	case tui.RetryRequestedMsg:
		if a.model.Ctrl.Retry() {
			a.chatView.SetFeedback(nil)
			a.refreshChat()
		}
		return a, nil

	case tui.AnswerResultMsg:
		return a.handleAnswerResult(msg)

	case tui.QuestionRevealedMsg:
		if !msg.OK {
			return a, nil
		}
		a.refreshChat()
		a.chatView.SetProgress(msg.Event.QuestionNumber, msg.Event.TotalQuestions)
		a.chatView.SetBusy(false)
		return a, commands.WaitForRevealCmd(a.model.Ctrl)

	case tui.AbandonMsg:
		return a.backToSetup()

	case tui.NewSessionMsg:
		return a.backToSetup()

	case tui.ExportRequestedMsg:
		dir := a.model.Cfg.Export.Dir
		if dir == "" {
			dir = "."
		}
		return a, commands.ExportSummaryCmd(dir, a.model.Summary)

	case tui.SummaryExportedMsg:
		a.model.ExportedPath = msg.Path
		a.summaryView.SetExportResult(msg.Path, msg.Err)
		return a, nil

	case tui.HistorySavedMsg:
		// Persistence is best-effort; a failure never blocks the summary.
		return a, nil
	}

	// Delegate everything else to the active view.
	var cmd tea.Cmd
	switch a.model.State {
	case tui.StateSetup:
		a.setupView, cmd = a.setupView.Update(msg)
	case tui.StateInterview:
		a.chatView, cmd = a.chatView.Update(msg)
	case tui.StateSummary:
		a.summaryView, cmd = a.summaryView.Update(msg)
	}
	return a, cmd
}

func (a *App) handleAnswerResult(msg tui.AnswerResultMsg) (tea.Model, tea.Cmd) {
	a.refreshChat()

	if msg.Err != nil {
		// The transcript already carries the error entry; unlock the
		// textarea so the user can re-submit.
		a.chatView.SetBusy(false)
		return a, nil
	}
	if msg.Outcome == nil {
		a.chatView.SetBusy(false)
		return a, nil
	}

	fb := msg.Outcome.Feedback
	a.chatView.SetFeedback(&fb)

	if msg.Outcome.Completed {
		a.model.Summary = msg.Outcome.Summary
		a.model.State = tui.StateSummary
		a.summaryView = views.NewSummaryModel(a.model.Summary, a.model.Width, a.model.Height)

		sess := a.model.Ctrl.Session()
		rec := &history.Record{
			SessionID:      sess.SessionID,
			Role:           sess.Role,
			Mode:           sess.Mode,
			OverallScore:   a.model.Summary.OverallScore,
			TotalQuestions: sess.TotalQuestions,
			Summary:        a.model.Summary,
			Transcript:     a.model.Ctrl.Transcript(),
		}
		return a, commands.SaveHistoryCmd(a.model.Store, rec)
	}

	// Mid-session: the chat stays busy until the pacing delay reveals
	// the next question.
	return a, nil
}

func (a *App) backToSetup() (tea.Model, tea.Cmd) {
	a.model.Ctrl.Reset()
	a.model.State = tui.StateSetup
	a.model.Summary = nil
	a.model.ExportedPath = ""
	cfg := a.model.Cfg
	a.setupView = views.NewSetupModel(
		cfg.Interview.Role, cfg.Interview.Mode, cfg.Interview.Questions,
		a.model.Width, a.model.Height,
	)
	return a, a.setupView.Init()
}

func (a *App) refreshChat() {
	a.chatView.SetTranscript(a.model.Ctrl.Transcript())
}

// View renders the active view.
func (a *App) View() string {
	switch a.model.State {
	case tui.StateInterview:
		return a.chatView.View()
	case tui.StateSummary:
		return a.summaryView.View()
	default:
		return a.setupView.View()
	}
}

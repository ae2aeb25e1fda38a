package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/querybox-dev/querybox/internal/interview"
	"github.com/querybox-dev/querybox/internal/transcript"
	"github.com/querybox-dev/querybox/internal/tui"
)

// ChatModel is the view model for the live interview screen: the
// transcript viewport on top, the answer textarea below.
type ChatModel struct {
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	progress progress.Model

	busy           bool
	questionNumber int
	totalQuestions int
	feedback       *interview.Feedback
	escPending     bool
	width          int
	height         int
}

// EscResetMsg resets the Esc pending state after timeout.
type EscResetMsg struct{}

// NewChatModel creates a ChatModel sized to the terminal.
func NewChatModel(width, height int) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Type your answer..."
	ta.CharLimit = 5000
	ta.SetWidth(width - 8)
	ta.SetHeight(4)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(width-8, chatViewportHeight(height))

	return ChatModel{
		viewport: vp,
		textarea: ta,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
		width:    width,
		height:   height,
	}
}

func chatViewportHeight(height int) int {
	h := height - 14
	if h < 5 {
		h = 5
	}
	return h
}

// Init returns the initial command for the chat view.
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// SetBusy toggles the waiting indicator while a request is in flight.
func (m *ChatModel) SetBusy(busy bool) {
	m.busy = busy
}

// SetProgress updates the question counter shown in the status bar.
func (m *ChatModel) SetProgress(current, total int) {
	m.questionNumber = current
	m.totalQuestions = total
}

// SetFeedback updates the feedback panel. Pass nil to clear it.
func (m *ChatModel) SetFeedback(fb *interview.Feedback) {
	m.feedback = fb
}

// SetTranscript re-renders the transcript into the viewport and scrolls
// to the bottom.
func (m *ChatModel) SetTranscript(entries []transcript.Entry) {
	var b strings.Builder
	wrap := lipgloss.NewStyle().Width(m.viewport.Width)
	for _, e := range entries {
		switch {
		case e.IsQuestion:
			b.WriteString(wrap.Render(tui.QuestionStyle.Render("Interviewer: ") + e.Content))
		case e.Role == transcript.RoleUser:
			b.WriteString(wrap.Render(tui.UserStyle.Render("You: ") + e.Content))
		default:
			b.WriteString(wrap.Render(e.Content))
		}
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// Update handles messages for the chat view.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case EscResetMsg:
		m.escPending = false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 8
		m.viewport.Height = chatViewportHeight(msg.Height)
		m.textarea.SetWidth(msg.Width - 8)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEnter:
			if m.busy {
				return m, nil
			}
			answer := strings.TrimSpace(m.textarea.Value())
			if answer == "" {
				return m, nil
			}
			m.textarea.Reset()
			return m, func() tea.Msg {
				return tui.SubmitRequestedMsg{Answer: answer}
			}

		case "ctrl+k":
			if m.busy {
				return m, nil
			}
			return m, func() tea.Msg {
				return tui.SkipRequestedMsg{}
			}

		case "ctrl+r":
			if m.busy {
				return m, nil
			}
			return m, func() tea.Msg {
				return tui.RetryRequestedMsg{}
			}

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd

		case tui.KeyEsc:
			if m.escPending {
				return m, func() tea.Msg {
					return tui.AbandonMsg{}
				}
			}
			m.escPending = true
			return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return EscResetMsg{}
			})
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the chat view.
func (m ChatModel) View() string {
	var b strings.Builder

	// Status bar: progress through the question list.
	status := fmt.Sprintf("Question %d of %d", m.questionNumber, m.totalQuestions)
	b.WriteString(tui.StatusBarStyle.Render(status))
	b.WriteString("  ")
	if m.totalQuestions > 0 {
		pct := float64(m.questionNumber-1) / float64(m.totalQuestions)
		b.WriteString(m.progress.ViewAs(pct))
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.feedback != nil {
		b.WriteString(m.renderFeedback())
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(tui.DimStyle.Render(" Evaluating your answer..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.textarea.View())
		b.WriteString("\n")
	}

	hint := "Enter to submit · Ctrl+K skip · Ctrl+R retry"
	if m.escPending {
		b.WriteString(tui.WarningStyle.Render("Press Esc again to abandon the interview"))
	} else {
		b.WriteString(tui.DimStyle.Render(hint + " · Esc: abandon"))
	}

	return b.String()
}

func (m ChatModel) renderFeedback() string {
	fb := m.feedback
	score := tui.ScoreStyle(fb.OverallScore).Render(fmt.Sprintf("%.1f/10", fb.OverallScore))
	detail := tui.DimStyle.Render(fmt.Sprintf(
		"clarity %.0f · correctness %.0f · completeness %.0f",
		fb.Clarity, fb.Correctness, fb.Completeness,
	))
	return fmt.Sprintf("%s %s  %s", tui.TitleStyle.Render("Score:"), score, detail)
}

// Package views provides TUI view components for the QueryBox application.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/querybox-dev/querybox/internal/tui"
)

// maxSetupWidth is the maximum width for the setup box.
const maxSetupWidth = 70

// setup form fields, in focus order.
const (
	fieldRole = iota
	fieldMode
	fieldQuestions
	fieldStart
	fieldCount
)

var interviewModes = []string{"technical", "behavioral", "system-design"}

// SetupModel is the view model for the session setup screen.
type SetupModel struct {
	roleInput textinput.Model
	modeIdx   int
	questions int
	focused   int
	starting  bool
	errText   string
	width     int
	height    int
}

// NewSetupModel creates a SetupModel pre-filled with the configured
// defaults.
func NewSetupModel(role, mode string, questions, width, height int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. Software Engineer"
	ti.CharLimit = 100
	ti.Width = maxSetupWidth - 20
	ti.SetValue(role)
	ti.Focus()

	modeIdx := 0
	for i, m := range interviewModes {
		if m == mode {
			modeIdx = i
			break
		}
	}
	if questions < 1 {
		questions = 5
	}
	if questions > 10 {
		questions = 10
	}

	return SetupModel{
		roleInput: ti,
		modeIdx:   modeIdx,
		questions: questions,
		focused:   fieldRole,
		width:     width,
		height:    height,
	}
}

// SetStarting toggles the "contacting backend" indicator.
func (m *SetupModel) SetStarting(starting bool) {
	m.starting = starting
}

// SetError shows a start failure on the form.
func (m *SetupModel) SetError(msg string) {
	m.starting = false
	m.errText = msg
}

// Init returns the initial command for the setup view.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the setup view.
func (m SetupModel) Update(msg tea.Msg) (SetupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.starting {
			return m, nil
		}
		switch msg.String() {
		case tui.KeyTab, tui.KeyDown:
			m.focus((m.focused + 1) % fieldCount)
			return m, nil
		case "shift+tab", tui.KeyUp:
			m.focus((m.focused + fieldCount - 1) % fieldCount)
			return m, nil
		case tui.KeyLeft:
			m.adjust(-1)
			return m, nil
		case tui.KeyRight:
			m.adjust(1)
			return m, nil
		case tui.KeyEnter:
			if m.focused == fieldStart || m.focused == fieldRole {
				return m, m.submit()
			}
			m.focus((m.focused + 1) % fieldCount)
			return m, nil
		}
	}

	if m.focused == fieldRole {
		var cmd tea.Cmd
		m.roleInput, cmd = m.roleInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *SetupModel) focus(field int) {
	m.focused = field
	if field == fieldRole {
		m.roleInput.Focus()
	} else {
		m.roleInput.Blur()
	}
}

func (m *SetupModel) adjust(delta int) {
	switch m.focused {
	case fieldMode:
		m.modeIdx = (m.modeIdx + delta + len(interviewModes)) % len(interviewModes)
	case fieldQuestions:
		m.questions += delta
		if m.questions < 1 {
			m.questions = 1
		}
		if m.questions > 10 {
			m.questions = 10
		}
	}
}

func (m *SetupModel) submit() tea.Cmd {
	role := strings.TrimSpace(m.roleInput.Value())
	if role == "" {
		m.errText = "Enter a role to interview for"
		return nil
	}
	m.errText = ""
	mode := interviewModes[m.modeIdx]
	questions := m.questions
	return func() tea.Msg {
		return tui.StartInterviewMsg{Role: role, Mode: mode, Questions: questions}
	}
}

// View renders the setup view.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("QueryBox — Mock Interview"))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(fieldRole, "Role"))
	b.WriteString(m.roleInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(fieldMode, "Mode"))
	for i, mode := range interviewModes {
		if i == m.modeIdx {
			b.WriteString(tui.SelectedStyle.Render("[" + mode + "]"))
		} else {
			b.WriteString(tui.DimStyle.Render(" " + mode + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(fieldQuestions, "Questions"))
	b.WriteString(fmt.Sprintf("%d", m.questions))
	b.WriteString(tui.DimStyle.Render("  (1-10, ←→ to adjust)"))
	b.WriteString("\n\n")

	if m.starting {
		b.WriteString(tui.WarningStyle.Render("Contacting interview backend..."))
	} else if m.focused == fieldStart {
		b.WriteString(tui.SelectedStyle.Render("❯ Start interview"))
	} else {
		b.WriteString(tui.DimStyle.Render("  Start interview"))
	}
	b.WriteString("\n")

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Tab to move · Enter to start · Ctrl+C to quit"))

	boxWidth := maxSetupWidth
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}
	return tui.BoxStyle.Width(boxWidth).Render(b.String())
}

func (m SetupModel) fieldLabel(field int, label string) string {
	if m.focused == field {
		return tui.SelectedStyle.Render(label + ": ")
	}
	return tui.DimStyle.Render(label + ": ")
}

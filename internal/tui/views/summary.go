package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/querybox-dev/querybox/internal/summary"
	"github.com/querybox-dev/querybox/internal/tui"
)

// maxSummaryWidth is the maximum width for the summary box.
const maxSummaryWidth = 80

// SummaryModel is the view model for the end-of-interview summary
// screen.
type SummaryModel struct {
	summary      *summary.Summary
	exportedPath string
	exportErr    error
	width        int
	height       int
}

// NewSummaryModel creates a SummaryModel for the given summary.
func NewSummaryModel(s *summary.Summary, width, height int) SummaryModel {
	return SummaryModel{summary: s, width: width, height: height}
}

// SetExportResult records the outcome of an export.
func (m *SummaryModel) SetExportResult(path string, err error) {
	m.exportedPath = path
	m.exportErr = err
}

// Init returns the initial command for the summary view.
func (m SummaryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the summary view.
func (m SummaryModel) Update(msg tea.Msg) (SummaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return m, func() tea.Msg {
				return tui.ExportRequestedMsg{}
			}
		case "n":
			return m, func() tea.Msg {
				return tui.NewSessionMsg{}
			}
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the summary view.
func (m SummaryModel) View() string {
	s := m.summary
	if s == nil {
		return tui.DimStyle.Render("No summary available.")
	}

	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Interview Complete"))
	b.WriteString("\n\n")

	score := tui.ScoreStyle(s.OverallScore).Render(fmt.Sprintf("%.1f/10", s.OverallScore))
	b.WriteString(fmt.Sprintf("Overall score: %s over %d questions\n", score, s.TotalQuestions))
	b.WriteString(tui.DimStyle.Render(fmt.Sprintf("%s · session %s", s.Role, s.SessionID)))
	b.WriteString("\n\n")

	writeSection(&b, "Strengths", s.Strengths, tui.SuccessStyle.Render("+"))
	writeSection(&b, "Areas for improvement", s.Weaknesses, tui.WarningStyle.Render("~"))
	writeSection(&b, "Suggested resources", s.Resources, tui.DimStyle.Render(">"))

	switch {
	case m.exportErr != nil:
		b.WriteString(tui.ErrorStyle.Render(fmt.Sprintf("Export failed: %v", m.exportErr)))
		b.WriteString("\n\n")
	case m.exportedPath != "":
		b.WriteString(tui.SuccessStyle.Render("Saved to " + m.exportedPath))
		b.WriteString("\n\n")
	}

	b.WriteString(tui.DimStyle.Render("e: export · n: new interview · q: quit"))

	boxWidth := maxSummaryWidth
	if m.width-4 < boxWidth {
		boxWidth = m.width - 4
	}
	return tui.BoxStyle.Width(boxWidth).Render(b.String())
}

func writeSection(b *strings.Builder, title string, items []string, bullet string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(tui.QuestionStyle.Render(title))
	b.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(b, "  %s %s\n", bullet, item)
	}
	b.WriteString("\n")
}

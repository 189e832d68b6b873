package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/go-toolhub/internal/text"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			Underline(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render("toolhub · "+m.tool.String()))
	sections = append(sections, m.optionsBar())
	sections = append(sections, dimStyle.Render("Input"))
	sections = append(sections, paneStyle.Render(m.input.View()))
	sections = append(sections, dimStyle.Render(m.resultLabel()))
	sections = append(sections, paneStyle.Render(m.output.View()))
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, dimStyle.Render(m.helpLine()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// optionsBar shows the case modes, or the trim settings.
func (m Model) optionsBar() string {
	if m.tool == ToolTrim {
		return fmt.Sprintf("Remove %s from %s: %s",
			activeStyle.Render(fmt.Sprintf("%d", m.trim.Count)),
			activeStyle.Render(string(m.trim.Side)),
			activeStyle.Render(string(m.trim.Unit)+"(s)"),
		)
	}

	modes := text.CaseModes()
	labels := make([]string, len(modes))
	for i, info := range modes {
		label := info.Icon + " " + info.Label
		if i == m.mode {
			labels[i] = activeStyle.Render(label)
		} else {
			labels[i] = dimStyle.Render(label)
		}
	}
	return strings.Join(labels, "  ")
}

func (m Model) resultLabel() string {
	if m.tool == ToolTrim {
		return "Result"
	}
	return "Result · " + m.Mode().Label()
}

func (m Model) helpLine() string {
	bindings := m.keys.helpFor(m.tool)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

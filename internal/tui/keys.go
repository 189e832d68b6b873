package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the TUI reacts to. Unmatched keys go to the
// input textarea.
type KeyMap struct {
	SwitchTool key.Binding
	NextMode   key.Binding
	PrevMode   key.Binding
	ToggleUnit key.Binding
	ToggleSide key.Binding
	CountUp    key.Binding
	CountDown  key.Binding
	Copy       key.Binding
	Save       key.Binding
	Import     key.Binding
	Focus      key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SwitchTool: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "switch tool"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev mode"),
		),
		ToggleUnit: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("C-w", "word/letter"),
		),
		ToggleSide: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "left/right"),
		),
		CountUp: key.NewBinding(
			key.WithKeys("ctrl+up", "+"),
			key.WithHelp("C-up/+", "count+1"),
		),
		CountDown: key.NewBinding(
			key.WithKeys("ctrl+down", "-"),
			key.WithHelp("C-down/-", "count-1"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save"),
		),
		Import: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "import"),
		),
		Focus: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "focus/unfocus input"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-q", "quit"),
		),
	}
}

// helpFor lists the bindings relevant to tool.
func (k KeyMap) helpFor(tool Tool) []key.Binding {
	common := []key.Binding{k.SwitchTool, k.Copy, k.Save, k.Import, k.Quit}
	if tool == ToolTrim {
		return append([]key.Binding{k.ToggleUnit, k.ToggleSide, k.CountUp, k.CountDown, k.Focus}, common...)
	}
	return append([]key.Binding{k.NextMode, k.PrevMode}, common...)
}

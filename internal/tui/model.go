// Package tui is the interactive terminal front end for the case converter
// and the word remover.
package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/go-toolhub/internal/catalog"
	"github.com/example/go-toolhub/internal/text"
	"github.com/example/go-toolhub/internal/textio"
)

// Tool selects the active transformation.
type Tool int

const (
	ToolCase Tool = iota
	ToolTrim
)

func (t Tool) String() string {
	if t == ToolTrim {
		return "Word Remover"
	}
	return "Case Converter"
}

// catalogID maps the tool to its catalog entry, which names the export file.
func (t Tool) catalogID() string {
	if t == ToolTrim {
		return catalog.WordRemover
	}
	return catalog.CaseConverter
}

// Options configures a Model.
type Options struct {
	Tool        Tool
	Mode        text.CaseMode
	Trim        text.TrimSpec
	InitialText string
	// ImportPath is the file loaded by the import key.
	ImportPath string
	// OutputDir receives saved output files. Empty means the working directory.
	OutputDir string
	CaseDelay time.Duration
	TrimDelay time.Duration
	Clipboard textio.Clipboard
	Logger    *slog.Logger
}

// recomputeMsg fires when a debounce delay elapses. Ticks whose generation
// no longer matches the model are stale and dropped.
type recomputeMsg struct{ gen uint64 }

type importedMsg struct {
	text string
	err  error
}

type savedMsg struct {
	path string
	err  error
}

type copiedMsg struct{ err error }

// Model is the bubbletea model.
type Model struct {
	keys   KeyMap
	tool   Tool
	mode   int
	trim   text.TrimSpec
	input  textarea.Model
	output viewport.Model
	result string
	status string
	gen    uint64

	opts   Options
	log    *slog.Logger
	width  int
	height int
}

// New builds a Model with the output already computed for InitialText.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = textio.SystemClipboard()
	}
	if opts.Trim == (text.TrimSpec{}) {
		opts.Trim = text.DefaultTrimSpec()
	}

	ta := textarea.New()
	ta.Placeholder = "Type or paste your text here..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetValue(opts.InitialText)
	ta.Focus()

	m := Model{
		keys:   DefaultKeyMap(),
		tool:   opts.Tool,
		trim:   opts.Trim.Normalized(),
		input:  ta,
		output: viewport.New(80, 8),
		opts:   opts,
		log:    opts.Logger,
	}
	if opts.Mode != "" {
		for i, info := range text.CaseModes() {
			if info.Mode == opts.Mode {
				m.mode = i
			}
		}
	}
	m.recompute()
	return m
}

// Output returns the current transformed text.
func (m Model) Output() string { return m.result }

// Input returns the current input buffer.
func (m Model) Input() string { return m.input.Value() }

// Status returns the status line.
func (m Model) Status() string { return m.status }

// Mode returns the selected case mode.
func (m Model) Mode() text.CaseMode { return text.CaseModes()[m.mode].Mode }

// TrimSpec returns the current removal settings.
func (m Model) TrimSpec() text.TrimSpec { return m.trim }

// Tool returns the active tool.
func (m Model) Tool() Tool { return m.tool }

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case recomputeMsg:
		if msg.gen == m.gen {
			m.recompute()
		}
		return m, nil

	case importedMsg:
		if msg.err != nil {
			m.log.Warn("import failed", slog.String("path", m.opts.ImportPath), slog.String("error", msg.err.Error()))
			m.status = "Import failed: " + msg.err.Error()
			return m, nil
		}
		m.input.SetValue(msg.text)
		m.recompute()
		m.status = fmt.Sprintf("Imported %s", m.opts.ImportPath)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.log.Error("save failed", slog.String("path", msg.path), slog.String("error", msg.err.Error()))
			m.status = "Save failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "Saved " + msg.path
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "Copied to clipboard"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.SwitchTool):
		if m.tool == ToolCase {
			m.tool = ToolTrim
		} else {
			m.tool = ToolCase
		}
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCmd()

	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()

	case key.Matches(msg, m.keys.Import):
		if m.opts.ImportPath == "" {
			m.status = "No import file; start with --in <file>"
			return m, nil
		}
		return m, importCmd(m.opts.ImportPath)

	case key.Matches(msg, m.keys.Focus):
		if m.input.Focused() {
			m.input.Blur()
			return m, nil
		}
		return m, m.input.Focus()
	}

	if m.tool == ToolCase {
		n := len(text.CaseModes())
		switch {
		case key.Matches(msg, m.keys.NextMode):
			m.mode = (m.mode + 1) % n
			m.recompute()
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.mode = (m.mode + n - 1) % n
			m.recompute()
			return m, nil
		}
	}

	if m.tool == ToolTrim {
		// Bare +/- are text while the input is focused.
		bare := msg.Type == tea.KeyRunes
		switch {
		case key.Matches(msg, m.keys.ToggleUnit):
			if m.trim.Unit == text.UnitWord {
				m.trim.Unit = text.UnitLetter
			} else {
				m.trim.Unit = text.UnitWord
			}
			m.recompute()
			return m, nil
		case key.Matches(msg, m.keys.ToggleSide):
			if m.trim.Side == text.SideLeft {
				m.trim.Side = text.SideRight
			} else {
				m.trim.Side = text.SideLeft
			}
			m.recompute()
			return m, nil
		case key.Matches(msg, m.keys.CountUp) && !(bare && m.input.Focused()):
			m.trim.Count++
			m.recompute()
			return m, nil
		case key.Matches(msg, m.keys.CountDown) && !(bare && m.input.Focused()):
			if m.trim.Count > 0 {
				m.trim.Count--
			}
			m.recompute()
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	tick := m.schedule()
	return m, tea.Batch(cmd, tick)
}

// schedule starts a new debounce window. Any tick already in flight is
// invalidated by the generation bump.
func (m *Model) schedule() tea.Cmd {
	m.gen++
	delay := m.delay()
	if delay <= 0 {
		m.recompute()
		return nil
	}
	gen := m.gen
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return recomputeMsg{gen: gen}
	})
}

func (m Model) delay() time.Duration {
	if m.tool == ToolTrim {
		return m.opts.TrimDelay
	}
	return m.opts.CaseDelay
}

// recompute applies the active tool to the whole input.
func (m *Model) recompute() {
	in := m.input.Value()
	if m.tool == ToolTrim {
		m.result = text.ApplyTrim(in, m.trim)
	} else {
		m.result = text.ApplyCase(in, m.Mode())
	}
	m.output.SetContent(m.result)
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	paneW := w - 4
	if paneW < 20 {
		paneW = 20
	}
	paneH := (h - 10) / 2
	if paneH < 3 {
		paneH = 3
	}
	m.input.SetWidth(paneW)
	m.input.SetHeight(paneH)
	m.output.Width = paneW
	m.output.Height = paneH
	m.output.SetContent(m.result)
}

// outputPath is where the save key writes the current output.
func (m Model) outputPath() string {
	return filepath.Join(m.opts.OutputDir, textio.DownloadName(m.tool.catalogID()))
}

func (m Model) copyCmd() tea.Cmd {
	cb, out, log := m.opts.Clipboard, m.result, m.log
	return func() tea.Msg {
		return copiedMsg{err: textio.Copy(cb, out, log)}
	}
}

func (m Model) saveCmd() tea.Cmd {
	path, out := m.outputPath(), m.result
	return func() tea.Msg {
		return savedMsg{path: path, err: textio.WriteFile(path, out, nil)}
	}
}

func importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		s, err := textio.ReadFile(path)
		return importedMsg{text: s, err: err}
	}
}

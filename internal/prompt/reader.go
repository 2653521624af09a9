package prompt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gatesim/internal/command"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Interactive reads lines with a terminal text input. Up and down walk the
// command history; keys listed as shortcuts end the read and are returned
// in Input.Shortcut.
type Interactive struct {
	history   *command.History
	shortcuts map[string]bool
	output    io.Writer
}

// NewInteractive creates an interactive reader over history. Shortcuts
// without a modifier, such as "delete", only fire on an empty line.
func NewInteractive(history *command.History, shortcuts []string) *Interactive {
	keys := make(map[string]bool, len(shortcuts))
	for _, s := range shortcuts {
		keys[s] = true
	}
	return &Interactive{history: history, shortcuts: keys, output: os.Stderr}
}

// NewReader returns an interactive reader when stdin is a terminal and a
// plain line reader otherwise
func NewReader(history *command.History, shortcuts []string, lines *Lines) LineReader {
	if !IsTerminal(os.Stdin) {
		return lines
	}
	return NewInteractive(history, shortcuts)
}

type inputModel struct {
	textInput textinput.Model
	history   *command.History
	shortcuts map[string]bool
	shortcut  string
	done      bool
	cancelled bool
}

func newInputModel(prompt string, history *command.History, shortcuts map[string]bool) inputModel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 80

	history.Reset()
	return inputModel{textInput: ti, history: history, shortcuts: shortcuts}
}

// ReadLine implements LineReader
func (r *Interactive) ReadLine(prompt string) (Input, error) {
	m := newInputModel(prompt, r.history, r.shortcuts)

	final, err := tea.NewProgram(m, tea.WithOutput(r.output)).Run()
	if err != nil {
		return Input{}, err
	}
	result, ok := final.(inputModel)
	if !ok {
		return Input{}, fmt.Errorf("unexpected model type from bubbletea: %T", final)
	}
	return result.input()
}

func (m inputModel) input() (Input, error) {
	if m.cancelled {
		return Input{}, io.EOF
	}
	if m.shortcut != "" {
		return Input{Shortcut: m.shortcut}, nil
	}
	return Input{Line: strings.TrimSpace(m.textInput.Value())}, nil
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	if name := key.String(); m.shortcuts[name] && (strings.Contains(name, "+") || m.textInput.Value() == "") {
		m.shortcut = name
		m.done = true
		return m, tea.Quit
	}

	switch key.Type {
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit

	case tea.KeyCtrlC:
		m.textInput.SetValue("")
		m.done = true
		return m, tea.Quit

	case tea.KeyCtrlD:
		m.cancelled = true
		m.textInput.SetValue("")
		m.done = true
		return m, tea.Quit

	case tea.KeyUp:
		m.textInput.SetValue(m.history.Up(m.textInput.Value()))
		m.textInput.CursorEnd()
		return m, nil

	case tea.KeyDown:
		m.textInput.SetValue(m.history.Down(m.textInput.Value()))
		m.textInput.CursorEnd()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	return m.textInput.View()
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/monkey/monkey"
)

var (
	accentColor    = lipgloss.Color("#B45309")
	successColor   = lipgloss.Color("#16A34A")
	errorColor     = lipgloss.Color("#DC2626")
	mutedColor     = lipgloss.Color("#78716C")
	highlightColor = lipgloss.Color("#EAB308")

	promptStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	resultStyle   = lipgloss.NewStyle().Foreground(successColor)
	errorStyle    = lipgloss.NewStyle().Foreground(errorColor)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	headerStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(0, 1)
	panelTitle    = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	helpKeyStyle  = lipgloss.NewStyle().Foreground(highlightColor)
	helpDescStyle = lipgloss.NewStyle().Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	session     *replSession
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	pending     []string
	prompt      string
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlV key.Binding
	CtrlH key.Binding
	Esc   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle vars"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
	Esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "discard continuation"),
	),
}

func newREPLModel(engine *monkey.Engine, prompt string) replModel {
	if prompt == "" {
		prompt = defaultPrompt
	}
	ti := textinput.New()
	ti.Placeholder = "type an expression..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = prompt

	return replModel{
		textInput:  ti,
		session:    newREPLSession(engine),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
		prompt:     prompt,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlV):
			m.showVars = !m.showVars
			return m, nil

		case key.Matches(msg, keys.CtrlH):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Esc):
			m = m.setPending(nil)
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			line := m.textInput.Value()
			input := strings.TrimSpace(line)
			if input == "" && len(m.pending) == 0 {
				return m, nil
			}

			if len(m.pending) == 0 && strings.HasPrefix(input, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			source := strings.Join(append(append([]string(nil), m.pending...), line), "\n")
			if needsMoreInput(source) {
				m = m.setPending(append(m.pending, line))
				m.textInput.SetValue("")
				return m, nil
			}

			output, isErr := m.evaluate(source)
			m.history = append(m.history, historyEntry{
				input:  strings.TrimSpace(source),
				output: output,
				isErr:  isErr,
			})
			m.cmdHistory = append(m.cmdHistory, strings.ReplaceAll(strings.TrimSpace(source), "\n", " "))
			m = m.setPending(nil)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// setPending records buffered continuation lines and switches the prompt to
// show that the submission is still open.
func (m replModel) setPending(lines []string) replModel {
	m.pending = lines
	if len(lines) == 0 {
		m.textInput.Prompt = m.prompt
	} else {
		m.textInput.Prompt = strings.Repeat(".", max(len([]rune(m.prompt))-1, 2)) + " "
	}
	return m
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	switch strings.Fields(input)[0] {
	case ":help", ":h":
		m.showHelp = !m.showHelp
		return m, nil
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
		return m, nil
	case ":vars", ":v":
		m.showVars = !m.showVars
		return m, nil
	}

	result := m.session.command(input)
	if result.quit {
		m.quitting = true
		return m, tea.Quit
	}
	m.history = append(m.history, historyEntry{
		input:  input,
		output: result.output,
		isErr:  result.isErr,
	})
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	start := len(input)
	for start > 0 && isCompletionByte(input[start-1]) {
		start--
	}
	lastWord := input[start:]
	completions := m.session.completions(lastWord)

	if len(completions) == 1 {
		m.textInput.SetValue(input[:start] + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}

	return m
}

func isCompletionByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (m replModel) evaluate(input string) (string, bool) {
	output, outcome := m.session.eval(context.Background(), input)
	return output, outcome != outcomeValue
}

// needsMoreInput reports whether source stops in the middle of a construct,
// such as an unclosed block or call.
func needsMoreInput(source string) bool {
	_, errs := monkey.ParseProgram(source)
	return errs.Incomplete()
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("Monkey REPL")
	version := mutedStyle.Render("v" + monkey.Version)
	b.WriteString(header + " " + version + "\n")
	b.WriteString(mutedStyle.Render(replBanner) + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	vars := m.session.vars()
	reservedLines := 9
	if m.showHelp {
		reservedLines += len(replCommands) + 6
	}
	if m.showVars {
		reservedLines += len(vars) + 3
	}
	reservedLines += len(m.pending)
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}
	historyStart = min(max(historyStart, 0), len(m.history))

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(renderVarsPanel(vars))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	for _, line := range m.pending {
		b.WriteString(mutedStyle.Render("  │ ") + line + "\n")
	}
	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" vars  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderVarsPanel(vars []varEntry) string {
	if len(vars) == 0 {
		return borderStyle.Render(mutedStyle.Render("No variables defined"))
	}

	var lines []string
	lines = append(lines, panelTitle.Render("Variables"))
	varNameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, v := range vars {
		lines = append(lines, fmt.Sprintf("  %s = %s", varNameStyle.Render(v.Name), v.Value))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate command history"},
		{"Tab", "Autocomplete"},
		{"Enter", "Execute, or continue an open block"},
		{"Esc", "Discard continuation lines"},
	}
	help = append(help, replCommands...)

	var lines []string
	lines = append(lines, panelTitle.Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-14s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "path to a YAML config file")
	plain := fs.Bool("plain", false, "use a line-editing prompt instead of the full-screen UI")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return errors.New("monkey repl: unexpected arguments")
	}

	settings, err := loadSettings(*configPath)
	if err != nil {
		return err
	}
	engine, err := monkey.NewEngine(settings.Limits())
	if err != nil {
		return err
	}
	if *plain || settings.REPL.Plain {
		return runLineREPL(engine, settings.REPL)
	}
	return runREPL(engine, settings.REPL.Prompt)
}

func runREPL(engine *monkey.Engine, prompt string) error {
	p := tea.NewProgram(newREPLModel(engine, prompt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/brewin/brewin"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

const (
	mainPrompt         = "brewin> "
	continuationPrompt = "   ...> "
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

// replClass is one class form entered in the session, kept in entry order.
type replClass struct {
	name string
	form *brewin.List
}

type replModel struct {
	textInput   textinput.Model
	mode        brewin.Mode
	classes     []replClass
	pending     []string
	partial     string
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showClasses bool
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
	CtrlR key.Binding
	CtrlH key.Binding
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
		key.WithHelp("enter", "define"),
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
	CtrlR: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "run"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

var replKeywords = []string{
	"class", "field", "method", "begin", "if", "while", "set", "print",
	"inputi", "inputs", "return", "call", "new", "me", "true", "false", "null",
	"let", "inherits", "super", "int", "bool", "string", "void",
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "(class main (method main () (print \"hi\")))"
	ti.Focus()
	ti.CharLimit = 4000
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = mainPrompt

	return replModel{
		textInput:  ti,
		mode:       brewin.ModeExtended,
		classes:    make([]replClass, 0),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
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

		case key.Matches(msg, keys.CtrlR):
			m = m.run(":run")
			return m, nil

		case key.Matches(msg, keys.CtrlH):
			m.showHelp = !m.showHelp
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
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			if m.partial == "" && strings.HasPrefix(input, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.cmdHistory = append(m.cmdHistory, input)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			m = m.define(input)
			m.cmdHistory = append(m.cmdHistory, input)
			m.textInput.SetValue("")
			m.historyIdx = -1
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":classes", ":l":
		m.showClasses = !m.showClasses
	case ":input", ":i":
		line := strings.TrimSpace(strings.TrimPrefix(input, cmd))
		m.pending = append(m.pending, line)
		m = m.record(input, fmt.Sprintf("queued input line %d", len(m.pending)), false)
	case ":run", ":r":
		m = m.run(input)
	case ":mode", ":m":
		m = m.switchMode(input, parts[1:])
	case ":reset":
		m.classes = make([]replClass, 0)
		m.pending = nil
		m.partial = ""
		m.textInput.Prompt = mainPrompt
		m = m.record(input, "Session reset", false)
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m = m.record(input, fmt.Sprintf("Unknown command: %s", cmd), true)
	}
	return m, nil
}

func (m replModel) record(input, output string, isErr bool) replModel {
	m.history = append(m.history, historyEntry{input: input, output: output, isErr: isErr})
	return m
}

// define reads class forms from input. A line that leaves a list open is
// held until the forms are complete.
func (m replModel) define(input string) replModel {
	source := input
	if m.partial != "" {
		source = m.partial + "\n" + input
	}

	prog, err := brewin.Parse(source)
	if err != nil {
		if incomplete(err) {
			m.partial = source
			m.textInput.Prompt = continuationPrompt
			return m
		}
		m.partial = ""
		m.textInput.Prompt = mainPrompt
		return m.record(input, err.Error(), true)
	}
	m.partial = ""
	m.textInput.Prompt = mainPrompt

	defined := make([]string, 0, len(prog.Forms))
	for _, form := range prog.Forms {
		name, ok := className(form)
		if !ok {
			return m.record(input, "only class definitions can be entered; got "+brewin.Format(form), true)
		}
		m = m.upsertClass(name, form.(*brewin.List))
		defined = append(defined, name)
	}
	if len(defined) == 0 {
		return m
	}
	return m.record(input, "defined "+strings.Join(defined, ", "), false)
}

func incomplete(err error) bool {
	var brewinErr *brewin.Error
	if !errors.As(err, &brewinErr) {
		return false
	}
	return brewinErr.Message == "unterminated list" || brewinErr.Message == "unterminated string"
}

func className(form brewin.Node) (string, bool) {
	list, ok := form.(*brewin.List)
	if !ok || len(list.Items) < 2 {
		return "", false
	}
	head, ok := list.Items[0].(*brewin.Atom)
	if !ok || head.Quoted || head.Text != "class" {
		return "", false
	}
	name, ok := list.Items[1].(*brewin.Atom)
	if !ok || name.Quoted {
		return "", false
	}
	return name.Text, true
}

func (m replModel) upsertClass(name string, form *brewin.List) replModel {
	classes := make([]replClass, 0, len(m.classes)+1)
	replaced := false
	for _, c := range m.classes {
		if c.name == name {
			c.form = form
			replaced = true
		}
		classes = append(classes, c)
	}
	if !replaced {
		classes = append(classes, replClass{name: name, form: form})
	}
	m.classes = classes
	return m
}

// programSource renders the session's classes one per line, so an error on
// line N points at the Nth class.
func (m replModel) programSource() string {
	lines := make([]string, len(m.classes))
	for i, c := range m.classes {
		lines[i] = brewin.Format(c.form)
	}
	return strings.Join(lines, "\n")
}

// run loads the session's classes and runs main against the queued input.
// The queue is consumed whether or not the run succeeds.
func (m replModel) run(input string) replModel {
	pending := m.pending
	m.pending = nil

	engine, err := brewin.NewEngine(brewin.Config{Mode: m.mode})
	if err != nil {
		return m.record(input, err.Error(), true)
	}
	script, err := engine.Compile(m.programSource())
	if err != nil {
		return m.record(input, err.Error(), true)
	}
	lines, err := script.Run(context.Background(), brewin.RunOptions{
		Input: brewin.NewLineInput(pending...),
	})
	output := strings.Join(lines, "\n")
	if err != nil {
		if output != "" {
			output += "\n"
		}
		return m.record(input, output+err.Error(), true)
	}
	if output == "" {
		output = "(no output)"
	}
	return m.record(input, output, false)
}

func (m replModel) switchMode(input string, args []string) replModel {
	if len(args) == 0 {
		return m.record(input, "mode "+m.mode.String(), false)
	}
	switch args[0] {
	case "v1", "base":
		m.mode = brewin.ModeBase
	case "v2", "extended":
		m.mode = brewin.ModeExtended
	default:
		return m.record(input, fmt.Sprintf("unknown mode %q (want v1 or v2)", args[0]), true)
	}
	return m.record(input, "mode "+m.mode.String(), false)
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	start := strings.LastIndexAny(input, " ()\t") + 1
	lastWord := input[start:]
	if lastWord == "" {
		return m
	}

	candidates := append([]string(nil), replKeywords...)
	for _, c := range m.classes {
		candidates = append(candidates, c.name)
	}

	seen := make(map[string]struct{})
	var completions []string
	for _, candidate := range candidates {
		if _, ok := seen[candidate]; ok {
			continue
		}
		if strings.HasPrefix(candidate, lastWord) {
			seen[candidate] = struct{}{}
			completions = append(completions, candidate)
		}
	}
	sort.Strings(completions)

	if len(completions) == 1 {
		m.textInput.SetValue(input[:start] + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m = m.record("", "Completions: "+strings.Join(completions, ", "), false)
	}

	return m
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("Brewin REPL")
	mode := mutedStyle.Render(m.mode.String())
	b.WriteString(header + " " + mode + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 12
	}
	if m.showClasses {
		reservedLines += len(m.classes) + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if availableHeight < 0 {
		historyStart = len(m.history)
	} else if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

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

	if m.showClasses {
		b.WriteString(renderClassesPanel(m.classes, m.pending))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+r") + helpDescStyle.Render(" run  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderClassesPanel(classes []replClass, pending []string) string {
	if len(classes) == 0 {
		return borderStyle.Render(mutedStyle.Render("No classes defined"))
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Classes"))
	for _, c := range classes {
		lines = append(lines, brewin.Pretty(c.form))
	}
	if len(pending) > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d queued input line(s)", len(pending))))
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
		{"Enter", "Define or replace classes"},
		{":input", "Queue a line for inputi/inputs"},
		{":run", "Run main with the queued input"},
		{":mode", "Show or set the mode (v1, v2)"},
		{":classes", "Toggle the classes panel"},
		{":help", "Toggle this help"},
		{":clear", "Clear history"},
		{":reset", "Forget all classes and input"},
		{":quit", "Exit REPL"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL() error {
	p := tea.NewProgram(newREPLModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Package tui is the interactive host for the bill command interpreter.
// It owns the message log and the command history; the interpreter only
// turns a line into messages.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmynk/billsplit/internal/terminal"
)

// Executor runs one input line. *terminal.Interpreter implements it.
type Executor interface {
	Execute(ctx context.Context, line string) terminal.Output
}

// batchDoneMsg carries the result of a finished batch.
type batchDoneMsg struct {
	out terminal.Output
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	systemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	busyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Model is the bubbletea model of the terminal window.
type Model struct {
	ctx   context.Context
	exec  Executor
	title string

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	ready    bool
	width    int

	messages []terminal.Message
	history  []string
	// historyIndex counts back from the newest entry; -1 means not browsing.
	historyIndex int
	processing   bool
}

// New creates the model. title is shown in the header, typically the
// signed-in user.
func New(ctx context.Context, exec Executor, title string) Model {
	input := textinput.New()
	input.Prompt = promptStyle.Render("$") + " "
	input.Placeholder = "Type a command (help for list)"
	input.Focus()

	return Model{
		ctx:          ctx,
		exec:         exec,
		title:        title,
		input:        input,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(busyStyle)),
		messages:     []terminal.Message{{Kind: terminal.KindSystem, Text: terminal.Welcome}},
		historyIndex: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := max(msg.Height-3, 1) // title, blank line, input
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.input.Width = max(msg.Width-4, 10)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case batchDoneMsg:
		m.processing = false
		if msg.out.Cleared {
			m.messages = nil
		}
		m.messages = append(m.messages, msg.out.Messages...)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.processing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		// One batch at a time.
		if m.processing {
			return m, nil
		}
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if line == "" {
			return m, nil
		}
		m.history = append(m.history, line)
		m.historyIndex = -1
		m.processing = true
		return m, tea.Batch(m.run(line), m.spinner.Tick)

	case tea.KeyUp:
		if len(m.history) > 0 {
			m.historyIndex = min(m.historyIndex+1, len(m.history)-1)
			m.input.SetValue(m.history[len(m.history)-1-m.historyIndex])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		switch {
		case m.historyIndex > 0:
			m.historyIndex--
			m.input.SetValue(m.history[len(m.history)-1-m.historyIndex])
			m.input.CursorEnd()
		case m.historyIndex == 0:
			m.historyIndex = -1
			m.input.Reset()
		}
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// run executes a batch off the update loop.
func (m Model) run(line string) tea.Cmd {
	ctx, exec := m.ctx, m.exec
	return func() tea.Msg {
		return batchDoneMsg{out: exec.Execute(ctx, line)}
	}
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m Model) renderLog() string {
	wrap := lipgloss.NewStyle()
	if m.width > 0 {
		wrap = wrap.Width(m.width)
	}

	lines := make([]string, len(m.messages))
	for i, msg := range m.messages {
		lines[i] = wrap.Inherit(styleFor(msg.Kind)).Render(msg.Text)
	}
	return strings.Join(lines, "\n")
}

func styleFor(kind terminal.Kind) lipgloss.Style {
	switch kind {
	case terminal.KindUser:
		return userStyle
	case terminal.KindSuccess:
		return successStyle
	case terminal.KindError:
		return errorStyle
	default:
		return systemStyle
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := titleStyle.Render("Bill Terminal")
	if m.title != "" {
		header += " " + systemStyle.Render(m.title)
	}

	footer := m.input.View()
	if m.processing {
		footer = m.spinner.View() + busyStyle.Render(" Processing command...")
	}
	return header + "\n" + m.viewport.View() + "\n\n" + footer
}

// Messages returns the current log.
func (m Model) Messages() []terminal.Message {
	return m.messages
}

// Run starts the interactive terminal and blocks until the user quits.
func Run(ctx context.Context, exec Executor, title string) error {
	program := tea.NewProgram(New(ctx, exec, title), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/flapmsg/internal/api"
	"github.com/diogo/flapmsg/internal/editor"
	apierrors "github.com/diogo/flapmsg/internal/errors"
	"github.com/diogo/flapmsg/internal/history"
)

// Message types for the TUI
type (
	// eventMsg carries an editor event back into Update
	eventMsg struct {
		ev editor.Event
	}
	copiedMsg struct {
		err error
	}
)

// HistoryRecorder defines the history operation needed by the TUI
type HistoryRecorder interface {
	Record(ctx context.Context, e history.Entry) (history.Entry, error)
}

// Model represents the TUI state
type Model struct {
	ctx      context.Context
	client   api.MessageClientInterface
	recorder HistoryRecorder
	logger   *slog.Logger
	copyFn   func(string) error

	state editor.State

	// UI components
	input    textinput.Model
	viewport viewport.Model
	display  string

	showHelp   bool
	helpText   string
	notice     string
	noticeFail bool
	ready      bool

	width  int
	height int
}

// NewEditorModel creates the editor model. recorder and logger may be nil.
func NewEditorModel(ctx context.Context, client api.MessageClientInterface, opts editor.Options, recorder HistoryRecorder, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Type a new message and press Enter..."
	ti.Focus()
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextDim)

	vp := viewport.New(76, 8)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}

	return Model{
		ctx:      ctx,
		client:   client,
		recorder: recorder,
		logger:   logger,
		copyFn:   clipboard.WriteAll,
		state:    editor.New(opts),
		input:    ti,
		viewport: vp,
	}
}

// State returns the editor state
func (m Model) State() editor.State {
	return m.state
}

// Init starts the editor and its initial load
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		func() tea.Msg { return eventMsg{ev: editor.Mounted{}} },
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		inputHeight := 5
		statusHeight := 2
		padding := 3

		contentWidth := m.width - 4
		if contentWidth < 20 {
			contentWidth = 20
		}
		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 3 {
			vpHeight = 3
		}

		m.viewport.Width = contentWidth - 4
		m.viewport.Height = vpHeight
		m.input.Width = contentWidth - 4
		m.ready = true
		m.refreshDisplay()
		if m.showHelp {
			m.helpText = renderHelp(contentWidth - 6)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.showHelp {
				m.showHelp = false
				return m, nil
			}
			return m, tea.Quit

		case "f1":
			m.showHelp = !m.showHelp
			if m.showHelp {
				m.helpText = renderHelp(m.viewport.Width)
			}
			return m, nil

		case "ctrl+y":
			return m, m.copyDisplay()

		case "enter":
			if m.showHelp {
				return m, nil
			}
			return m.dispatch(editor.KeyPressed{Key: editor.KeyConfirm})

		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if m.showHelp {
			return m, nil
		}

		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)

		var next tea.Model
		next, cmd = m.dispatch(editor.InputChanged{Text: m.input.Value()})
		cmds = append(cmds, cmd)
		return next, tea.Batch(cmds...)

	case eventMsg:
		return m.dispatch(msg.ev)

	case copiedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("copy failed: %v", msg.err)
			m.noticeFail = true
		} else {
			m.notice = "copied to clipboard"
			m.noticeFail = false
		}
		return m, nil
	}

	// Cursor blink and other component messages
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch runs one event through the reducer and turns the resulting
// effects into commands
func (m Model) dispatch(ev editor.Event) (tea.Model, tea.Cmd) {
	var effects []editor.Effect
	m.state, effects = editor.Reduce(m.state, ev)

	if m.input.Value() != m.state.Input {
		m.input.SetValue(m.state.Input)
	}
	if _, ok := ev.(editor.KeyPressed); ok {
		m.notice = ""
	}
	m.refreshDisplay()

	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff := eff.(type) {
		case editor.Fetch:
			cmds = append(cmds, m.fetch(eff.Seq))
		case editor.Submit:
			cmds = append(cmds, m.submit(eff.Seq, eff.Body))
		case editor.LogFailure:
			m.logger.Error("request failed",
				"seq", eff.Seq,
				"op", eff.Op,
				"api_base", m.client.APIBase(),
				"status", apierrors.GetHTTPStatus(eff.Err),
				"error", eff.Err,
			)
		case editor.LogStale:
			m.logger.Warn("discarded stale response",
				"seq", eff.Seq,
				"op", eff.Op,
				"latest", eff.Latest,
			)
		}
	}

	return m, tea.Batch(cmds...)
}

// fetch creates a command that reads the current message
func (m Model) fetch(seq uint64) tea.Cmd {
	return func() tea.Msg {
		body, err := m.client.GetMessage(m.ctx)
		m.record(history.Entry{Op: history.OpFetch, Received: body}, err)
		if err != nil {
			return eventMsg{ev: editor.FetchFailed{Seq: seq, Err: err}}
		}
		return eventMsg{ev: editor.FetchSucceeded{Seq: seq, Body: body}}
	}
}

// submit creates a command that replaces the message with text
func (m Model) submit(seq uint64, text string) tea.Cmd {
	return func() tea.Msg {
		body, err := m.client.PutMessage(m.ctx, text)
		m.record(history.Entry{Op: history.OpPut, Sent: text, Received: body}, err)
		if err != nil {
			return eventMsg{ev: editor.SubmitFailed{Seq: seq, Err: err}}
		}
		return eventMsg{ev: editor.SubmitSucceeded{Seq: seq, Body: body}}
	}
}

func (m Model) record(e history.Entry, err error) {
	if m.recorder == nil {
		return
	}
	e.Source = "tui"
	if err != nil {
		e.Error = err.Error()
	}
	if _, rerr := m.recorder.Record(m.ctx, e); rerr != nil {
		m.logger.Warn("history record failed", "op", e.Op, "error", rerr)
	}
}

func (m Model) copyDisplay() tea.Cmd {
	text := m.state.Text()
	copyFn := m.copyFn
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}

// refreshDisplay puts the displayed value into the viewport verbatim
func (m *Model) refreshDisplay() {
	text := m.state.Text()
	style := displayTextStyle
	if m.state.Display.Kind == editor.Errored {
		style = sentinelStyle
	}
	m.display = style.Width(m.viewport.Width).Render(text)
	m.viewport.SetContent(m.display)
}

// displayView renders the scrolled window of the display. viewport.View
// re-renders its content with a default style that expands tabs.
func (m Model) displayView() string {
	lines := strings.Split(m.display, "\n")
	top := min(m.viewport.YOffset, len(lines))
	bottom := min(top+m.viewport.Height, len(lines))

	return lipgloss.NewStyle().
		Width(m.viewport.Width).
		Height(m.viewport.Height).
		MaxWidth(m.viewport.Width).
		MaxHeight(m.viewport.Height).
		TabWidth(lipgloss.NoTabConversion).
		Render(strings.Join(lines[top:bottom], "\n"))
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return hintStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	var sections []string

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("▤ flapmsg"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.client.APIBase()),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(header))

	if m.showHelp {
		sections = append(sections, helpPanelStyle.Width(contentWidth).Render(m.helpText))
	} else {
		sections = append(sections, displayPanelStyle.
			Width(contentWidth).
			Height(m.viewport.Height).
			Render(m.displayView()))

		inputContent := lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("Message"),
			m.input.View(),
		)
		sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Commit"},
		{"Ctrl+Y", "Copy"},
		{"F1", "Help"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(items, statusDescStyle.Render("  │  "))
	if m.notice != "" {
		style := noticeStyle
		if m.noticeFail {
			style = noticeErrStyle
		}
		bar = lipgloss.JoinVertical(lipgloss.Center, bar, style.Render(m.notice))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// RunEditor starts the editor TUI
func RunEditor(ctx context.Context, client api.MessageClientInterface, opts editor.Options, recorder HistoryRecorder, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewEditorModel(ctx, client, opts, recorder, logger)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}

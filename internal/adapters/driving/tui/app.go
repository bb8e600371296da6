package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zainraz03/agentic-assistant/internal/adapters/driving/tui/components/input"
	"github.com/zainraz03/agentic-assistant/internal/adapters/driving/tui/components/status"
	"github.com/zainraz03/agentic-assistant/internal/adapters/driving/tui/keymap"
	"github.com/zainraz03/agentic-assistant/internal/adapters/driving/tui/messages"
	"github.com/zainraz03/agentic-assistant/internal/adapters/driving/tui/styles"
	"github.com/zainraz03/agentic-assistant/internal/core/domain"
)

// Lines taken by the header, mode tabs, input box and status bar.
const chromeHeight = 7

// App is the chat TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	input     *input.QueryInput
	statusBar *status.Bar
	viewport  viewport.Model

	// modes are the tabs, in router order.
	modes   []domain.Mode
	modeIdx int

	// transcript holds rendered question and answer blocks.
	transcript []string

	// busy is set while a query or ingest is in flight.
	busy bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	modes := ports.Router.Modes()
	if len(modes) == 0 {
		modes = []domain.Mode{domain.ModeGeneral}
	}

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		keymap:    km,
		input:     input.NewQueryInput(s),
		statusBar: status.NewBar(s, km),
		viewport:  viewport.New(80, 20),
		modes:     modes,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("assistant"),
		a.input.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(k, a.keymap.Submit):
			return a, a.submit()
		case keymap.Matches(k, a.keymap.NextMode):
			return a, a.shiftMode(1)
		case keymap.Matches(k, a.keymap.PrevMode):
			return a, a.shiftMode(-1)
		case keymap.Matches(k, a.keymap.Ingest):
			return a, a.ingest()
		case keymap.Matches(k, a.keymap.Clear):
			a.transcript = nil
			a.refreshTranscript()
			return a, nil
		case keymap.Matches(k, a.keymap.ScrollUp), keymap.Matches(k, a.keymap.ScrollDown):
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		}
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case messages.QueryAnswered:
		a.busy = false
		a.err = msg.Err
		a.appendAnswer(msg)
		if msg.Err != nil {
			a.statusBar.SetState(status.StateError, msg.Err.Error())
		} else {
			a.statusBar.SetState(status.StateDone, msg.Result.Mode.Label())
		}
		return a, nil

	case messages.IngestCompleted:
		a.busy = false
		a.err = msg.Err
		if msg.Err != nil {
			a.statusBar.SetState(status.StateError, msg.Err.Error())
			return a, nil
		}
		r := msg.Report
		summary := fmt.Sprintf("Ingested %d files, %d chunks", r.Files, r.Chunks)
		if len(r.Warnings) > 0 {
			summary += fmt.Sprintf(" (%d warnings)", len(r.Warnings))
		}
		a.transcript = append(a.transcript, a.styles.Muted.Render(summary))
		a.refreshTranscript()
		a.statusBar.SetState(status.StateDone, summary)
		return a, nil

	case messages.ModeChanged:
		for i, m := range a.modes {
			if m == msg.Mode {
				a.modeIdx = i
			}
		}
		return a, nil
	}

	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit sends the current input to the router.
func (a *App) submit() tea.Cmd {
	query := strings.TrimSpace(a.input.Value())
	if query == "" || a.busy {
		return nil
	}
	a.busy = true
	a.input.Reset()
	a.statusBar.SetState(status.StateThinking, "")

	router := a.ports.Router
	ctx := a.ctx
	mode := a.Mode()
	return func() tea.Msg {
		res, err := router.Route(ctx, query, mode)
		return messages.QueryAnswered{Query: query, Mode: mode, Result: res, Err: err}
	}
}

// ingest re-runs ingestion of the document directory.
func (a *App) ingest() tea.Cmd {
	if a.ports.Ingestor == nil || a.ports.DocumentDir == "" || a.busy {
		return nil
	}
	a.busy = true
	a.statusBar.SetState(status.StateIngesting, "")

	ingestor := a.ports.Ingestor
	ctx := a.ctx
	dir := a.ports.DocumentDir
	return func() tea.Msg {
		report, err := ingestor.Ingest(ctx, dir)
		return messages.IngestCompleted{Report: report, Err: err}
	}
}

func (a *App) shiftMode(delta int) tea.Cmd {
	n := len(a.modes)
	a.modeIdx = ((a.modeIdx+delta)%n + n) % n
	mode := a.modes[a.modeIdx]
	return func() tea.Msg { return messages.ModeChanged{Mode: mode} }
}

func (a *App) appendAnswer(msg messages.QueryAnswered) {
	var b strings.Builder
	b.WriteString(a.styles.Query.Render(fmt.Sprintf("[%s] %s", msg.Mode.Label(), msg.Query)))
	b.WriteString("\n")
	if msg.Err != nil {
		b.WriteString(a.styles.Error.Render(msg.Err.Error()))
	} else {
		b.WriteString(a.styles.Answer.Render(msg.Result.Text))
		for _, src := range msg.Result.Sources {
			b.WriteString("\n")
			b.WriteString(a.styles.Source.Render(
				fmt.Sprintf("  %s p.%d (%.2f)", src.Metadata.Filename, src.Metadata.Page, src.Score)))
		}
	}
	a.transcript = append(a.transcript, b.String())
	a.refreshTranscript()
}

func (a *App) refreshTranscript() {
	a.viewport.SetContent(strings.Join(a.transcript, "\n\n"))
	a.viewport.GotoBottom()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	tabs := make([]string, 0, len(a.modes))
	for i, m := range a.modes {
		if i == a.modeIdx {
			tabs = append(tabs, a.styles.ModeActive.Render(m.Label()))
		} else {
			tabs = append(tabs, a.styles.ModeInactive.Render(m.Label()))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("assistant"),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		a.styles.Transcript.Render(a.viewport.View()),
		a.input.View(),
		a.statusBar.View(),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Mode returns the selected mode.
func (a *App) Mode() domain.Mode {
	return a.modes[a.modeIdx]
}

// Modes returns the mode tabs.
func (a *App) Modes() []domain.Mode {
	return a.modes
}

// Transcript returns the rendered transcript blocks.
func (a *App) Transcript() []string {
	return a.transcript
}

// Busy reports whether a query or ingest is running.
func (a *App) Busy() bool {
	return a.busy
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// Input exposes the query input.
func (a *App) Input() *input.QueryInput {
	return a.input
}

// StatusBar exposes the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.input.SetWidth(width)
	a.statusBar.SetWidth(width)
	a.viewport.Width = width
	vh := height - chromeHeight
	if vh < 3 {
		vh = 3
	}
	a.viewport.Height = vh
}

// Package tui is the interactive terminal front end. It renders coordinator
// snapshots and turns key presses into coordinator calls; it holds no
// listing or favorites state of its own.
package tui

import (
	"context"
	"property-viewer/internal/contextkeys"
	"property-viewer/internal/core/coordinator"
	"property-viewer/internal/core/domain"
	"property-viewer/internal/core/port"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Controller is the part of the coordinator the UI drives.
type Controller interface {
	Snapshot() coordinator.State
	Retry(ctx context.Context)
	SelectUser(ctx context.Context, userID string)
	StartToggle(ctx context.Context, propertyID string) bool
}

type stateChangedMsg struct{}

// Notifier coalesces coordinator change callbacks into a signal the UI loop
// waits on. Notify never blocks.
type Notifier struct {
	ch chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan struct{}, 1)}
}

// Notify matches coordinator.WithOnChange.
func (n *Notifier) Notify(coordinator.State) {
	select {
	case n.ch <- struct{}{}:
	default:
		// A refresh is already pending and will read the newest snapshot.
	}
}

// Model is the bubbletea model of the viewer.
type Model struct {
	ctx     context.Context
	ctrl    Controller
	changes <-chan struct{}
	logger  port.LoggerPort

	state    coordinator.State
	cursor   int
	spinner  spinner.Model
	spinning bool
	styles   Styles
	width    int
}

func NewModel(ctx context.Context, ctrl Controller, notifier *Notifier, logger port.LoggerPort) Model {
	if logger == nil {
		logger = contextkeys.NoopLogger()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = DefaultStyles().Price

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		changes:  notifier.ch,
		logger:   logger.WithFields(port.Fields{"component": "tui"}),
		state:    ctrl.Snapshot(),
		spinner:  sp,
		spinning: true,
		styles:   DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForChange())
}

// waitForChange listens for coordinator updates.
func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changes:
			return stateChangedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case stateChangedMsg:
		m.refresh()
		cmd := tea.Batch(m.waitForChange(), m.ensureSpinner())
		return m, cmd

	case spinner.TickMsg:
		if !m.state.Loading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "r":
		if m.state.LoadError == "" || m.state.Loading {
			return m, nil
		}
		m.logger.Info("Retry requested", nil)
		m.ctrl.Retry(m.ctx)

	case "u":
		m.cycleUser(1)

	case "U":
		m.cycleUser(-1)

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.state.Properties)-1 {
			m.cursor++
		}
		return m, nil

	case "f", "enter":
		property, ok := m.highlighted()
		if !ok || m.state.FavoritesDisabled() {
			return m, nil
		}
		m.ctrl.StartToggle(m.ctx, property.ID)

	default:
		return m, nil
	}

	m.refresh()
	cmd := m.ensureSpinner()
	return m, cmd
}

// cycleUser moves the selection through "nobody" followed by every user.
func (m *Model) cycleUser(step int) {
	options := make([]string, 0, len(m.state.Users)+1)
	options = append(options, "")
	current := 0
	for i, u := range m.state.Users {
		options = append(options, u.ID)
		if u.ID == m.state.SelectedUserID {
			current = i + 1
		}
	}
	if len(options) == 1 && m.state.SelectedUserID == "" {
		return
	}
	next := (current + step + len(options)) % len(options)
	m.ctrl.SelectUser(m.ctx, options[next])
}

func (m Model) highlighted() (domain.Property, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Properties) {
		return domain.Property{}, false
	}
	return m.state.Properties[m.cursor], true
}

func (m *Model) refresh() {
	m.state = m.ctrl.Snapshot()
	if m.cursor >= len(m.state.Properties) {
		m.cursor = len(m.state.Properties) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) ensureSpinner() tea.Cmd {
	if !m.state.Loading || m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// State is the snapshot currently on screen.
func (m Model) State() coordinator.State {
	return m.state
}

// Cursor is the index of the highlighted property.
func (m Model) Cursor() int {
	return m.cursor
}

// Package tui renders a live view of the timer in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tomatoclock/tomato/internal/timeutil"
	"github.com/tomatoclock/tomato/timer"
)

const (
	padding  = 2
	maxWidth = 60

	requestTimeout = 2 * time.Second
)

// FetchFunc returns the current timer state.
type FetchFunc func(ctx context.Context) (timer.Snapshot, error)

// SendFunc submits a command and returns the resulting state.
type SendFunc func(ctx context.Context, cmd timer.Command) (timer.Snapshot, error)

type (
	tickMsg     time.Time
	snapshotMsg struct {
		snap timer.Snapshot
		err  error
	}
)

type styles struct {
	base   lipgloss.Style
	main   lipgloss.Style
	hint   lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		base:   lipgloss.NewStyle().Padding(1, padding),
		main:   lipgloss.NewStyle().Bold(true),
		hint:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		status: lipgloss.NewStyle().Italic(true),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")),
	}
}

// Model is the bubbletea model behind `tomato watch`.
type Model struct {
	fetch    FetchFunc
	send     SendFunc
	interval time.Duration

	snap timer.Snapshot
	err  error

	progress progress.Model
	help     help.Model
	style    styles
}

// New returns a model that polls fetch every interval and sends key
// commands through send.
func New(fetch FetchFunc, send SendFunc, interval time.Duration) *Model {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	return &Model{
		fetch:    fetch,
		send:     send,
		interval: interval,
		snap:     timer.Snapshot{State: timer.Idle},
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
		style:    defaultStyles(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.tick())
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		snap, err := m.fetch(ctx)

		return snapshotMsg{snap: snap, err: err}
	}
}

func (m *Model) submit(cmd timer.Command) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		snap, err := m.send(ctx, cmd)

		return snapshotMsg{snap: snap, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tea.Batch(m.refresh(), m.tick())

	case snapshotMsg:
		m.err = msg.err
		if msg.err == nil {
			m.snap = msg.snap
		}

		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)

		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.quit):
		return m, tea.Quit

	case key.Matches(msg, defaultKeymap.togglePlay):
		switch m.snap.State {
		case timer.Running:
			return m, m.submit(timer.Pause())
		case timer.Paused:
			return m, m.submit(timer.Resume())
		}

	case key.Matches(msg, defaultKeymap.skip):
		if m.snap.Active() {
			return m, m.submit(timer.Skip())
		}

	case key.Matches(msg, defaultKeymap.stop):
		return m, m.submit(timer.Stop())
	}

	return m, nil
}

func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.headerView())
	s.WriteString("\n\n")

	if m.snap.Active() {
		s.WriteString(m.style.main.Render(timeutil.Clock(m.snap.Remaining())))
		s.WriteString("\n\n")
		s.WriteString(m.progress.ViewAs(m.snap.Progress()))
		s.WriteString("\n")
	}

	if m.err != nil {
		s.WriteString("\n" + m.style.err.Render(m.err.Error()) + "\n")
	}

	s.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.skip,
		defaultKeymap.stop,
		defaultKeymap.quit,
	}))

	return m.style.base.Render(s.String())
}

func (m *Model) headerView() string {
	phase := m.snap.CurrentPhase

	switch {
	case m.snap.State == timer.Completed:
		return m.style.main.Render("Cycle completed")
	case phase == nil:
		return m.style.main.Render("Idle")
	}

	title := m.style.main
	if phase.Color != "" {
		title = title.Foreground(lipgloss.Color(phase.Color))
	}

	header := title.Render(strings.TrimSpace(phase.Icon + " " + phase.Name))

	if m.snap.CurrentStatus != nil {
		header += " " + m.style.status.Render(m.snap.CurrentStatus.Name)
	}

	if m.snap.State == timer.Paused {
		header += " " + m.style.hint.Render("[Paused]")
	}

	if w := m.snap.CurrentWorkflow; w != nil {
		idx := w.IndexOf(phase.Name)
		header += "\n" + m.style.hint.Render(
			fmt.Sprintf("%s (%d/%d)", w.Name, idx+1, len(w.Phases)),
		)
	}

	return header
}

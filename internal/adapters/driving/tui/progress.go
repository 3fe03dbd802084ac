// Package tui renders generation progress as an interactive terminal
// progress bar. It follows the Elm architecture via Bubbletea.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
)

// pollInterval is how often the model queries generation status.
const pollInterval = 120 * time.Millisecond

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	stepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// StatusFunc reports the current generation state.
type StatusFunc func() (*domain.Generation, error)

// ErrAborted is returned when the user cancels the progress view.
var ErrAborted = fmt.Errorf("generation cancelled")

type tickMsg time.Time

// Model is the progress view state. It implements tea.Model.
type Model struct {
	status  StatusFunc
	bar     progress.Model
	gen     *domain.Generation
	err     error
	aborted bool
}

// NewModel creates a progress model polling the given status function.
func NewModel(status StatusFunc) Model {
	return Model{
		status: status,
		bar:    progress.New(progress.WithDefaultGradient()),
	}
}

// Init starts the poll loop.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles poll ticks and cancellation keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > 60 {
			width = 60
		}
		if width > 0 {
			m.bar.Width = width
		}
		return m, nil

	case tickMsg:
		gen, err := m.status()
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.gen = gen
		if gen.Status.IsTerminal() {
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

// View renders the progress bar and current step.
func (m Model) View() string {
	if m.gen == nil {
		return titleStyle.Render("Generating coin...") + "\n"
	}
	s := titleStyle.Render("Generating coin...") + "\n\n"
	s += m.bar.ViewAs(float64(m.gen.Progress)/100.0) + "\n\n"
	switch {
	case m.gen.Status == domain.StatusFailure:
		s += errStyle.Render("failed: "+m.gen.Error) + "\n"
	case m.gen.Status == domain.StatusSuccess:
		s += doneStyle.Render("done") + "\n"
	default:
		s += stepStyle.Render(m.gen.Step) + "\n"
	}
	return s
}

// Run drives the progress view until the generation reaches a terminal
// state, the status function fails, or the user cancels.
func Run(status StatusFunc) (*domain.Generation, error) {
	p := tea.NewProgram(NewModel(status))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running progress view: %w", err)
	}
	m := final.(Model)
	if m.err != nil {
		return nil, m.err
	}
	if m.aborted {
		return m.gen, ErrAborted
	}
	return m.gen, nil
}

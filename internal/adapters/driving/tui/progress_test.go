package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/domain"
)

func stepStatus(gens ...*domain.Generation) StatusFunc {
	i := 0
	return func() (*domain.Generation, error) {
		g := gens[i]
		if i < len(gens)-1 {
			i++
		}
		return g, nil
	}
}

func TestModelQuitsOnTerminalStatus(t *testing.T) {
	m := NewModel(stepStatus(&domain.Generation{Status: domain.StatusSuccess, Progress: 100}))

	updated, cmd := m.Update(tickMsg{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd(), "terminal status should quit the program")
	assert.Equal(t, 100, updated.(Model).gen.Progress)
}

func TestModelKeepsPollingWhileRunning(t *testing.T) {
	m := NewModel(stepStatus(&domain.Generation{
		Status:   domain.StatusProcessing,
		Progress: 60,
		Step:     "transforming_relief",
	}))

	updated, cmd := m.Update(tickMsg{})

	require.NotNil(t, cmd)
	assert.NotEqual(t, tea.Quit(), cmd(), "non-terminal status keeps ticking")
	view := updated.(Model).View()
	assert.Contains(t, view, "transforming_relief")
}

func TestModelAbortsOnCtrlC(t *testing.T) {
	m := NewModel(stepStatus(&domain.Generation{Status: domain.StatusProcessing}))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.True(t, updated.(Model).aborted)
}

func TestViewShowsFailure(t *testing.T) {
	m := NewModel(nil)
	m.gen = &domain.Generation{
		Status:   domain.StatusFailure,
		Progress: 30,
		Error:    "hmm binary not found",
	}

	view := m.View()

	assert.True(t, strings.Contains(view, "hmm binary not found"))
}

package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cogniq/internal/ui/theme"
)

// Loading is a spinner with a caption, shown while a request is in flight.
type Loading struct {
	Caption string
	spin    spinner.Model
}

// NewLoading creates a Loading indicator.
func NewLoading(caption string) Loading {
	return Loading{
		Caption: caption,
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
		),
	}
}

// Tick starts the animation.
func (l Loading) Tick() tea.Cmd {
	return l.spin.Tick
}

// Update advances the animation.
func (l Loading) Update(msg tea.Msg) (Loading, tea.Cmd) {
	var cmd tea.Cmd
	l.spin, cmd = l.spin.Update(msg)
	return l, cmd
}

// View renders the spinner and caption centered across width.
func (l Loading) View(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n" + l.spin.View() + " " + l.Caption)
}

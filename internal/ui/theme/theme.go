// Package theme is the cogniq palette and the shared lipgloss styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#14B8A6") // teal
	Secondary = lipgloss.Color("#A78BFA") // violet
	Accent    = lipgloss.Color("#FBBF24") // amber
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#F87171")
	Text      = lipgloss.Color("#E2E8F0")
	TextDim   = lipgloss.Color("#8B95A7")
	BgDark    = lipgloss.Color("#0B1120")
	BgCard    = lipgloss.Color("#172033")
	Border    = lipgloss.Color("#2B3A55")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(Secondary).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Muted    = lipgloss.NewStyle().Foreground(TextDim)

	ErrorText = lipgloss.NewStyle().Foreground(Error)

	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)

	// Correct and Incorrect mark answer feedback.
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Score bands used for accuracy figures.
const (
	StrongScore = 0.8
	FairScore   = 0.5
)

// Score returns the style for an accuracy in [0, 1].
func Score(fraction float64) lipgloss.Style {
	switch {
	case fraction >= StrongScore:
		return Correct
	case fraction >= FairScore:
		return lipgloss.NewStyle().Foreground(Accent).Bold(true)
	}
	return Incorrect
}

// Centered renders s centered across width in style st.
func Centered(st lipgloss.Style, width int, s string) string {
	return st.Width(width).Align(lipgloss.Center).Render(s)
}

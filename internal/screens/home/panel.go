package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cogniq/internal/screens/welcome"
	"github.com/abhisek/cogniq/internal/ui/components"
	"github.com/abhisek/cogniq/internal/ui/theme"
)

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the banner, or its compact fallback.
func renderTitle(cw int, compact bool) string {
	bannerWidth := cw
	if compact {
		bannerWidth = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(bannerWidth))
}

// renderStatusBar shows who is signed in and the local session counts.
func renderStatusBar(user string, st Stats, cw int, compact bool) string {
	userStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	pendingStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	who := dimStyle.Render("○ signed out")
	if user != "" {
		who = userStyle.Render("● " + user)
	}

	sep := "  "
	done := fmt.Sprintf("✓ %d COMPLETED", st.Completed)
	pending := fmt.Sprintf("↻ %d TO RESUBMIT", st.PendingSessions)
	if compact {
		sep = " "
		done = fmt.Sprintf("✓%d", st.Completed)
		pending = fmt.Sprintf("↻%d", st.PendingSessions)
	}
	pendingText := dimStyle.Render(pending)
	if st.PendingSessions > 0 {
		pendingText = pendingStyle.Render(pending)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join([]string{who, doneStyle.Render(done), pendingText}, sep))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderButtonMenu renders each menu item as a fixed-width button.
func renderButtonMenu(menu components.Menu, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, item := range menu.Items {
		if i == menu.Selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+item.Label))
		} else {
			buttons = append(buttons, normalBtn.Render(item.Label))
		}
	}
	if item, ok := menu.Current(); ok {
		buttons = append(buttons, menuHint(item))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderCompactMenu renders menu items as plain lines for terminals where
// bordered buttons would overflow.
func renderCompactMenu(menu components.Menu, cw int) string {
	var lines []string
	for i, item := range menu.Items {
		label := item.Label
		if item.Key != "" {
			label = item.Key + "  " + label
		}
		if i == menu.Selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// menuHint is the line under the buttons: the shortcut and hint of the
// selected item.
func menuHint(item components.MenuItem) string {
	var parts []string
	if item.Key != "" {
		parts = append(parts, "press "+item.Key)
	}
	if item.Hint != "" {
		parts = append(parts, item.Hint)
	}
	if len(parts) == 0 {
		return ""
	}
	return "\n" + theme.Hint.Render(strings.Join(parts, " · "))
}

// renderNotice renders a one-line message under the menu.
func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderFrame wraps content in a double-border frame, centering it
// vertically and horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Package layout renders the application chrome: header bar, key-hint
// footer and the size guard.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cogniq/internal/ui/theme"
)

const (
	MinWidth  = 64
	MinHeight = 20

	// trailSep separates breadcrumb entries in the header.
	trailSep = " › "
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Header is what the header bar shows.
type Header struct {
	// Trail is the breadcrumb of screen titles, outermost first.
	Trail []string

	// User is the signed-in email, or empty when signed out.
	User string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a larger terminal.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("cogniq needs at least %d×%d\n\nyour terminal is %d×%d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Body.Align(lipgloss.Center).Render(body))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Foreground(theme.Text).
	Padding(0, 1)

// RenderHeader renders a one-line bar: brand and breadcrumb on the left,
// sign-in state on the right. The breadcrumb is cut from the left when it
// does not fit.
func RenderHeader(h Header, width int) string {
	brand := theme.Title.Render("◆ cogniq")

	user := theme.Hint.Render("signed out")
	if h.User != "" {
		user = lipgloss.NewStyle().Foreground(theme.Secondary).Render("● " + h.User)
	}

	inner := width - 2
	room := inner - lipgloss.Width(brand) - lipgloss.Width(user) - 2
	trail := fitTrail(h.Trail, room)

	left := brand
	if trail != "" {
		left += theme.Muted.Render(trailSep) + trail
	}
	gap := inner - lipgloss.Width(left) - lipgloss.Width(user)
	if gap < 1 {
		gap = 1
	}
	return bar.Width(width).Render(left + strings.Repeat(" ", gap) + user)
}

// fitTrail joins trail and drops leading entries until it fits in room.
func fitTrail(trail []string, room int) string {
	for i := range trail {
		s := strings.Join(trail[i:], trailSep)
		if i > 0 {
			s = "…" + trailSep + s
		}
		if lipgloss.Width(s) <= room {
			return s
		}
	}
	return ""
}

// RenderFooter renders the key hints on a single bar.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(h.Key)+" "+
				theme.Muted.Render(h.Description))
	}
	return bar.Width(width).Render(strings.Join(parts, theme.Muted.Render("  ·  ")))
}

// RenderFrame stacks header, content and footer, giving the content all the
// height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
	if contentHeight < 0 {
		contentHeight = 0
	}
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
}

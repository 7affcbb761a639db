package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cogniq/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██████╗  ██████╗ ███╗   ██╗██╗ ██████╗
 ██╔════╝██╔═══██╗██╔════╝ ████╗  ██║██║██╔═══██╗
 ██║     ██║   ██║██║  ███╗██╔██╗ ██║██║██║   ██║
 ██║     ██║   ██║██║   ██║██║╚██╗██║██║██║▄▄ ██║
 ╚██████╗╚██████╔╝╚██████╔╝██║ ╚████║██║╚██████╔╝
  ╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═══╝╚═╝ ╚══▀▀═╝`

const bannerCompact = "C O G N I Q"

// RenderBanner returns the banner in the primary color, or a compact
// fallback below 54 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 54 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

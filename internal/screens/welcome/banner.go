package welcome

import (
	"charm.land/lipgloss/v2"

	"roadready/internal/ui/theme"
)

const bannerArt = `
 ██████╗  ██████╗  █████╗ ██████╗ ██████╗ ███████╗ █████╗ ██████╗ ██╗   ██╗
 ██╔══██╗██╔═══██╗██╔══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗██╔══██╗╚██╗ ██╔╝
 ██████╔╝██║   ██║███████║██║  ██║██████╔╝█████╗  ███████║██║  ██║ ╚████╔╝
 ██╔══██╗██║   ██║██╔══██║██║  ██║██╔══██╗██╔══╝  ██╔══██║██║  ██║  ╚██╔╝
 ██║  ██║╚██████╔╝██║  ██║██████╔╝██║  ██║███████╗██║  ██║██████╔╝   ██║
 ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝    ╚═╝`

const bannerCompact = "R O A D R E A D Y"

// RenderBanner returns the ROADREADY banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 78 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 78 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

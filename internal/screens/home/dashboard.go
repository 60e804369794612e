package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"roadready/internal/ui/components"
	"roadready/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const dashboardTitleFull = ` ██████╗  ██████╗  █████╗ ██████╗ ██████╗ ███████╗ █████╗ ██████╗ ██╗   ██╗
 ██╔══██╗██╔═══██╗██╔══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗██╔══██╗╚██╗ ██╔╝
 ██████╔╝██║   ██║███████║██║  ██║██████╔╝█████╗  ███████║██║  ██║ ╚████╔╝
 ██╔══██╗██║   ██║██╔══██║██║  ██║██╔══██╗██╔══╝  ██╔══██║██║  ██║  ╚██╔╝
 ██║  ██║╚██████╔╝██║  ██║██████╔╝██║  ██║███████╗██║  ██║██████╔╝   ██║
 ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝    ╚═╝`

const dashboardTitleCompact = "R · O · A · D · R · E · A · D · Y"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.SignYellow).
		Bold(true)

	if compact || cw < 78 {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(dashboardTitleCompact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(dashboardTitleFull))
}

// renderGreeting renders the greeting line under the title.
func renderGreeting(greeting string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(greeting)
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(mastered, missed, testsTaken, cw int, compact bool) string {
	masteredStyle := lipgloss.NewStyle().Foreground(theme.SignYellow).Bold(true)
	testStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	missedStyle := lipgloss.NewStyle().Foreground(theme.SignCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			masteredStyle.Render(fmt.Sprintf("★%d", mastered)),
			testStyle.Render(fmt.Sprintf("▤%d", testsTaken)),
			missedText(missed, true, missedStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			masteredStyle.Render(fmt.Sprintf("★ %d MASTERED", mastered)),
			testStyle.Render(fmt.Sprintf("▤ %d TESTS", testsTaken)),
			missedText(missed, false, missedStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.SignCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func missedText(missed int, compact bool, active, dim lipgloss.Style) string {
	if missed == 0 {
		if compact {
			return dim.Render("⚡0")
		}
		return dim.Render("⚡ NONE MISSED")
	}
	if compact {
		return active.Render(fmt.Sprintf("⚡%d", missed))
	}
	return active.Render(fmt.Sprintf("⚡ %d TO REVIEW", missed))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	disabledBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if disabled[i] {
			buttons = append(buttons, disabledBtn.Render(label))
		} else {
			buttons = append(buttons, components.MenuButton(label, i == selected, buttonWidth))
		}
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		if disabled[i] {
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		} else if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.SignYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

package summary

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"roadready/internal/achievements"
	"roadready/internal/messages"
	"roadready/internal/router"
	"roadready/internal/screen"
	"roadready/internal/session"
	"roadready/internal/ui/layout"
	"roadready/internal/ui/theme"
)

// SummaryScreen displays the results of a finished quiz.
type SummaryScreen struct {
	results *session.Results
	earned  []achievements.Achievement
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen over the final results and any achievements
// earned during the run.
func New(results *session.Results, earned []achievements.Achievement) *SummaryScreen {
	return &SummaryScreen{results: results, earned: earned}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	if s.results != nil && s.results.Mode == session.ModeReview {
		return "Review Results"
	}
	return "Test Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, tea.Sequence(
				func() tea.Msg { return router.PopScreenMsg{} },
				screen.Refresh(),
			)
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.results
	if res == nil {
		return ""
	}

	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		"Quiz complete!"))
	b.WriteString("\n\n")

	// Score line.
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	if res.Percentage < 70 {
		scoreStyle = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}
	b.WriteString(center(scoreStyle,
		fmt.Sprintf("%d / %d correct (%d%%)", res.Correct, res.Total, res.Percentage)))
	b.WriteString("\n")

	mins := int(res.Duration.Minutes())
	secs := int(res.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Time: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	// Result message keyed to the percentage.
	msg := messages.Result(res.Percentage)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		msg.Emoji+" "+msg.Text))
	b.WriteString("\n\n")

	// Category breakdown.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Categories")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	categories := make([]string, 0, len(res.ByCategory))
	for c := range res.ByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, c := range categories {
		r := res.ByCategory[c]
		line := fmt.Sprintf("  %-18s %d/%d correct", c, r.Correct, r.Attempted)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if r.Correct == r.Attempted {
			style = style.Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	// Achievements earned this run.
	if len(s.earned) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Achievements")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, a := range s.earned {
			line := fmt.Sprintf("  %s %s  %s", a.Icon, a.Name, a.Description)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.SignCyan).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

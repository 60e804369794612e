package achievementlist

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"roadready/internal/achievements"
	"roadready/internal/router"
	"roadready/internal/screen"
	"roadready/internal/ui/components"
	"roadready/internal/ui/layout"
	"roadready/internal/ui/theme"
)

type badgesLoadedMsg struct {
	EarnedIDs map[string]bool
	Progress  *achievements.ProgressInfo
}

// AchievementListScreen displays the badge catalog with earned state.
type AchievementListScreen struct {
	badges *achievements.Service

	earnedIDs map[string]bool
	progress  *achievements.ProgressInfo
	loaded    bool
}

var _ screen.Screen = (*AchievementListScreen)(nil)
var _ screen.KeyHintProvider = (*AchievementListScreen)(nil)

// New creates a new AchievementListScreen.
func New(badges *achievements.Service) *AchievementListScreen {
	return &AchievementListScreen{badges: badges}
}

func (s *AchievementListScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		earned := make(map[string]bool)
		for _, a := range s.badges.Earned(ctx) {
			earned[a.ID] = true
		}
		return badgesLoadedMsg{
			EarnedIDs: earned,
			Progress:  s.badges.Progress(ctx),
		}
	}
}

func (s *AchievementListScreen) Title() string {
	return "Achievements"
}

func (s *AchievementListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AchievementListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case badgesLoadedMsg:
		s.earnedIDs = msg.EarnedIDs
		s.progress = msg.Progress
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *AchievementListScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading achievements...")
	}

	var b strings.Builder
	b.WriteString("\n")

	bar := components.NewProgressBar("Progress",
		float64(s.progress.Percentage)/100, true, min(width-20, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d earned", s.progress.Earned, s.progress.Total)))
	b.WriteString("\n\n")

	for _, a := range s.badges.All() {
		var line string
		if s.earnedIDs[a.ID] {
			line = fmt.Sprintf("  %s %-20s %s", a.Icon, a.Name, a.Description)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.SignYellow).Render(line)))
		} else {
			line = fmt.Sprintf("  🔒 %-20s %s", a.Name, a.Description)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

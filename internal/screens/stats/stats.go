package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"roadready/internal/catalog"
	"roadready/internal/mastery"
	"roadready/internal/router"
	"roadready/internal/screen"
	"roadready/internal/store"
	"roadready/internal/ui/components"
	"roadready/internal/ui/layout"
	"roadready/internal/ui/theme"
)

type categoryRow struct {
	Name     string
	Attempts int
	Correct  int
	Mastered int
	Total    int
}

type statsLoadedMsg struct {
	Stats      *store.AggregateStats
	Categories []categoryRow
	Mastered   int
	Missed     int
	TotalBank  int
}

// StatsScreen displays lifetime progress.
type StatsScreen struct {
	repo    *catalog.Repository
	st      *store.Store
	mastery *mastery.Service

	stats      *store.AggregateStats
	categories []categoryRow
	mastered   int
	missed     int
	totalBank  int
	loaded     bool
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(repo *catalog.Repository, st *store.Store, m *mastery.Service) *StatsScreen {
	return &StatsScreen{repo: repo, st: st, mastery: m}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		stats := s.st.Stats(ctx)

		byName := make(map[string]*categoryRow)
		for _, cat := range s.repo.Categories() {
			byName[cat] = &categoryRow{Name: cat, Total: len(s.repo.ByCategory(cat))}
		}
		for name, cs := range stats.CategoryBreakdown {
			row := byName[name]
			if row == nil {
				row = &categoryRow{Name: name}
				byName[name] = row
			}
			row.Attempts = cs.Attempts
			row.Correct = cs.Correct
			row.Mastered = cs.Mastered
		}

		rows := make([]categoryRow, 0, len(byName))
		for _, row := range byName {
			rows = append(rows, *row)
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

		return statsLoadedMsg{
			Stats:      stats,
			Categories: rows,
			Mastered:   len(s.mastery.MasteredIDs(ctx)),
			Missed:     len(s.mastery.MissedIDs(ctx)),
			TotalBank:  s.repo.Count(),
		}
	}
}

func (s *StatsScreen) Title() string {
	return "My Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		s.stats = msg.Stats
		s.categories = msg.Categories
		s.mastered = msg.Mastered
		s.missed = msg.Missed
		s.totalBank = msg.TotalBank
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading stats...")
	}

	stats := s.stats
	if stats.TotalAttempts == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Take a practice test to get started!")
	}

	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}
	barWidth := min(width-20, 50)

	var b strings.Builder
	b.WriteString("\n")

	// Totals line.
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Attempts: %d        Correct: %d        Tests taken: %d",
			stats.TotalAttempts, stats.TotalCorrect, stats.TestsTaken)))
	b.WriteString("\n\n")

	// Overall accuracy bar.
	accuracy := components.NewProgressBar("Accuracy", stats.Accuracy(), true, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, accuracy.View()))
	b.WriteString("\n")

	// Mastery progress bar over the whole question bank.
	var masteryPct float64
	if s.totalBank > 0 {
		masteryPct = float64(s.mastered) / float64(s.totalBank)
	}
	masteryBar := components.NewProgressBar("Mastered", masteryPct, true, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, masteryBar.View()))
	b.WriteString("\n\n")

	// Streaks and review queue.
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Current streak: %d    Best streak: %d    Missed to review: %d",
			stats.CurrentStreak, stats.LongestStreak, s.missed)))
	b.WriteString("\n\n")

	// Per-category breakdown.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Categories")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, row := range s.categories {
		var pct float64
		if row.Attempts > 0 {
			pct = float64(row.Correct) / float64(row.Attempts)
		}
		bar := components.NewProgressBar(fmt.Sprintf("%-18s", row.Name), pct, true, barWidth)
		line := bar.View() +
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("  %d/%d mastered", row.Mastered, row.Total))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
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

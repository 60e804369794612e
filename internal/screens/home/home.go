package home

import (
	"context"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"roadready/internal/achievements"
	"roadready/internal/catalog"
	"roadready/internal/mastery"
	"roadready/internal/messages"
	"roadready/internal/router"
	"roadready/internal/screen"
	"roadready/internal/screens/achievementlist"
	"roadready/internal/screens/quiz"
	"roadready/internal/screens/stats"
	"roadready/internal/store"
	"roadready/internal/ui/components"
)

// HomeScreen is the main dashboard of the application.
type HomeScreen struct {
	repo    *catalog.Repository
	st      *store.Store
	mastery *mastery.Service
	badges  *achievements.Service

	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool

	greeting      string
	masteredCount int
	missedCount   int
	testsTaken    int
	hasResume     bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the dashboard over the shared services.
func New(repo *catalog.Repository, st *store.Store, masterySvc *mastery.Service, badges *achievements.Service) *HomeScreen {
	h := &HomeScreen{
		repo:    repo,
		st:      st,
		mastery: masterySvc,
		badges:  badges,
	}
	h.refresh()
	h.buildMenu()
	return h
}

// refresh reloads the dashboard counters from the store.
func (h *HomeScreen) refresh() {
	ctx := context.Background()

	name := ""
	if u := h.st.User(ctx); u != nil {
		name = u.Name
	}
	if name == "" {
		h.greeting = "Welcome!"
	} else {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		h.greeting = messages.Greeting(rng, name)
	}

	h.masteredCount = len(h.mastery.MasteredIDs(ctx))
	h.missedCount = len(h.mastery.MissedIDs(ctx))
	h.testsTaken = h.st.Stats(ctx).TestsTaken
	h.hasResume = h.st.CurrentSession(ctx) != nil
}

func (h *HomeScreen) buildMenu() {
	labels := []string{"PRACTICE TEST", "REVIEW MISSED", "MY STATS", "ACHIEVEMENTS", "QUIT"}
	disabled := map[int]bool{}

	var items []components.MenuItem

	if h.hasResume {
		labels = append([]string{"RESUME QUIZ"}, labels...)
		items = append(items, components.MenuItem{
			Label: "RESUME QUIZ",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: quiz.Resume(h.repo, h.st, h.mastery, h.badges)}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{
			Label: "PRACTICE TEST",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: quiz.NewPractice(h.repo, h.st, h.mastery, h.badges)}
				}
			},
		},
		components.MenuItem{
			Label:    "REVIEW MISSED",
			Disabled: h.missedCount == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: quiz.NewReview(h.repo, h.st, h.mastery, h.badges)}
				}
			},
		},
		components.MenuItem{
			Label: "MY STATS",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: stats.New(h.repo, h.st, h.mastery)}
				}
			},
		},
		components.MenuItem{
			Label: "ACHIEVEMENTS",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: achievementlist.New(h.badges)}
				}
			},
		},
		components.MenuItem{
			Label: "QUIT",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	)

	for i, item := range items {
		if item.Disabled {
			disabled[i] = true
		}
	}

	h.menuLabels = make([]string, len(items))
	for i, item := range items {
		h.menuLabels[i] = item.Label
	}
	h.disabled = disabled
	h.menu = components.NewMenu(items)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.RefreshMsg); ok {
		h.refresh()
		h.buildMenu()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderGreeting(h.greeting, cw))
	sections = append(sections, renderStatsBar(
		h.masteredCount, h.missedCount, h.testsTaken, cw, compact))

	if compact {
		sections = append(sections, renderMenuCompact(
			h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(
			h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	content := strings.Join(sections, "\n\n")

	return components.DashboardFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"roadready/internal/achievements"
	"roadready/internal/catalog"
	"roadready/internal/mastery"
	"roadready/internal/router"
	"roadready/internal/screen"
	"roadready/internal/screens/home"
	"roadready/internal/screens/welcome"
	"roadready/internal/store"
	"roadready/internal/ui/layout"
)

// Options carries the shared services the screens are built over.
type Options struct {
	Store   *store.Store
	Repo    *catalog.Repository
	Mastery *mastery.Service
	Badges  *achievements.Service
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int

	headerMastered int
	headerStreak   int
}

// newAppModel builds the root model. First-time users land on the welcome
// screen; everyone else goes straight to the dashboard.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(opts.Repo, opts.Store, opts.Mastery, opts.Badges)
	}

	var initial screen.Screen
	if opts.Store.User(context.Background()) == nil {
		initial = welcome.New(opts.Store, homeFactory)
	} else {
		_ = opts.Store.TouchUser(context.Background())
		initial = homeFactory()
	}

	m := AppModel{
		opts:   opts,
		router: router.New(initial),
	}
	m.refreshHeader()
	return m
}

// refreshHeader reloads the counters shown in the header bar.
func (m *AppModel) refreshHeader() {
	ctx := context.Background()
	m.headerMastered = len(m.opts.Mastery.MasteredIDs(ctx))
	m.headerStreak = m.opts.Store.Stats(ctx).CurrentStreak
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.RefreshMsg:
		m.refreshHeader()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerMastered, m.headerStreak, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

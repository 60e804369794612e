package welcome

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"roadready/internal/router"
	"roadready/internal/screen"
	"roadready/internal/store"
	"roadready/internal/ui/components"
	"roadready/internal/ui/layout"
	"roadready/internal/ui/theme"
)

const maxNameLength = 30

const signArt = `   ╭─────────────────╮
   │   DRIVER'S       │
   │   PERMIT TEST    │
   │   ▲ PRACTICE ▲   │
   ╰─────────────────╯`

// WelcomeScreen asks a first-time user for their name before entering the
// home dashboard.
type WelcomeScreen struct {
	st          *store.Store
	homeFactory func() screen.Screen
	input       components.TextInput
	errText     string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that transitions to the screen produced by
// homeFactory once a name has been saved.
func New(st *store.Store, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		st:          st,
		homeFactory: homeFactory,
		input:       components.NewTextInput("Your name...", maxNameLength),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.input.Init()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		name := w.input.Value()
		if name == "" {
			w.errText = "Please enter a name to get started."
			return w, nil
		}
		if _, err := w.st.SetUser(context.Background(), name); err != nil {
			w.errText = "Could not save your profile: " + err.Error()
			return w, nil
		}
		home := w.homeFactory()
		return w, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: home}
		}
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))
	sections = append(sections, "")

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.SignYellow).
		Render(signArt))
	sections = append(sections, "")

	tagline := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Get ready for your written driver's test!")
	sections = append(sections, tagline)
	sections = append(sections, "")

	prompt := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("What should we call you?")
	sections = append(sections, prompt)
	sections = append(sections, w.input.View())

	if w.errText != "" {
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(w.errText))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

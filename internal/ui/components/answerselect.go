package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"roadready/internal/ui/theme"
)

// AnswerSelect is the answer picker for a quiz question. Each option carries
// an answer key ("a".."d" for multiple choice, "true"/"false" otherwise);
// after submission the options are recolored against the correct key.
type AnswerSelect struct {
	Options    []string
	Keys       []string
	CorrectKey string
	Selected   int
	Submitted  bool
	ChosenKey  string
}

// NewAnswerSelect creates an answer picker over parallel option/key slices.
func NewAnswerSelect(options, keys []string, correctKey string) AnswerSelect {
	return AnswerSelect{
		Options:    options,
		Keys:       keys,
		CorrectKey: correctKey,
		Selected:   0,
	}
}

// Init returns nil.
func (a AnswerSelect) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Options can be picked
// directly with their key's first letter (a-d, t, f).
func (a AnswerSelect) Update(msg tea.Msg) (AnswerSelect, tea.Cmd) {
	if a.Submitted {
		return a, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if a.Selected > 0 {
			a.Selected--
		}
	case "down", "j":
		if a.Selected < len(a.Options)-1 {
			a.Selected++
		}
	case "enter":
		a.submit(a.Selected)
	default:
		for i, k := range a.Keys {
			if key == k[:1] {
				a.submit(i)
				break
			}
		}
	}

	return a, nil
}

func (a *AnswerSelect) submit(index int) {
	if index < 0 || index >= len(a.Keys) {
		return
	}
	a.Selected = index
	a.Submitted = true
	a.ChosenKey = a.Keys[index]
}

// View renders the option list.
func (a AnswerSelect) View() string {
	var b strings.Builder

	for i, opt := range a.Options {
		prefix := "  "
		if i == a.Selected && !a.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, a.Keys[i], opt)

		if a.Submitted {
			switch {
			case a.Keys[i] == a.CorrectKey:
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line))
			case a.Keys[i] == a.ChosenKey:
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line))
			default:
				b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
			}
		} else {
			if i == a.Selected {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the submitted answer matches the correct key.
func (a AnswerSelect) IsCorrect() bool {
	return a.Submitted && a.ChosenKey == a.CorrectKey
}

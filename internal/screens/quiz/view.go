package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"roadready/internal/catalog"
	"roadready/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if !s.started || s.ending {
		return renderLoading(width)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

// renderQuestionView renders the active question display.
func (s *QuizScreen) renderQuestionView(width int) string {
	snap := s.ctrl.Current()
	if snap == nil {
		return renderLoading(width)
	}

	var b strings.Builder

	mins := int(s.elapsed.Minutes())
	secs := int(s.elapsed.Seconds()) % 60
	timerStr := fmt.Sprintf("%d:%02d", mins, secs)

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", s.question.Category))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %s %d  ⏱ %s",
			snap.CurrentIndex+1,
			len(snap.QuestionIDs),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			snap.Stats.Correct,
			lipgloss.NewStyle().Foreground(theme.Error).Render("✗"),
			snap.Stats.Incorrect,
			timerStr,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(s.question.Prompt))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.answer.View()))

	var hint string
	if s.question.Type == catalog.TypeTrueFalse {
		hint = "Press T or F, or use arrows + Enter"
	} else {
		hint = fmt.Sprintf("Press a-%s, or use arrows + Enter", catalog.OptionLetters[len(s.question.Options)-1])
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n" + hint))

	return b.String()
}

// renderFeedback renders the post-answer overlay.
func (s *QuizScreen) renderFeedback(width int) string {
	v := s.verdict
	if v == nil {
		return renderLoading(width)
	}

	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n\n")

	if v.Correct {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success).Bold(true),
			s.feedback.Emoji+" "+s.feedback.Text))
	} else {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
			s.feedback.Emoji+" "+s.feedback.Text))
		b.WriteString("\n")
		answerText := s.question.AnswerText(v.CorrectAnswer)
		if s.question.Type == catalog.TypeTrueFalse {
			answerText = strings.ToUpper(answerText[:1]) + answerText[1:]
		}
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("Correct answer: %s", answerText)))
	}

	b.WriteString("\n\n")

	if v.Explanation != "" {
		expStyle := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text)
		exp := expStyle.Render(v.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	if s.masteryNote != nil {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
			s.masteryNote.Emoji+" "+s.masteryNote.Text))
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
			"Two in a row! This one stays mastered until you miss it."))
		b.WriteString("\n\n")
	}

	if s.streakNote != nil {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.SignYellow).Bold(true),
			s.streakNote.Emoji+" "+s.streakNote.Text))
		b.WriteString("\n\n")
	}

	for _, a := range s.newInFeed {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.SignCyan).Bold(true),
			fmt.Sprintf("%s Achievement unlocked: %s", a.Icon, a.Name)))
		b.WriteString("\n")
	}
	if len(s.newInFeed) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		"Press any key to continue..."))

	return b.String()
}

// renderQuitConfirm renders the pause dialog.
func renderQuitConfirm(width int) string {
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		"Pause this quiz?"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		"Your answers are saved. Resume any time from the dashboard."))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success),
		"[Y] Yes, save and exit"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary),
		"[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your quiz...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package quiz

import (
	"time"

	"roadready/internal/achievements"
	"roadready/internal/session"
	"roadready/internal/store"
)

// quizStartedMsg is sent when the session has been started or resumed.
type quizStartedMsg struct {
	Snapshot *store.SessionSnapshot
	Err      error
}

// timerTickMsg is sent every second to update the elapsed-time display.
type timerTickMsg time.Time

// feedbackDoneMsg is sent when the feedback overlay is dismissed.
type feedbackDoneMsg struct{}

// quizEndMsg triggers the end-of-quiz flow.
type quizEndMsg struct{}

// quizFinishedMsg carries the final results after the session has been
// closed out and achievements evaluated.
type quizFinishedMsg struct {
	Results *session.Results
	Earned  []achievements.Achievement
	Err     error
}

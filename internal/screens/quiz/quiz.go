package quiz

import (
	"context"
	"errors"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"

	"roadready/internal/achievements"
	"roadready/internal/catalog"
	"roadready/internal/mastery"
	"roadready/internal/messages"
	"roadready/internal/router"
	"roadready/internal/screen"
	"roadready/internal/screens/summary"
	"roadready/internal/session"
	"roadready/internal/store"
	"roadready/internal/ui/components"
	"roadready/internal/ui/layout"
)

type startKind int

const (
	startPractice startKind = iota
	startReview
	startResume
)

// QuizScreen drives an active practice or review run.
type QuizScreen struct {
	ctrl   *session.Controller
	badges *achievements.Service
	rng    *rand.Rand
	kind   startKind

	answer   components.AnswerSelect
	question catalog.Question

	verdict     *session.Verdict
	feedback    messages.Message
	masteryNote *messages.Message
	streakNote  *messages.Message
	newInFeed   []achievements.Achievement
	earned      []achievements.Achievement

	showingFeedback    bool
	showingQuitConfirm bool
	started            bool
	ending             bool
	elapsed            time.Duration
	errMsg             string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

func newQuiz(repo *catalog.Repository, st *store.Store, m *mastery.Service, badges *achievements.Service, kind startKind) *QuizScreen {
	return &QuizScreen{
		ctrl:   session.NewController(repo, st, m),
		badges: badges,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		kind:   kind,
	}
}

// NewPractice creates a quiz screen that starts a fresh practice test.
func NewPractice(repo *catalog.Repository, st *store.Store, m *mastery.Service, badges *achievements.Service) *QuizScreen {
	return newQuiz(repo, st, m, badges, startPractice)
}

// NewReview creates a quiz screen over the missed-question queue.
func NewReview(repo *catalog.Repository, st *store.Store, m *mastery.Service, badges *achievements.Service) *QuizScreen {
	return newQuiz(repo, st, m, badges, startReview)
}

// Resume creates a quiz screen that picks up the persisted session.
func Resume(repo *catalog.Repository, st *store.Store, m *mastery.Service, badges *achievements.Service) *QuizScreen {
	return newQuiz(repo, st, m, badges, startResume)
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.start(), tickCmd())
}

func (s *QuizScreen) Title() string {
	switch s.kind {
	case startReview:
		return "Review"
	default:
		return "Practice Test"
	}
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Save & exit"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Pause"},
	}
}

// start begins or resumes the session off the UI loop.
func (s *QuizScreen) start() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var snap *store.SessionSnapshot
		var err error
		switch s.kind {
		case startReview:
			snap, err = s.ctrl.StartReview(ctx)
		case startResume:
			snap = s.ctrl.Resume(ctx)
			if snap == nil {
				err = errors.New("no quiz in progress")
			}
		default:
			snap, err = s.ctrl.StartPractice(ctx, false)
		}
		return quizStartedMsg{Snapshot: snap, Err: err}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizStartedMsg:
		return s.handleStarted(msg)

	case timerTickMsg:
		return s.handleTimerTick()

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case quizEndMsg:
		return s.handleQuizEnd()

	case quizFinishedMsg:
		return s.handleFinished(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *QuizScreen) handleStarted(msg quizStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.started = true

	// A resumed snapshot may sit on a question that was already answered
	// before the quiz was paused.
	if s.kind == startResume {
		if len(s.ctrl.Unanswered()) == 0 {
			return s, func() tea.Msg { return quizEndMsg{} }
		}
		for s.currentAnswered() {
			if moved, err := s.ctrl.Advance(context.Background()); err != nil || !moved {
				break
			}
		}
	}

	s.loadCurrentQuestion()
	return s, nil
}

// currentAnswered reports whether the cursor question already has a response.
func (s *QuizScreen) currentAnswered() bool {
	snap := s.ctrl.Current()
	q, ok := s.ctrl.CurrentQuestion()
	if snap == nil || !ok {
		return false
	}
	for _, r := range snap.Responses {
		if r.QuestionID == q.ID {
			return true
		}
	}
	return false
}

// loadCurrentQuestion rebuilds the answer picker for the session cursor.
func (s *QuizScreen) loadCurrentQuestion() {
	q, ok := s.ctrl.CurrentQuestion()
	if !ok {
		return
	}
	s.question = q

	if q.Type == catalog.TypeTrueFalse {
		s.answer = components.NewAnswerSelect(
			[]string{"True", "False"},
			[]string{"true", "false"},
			q.CorrectAnswer,
		)
	} else {
		s.answer = components.NewAnswerSelect(
			q.Options,
			catalog.OptionLetters[:len(q.Options)],
			q.CorrectAnswer,
		)
	}
}

func (s *QuizScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.ending || s.errMsg != "" {
		return s, nil
	}
	if snap := s.ctrl.Current(); snap != nil {
		s.elapsed = time.Since(snap.StartTime)
	}
	return s, tickCmd()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if !s.started || s.ending {
		return s, nil
	}

	// Pause dialog. The snapshot stays persisted, so leaving here keeps the
	// quiz resumable from the dashboard.
	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			return s, tea.Sequence(
				func() tea.Msg { return router.PopScreenMsg{} },
				screen.Refresh(),
			)
		case "n", "N", "esc":
			s.showingQuitConfirm = false
			return s, nil
		}
		return s, nil
	}

	// Feedback overlay: any key dismisses.
	if s.showingFeedback {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	if key == "esc" {
		s.showingQuitConfirm = true
		return s, nil
	}

	var cmd tea.Cmd
	s.answer, cmd = s.answer.Update(msg)
	if s.answer.Submitted && s.verdict == nil {
		return s.submitAnswer()
	}
	return s, cmd
}

// submitAnswer grades the chosen answer and prepares the feedback overlay.
func (s *QuizScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	v, err := s.ctrl.Answer(ctx, s.answer.ChosenKey)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.verdict = v

	s.masteryNote = nil
	s.streakNote = nil
	s.newInFeed = nil

	if v.Correct {
		s.feedback = messages.Correct(s.rng)
		if v.Record.Mastered && v.Record.ConsecutiveCorrect == mastery.MasteryThreshold {
			m := messages.Mastery(s.rng)
			s.masteryNote = &m
		}
		if atStreakMilestone(v.Stats.CurrentStreak) {
			if m, ok := messages.Streak(v.Stats.CurrentStreak); ok {
				s.streakNote = &m
			}
		}
	} else {
		s.feedback = messages.Incorrect(s.rng)
	}

	// Stat-driven badges can unlock mid-quiz (streaks, total correct).
	if newly, err := s.badges.ScanForNewlyEarned(ctx); err == nil && len(newly) > 0 {
		s.newInFeed = newly
		s.earned = append(s.earned, newly...)
	}

	s.showingFeedback = true
	return s, nil
}

// atStreakMilestone reports whether the streak just hit a celebrated length.
func atStreakMilestone(streak int) bool {
	return streak == 3 || streak == 5 || (streak > 0 && streak%5 == 0)
}

func (s *QuizScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	s.verdict = nil

	if s.ctrl.IsComplete() {
		return s, func() tea.Msg { return quizEndMsg{} }
	}

	if _, err := s.ctrl.Advance(context.Background()); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.loadCurrentQuestion()
	return s, nil
}

// handleQuizEnd closes out the session: results, mastery recount, and the
// event-driven achievement checks.
func (s *QuizScreen) handleQuizEnd() (screen.Screen, tea.Cmd) {
	s.ending = true
	earned := s.earned

	return s, func() tea.Msg {
		ctx := context.Background()

		results, err := s.ctrl.Results()
		if err != nil {
			return quizFinishedMsg{Err: err}
		}
		if err := s.ctrl.End(ctx); err != nil {
			return quizFinishedMsg{Err: err}
		}

		if a, err := s.badges.AwardPerfectTest(ctx, results.Correct, results.Total); err == nil && a != nil {
			earned = append(earned, *a)
		}
		for category, r := range results.ByCategory {
			if a, err := s.badges.AwardCategoryMastery(ctx, category, r.Attempted, r.Correct); err == nil && a != nil {
				earned = append(earned, *a)
			}
		}

		// The recount may have pushed the mastered counters over a badge
		// threshold.
		if newly, err := s.badges.ScanForNewlyEarned(ctx); err == nil {
			earned = append(earned, newly...)
		}

		return quizFinishedMsg{Results: results, Earned: earned}
	}
}

func (s *QuizScreen) handleFinished(msg quizFinishedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		s.ending = false
		return s, nil
	}
	sum := summary.New(msg.Results, msg.Earned)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sum}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

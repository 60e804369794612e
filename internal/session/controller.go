// Package session orchestrates practice and review runs: it builds the
// question sequence, advances through it, records answers via the mastery
// engine, and computes final results. At most one session is active at a
// time; the snapshot is persisted after every mutation so an interrupted run
// can resume.
package session

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"roadready/internal/catalog"
	"roadready/internal/mastery"
	"roadready/internal/store"
)

// Mode distinguishes practice tests from review runs.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeReview   Mode = "review"
)

// Verdict is returned to the presentation layer after an answer.
type Verdict struct {
	Correct       bool
	CorrectAnswer string
	Explanation   string
	Category      string

	// Record is the updated per-question record, for mastery feedback.
	Record *store.QuestionRecord

	// Stats are the updated aggregate stats, for streak feedback.
	Stats *store.AggregateStats
}

// Controller drives the active session.
type Controller struct {
	repo    *catalog.Repository
	store   *store.Store
	mastery *mastery.Service
	rng     *rand.Rand

	current *store.SessionSnapshot
}

// NewController creates a session controller.
func NewController(repo *catalog.Repository, st *store.Store, m *mastery.Service) *Controller {
	return &Controller{
		repo:    repo,
		store:   st,
		mastery: m,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the sampling source. Used by tests for determinism.
func (c *Controller) SetRand(rng *rand.Rand) {
	c.rng = rng
}

// StartPractice builds a practice session via the attempt-biased sampling
// policy and persists the initial snapshot.
func (c *Controller) StartPractice(ctx context.Context, excludeMastered bool) (*store.SessionSnapshot, error) {
	pool := c.repo.All()
	if excludeMastered {
		masteredSet := make(map[int]bool)
		for _, id := range c.mastery.MasteredIDs(ctx) {
			masteredSet[id] = true
		}
		unmastered := pool[:0]
		for _, q := range pool {
			if !masteredSet[q.ID] {
				unmastered = append(unmastered, q)
			}
		}
		pool = unmastered
	}
	if len(pool) == 0 {
		return nil, ErrNoQuestions
	}

	ids := selectPracticeQuestions(pool, c.store.QuestionHistory(ctx), c.rng)
	return c.begin(ctx, ModePractice, ids)
}

// StartReview builds a session from the review queue. It fails without
// touching any state when the queue is empty.
func (c *Controller) StartReview(ctx context.Context) (*store.SessionSnapshot, error) {
	var ids []int
	for _, id := range c.mastery.MissedIDs(ctx) {
		if _, ok := c.repo.ByID(id); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ErrEmptyReviewQueue
	}
	return c.begin(ctx, ModeReview, ids)
}

func (c *Controller) begin(ctx context.Context, mode Mode, ids []int) (*store.SessionSnapshot, error) {
	snap := &store.SessionSnapshot{
		ID:          uuid.New().String(),
		Mode:        string(mode),
		StartTime:   time.Now(),
		QuestionIDs: ids,
	}
	if err := c.store.SetCurrentSession(ctx, snap); err != nil {
		return nil, err
	}
	c.current = snap
	return snap, nil
}

// Resume loads the persisted session snapshot, if any, and makes it the
// active session.
func (c *Controller) Resume(ctx context.Context) *store.SessionSnapshot {
	c.current = c.store.CurrentSession(ctx)
	return c.current
}

// Current returns the active session snapshot, or nil.
func (c *Controller) Current() *store.SessionSnapshot {
	return c.current
}

// CurrentQuestion returns the question at the session cursor.
func (c *Controller) CurrentQuestion() (catalog.Question, bool) {
	if c.current == nil || c.current.CurrentIndex >= len(c.current.QuestionIDs) {
		return catalog.Question{}, false
	}
	return c.repo.ByID(c.current.QuestionIDs[c.current.CurrentIndex])
}

// Answer grades userAnswer against the current question, records the
// response, updates the question record and aggregate stats through the
// mastery engine, and persists the session snapshot.
func (c *Controller) Answer(ctx context.Context, userAnswer string) (*Verdict, error) {
	if c.current == nil {
		return nil, ErrNoSession
	}
	q, ok := c.CurrentQuestion()
	if !ok {
		return nil, ErrNoCurrentQuestion
	}

	correct := userAnswer == q.CorrectAnswer

	rec, err := c.mastery.RecordAnswer(ctx, q.ID, correct)
	if err != nil {
		return nil, err
	}
	stats, err := c.mastery.RecordAttemptStats(ctx, correct, q.Category)
	if err != nil {
		return nil, err
	}

	c.current.Responses = append(c.current.Responses, store.Response{
		QuestionID: q.ID,
		UserAnswer: userAnswer,
		Correct:    correct,
		Timestamp:  time.Now(),
	})
	if correct {
		c.current.Stats.Correct++
	} else {
		c.current.Stats.Incorrect++
	}

	if err := c.store.SetCurrentSession(ctx, c.current); err != nil {
		// Roll back the in-memory mutation so state mirrors what was
		// durably written.
		c.current.Responses = c.current.Responses[:len(c.current.Responses)-1]
		if correct {
			c.current.Stats.Correct--
		} else {
			c.current.Stats.Incorrect--
		}
		return nil, err
	}

	return &Verdict{
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Category:      q.Category,
		Record:        rec,
		Stats:         stats,
	}, nil
}

// Advance moves the cursor to the next question and persists the snapshot.
// It reports whether the cursor moved; it never advances past the end.
func (c *Controller) Advance(ctx context.Context) (bool, error) {
	if c.current == nil {
		return false, ErrNoSession
	}
	if c.current.CurrentIndex >= len(c.current.QuestionIDs)-1 {
		return false, nil
	}
	c.current.CurrentIndex++
	if err := c.store.SetCurrentSession(ctx, c.current); err != nil {
		c.current.CurrentIndex--
		return false, err
	}
	return true, nil
}

// IsComplete reports whether the session cursor sits on the final question
// (or no session is active).
func (c *Controller) IsComplete() bool {
	if c.current == nil {
		return true
	}
	return c.current.CurrentIndex >= len(c.current.QuestionIDs)-1
}

// Unanswered returns the session question ids with no recorded response.
func (c *Controller) Unanswered() []int {
	if c.current == nil {
		return nil
	}
	answered := make(map[int]bool, len(c.current.Responses))
	for _, r := range c.current.Responses {
		answered[r.QuestionID] = true
	}
	var ids []int
	for _, id := range c.current.QuestionIDs {
		if !answered[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// CategoryResult is the per-category slice of session results.
type CategoryResult struct {
	Attempted int
	Correct   int
}

// Results summarize a finished (or in-progress) session.
type Results struct {
	Total      int
	Correct    int
	Incorrect  int
	Percentage int
	ByCategory map[string]*CategoryResult
	Duration   time.Duration
	Mode       Mode
}

// Results computes the session results. Sessions always hold at least one
// question, so the percentage is well defined.
func (c *Controller) Results() (*Results, error) {
	if c.current == nil {
		return nil, ErrNoSession
	}

	total := len(c.current.QuestionIDs)
	correct := c.current.Stats.Correct

	byCategory := make(map[string]*CategoryResult)
	for _, resp := range c.current.Responses {
		q, ok := c.repo.ByID(resp.QuestionID)
		if !ok {
			continue
		}
		bucket := byCategory[q.Category]
		if bucket == nil {
			bucket = &CategoryResult{}
			byCategory[q.Category] = bucket
		}
		bucket.Attempted++
		if resp.Correct {
			bucket.Correct++
		}
	}

	return &Results{
		Total:      total,
		Correct:    correct,
		Incorrect:  total - correct,
		Percentage: int(math.Round(float64(correct) / float64(total) * 100)),
		ByCategory: byCategory,
		Duration:   time.Since(c.current.StartTime),
		Mode:       Mode(c.current.Mode),
	}, nil
}

// End clears the active session and runs the mastery recount pass. The
// tests-taken counter is bumped here, once per completed session.
func (c *Controller) End(ctx context.Context) error {
	if c.current == nil {
		return nil
	}
	if _, err := c.mastery.RecomputeMasteryCounts(ctx, c.repo.All()); err != nil {
		return err
	}
	stats := c.store.Stats(ctx)
	stats.TestsTaken++
	if err := c.store.SetStats(ctx, stats); err != nil {
		return err
	}
	return c.clear(ctx)
}

// Abandon clears the active session without the recount pass. Per-answer
// progress already recorded stays recorded.
func (c *Controller) Abandon(ctx context.Context) error {
	if c.current == nil {
		return nil
	}
	return c.clear(ctx)
}

func (c *Controller) clear(ctx context.Context) error {
	if err := c.store.ClearCurrentSession(ctx); err != nil {
		return err
	}
	c.current = nil
	return nil
}

package session

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"roadready/internal/catalog"
	"roadready/internal/mastery"
	"roadready/internal/store"
)

func testController(t *testing.T, questions []catalog.Question) (*Controller, *store.Store) {
	t.Helper()
	repo, err := catalog.FromQuestions(questions)
	if err != nil {
		t.Fatalf("build repository: %v", err)
	}
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	c := NewController(repo, st, mastery.NewService(st))
	c.SetRand(rand.New(rand.NewSource(42)))
	return c, st
}

func trueFalseQuestions(n int) []catalog.Question {
	qs := make([]catalog.Question, n)
	for i := range qs {
		category := "Road Signs"
		if i%2 == 1 {
			category = "Traffic Laws"
		}
		qs[i] = catalog.Question{
			ID:            i + 1,
			Category:      category,
			Type:          catalog.TypeTrueFalse,
			CorrectAnswer: "true",
			Explanation:   "because",
		}
	}
	return qs
}

func TestStartPractice_PersistsSnapshot(t *testing.T) {
	c, st := testController(t, trueFalseQuestions(10))
	ctx := context.Background()

	snap, err := c.StartPractice(ctx, false)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.Mode != string(ModePractice) {
		t.Errorf("mode = %q, want practice", snap.Mode)
	}
	if len(snap.QuestionIDs) != 10 {
		t.Errorf("session size = %d, want 10", len(snap.QuestionIDs))
	}
	if snap.CurrentIndex != 0 || len(snap.Responses) != 0 {
		t.Error("new session not zeroed")
	}
	if snap.ID == "" {
		t.Error("session has no id")
	}

	persisted := st.CurrentSession(ctx)
	if persisted == nil || persisted.ID != snap.ID {
		t.Error("snapshot not persisted at start")
	}
}

func TestStartReview_EmptyQueueFails(t *testing.T) {
	c, st := testController(t, trueFalseQuestions(5))
	ctx := context.Background()

	if _, err := c.StartReview(ctx); err != ErrEmptyReviewQueue {
		t.Fatalf("err = %v, want ErrEmptyReviewQueue", err)
	}
	if st.CurrentSession(ctx) != nil {
		t.Error("failed review start mutated the store")
	}
}

func TestStartReview_UsesMissedQueue(t *testing.T) {
	c, _ := testController(t, trueFalseQuestions(5))
	ctx := context.Background()

	// Miss questions 2 and 4 in a practice run.
	if _, err := c.StartPractice(ctx, false); err != nil {
		t.Fatalf("start practice: %v", err)
	}
	for {
		q, ok := c.CurrentQuestion()
		if !ok {
			break
		}
		answer := "true"
		if q.ID == 2 || q.ID == 4 {
			answer = "false"
		}
		if _, err := c.Answer(ctx, answer); err != nil {
			t.Fatalf("answer: %v", err)
		}
		moved, err := c.Advance(ctx)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if !moved {
			break
		}
	}
	if err := c.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}

	snap, err := c.StartReview(ctx)
	if err != nil {
		t.Fatalf("start review: %v", err)
	}
	if len(snap.QuestionIDs) != 2 {
		t.Fatalf("review size = %d, want 2", len(snap.QuestionIDs))
	}
	want := map[int]bool{2: true, 4: true}
	for _, id := range snap.QuestionIDs {
		if !want[id] {
			t.Errorf("unexpected id %d in review queue", id)
		}
	}
}

func TestAnswer_RequiresActiveSession(t *testing.T) {
	c, _ := testController(t, trueFalseQuestions(5))

	if _, err := c.Answer(context.Background(), "true"); err != ErrNoSession {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestAnswer_GradesAndDelegates(t *testing.T) {
	c, st := testController(t, trueFalseQuestions(5))
	ctx := context.Background()

	if _, err := c.StartPractice(ctx, false); err != nil {
		t.Fatalf("start: %v", err)
	}
	q, _ := c.CurrentQuestion()

	v, err := c.Answer(ctx, "true")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !v.Correct {
		t.Error("correct answer graded incorrect")
	}
	if v.CorrectAnswer != "true" || v.Explanation != "because" {
		t.Error("verdict missing canonical answer or explanation")
	}
	if v.Category != q.Category {
		t.Errorf("verdict category = %q, want %q", v.Category, q.Category)
	}
	if v.Record.Attempts != 1 {
		t.Errorf("question record attempts = %d, want 1", v.Record.Attempts)
	}
	if v.Stats.TotalAttempts != 1 || v.Stats.CurrentStreak != 1 {
		t.Error("aggregate stats not updated")
	}

	snap := st.CurrentSession(ctx)
	if len(snap.Responses) != 1 || snap.Stats.Correct != 1 {
		t.Error("response not persisted in session snapshot")
	}
}

func TestAdvance_StopsAtEnd(t *testing.T) {
	c, _ := testController(t, trueFalseQuestions(3))
	ctx := context.Background()

	if _, err := c.StartPractice(ctx, false); err != nil {
		t.Fatalf("start: %v", err)
	}

	for i := 0; i < 2; i++ {
		moved, err := c.Advance(ctx)
		if err != nil || !moved {
			t.Fatalf("advance %d: moved=%v err=%v", i, moved, err)
		}
	}
	if !c.IsComplete() {
		t.Error("session not complete at final index")
	}
	moved, err := c.Advance(ctx)
	if err != nil {
		t.Fatalf("advance past end: %v", err)
	}
	if moved {
		t.Error("advanced past the last question")
	}
}

func TestResults_PercentageAndCategories(t *testing.T) {
	c, _ := testController(t, trueFalseQuestions(4))
	ctx := context.Background()

	if _, err := c.StartPractice(ctx, false); err != nil {
		t.Fatalf("start: %v", err)
	}
	// 3 of 4 correct.
	wrongDone := false
	for {
		if _, ok := c.CurrentQuestion(); !ok {
			break
		}
		answer := "true"
		if !wrongDone {
			answer = "false"
			wrongDone = true
		}
		if _, err := c.Answer(ctx, answer); err != nil {
			t.Fatalf("answer: %v", err)
		}
		moved, err := c.Advance(ctx)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if !moved {
			break
		}
	}

	res, err := c.Results()
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if res.Total != 4 || res.Correct != 3 || res.Incorrect != 1 {
		t.Errorf("results = %d/%d/%d, want 4/3/1", res.Total, res.Correct, res.Incorrect)
	}
	if res.Percentage != 75 {
		t.Errorf("percentage = %d, want 75", res.Percentage)
	}
	attempted := 0
	for _, bucket := range res.ByCategory {
		attempted += bucket.Attempted
	}
	if attempted != 4 {
		t.Errorf("category attempted sum = %d, want 4", attempted)
	}
	if res.Mode != ModePractice {
		t.Errorf("mode = %q, want practice", res.Mode)
	}
}

func TestEnd_RecountsAndClears(t *testing.T) {
	c, st := testController(t, trueFalseQuestions(2))
	ctx := context.Background()

	if _, err := c.StartPractice(ctx, false); err != nil {
		t.Fatalf("start: %v", err)
	}
	for {
		if _, err := c.Answer(ctx, "true"); err != nil {
			t.Fatalf("answer: %v", err)
		}
		moved, err := c.Advance(ctx)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if !moved {
			break
		}
	}
	if err := c.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}

	if c.Current() != nil || st.CurrentSession(ctx) != nil {
		t.Error("session not cleared on end")
	}
	if got := st.Stats(ctx).TestsTaken; got != 1 {
		t.Errorf("TestsTaken = %d, want 1", got)
	}

	// Run a second practice answering both correctly again: both become
	// mastered, visible after the end-of-session recount.
	if _, err := c.StartPractice(ctx, false); err != nil {
		t.Fatalf("second start: %v", err)
	}
	for {
		if _, err := c.Answer(ctx, "true"); err != nil {
			t.Fatalf("answer: %v", err)
		}
		moved, err := c.Advance(ctx)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if !moved {
			break
		}
	}
	if got := st.Stats(ctx).QuestionsMastered; got != 0 {
		t.Errorf("QuestionsMastered visible before session end: %d", got)
	}
	if err := c.End(ctx); err != nil {
		t.Fatalf("second end: %v", err)
	}
	if got := st.Stats(ctx).QuestionsMastered; got != 2 {
		t.Errorf("QuestionsMastered = %d, want 2", got)
	}
}

func TestAbandon_SkipsRecount(t *testing.T) {
	c, st := testController(t, trueFalseQuestions(2))
	ctx := context.Background()

	// Master both questions across two answers each, then abandon.
	if _, err := c.StartPractice(ctx, false); err != nil {
		t.Fatalf("start: %v", err)
	}
	for {
		if _, err := c.Answer(ctx, "true"); err != nil {
			t.Fatalf("answer: %v", err)
		}
		moved, err := c.Advance(ctx)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if !moved {
			break
		}
	}
	if err := c.Abandon(ctx); err != nil {
		t.Fatalf("abandon: %v", err)
	}

	if st.CurrentSession(ctx) != nil {
		t.Error("abandon left the snapshot behind")
	}
	// Answers were still recorded, but the recount never ran.
	if got := st.Stats(ctx).TotalAttempts; got != 2 {
		t.Errorf("TotalAttempts = %d, want 2", got)
	}
	if got := st.Stats(ctx).TestsTaken; got != 0 {
		t.Errorf("TestsTaken after abandon = %d, want 0", got)
	}
}

func TestResume_RestoresSnapshot(t *testing.T) {
	c, st := testController(t, trueFalseQuestions(5))
	ctx := context.Background()

	snap, err := c.StartPractice(ctx, false)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := c.Answer(ctx, "true"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := c.Advance(ctx); err != nil {
		t.Fatalf("advance: %v", err)
	}

	// A fresh controller over the same store resumes where we left off.
	repo, err := catalog.FromQuestions(trueFalseQuestions(5))
	if err != nil {
		t.Fatalf("build repository: %v", err)
	}
	fresh := NewController(repo, st, mastery.NewService(st))
	resumed := fresh.Resume(ctx)
	if resumed == nil {
		t.Fatal("nothing to resume")
	}
	if resumed.ID != snap.ID {
		t.Error("resumed a different session")
	}
	if resumed.CurrentIndex != 1 || len(resumed.Responses) != 1 {
		t.Error("resumed snapshot out of date")
	}
}

func TestUnanswered(t *testing.T) {
	c, _ := testController(t, trueFalseQuestions(3))
	ctx := context.Background()

	if _, err := c.StartPractice(ctx, false); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := c.Answer(ctx, "true"); err != nil {
		t.Fatalf("answer: %v", err)
	}

	if got := len(c.Unanswered()); got != 2 {
		t.Errorf("unanswered = %d, want 2", got)
	}
}

func TestStartPractice_ExcludeMastered(t *testing.T) {
	c, _ := testController(t, trueFalseQuestions(5))
	ctx := context.Background()

	// Master questions 1 and 2 directly through the mastery engine.
	m := mastery.NewService(mustStore(t, c))
	for _, id := range []int{1, 2} {
		for i := 0; i < 2; i++ {
			if _, err := m.RecordAnswer(ctx, id, true); err != nil {
				t.Fatalf("record: %v", err)
			}
		}
	}

	snap, err := c.StartPractice(ctx, true)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(snap.QuestionIDs) != 3 {
		t.Fatalf("session size = %d, want 3", len(snap.QuestionIDs))
	}
	for _, id := range snap.QuestionIDs {
		if id == 1 || id == 2 {
			t.Errorf("mastered question %d included despite exclusion", id)
		}
	}
}

func mustStore(t *testing.T, c *Controller) *store.Store {
	t.Helper()
	return c.store
}

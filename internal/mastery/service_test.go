package mastery

import (
	"context"
	"path/filepath"
	"testing"

	"roadready/internal/catalog"
	"roadready/internal/store"
)

func testService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewService(st), st
}

func answerSequence(t *testing.T, svc *Service, questionID int, answers ...bool) *store.QuestionRecord {
	t.Helper()
	ctx := context.Background()
	var rec *store.QuestionRecord
	var err error
	for _, correct := range answers {
		rec, err = svc.RecordAnswer(ctx, questionID, correct)
		if err != nil {
			t.Fatalf("record answer: %v", err)
		}
	}
	return rec
}

func TestRecordAnswer_CountsStayConsistent(t *testing.T) {
	svc, _ := testService(t)
	rec := answerSequence(t, svc, 1, true, false, true, true, false, true)

	if rec.Attempts != 6 {
		t.Errorf("Attempts = %d, want 6", rec.Attempts)
	}
	if got := rec.CorrectCount + rec.IncorrectCount; got != rec.Attempts {
		t.Errorf("CorrectCount+IncorrectCount = %d, want %d", got, rec.Attempts)
	}
}

func TestRecordAnswer_MasteryAfterTwoConsecutive(t *testing.T) {
	svc, _ := testService(t)

	rec := answerSequence(t, svc, 1, true)
	if rec.Mastered {
		t.Error("mastered after a single correct answer")
	}
	rec = answerSequence(t, svc, 1, true)
	if !rec.Mastered {
		t.Error("not mastered after two consecutive correct answers")
	}
	if rec.ConsecutiveCorrect < 2 {
		t.Errorf("ConsecutiveCorrect = %d, want >= 2", rec.ConsecutiveCorrect)
	}
}

func TestRecordAnswer_IncorrectRevokesMastery(t *testing.T) {
	svc, _ := testService(t)

	answerSequence(t, svc, 1, true, true, true, true)
	rec := answerSequence(t, svc, 1, false)

	if rec.Mastered {
		t.Error("mastery survived an incorrect answer")
	}
	if rec.ConsecutiveCorrect != 0 {
		t.Errorf("ConsecutiveCorrect = %d, want 0", rec.ConsecutiveCorrect)
	}
	if rec.CorrectCount != 4 {
		t.Errorf("CorrectCount = %d, want 4 (history is kept)", rec.CorrectCount)
	}
}

func TestRecordAnswer_InterruptedRunNeedsTwoMore(t *testing.T) {
	svc, _ := testService(t)

	// correct, incorrect, correct: the run was broken, one more correct
	// still shy of mastery until the pair completes.
	rec := answerSequence(t, svc, 1, true, false, true)
	if rec.Mastered {
		t.Error("mastered with a broken run")
	}
	rec = answerSequence(t, svc, 1, true)
	if !rec.Mastered {
		t.Error("not mastered after the run completed")
	}
}

func TestRecordAnswer_FirstAttemptCorrect(t *testing.T) {
	svc, _ := testService(t)

	rec := answerSequence(t, svc, 1, false, true, true)
	if rec.FirstAttemptCorrect == nil || *rec.FirstAttemptCorrect {
		t.Error("FirstAttemptCorrect should be locked to the first answer")
	}

	rec = answerSequence(t, svc, 2, true, false)
	if rec.FirstAttemptCorrect == nil || !*rec.FirstAttemptCorrect {
		t.Error("FirstAttemptCorrect lost for question answered correctly first")
	}
}

func TestRecordAttemptStats_Streaks(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	for _, correct := range []bool{true, true, true, false, true} {
		if _, err := svc.RecordAttemptStats(ctx, correct, "Traffic Laws"); err != nil {
			t.Fatalf("record stats: %v", err)
		}
	}

	stats := st.Stats(ctx)
	if stats.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", stats.CurrentStreak)
	}
	if stats.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", stats.LongestStreak)
	}
	if stats.LongestStreak < stats.CurrentStreak {
		t.Error("LongestStreak below CurrentStreak")
	}
	if stats.TotalAttempts != 5 || stats.TotalCorrect != 4 || stats.TotalIncorrect != 1 {
		t.Errorf("totals = %d/%d/%d, want 5/4/1",
			stats.TotalAttempts, stats.TotalCorrect, stats.TotalIncorrect)
	}

	bucket := stats.CategoryBreakdown["Traffic Laws"]
	if bucket == nil {
		t.Fatal("category bucket not created")
	}
	if bucket.Attempts != 5 || bucket.Correct != 4 {
		t.Errorf("bucket = %d/%d, want 5/4", bucket.Attempts, bucket.Correct)
	}
}

func TestMasteredAndMissedSets(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	// Question 1: mastered. Question 2: missed. Question 3: mastered after
	// a miss, so it leaves the review queue.
	answerSequence(t, svc, 1, true, true)
	answerSequence(t, svc, 2, false)
	answerSequence(t, svc, 3, false, true, true)

	mastered := svc.MasteredIDs(ctx)
	if len(mastered) != 2 || mastered[0] != 1 || mastered[1] != 3 {
		t.Errorf("MasteredIDs = %v, want [1 3]", mastered)
	}

	missed := svc.MissedIDs(ctx)
	if len(missed) != 1 || missed[0] != 2 {
		t.Errorf("MissedIDs = %v, want [2]", missed)
	}

	// Revoke question 1's mastery; it has an incorrect now, so it joins
	// the review queue.
	answerSequence(t, svc, 1, false)
	missed = svc.MissedIDs(ctx)
	if len(missed) != 2 || missed[0] != 1 {
		t.Errorf("MissedIDs after revoke = %v, want [1 2]", missed)
	}
}

func TestRecomputeMasteryCounts(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	questions := []catalog.Question{
		{ID: 1, Category: "Road Signs"},
		{ID: 2, Category: "Road Signs"},
		{ID: 3, Category: "Parking"},
	}

	answerSequence(t, svc, 1, true, true)
	answerSequence(t, svc, 2, true, true)
	answerSequence(t, svc, 3, false)
	for _, q := range questions {
		// Create the category buckets the recount writes into.
		if _, err := svc.RecordAttemptStats(ctx, true, q.Category); err != nil {
			t.Fatalf("record stats: %v", err)
		}
	}

	// Counts stay stale until the recount pass runs.
	if got := st.Stats(ctx).QuestionsMastered; got != 0 {
		t.Errorf("QuestionsMastered before recompute = %d, want 0", got)
	}

	stats, err := svc.RecomputeMasteryCounts(ctx, questions)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if stats.QuestionsMastered != 2 {
		t.Errorf("QuestionsMastered = %d, want 2", stats.QuestionsMastered)
	}
	if got := stats.CategoryBreakdown["Road Signs"].Mastered; got != 2 {
		t.Errorf("Road Signs mastered = %d, want 2", got)
	}

	// Demote question 2; the recount zeroes the stale count.
	answerSequence(t, svc, 2, false)
	stats, err = svc.RecomputeMasteryCounts(ctx, questions)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if got := stats.CategoryBreakdown["Road Signs"].Mastered; got != 1 {
		t.Errorf("Road Signs mastered after demotion = %d, want 1", got)
	}
}

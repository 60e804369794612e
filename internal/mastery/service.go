// Package mastery maintains per-question answer history and the aggregate
// statistics derived from it. A question is mastered after two consecutive
// correct answers and loses mastery on any later incorrect answer.
package mastery

import (
	"context"
	"sort"
	"time"

	"roadready/internal/catalog"
	"roadready/internal/store"
)

// MasteryThreshold is the consecutive-correct count that earns mastery.
const MasteryThreshold = 2

// Service updates question records and aggregate stats in the record store.
type Service struct {
	store *store.Store
}

// NewService creates a mastery service over the given store.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// RecordAnswer applies one answer to the question's record and persists the
// whole history map. This is the only code path that sets or clears the
// mastered flag.
func (s *Service) RecordAnswer(ctx context.Context, questionID int, correct bool) (*store.QuestionRecord, error) {
	history := s.store.QuestionHistory(ctx)
	rec := history[questionID]
	if rec == nil {
		rec = &store.QuestionRecord{}
	}

	rec.Attempts++
	now := time.Now()
	rec.LastAttempt = &now

	if correct {
		rec.CorrectCount++
		rec.ConsecutiveCorrect++
		if rec.ConsecutiveCorrect >= MasteryThreshold {
			rec.Mastered = true
		}
	} else {
		rec.IncorrectCount++
		rec.ConsecutiveCorrect = 0
		rec.Mastered = false
	}

	if rec.Attempts == 1 {
		first := correct
		rec.FirstAttemptCorrect = &first
	}

	history[questionID] = rec
	if err := s.store.SetQuestionHistory(ctx, history); err != nil {
		return nil, err
	}
	return rec, nil
}

// RecordAttemptStats folds one answer into the aggregate stats: totals,
// the cross-session streak, and the category bucket (created lazily).
func (s *Service) RecordAttemptStats(ctx context.Context, correct bool, category string) (*store.AggregateStats, error) {
	stats := s.store.Stats(ctx)

	stats.TotalAttempts++
	if correct {
		stats.TotalCorrect++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestStreak {
			stats.LongestStreak = stats.CurrentStreak
		}
	} else {
		stats.TotalIncorrect++
		stats.CurrentStreak = 0
	}

	if category != "" {
		bucket := stats.CategoryBreakdown[category]
		if bucket == nil {
			bucket = &store.CategoryStats{}
			stats.CategoryBreakdown[category] = bucket
		}
		bucket.Attempts++
		if correct {
			bucket.Correct++
		}
	}

	if err := s.store.SetStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecomputeMasteryCounts rescans the full question history and refreshes
// QuestionsMastered and the per-category mastered counts. It runs at session
// end rather than on every answer, as an explicit consistency pass.
func (s *Service) RecomputeMasteryCounts(ctx context.Context, questions []catalog.Question) (*store.AggregateStats, error) {
	history := s.store.QuestionHistory(ctx)
	stats := s.store.Stats(ctx)

	mastered := 0
	for _, rec := range history {
		if rec.Mastered {
			mastered++
		}
	}
	stats.QuestionsMastered = mastered

	perCategory := make(map[string]int)
	for _, q := range questions {
		if rec, ok := history[q.ID]; ok && rec.Mastered {
			perCategory[q.Category]++
		}
	}
	// Zero first so categories whose last mastered question was demoted do
	// not keep a stale count.
	for _, bucket := range stats.CategoryBreakdown {
		bucket.Mastered = 0
	}
	for category, count := range perCategory {
		if bucket, ok := stats.CategoryBreakdown[category]; ok {
			bucket.Mastered = count
		}
	}

	if err := s.store.SetStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// MasteredIDs returns the ids of all currently mastered questions, sorted.
func (s *Service) MasteredIDs(ctx context.Context) []int {
	var ids []int
	for id, rec := range s.store.QuestionHistory(ctx) {
		if rec.Mastered {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// MissedIDs returns the review queue: questions answered incorrectly at some
// point and not currently mastered, sorted. A question that later reaches
// mastery drops out of this set even though its incorrect count stays
// nonzero; one missed long ago and never retried stays in it indefinitely.
func (s *Service) MissedIDs(ctx context.Context) []int {
	var ids []int
	for id, rec := range s.store.QuestionHistory(ctx) {
		if rec.IncorrectCount > 0 && !rec.Mastered {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

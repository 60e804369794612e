package store

import "context"

// QuestionHistory returns the full per-question history map. Missing or
// unreadable history yields an empty map.
func (s *Store) QuestionHistory(ctx context.Context) map[int]*QuestionRecord {
	history := make(map[int]*QuestionRecord)
	s.readJSON(ctx, keyQuestionHistory, &history)
	return history
}

// QuestionRecordFor returns the record for one question, or a zeroed record
// if the question was never attempted.
func (s *Store) QuestionRecordFor(ctx context.Context, questionID int) *QuestionRecord {
	if rec, ok := s.QuestionHistory(ctx)[questionID]; ok {
		return rec
	}
	return &QuestionRecord{}
}

// SetQuestionHistory replaces the whole history map.
func (s *Store) SetQuestionHistory(ctx context.Context, history map[int]*QuestionRecord) error {
	return s.writeJSON(ctx, keyQuestionHistory, history)
}

// Stats returns the aggregate stats, zeroed when none are stored.
func (s *Store) Stats(ctx context.Context) *AggregateStats {
	stats := NewAggregateStats()
	s.readJSON(ctx, keyStats, stats)
	if stats.CategoryBreakdown == nil {
		stats.CategoryBreakdown = make(map[string]*CategoryStats)
	}
	return stats
}

// SetStats replaces the aggregate stats.
func (s *Store) SetStats(ctx context.Context, stats *AggregateStats) error {
	return s.writeJSON(ctx, keyStats, stats)
}

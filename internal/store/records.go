package store

import "time"

// UserProfile identifies the single local user.
type UserProfile struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	LastVisit time.Time `json:"lastVisit"`
}

// QuestionRecord is the per-question answer history. Records are created
// lazily on the first answer to a question and only removed by a data reset.
//
// Invariants: Attempts == CorrectCount + IncorrectCount, and Mastered implies
// ConsecutiveCorrect >= 2.
type QuestionRecord struct {
	Attempts            int        `json:"attempts"`
	CorrectCount        int        `json:"correctCount"`
	IncorrectCount      int        `json:"incorrectCount"`
	ConsecutiveCorrect  int        `json:"consecutiveCorrect"`
	LastAttempt         *time.Time `json:"lastAttempt"`
	Mastered            bool       `json:"mastered"`
	FirstAttemptCorrect *bool      `json:"firstAttemptCorrect"`
}

// CategoryStats is the per-category slice of the aggregate stats.
type CategoryStats struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
	Mastered int `json:"mastered"`
}

// AggregateStats are the running totals across every session. CurrentStreak
// survives session boundaries and only resets on an incorrect answer.
// QuestionsMastered and the per-category Mastered counts are recomputed by a
// full history scan at session end rather than tracked incrementally.
type AggregateStats struct {
	TotalAttempts     int                       `json:"totalAttempts"`
	TotalCorrect      int                       `json:"totalCorrect"`
	TotalIncorrect    int                       `json:"totalIncorrect"`
	TestsTaken        int                       `json:"testsTaken"`
	LongestStreak     int                       `json:"longestStreak"`
	CurrentStreak     int                       `json:"currentStreak"`
	QuestionsMastered int                       `json:"questionsMastered"`
	CategoryBreakdown map[string]*CategoryStats `json:"categoryBreakdown"`
}

// NewAggregateStats returns zeroed stats with an initialized category map.
func NewAggregateStats() *AggregateStats {
	return &AggregateStats{CategoryBreakdown: make(map[string]*CategoryStats)}
}

// Accuracy returns the overall fraction of correct answers, 0 when no
// attempts have been made.
func (a *AggregateStats) Accuracy() float64 {
	if a.TotalAttempts == 0 {
		return 0
	}
	return float64(a.TotalCorrect) / float64(a.TotalAttempts)
}

// Response records a single answered question within a session.
type Response struct {
	QuestionID int       `json:"questionId"`
	UserAnswer string    `json:"userAnswer"`
	Correct    bool      `json:"correct"`
	Timestamp  time.Time `json:"timestamp"`
}

// SessionTally is the running correct/incorrect count for a session.
type SessionTally struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// SessionSnapshot is the persisted image of the active session. It is
// rewritten after every mutation so an interrupted run can resume from the
// last completed step.
type SessionSnapshot struct {
	ID           string       `json:"id"`
	Mode         string       `json:"mode"`
	StartTime    time.Time    `json:"startTime"`
	QuestionIDs  []int        `json:"questionIds"`
	CurrentIndex int          `json:"currentIndex"`
	Responses    []Response   `json:"responses"`
	Stats        SessionTally `json:"sessionStats"`
}

package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	require.NotNil(t, s.DB())
}

func TestUserLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.Nil(t, s.User(ctx), "no profile before first write")

	u, err := s.SetUser(ctx, "Dana")
	require.NoError(t, err)
	assert.Equal(t, "Dana", u.Name)
	assert.False(t, u.CreatedAt.IsZero())

	created := u.CreatedAt

	// Rename keeps CreatedAt, refreshes LastVisit.
	u, err = s.SetUser(ctx, "Dana R")
	require.NoError(t, err)
	assert.Equal(t, "Dana R", u.Name)
	assert.Equal(t, created, u.CreatedAt)
	assert.False(t, u.LastVisit.Before(created))
}

func TestDefaultsWhenEmpty(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	assert.Empty(t, s.QuestionHistory(ctx))
	assert.Equal(t, 0, s.Stats(ctx).TotalAttempts)
	assert.NotNil(t, s.Stats(ctx).CategoryBreakdown)
	assert.Nil(t, s.CurrentSession(ctx))
	assert.Empty(t, s.Achievements(ctx))
	assert.Empty(t, s.CategoryMasters(ctx))
}

func TestMalformedValueFallsBackToDefault(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().Exec(
		"INSERT INTO records (key, value) VALUES (?, ?)", keyStats, "{not json")
	require.NoError(t, err)

	stats := s.Stats(ctx)
	assert.Equal(t, 0, stats.TotalAttempts, "malformed stats must read as default")
}

func TestQuestionHistoryRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	history := map[int]*QuestionRecord{
		7: {Attempts: 3, CorrectCount: 2, IncorrectCount: 1, ConsecutiveCorrect: 2, Mastered: true},
	}
	require.NoError(t, s.SetQuestionHistory(ctx, history))

	got := s.QuestionHistory(ctx)
	require.Contains(t, got, 7)
	assert.Equal(t, 3, got[7].Attempts)
	assert.True(t, got[7].Mastered)

	rec := s.QuestionRecordFor(ctx, 99)
	assert.Equal(t, 0, rec.Attempts, "unknown id reads as zero record")
}

func TestSessionSnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap := &SessionSnapshot{
		ID:          "abc",
		Mode:        "practice",
		QuestionIDs: []int{1, 2, 3},
	}
	require.NoError(t, s.SetCurrentSession(ctx, snap))

	got := s.CurrentSession(ctx)
	require.NotNil(t, got)
	assert.Equal(t, []int{1, 2, 3}, got.QuestionIDs)

	require.NoError(t, s.ClearCurrentSession(ctx))
	assert.Nil(t, s.CurrentSession(ctx))
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.SetUser(ctx, "Dana")
	require.NoError(t, err)
	require.NoError(t, s.SetAchievements(ctx, []string{"first_correct"}))
	require.NoError(t, s.Reset(ctx))

	assert.Nil(t, s.User(ctx))
	assert.Equal(t, []string{"first_correct"}, s.Achievements(ctx),
		"achievements survive a plain reset")

	require.NoError(t, s.ResetAll(ctx))
	assert.Empty(t, s.Achievements(ctx))
}

func TestExportImportRoundTrip(t *testing.T) {
	src := openTestStore(t)
	dst := openTestStore(t)
	ctx := context.Background()

	_, err := src.SetUser(ctx, "Dana")
	require.NoError(t, err)
	require.NoError(t, src.SetQuestionHistory(ctx, map[int]*QuestionRecord{
		1: {Attempts: 2, CorrectCount: 2, ConsecutiveCorrect: 2, Mastered: true},
		2: {Attempts: 1, IncorrectCount: 1},
	}))
	stats := NewAggregateStats()
	stats.TotalAttempts = 3
	stats.TotalCorrect = 2
	stats.TotalIncorrect = 1
	stats.LongestStreak = 2
	stats.CategoryBreakdown["Road Signs"] = &CategoryStats{Attempts: 3, Correct: 2}
	require.NoError(t, src.SetStats(ctx, stats))

	backup := src.Export(ctx)
	assert.Equal(t, BackupVersion, backup.Version)
	raw, err := json.Marshal(backup)
	require.NoError(t, err)

	require.NoError(t, dst.Import(ctx, raw))

	assert.Equal(t, "Dana", dst.User(ctx).Name)
	assert.Equal(t, stats.TotalAttempts, dst.Stats(ctx).TotalAttempts)
	assert.Equal(t, stats.CategoryBreakdown["Road Signs"].Correct,
		dst.Stats(ctx).CategoryBreakdown["Road Signs"].Correct)
	history := dst.QuestionHistory(ctx)
	require.Len(t, history, 2)
	assert.True(t, history[1].Mastered)
}

func TestImportRejectsMissingFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.SetUser(ctx, "Dana")
	require.NoError(t, err)

	err = s.Import(ctx, []byte(`{"user": {}, "stats": {}}`))
	require.ErrorIs(t, err, ErrInvalidImport)

	// Nothing was overwritten.
	assert.Equal(t, "Dana", s.User(ctx).Name)
}

func TestImportRejectsBadJSON(t *testing.T) {
	s := openTestStore(t)
	err := s.Import(context.Background(), []byte("not json"))
	require.ErrorIs(t, err, ErrInvalidImport)
}

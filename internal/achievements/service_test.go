package achievements

import (
	"context"
	"path/filepath"
	"testing"

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

func setStats(t *testing.T, st *store.Store, mutate func(*store.AggregateStats)) {
	t.Helper()
	ctx := context.Background()
	stats := st.Stats(ctx)
	mutate(stats)
	if err := st.SetStats(ctx, stats); err != nil {
		t.Fatalf("set stats: %v", err)
	}
}

func ids(as []Achievement) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}

func TestScan_FreshStatsEarnNothing(t *testing.T) {
	svc, _ := testService(t)

	newly, err := svc.ScanForNewlyEarned(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(newly) != 0 {
		t.Errorf("earned %v with zero stats", ids(newly))
	}
}

func TestScan_FirstCorrect(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	setStats(t, st, func(s *store.AggregateStats) {
		s.TotalAttempts = 1
		s.TotalCorrect = 1
		s.CurrentStreak = 1
		s.LongestStreak = 1
	})

	newly, err := svc.ScanForNewlyEarned(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(newly) != 1 || newly[0].ID != "first_correct" {
		t.Fatalf("newly = %v, want [first_correct]", ids(newly))
	}
	if !svc.IsEarned(ctx, "first_correct") {
		t.Error("award not persisted")
	}

	// A second scan over the same stats is a no-op.
	again, err := svc.ScanForNewlyEarned(ctx)
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("rescan earned %v", ids(again))
	}
}

func TestScan_MultipleAtOnceInCatalogOrder(t *testing.T) {
	svc, st := testService(t)

	setStats(t, st, func(s *store.AggregateStats) {
		s.TotalAttempts = 60
		s.TotalCorrect = 55
		s.CurrentStreak = 12
		s.LongestStreak = 12
		s.QuestionsMastered = 10
	})

	newly, err := svc.ScanForNewlyEarned(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	want := []string{"first_correct", "ten_correct", "fifty_correct", "mastered_ten", "consistent"}
	got := ids(newly)
	if len(got) != len(want) {
		t.Fatalf("newly = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("newly = %v, want %v", got, want)
		}
	}
}

func TestScan_StreakBadgesUseLongestStreak(t *testing.T) {
	svc, st := testService(t)

	// A broken streak: the best run reached 10, the current one is 0.
	setStats(t, st, func(s *store.AggregateStats) {
		s.TotalAttempts = 11
		s.TotalCorrect = 10
		s.TotalIncorrect = 1
		s.CurrentStreak = 0
		s.LongestStreak = 10
	})

	newly, err := svc.ScanForNewlyEarned(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	gotTen, gotLong := false, false
	for _, a := range newly {
		switch a.ID {
		case "ten_correct":
			gotTen = true
		case "long_streak":
			gotLong = true
		}
	}
	if !gotTen {
		t.Error("ten_correct not earned from a past 10-streak")
	}
	if gotLong {
		t.Error("long_streak earned below 20")
	}
}

func TestConsistent_AccuracyBoundary(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	// 18/20 is exactly 0.9 and qualifies.
	setStats(t, st, func(s *store.AggregateStats) {
		s.TotalAttempts = 20
		s.TotalCorrect = 18
		s.TotalIncorrect = 2
	})
	newly, err := svc.ScanForNewlyEarned(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	found := false
	for _, a := range newly {
		if a.ID == "consistent" {
			found = true
		}
	}
	if !found {
		t.Error("consistent not earned at exactly 90% over 20 attempts")
	}
}

func TestConsistent_BelowThresholds(t *testing.T) {
	svc, st := testService(t)

	// 17/19 attempts is above 0.9 accuracy but under the attempt floor.
	setStats(t, st, func(s *store.AggregateStats) {
		s.TotalAttempts = 19
		s.TotalCorrect = 17
		s.TotalIncorrect = 2
	})
	newly, err := svc.ScanForNewlyEarned(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	for _, a := range newly {
		if a.ID == "consistent" {
			t.Error("consistent earned under 20 attempts")
		}
	}
}

func TestAwardPerfectTest(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	if a, err := svc.AwardPerfectTest(ctx, 30, 35); err != nil || a != nil {
		t.Fatalf("imperfect score awarded: a=%v err=%v", a, err)
	}
	a, err := svc.AwardPerfectTest(ctx, 35, 35)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if a == nil || a.ID != IDPerfectTest {
		t.Fatalf("a = %v, want perfect_test", a)
	}

	// Second perfect run: already earned, nothing returned.
	a, err = svc.AwardPerfectTest(ctx, 35, 35)
	if err != nil {
		t.Fatalf("repeat award: %v", err)
	}
	if a != nil {
		t.Error("perfect_test awarded twice")
	}
}

func TestAwardPerfectTest_EmptySession(t *testing.T) {
	svc, _ := testService(t)

	if a, err := svc.AwardPerfectTest(context.Background(), 0, 0); err != nil || a != nil {
		t.Fatalf("0/0 awarded: a=%v err=%v", a, err)
	}
}

func TestAwardCategoryMastery_OncePerCategory(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	a, err := svc.AwardCategoryMastery(ctx, "Road Signs", 5, 5)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if a == nil || a.ID != IDCategoryMaster {
		t.Fatalf("a = %v, want category_master", a)
	}

	// The same category never triggers again, even after the badge itself
	// would have been re-awardable.
	a, err = svc.AwardCategoryMastery(ctx, "Road Signs", 3, 3)
	if err != nil {
		t.Fatalf("repeat award: %v", err)
	}
	if a != nil {
		t.Error("same category triggered twice")
	}

	// A different category records its marker but the badge is already held.
	a, err = svc.AwardCategoryMastery(ctx, "Parking", 4, 4)
	if err != nil {
		t.Fatalf("second category: %v", err)
	}
	if a != nil {
		t.Error("badge returned despite being already earned")
	}
	masters := st.CategoryMasters(ctx)
	if len(masters) != 2 {
		t.Errorf("markers = %v, want two categories", masters)
	}
}

func TestAwardCategoryMastery_RequiresPerfectCategory(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	if a, err := svc.AwardCategoryMastery(ctx, "Safety", 5, 4); err != nil || a != nil {
		t.Fatalf("imperfect category awarded: a=%v err=%v", a, err)
	}
	if len(st.CategoryMasters(ctx)) != 0 {
		t.Error("marker recorded for imperfect category")
	}
}

func TestEarned_SkipsUnknownIDs(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	if err := st.SetAchievements(ctx, []string{"first_correct", "retired_badge"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	earned := svc.Earned(ctx)
	if len(earned) != 1 || earned[0].ID != "first_correct" {
		t.Errorf("earned = %v, want [first_correct]", ids(earned))
	}
}

func TestProgress(t *testing.T) {
	svc, st := testService(t)
	ctx := context.Background()

	p := svc.Progress(ctx)
	if p.Earned != 0 || p.Total != len(Catalog) || p.Percentage != 0 {
		t.Errorf("fresh progress = %+v", p)
	}
	if p.NextMilestone != nil {
		t.Errorf("fresh stats have milestone %s", p.NextMilestone.ID)
	}

	setStats(t, st, func(s *store.AggregateStats) {
		s.TotalAttempts = 1
		s.TotalCorrect = 1
		s.CurrentStreak = 1
	})
	p = svc.Progress(ctx)
	if p.NextMilestone == nil || p.NextMilestone.ID != "first_correct" {
		t.Errorf("milestone = %v, want first_correct", p.NextMilestone)
	}

	if _, err := svc.ScanForNewlyEarned(ctx); err != nil {
		t.Fatalf("scan: %v", err)
	}
	p = svc.Progress(ctx)
	if p.Earned != 1 {
		t.Errorf("earned = %d, want 1", p.Earned)
	}
	if p.Percentage != int(float64(1)/float64(len(Catalog))*100+0.5) {
		t.Errorf("percentage = %d", p.Percentage)
	}
}

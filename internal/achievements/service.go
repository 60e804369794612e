// Package achievements derives badge state from the aggregate stats and
// session results. The earned set is append-only; awarding an already-earned
// badge is a no-op.
package achievements

import (
	"context"
	"math"

	"roadready/internal/store"
)

// Service evaluates and awards achievements against the record store.
type Service struct {
	store *store.Store
}

// NewService creates an achievement service over the given store.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// All returns the full catalog in declaration order.
func (s *Service) All() []Achievement {
	return Catalog
}

// Earned returns the earned achievements in award order. Ids persisted by an
// older catalog that no longer exist are skipped.
func (s *Service) Earned(ctx context.Context) []Achievement {
	var out []Achievement
	for _, id := range s.store.Achievements(ctx) {
		if a, ok := ByID(id); ok {
			out = append(out, a)
		}
	}
	return out
}

// IsEarned reports whether the achievement has been awarded.
func (s *Service) IsEarned(ctx context.Context, id string) bool {
	for _, earned := range s.store.Achievements(ctx) {
		if earned == id {
			return true
		}
	}
	return false
}

// ScanForNewlyEarned evaluates every not-yet-earned stat-driven achievement
// against the current aggregate stats, awards the ones whose condition now
// holds, and returns them in catalog order.
func (s *Service) ScanForNewlyEarned(ctx context.Context) ([]Achievement, error) {
	stats := s.store.Stats(ctx)
	earned := s.store.Achievements(ctx)
	earnedSet := make(map[string]bool, len(earned))
	for _, id := range earned {
		earnedSet[id] = true
	}

	var newly []Achievement
	for _, a := range Catalog {
		if earnedSet[a.ID] || a.Condition == nil || !a.Condition(stats) {
			continue
		}
		earned = append(earned, a.ID)
		newly = append(newly, a)
	}

	if len(newly) > 0 {
		if err := s.store.SetAchievements(ctx, earned); err != nil {
			return nil, err
		}
	}
	return newly, nil
}

// Award grants a specific achievement by id. It returns the achievement if
// this call earned it, or nil when it was already earned.
func (s *Service) Award(ctx context.Context, id string) (*Achievement, error) {
	a, ok := ByID(id)
	if !ok {
		return nil, nil
	}
	earned := s.store.Achievements(ctx)
	for _, e := range earned {
		if e == id {
			return nil, nil
		}
	}
	earned = append(earned, id)
	if err := s.store.SetAchievements(ctx, earned); err != nil {
		return nil, err
	}
	return &a, nil
}

// AwardPerfectTest grants the perfect-test badge when a session scored
// correct == total.
func (s *Service) AwardPerfectTest(ctx context.Context, correct, total int) (*Achievement, error) {
	if total == 0 || correct != total {
		return nil, nil
	}
	return s.Award(ctx, IDPerfectTest)
}

// AwardCategoryMastery grants the category-master badge for a session with
// 100% accuracy in a category. Each category can trigger the award once,
// ever: the category is recorded in the mastery marker set before awarding.
func (s *Service) AwardCategoryMastery(ctx context.Context, category string, attempted, correct int) (*Achievement, error) {
	if attempted == 0 || correct != attempted {
		return nil, nil
	}
	masters := s.store.CategoryMasters(ctx)
	for _, c := range masters {
		if c == category {
			return nil, nil
		}
	}
	masters = append(masters, category)
	if err := s.store.SetCategoryMasters(ctx, masters); err != nil {
		return nil, err
	}
	return s.Award(ctx, IDCategoryMaster)
}

// ProgressInfo summarizes how far the user is through the catalog.
type ProgressInfo struct {
	Earned     int
	Total      int
	Percentage int

	// NextMilestone is the first unearned achievement whose condition is
	// already true but hasn't been scanned in yet, or nil.
	NextMilestone *Achievement
}

// Progress computes the current catalog progress.
func (s *Service) Progress(ctx context.Context) *ProgressInfo {
	stats := s.store.Stats(ctx)
	earned := s.store.Achievements(ctx)
	earnedSet := make(map[string]bool, len(earned))
	for _, id := range earned {
		earnedSet[id] = true
	}

	var next *Achievement
	for _, a := range Catalog {
		if earnedSet[a.ID] || a.Condition == nil || !a.Condition(stats) {
			continue
		}
		found := a
		next = &found
		break
	}

	return &ProgressInfo{
		Earned:        len(earned),
		Total:         len(Catalog),
		Percentage:    int(math.Round(float64(len(earned)) / float64(len(Catalog)) * 100)),
		NextMilestone: next,
	}
}

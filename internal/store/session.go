package store

import "context"

// CurrentSession returns the persisted session snapshot, or nil when no
// session is active.
func (s *Store) CurrentSession(ctx context.Context) *SessionSnapshot {
	var snap SessionSnapshot
	if !s.readJSON(ctx, keyCurrentSession, &snap) {
		return nil
	}
	return &snap
}

// SetCurrentSession persists the active session snapshot.
func (s *Store) SetCurrentSession(ctx context.Context, snap *SessionSnapshot) error {
	return s.writeJSON(ctx, keyCurrentSession, snap)
}

// ClearCurrentSession removes the persisted snapshot.
func (s *Store) ClearCurrentSession(ctx context.Context) error {
	return s.deleteKey(ctx, keyCurrentSession)
}

// Achievements returns the earned achievement ids in award order.
func (s *Store) Achievements(ctx context.Context) []string {
	var ids []string
	s.readJSON(ctx, keyAchievements, &ids)
	return ids
}

// SetAchievements replaces the earned achievement id list.
func (s *Store) SetAchievements(ctx context.Context, ids []string) error {
	return s.writeJSON(ctx, keyAchievements, ids)
}

// CategoryMasters returns the categories that have already triggered the
// one-time category mastery award.
func (s *Store) CategoryMasters(ctx context.Context) []string {
	var categories []string
	s.readJSON(ctx, keyCategoryMasters, &categories)
	return categories
}

// SetCategoryMasters replaces the category mastery marker set.
func (s *Store) SetCategoryMasters(ctx context.Context, categories []string) error {
	return s.writeJSON(ctx, keyCategoryMasters, categories)
}

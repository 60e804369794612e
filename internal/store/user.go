package store

import (
	"context"
	"time"
)

// User returns the saved profile, or nil when no profile exists yet.
func (s *Store) User(ctx context.Context) *UserProfile {
	var u UserProfile
	if !s.readJSON(ctx, keyUser, &u) {
		return nil
	}
	return &u
}

// SetUser creates or renames the profile. LastVisit is refreshed on every
// write; CreatedAt is set once.
func (s *Store) SetUser(ctx context.Context, name string) (*UserProfile, error) {
	now := time.Now()
	u := s.User(ctx)
	if u == nil {
		u = &UserProfile{CreatedAt: now}
	}
	if name != "" {
		u.Name = name
	}
	u.LastVisit = now

	if err := s.writeJSON(ctx, keyUser, u); err != nil {
		return nil, err
	}
	return u, nil
}

// TouchUser refreshes LastVisit for an existing profile. No-op when no
// profile exists.
func (s *Store) TouchUser(ctx context.Context) error {
	u := s.User(ctx)
	if u == nil {
		return nil
	}
	u.LastVisit = time.Now()
	return s.writeJSON(ctx, keyUser, u)
}

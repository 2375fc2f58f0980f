package memory

import (
	"context"
	"encoding/json"

	"civitech/internal/domain/gamify"
)

type ProfileRepo struct {
	store *Store
}

func NewProfileRepo(store *Store) ProfileRepo {
	return ProfileRepo{store: store}
}

// GetByPlayer applies defensive defaulting: a missing or unreadable blob
// yields a fresh zero profile.
func (r ProfileRepo) GetByPlayer(_ context.Context, playerName string) (*gamify.Profile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	raw, ok := r.store.profiles[playerName]
	if !ok {
		return gamify.NewProfile(playerName), nil
	}
	var p gamify.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return gamify.NewProfile(playerName), nil
	}
	return &p, nil
}

func (r ProfileRepo) SaveWithVersion(_ context.Context, profile *gamify.Profile, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.put(r.store.profiles, profile.PlayerName, profile, expectedVersion)
}

type StatsRepo struct {
	store *Store
}

func NewStatsRepo(store *Store) StatsRepo {
	return StatsRepo{store: store}
}

func (r StatsRepo) GetByPlayer(_ context.Context, playerName string) (*gamify.PlayerStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	raw, ok := r.store.stats[playerName]
	if !ok {
		return gamify.NewPlayerStats(playerName), nil
	}
	var s gamify.PlayerStats
	if err := json.Unmarshal(raw, &s); err != nil {
		return gamify.NewPlayerStats(playerName), nil
	}
	return &s, nil
}

func (r StatsRepo) SaveWithVersion(_ context.Context, stats *gamify.PlayerStats, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.put(r.store.stats, stats.PlayerName, stats, expectedVersion)
}

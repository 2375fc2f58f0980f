package memory

import (
	"context"
	"encoding/json"

	"civitech/internal/app/ports"
	"civitech/internal/domain/sim"
)

type GameRepo struct {
	store *Store
}

func NewGameRepo(store *Store) GameRepo {
	return GameRepo{store: store}
}

func (r GameRepo) GetByID(_ context.Context, gameID string) (*sim.Game, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	raw, ok := r.store.games[gameID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	var g sim.Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r GameRepo) SaveWithVersion(_ context.Context, game *sim.Game, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.put(r.store.games, game.ID, game, expectedVersion)
}

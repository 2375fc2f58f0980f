package memory

import (
	"context"
	"encoding/json"

	"civitech/internal/app/ports"
	"civitech/internal/domain/session"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) SessionRepo {
	return SessionRepo{store: store}
}

func (r SessionRepo) GetByCode(_ context.Context, code string) (*session.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	id, ok := r.store.byCode[code]
	if !ok {
		return nil, ports.ErrNotFound
	}
	raw, ok := r.store.sessions[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	var s session.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r SessionRepo) SaveWithVersion(_ context.Context, s *session.Session, expectedVersion int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.store.put(r.store.sessions, s.ID, s, expectedVersion); err != nil {
		return err
	}
	r.store.byCode[s.Code] = s.ID
	return nil
}

func (r SessionRepo) Delete(_ context.Context, sessionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	raw, ok := r.store.sessions[sessionID]
	if !ok {
		return ports.ErrNotFound
	}
	var s session.Session
	if err := json.Unmarshal(raw, &s); err == nil {
		delete(r.store.byCode, s.Code)
	}
	delete(r.store.sessions, sessionID)
	return nil
}

type ResultRepo struct {
	store *Store
}

func NewResultRepo(store *Store) ResultRepo {
	return ResultRepo{store: store}
}

// Append is write-once per (session, player); duplicates report a conflict
// so retrying callers can treat the result as already submitted.
func (r ResultRepo) Append(_ context.Context, result session.PlayerResult) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.results[result.SessionID] {
		if existing.PlayerName == result.PlayerName {
			return ports.ErrConflict
		}
	}
	r.store.results[result.SessionID] = append(r.store.results[result.SessionID], result)
	return nil
}

func (r ResultRepo) ListBySession(_ context.Context, sessionID string) ([]session.PlayerResult, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]session.PlayerResult, len(r.store.results[sessionID]))
	copy(out, r.store.results[sessionID])
	return out, nil
}

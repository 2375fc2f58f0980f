// Package memory provides the non-durable repository set used in tests and
// in single-process runs without a database. Blobs are stored JSON-encoded
// so every read hands out an independent copy.
package memory

import (
	"encoding/json"
	"sync"

	"civitech/internal/app/ports"
	"civitech/internal/domain/session"
)

type Store struct {
	mu       sync.RWMutex
	games    map[string][]byte
	profiles map[string][]byte
	stats    map[string][]byte
	sessions map[string][]byte
	byCode   map[string]string
	results  map[string][]session.PlayerResult

	txMu sync.Mutex
}

func NewStore() *Store {
	return &Store{
		games:    make(map[string][]byte),
		profiles: make(map[string][]byte),
		stats:    make(map[string][]byte),
		sessions: make(map[string][]byte),
		byCode:   make(map[string]string),
		results:  make(map[string][]session.PlayerResult),
	}
}

func versionOf(raw []byte) int64 {
	var v struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	return v.Version
}

// put enforces the optimistic-concurrency contract shared by all blob
// repositories: create only with expected version 0, update only when the
// stored version matches.
func (s *Store) put(m map[string][]byte, key string, blob any, expectedVersion int64) error {
	raw, ok := m[key]
	switch {
	case !ok && expectedVersion != 0:
		return ports.ErrConflict
	case ok && versionOf(raw) != expectedVersion:
		return ports.ErrConflict
	}
	enc, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	m[key] = enc
	return nil
}

var (
	_ ports.TxManager         = TxManager{}
	_ ports.GameRepository    = GameRepo{}
	_ ports.ProfileRepository = ProfileRepo{}
	_ ports.StatsRepository   = StatsRepo{}
	_ ports.SessionRepository = SessionRepo{}
	_ ports.ResultRepository  = ResultRepo{}
)

package ports

import (
	"context"

	"civitech/internal/domain/gamify"
	"civitech/internal/domain/session"
	"civitech/internal/domain/sim"
)

// All blob repositories share the optimistic-concurrency contract: Save
// with the version the caller read; a mismatch returns ErrConflict and the
// caller re-reads and retries instead of silently overwriting.

type GameRepository interface {
	GetByID(ctx context.Context, gameID string) (*sim.Game, error)
	SaveWithVersion(ctx context.Context, game *sim.Game, expectedVersion int64) error
}

// ProfileRepository stores the gamification blob. Get must apply defensive
// defaulting: a missing or unreadable blob yields a fresh zero profile, not
// an error.
type ProfileRepository interface {
	GetByPlayer(ctx context.Context, playerName string) (*gamify.Profile, error)
	SaveWithVersion(ctx context.Context, profile *gamify.Profile, expectedVersion int64) error
}

// StatsRepository stores the per-player statistics blob with the same
// defaulting rule as ProfileRepository.
type StatsRepository interface {
	GetByPlayer(ctx context.Context, playerName string) (*gamify.PlayerStats, error)
	SaveWithVersion(ctx context.Context, stats *gamify.PlayerStats, expectedVersion int64) error
}

type SessionRepository interface {
	GetByCode(ctx context.Context, code string) (*session.Session, error)
	SaveWithVersion(ctx context.Context, s *session.Session, expectedVersion int64) error
	Delete(ctx context.Context, sessionID string) error
}

// ResultRepository is append-once per (session, player); a second write for
// the same pair returns ErrConflict.
type ResultRepository interface {
	Append(ctx context.Context, result session.PlayerResult) error
	ListBySession(ctx context.Context, sessionID string) ([]session.PlayerResult, error)
}

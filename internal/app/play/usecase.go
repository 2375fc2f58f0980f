package play

import (
	"context"
	"errors"
	"strings"
	"time"

	"civitech/internal/app/ports"
	"civitech/internal/content"
	"civitech/internal/domain/session"
	"civitech/internal/domain/sim"
)

var (
	ErrInvalidRequest    = errors.New("invalid play request")
	ErrSessionNotStarted = errors.New("session has not started")
	ErrNotSessionMember  = errors.New("player is not in the session")
)

const defaultGenerateTimeout = 15 * time.Second

const gameIDAlphabet = "abcdefghijkmnpqrstuvwxyz23456789"

// UseCase drives the simulation state machine against persisted game
// blobs. Randomness and clock are injected; the AI generator is a
// best-effort collaborator bounded by GenerateTimeout.
type UseCase struct {
	TxManager ports.TxManager
	Games     ports.GameRepository
	Profiles  ports.ProfileRepository
	Stats     ports.StatsRepository
	Sessions  ports.SessionRepository
	Results   ports.ResultRepository
	Generator ports.ScenarioGenerator
	Metrics   ports.GameMetrics
	Content   content.Config
	Dice      sim.Dice
	Now       func() time.Time

	GenerateTimeout time.Duration
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

var fallbackDice = sim.NewDice(time.Now().UnixNano())

func (u UseCase) dice() sim.Dice {
	if u.Dice != nil {
		return u.Dice
	}
	return fallbackDice
}

func (u UseCase) newGameID() string {
	d := u.dice()
	b := make([]byte, 12)
	for i := range b {
		b[i] = gameIDAlphabet[d.Intn(len(gameIDAlphabet))]
	}
	return "game-" + string(b)
}

// Start creates a game and arms the first countdown. For multiplayer games
// the session must exist, be started, and contain the player.
func (u UseCase) Start(ctx context.Context, req StartRequest) (StartResponse, error) {
	req.PlayerName = strings.TrimSpace(req.PlayerName)
	if req.PlayerName == "" {
		return StartResponse{}, ErrInvalidRequest
	}
	sessionID := ""
	if req.SessionCode != "" {
		s, err := u.Sessions.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(req.SessionCode)))
		if err != nil {
			return StartResponse{}, err
		}
		if s.Status != session.StatusPlaying {
			return StartResponse{}, ErrSessionNotStarted
		}
		member := false
		for _, p := range s.Players {
			if p.Name == req.PlayerName {
				member = true
				break
			}
		}
		if !member {
			return StartResponse{}, ErrNotSessionMember
		}
		sessionID = s.ID
	}

	now := u.now()
	g := sim.NewGame(u.newGameID(), req.PlayerName, now)
	g.SessionID = sessionID
	if err := g.Start(now); err != nil {
		return StartResponse{}, err
	}
	if err := u.saveGame(ctx, g, 0); err != nil {
		return StartResponse{}, err
	}
	return StartResponse{Snapshot: snapshotOf(g)}, nil
}

// Snapshot applies elapsed wall-clock ticks and returns the current view.
// Crossing the countdown boundary here auto-resolves the decision, so a
// polling client observes the consequence exactly as if it had chosen. An
// auto-resolved decision is persisted before the view is returned; the next
// poll must see the same decision, not a fresh roll.
func (u UseCase) Snapshot(ctx context.Context, req SnapshotRequest) (SnapshotResponse, error) {
	var snap Snapshot
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		g, auto, err := u.loadAndTick(txCtx, req.GameID)
		if err != nil {
			return err
		}
		if auto {
			if err := u.saveGame(txCtx, g, g.Version); err != nil {
				return err
			}
		}
		snap = snapshotOf(g)
		return nil
	})
	if err != nil {
		u.recordConflict(err)
		return SnapshotResponse{}, err
	}
	return SnapshotResponse{Snapshot: snap}, nil
}

// Decide applies a manual decision.
func (u UseCase) Decide(ctx context.Context, req DecideRequest) (DecideResponse, error) {
	if strings.TrimSpace(req.DecisionID) == "" {
		return DecideResponse{}, ErrInvalidRequest
	}
	var snap Snapshot
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		g, _, err := u.loadAndTick(txCtx, req.GameID)
		if err != nil {
			return err
		}
		if err := g.SelectDecision(req.DecisionID, u.now()); err != nil {
			return err
		}
		if u.Metrics != nil {
			u.Metrics.RecordDecision(false)
		}
		if err := u.saveGame(txCtx, g, g.Version); err != nil {
			return err
		}
		snap = snapshotOf(g)
		return nil
	})
	if err != nil {
		u.recordConflict(err)
		return DecideResponse{}, err
	}
	return DecideResponse{Snapshot: snap}, nil
}

// EventChoice resolves a pending random event. Depending on where the
// event interrupted the flow this resumes the suspended countdown or
// continues the advance, which can in turn request a generated scenario or
// end the game.
func (u UseCase) EventChoice(ctx context.Context, req EventChoiceRequest) (EventChoiceResponse, error) {
	if strings.TrimSpace(req.ChoiceID) == "" {
		return EventChoiceResponse{}, ErrInvalidRequest
	}
	var snap Snapshot
	var res sim.AdvanceResult
	var generation int64
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		g, _, err := u.loadAndTick(txCtx, req.GameID)
		if err != nil {
			return err
		}
		res, err = g.ChooseEventOption(req.ChoiceID, u.now())
		if err != nil {
			return err
		}
		generation = g.Generation
		if res == sim.AdvanceFinished {
			if err := u.finalize(txCtx, g); err != nil {
				return err
			}
		}
		if err := u.saveGame(txCtx, g, g.Version); err != nil {
			return err
		}
		snap = snapshotOf(g)
		return nil
	})
	if err != nil {
		u.recordConflict(err)
		return EventChoiceResponse{}, err
	}
	if res == sim.AdvanceAwaitScenario {
		snap = u.resolveGeneration(ctx, req.GameID, generation)
	}
	return EventChoiceResponse{Snapshot: snap}, nil
}

/// Advance leaves the consequence screen: interrupt check, next scenario,
// generation request, or results.
func (u UseCase) Advance(ctx context.Context, req AdvanceRequest) (AdvanceResponse, error) {
	var snap Snapshot
	var res sim.AdvanceResult
	var generation int64
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		g, _, err := u.loadAndTick(txCtx, req.GameID)
		if err != nil {
			return err
		}
		res, err = g.Advance(u.dice(), u.now())
		if err != nil {
			return err
		}
		generation = g.Generation
		if res == sim.AdvanceFinished {
			if err := u.finalize(txCtx, g); err != nil {
				return err
			}
		}
		if err := u.saveGame(txCtx, g, g.Version); err != nil {
			return err
		}
		snap = snapshotOf(g)
		return nil
	})
	if err != nil {
		u.recordConflict(err)
		return AdvanceResponse{}, err
	}
	if res == sim.AdvanceAwaitScenario {
		snap = u.resolveGeneration(ctx, req.GameID, generation)
		switch {
		case snap.Finished:
			res = sim.AdvanceFinished
		case snap.Phase == sim.PhaseAwaiting:
			// Generation round trip could not conclude; the client keeps
			// polling the awaiting state.
		default:
			res = sim.AdvanceNextScenario
		}
	}
	return AdvanceResponse{Result: res, Snapshot: snap}, nil
}

// Abort ends a game without the score ceremony.
func (u UseCase) Abort(ctx context.Context, req AbortRequest) (AbortResponse, error) {
	var snap Snapshot
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		g, err := u.Games.GetByID(txCtx, req.GameID)
		if err != nil {
			return err
		}
		if err := g.Abort(u.now()); err != nil {
			return err
		}
		if err := u.saveGame(txCtx, g, g.Version); err != nil {
			return err
		}
		snap = snapshotOf(g)
		return nil
	})
	if err != nil {
		u.recordConflict(err)
		return AbortResponse{}, err
	}
	return AbortResponse{Snapshot: snap}, nil
}

// loadAndTick loads the game and feeds it the wall-clock seconds elapsed
// since the last tick. The countdown only consumes them in the decision
// phase; elsewhere the timer stays suspended. The second return value
// reports a countdown expiry that auto-applied a decision; the caller must
// persist it.
func (u UseCase) loadAndTick(ctx context.Context, gameID string) (*sim.Game, bool, error) {
	if strings.TrimSpace(gameID) == "" {
		return nil, false, ErrInvalidRequest
	}
	g, err := u.Games.GetByID(ctx, gameID)
	if err != nil {
		return nil, false, err
	}
	now := u.now()
	elapsed := int(now.Sub(g.LastTickAt) / time.Second)
	auto := false
	if elapsed > 0 {
		before := len(g.History)
		if err := g.Tick(elapsed, u.dice(), now); err != nil {
			return nil, false, err
		}
		if len(g.History) > before {
			auto = true
			if u.Metrics != nil {
				u.Metrics.RecordDecision(true)
			}
		}
	}
	return g, auto, nil
}

func (u UseCase) saveGame(ctx context.Context, g *sim.Game, expected int64) error {
	g.Version = expected + 1
	g.UpdatedAt = u.now()
	return u.Games.SaveWithVersion(ctx, g, expected)
}

// resolveGeneration runs the scenario-generation round trip after the
// transaction that put the game into the awaiting phase. The game is
// reloaded afterwards and the response applied only if the generation
// token still matches; a player who aborted or raced ahead in the meantime
// makes the response stale and it is dropped.
func (u UseCase) resolveGeneration(ctx context.Context, gameID string, generation int64) Snapshot {
	scenario, genErr := u.generate(ctx, gameID)

	var snap Snapshot
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		g, err := u.Games.GetByID(txCtx, gameID)
		if err != nil {
			return err
		}
		if genErr == nil {
			switch err := g.AppendScenario(scenario, generation, u.now()); {
			case err == nil:
			case errors.Is(err, sim.ErrStaleGeneration), errors.Is(err, sim.ErrWrongPhase):
				// Late response for a game that moved on: discard.
				snap = snapshotOf(g)
				return nil
			default:
				return err
			}
		} else {
			if u.Metrics != nil {
				u.Metrics.RecordGenerationFailure()
			}
			switch err := g.FinishEarly(u.now()); {
			case err == nil:
				if err := u.finalize(txCtx, g); err != nil {
					return err
				}
			case errors.Is(err, sim.ErrWrongPhase):
				snap = snapshotOf(g)
				return nil
			default:
				return err
			}
		}
		if err := u.saveGame(txCtx, g, g.Version); err != nil {
			return err
		}
		snap = snapshotOf(g)
		return nil
	})
	if err != nil {
		// The game is still in the awaiting phase; the next snapshot poll
		// retries nothing and the client sees the awaiting state.
		return Snapshot{GameID: gameID, Phase: sim.PhaseAwaiting}
	}
	return snap
}

func (u UseCase) generate(ctx context.Context, gameID string) (sim.Scenario, error) {
	if u.Generator == nil {
		return sim.Scenario{}, ports.ErrGenerationFailed
	}
	g, err := u.Games.GetByID(ctx, gameID)
	if err != nil {
		return sim.Scenario{}, err
	}
	timeout := u.GenerateTimeout
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	scenario, err := u.Generator.Generate(genCtx, g.History, g.Scores)
	if err != nil {
		return sim.Scenario{}, err
	}
	if len(scenario.Decisions) < 2 {
		return sim.Scenario{}, ports.ErrGenerationFailed
	}
	return scenario, nil
}

func (u UseCase) recordConflict(err error) {
	if u.Metrics != nil && errors.Is(err, ports.ErrConflict) {
		u.Metrics.RecordConflict()
	}
}

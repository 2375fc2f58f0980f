// Package advisor exposes the optional AI collaborators: an in-game hint
// during the decision phase and a post-game strategy review. Both are
// best-effort; any failure degrades to an "unavailable" response instead of
// an error, so the play flow never blocks on the model.
package advisor

import (
	"context"
	"errors"
	"time"

	"civitech/internal/app/ports"
	"civitech/internal/domain/sim"
)

var ErrInvalidRequest = errors.New("invalid advisor request")

const defaultTimeout = 10 * time.Second

type UseCase struct {
	Games    ports.GameRepository
	Advisor  ports.Advisor
	Analyzer ports.Analyzer
	Timeout  time.Duration
}

func (u UseCase) timeout() time.Duration {
	if u.Timeout > 0 {
		return u.Timeout
	}
	return defaultTimeout
}

type AdviceRequest struct {
	GameID string `json:"game_id"`
}

type AdviceResponse struct {
	Available bool          `json:"available"`
	Advice    *ports.Advice `json:"advice,omitempty"`
}

// Advice asks the collaborator for a hint on the current scenario. Wrong
// phase, missing model or model failure all yield available=false.
func (u UseCase) Advice(ctx context.Context, req AdviceRequest) (AdviceResponse, error) {
	if req.GameID == "" {
		return AdviceResponse{}, ErrInvalidRequest
	}
	g, err := u.Games.GetByID(ctx, req.GameID)
	if err != nil {
		return AdviceResponse{}, err
	}
	if u.Advisor == nil || g.Phase != sim.PhaseDecision {
		return AdviceResponse{}, nil
	}
	scenario, ok := g.CurrentScenario()
	if !ok {
		return AdviceResponse{}, nil
	}
	adviceCtx, cancel := context.WithTimeout(ctx, u.timeout())
	defer cancel()
	advice, err := u.Advisor.Advise(adviceCtx, scenario, g.Scores, g.History)
	if err != nil {
		return AdviceResponse{}, nil
	}
	return AdviceResponse{Available: true, Advice: &advice}, nil
}

type AnalysisRequest struct {
	GameID string `json:"game_id"`
}

type AnalysisResponse struct {
	Available bool            `json:"available"`
	Analysis  *ports.Analysis `json:"analysis,omitempty"`
}

// Analysis reviews a finished game. Unfinished or aborted games and model
// failures yield available=false.
func (u UseCase) Analysis(ctx context.Context, req AnalysisRequest) (AnalysisResponse, error) {
	if req.GameID == "" {
		return AnalysisResponse{}, ErrInvalidRequest
	}
	g, err := u.Games.GetByID(ctx, req.GameID)
	if err != nil {
		return AnalysisResponse{}, err
	}
	if u.Analyzer == nil || !g.Finished() || g.Aborted {
		return AnalysisResponse{}, nil
	}
	analysisCtx, cancel := context.WithTimeout(ctx, u.timeout())
	defer cancel()
	analysis, err := u.Analyzer.Analyze(analysisCtx, g.History, g.Scores, g.Scenarios)
	if err != nil {
		return AnalysisResponse{}, nil
	}
	return AnalysisResponse{Available: true, Analysis: &analysis}, nil
}

package ports

import (
	"context"
	"errors"

	"civitech/internal/domain/sim"
)

// ErrGenerationFailed wraps any scenario-generation failure, including
// malformed payloads. Callers never surface it to the player; they degrade
// by ending the game with the scenarios played so far.
var ErrGenerationFailed = errors.New("scenario generation failed")

// ScenarioGenerator produces one additional scenario from the play-through
// so far. Implementations must validate shape (3 decisions, each with a
// delta and message) and return ErrGenerationFailed otherwise.
type ScenarioGenerator interface {
	Generate(ctx context.Context, previous []sim.DecisionRecord, scores sim.ScoreVector) (sim.Scenario, error)
}

// Advice is the best-effort in-game hint.
type Advice struct {
	Advice  string `json:"advice"`
	Focus   string `json:"focus"` // budget|satisfaction|autonomy|ecology
	Warning string `json:"warning,omitempty"`
}

type Advisor interface {
	Advise(ctx context.Context, scenario sim.Scenario, scores sim.ScoreVector, previous []sim.DecisionRecord) (Advice, error)
}

// Analysis is the post-game strategy review.
type Analysis struct {
	OverallGrade        string   `json:"overall_grade"` // A|B|C|D
	Summary             string   `json:"summary"`
	Strengths           []string `json:"strengths"`
	Improvements        []string `json:"improvements"`
	BestDecision        string   `json:"best_decision,omitempty"`
	AlternativeStrategy string   `json:"alternative_strategy,omitempty"`
	RealWorldTip        string   `json:"real_world_tip,omitempty"`
}

type Analyzer interface {
	Analyze(ctx context.Context, decisions []sim.DecisionRecord, finalScores sim.ScoreVector, scenarios []sim.Scenario) (Analysis, error)
}

package sim

import (
	"errors"
	"time"
)

// Phase is the explicit state of a running game. All inputs are validated
// against it; an input arriving in the wrong phase is rejected rather than
// silently reinterpreted.
type Phase string

const (
	PhaseIntro       Phase = "intro"
	PhaseDecision    Phase = "decision"
	PhaseEvent       Phase = "event"
	PhaseConsequence Phase = "consequence"
	PhaseAwaiting    Phase = "awaiting_scenario"
	PhaseResults     Phase = "results"
)

var (
	ErrWrongPhase      = errors.New("input not valid in current phase")
	ErrUnknownDecision = errors.New("unknown decision")
	ErrUnknownChoice   = errors.New("unknown event choice")
	ErrStaleGeneration = errors.New("stale scenario generation")
	ErrNoScenario      = errors.New("no current scenario")
)

// AdvanceResult tells the caller what the machine did on a transition that
// can branch.
type AdvanceResult string

const (
	AdvanceNextScenario  AdvanceResult = "next_scenario"
	AdvanceEventPending  AdvanceResult = "event_pending"
	AdvanceAwaitScenario AdvanceResult = "await_scenario"
	AdvanceFinished      AdvanceResult = "finished"
	AdvanceResumed       AdvanceResult = "resumed_decision"
)

// Outcome is the consequence record shown after a decision or event choice.
type Outcome struct {
	ScenarioID string      `json:"scenario_id,omitempty"`
	DecisionID string      `json:"decision_id,omitempty"`
	EventID    string      `json:"event_id,omitempty"`
	ChoiceID   string      `json:"choice_id,omitempty"`
	Message    string      `json:"message"`
	Auto       bool        `json:"auto,omitempty"`
	Scores     ScoreVector `json:"scores"`
}

// Game is the aggregate for one play-through: scenario progression,
// countdown timer, score vector, decision history and interrupt bookkeeping.
// It is pure state plus transitions; clock and randomness are injected.
type Game struct {
	ID         string `json:"id"`
	PlayerName string `json:"player_name"`
	SessionID  string `json:"session_id,omitempty"`

	Phase     Phase      `json:"phase"`
	Scenarios []Scenario `json:"scenarios"`
	Index     int        `json:"index"`

	Scores  ScoreVector      `json:"scores"`
	History []DecisionRecord `json:"history"`

	// TimerRemaining counts down only in PhaseDecision. It is preserved,
	// not reset, while an event suspends the decision.
	TimerRemaining int  `json:"timer_remaining"`
	ResumeDecision bool `json:"resume_decision,omitempty"`

	PendingEvent   *RandomEvent `json:"pending_event,omitempty"`
	DrawnEventIDs  []string     `json:"drawn_event_ids,omitempty"`
	InterruptCount int          `json:"interrupt_count"`

	GeneratedCount int   `json:"generated_count"`
	Generation     int64 `json:"generation"`

	LastOutcome *Outcome `json:"last_outcome,omitempty"`

	TotalScore  int       `json:"total_score"`
	Aborted     bool      `json:"aborted,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	LastTickAt  time.Time `json:"last_tick_at"`
	CompletedAt time.Time `json:"completed_at,omitzero"`

	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGame builds a game in PhaseIntro over the built-in catalog.
func NewGame(id, playerName string, now time.Time) *Game {
	return &Game{
		ID:         id,
		PlayerName: playerName,
		Phase:      PhaseIntro,
		Scenarios:  BuiltinScenarios(),
		Scores:     DefaultScores(),
		StartedAt:  now,
		LastTickAt: now,
	}
}

// CurrentScenario returns the scenario the player is facing, when any.
func (g *Game) CurrentScenario() (Scenario, bool) {
	if g.Index < 0 || g.Index >= len(g.Scenarios) {
		return Scenario{}, false
	}
	return g.Scenarios[g.Index], true
}

// Start moves intro -> first decision and arms the countdown.
func (g *Game) Start(now time.Time) error {
	if g.Phase != PhaseIntro {
		return ErrWrongPhase
	}
	g.Phase = PhaseDecision
	g.TimerRemaining = DecisionSeconds
	g.StartedAt = now
	g.LastTickAt = now
	return nil
}

// Tick consumes elapsed whole seconds. The countdown only runs in
// PhaseDecision; in every other phase the call just moves the tick clock
// forward (the timer is suspended, not reset). Reaching zero selects a
// decision uniformly at random and applies it exactly as a manual choice.
func (g *Game) Tick(seconds int, dice Dice, now time.Time) error {
	g.LastTickAt = now
	if g.Phase != PhaseDecision || seconds <= 0 {
		return nil
	}
	g.TimerRemaining -= seconds
	if g.TimerRemaining > 0 {
		return nil
	}
	g.TimerRemaining = 0
	scenario, ok := g.CurrentScenario()
	if !ok {
		return ErrNoScenario
	}
	d := scenario.Decisions[dice.Intn(len(scenario.Decisions))]
	g.applyDecision(scenario, d, true)
	return nil
}

// SelectDecision applies a manual choice. Terminal for the scenario: the
// machine leaves PhaseDecision, so a second application is unrepresentable.
func (g *Game) SelectDecision(decisionID string, now time.Time) error {
	if g.Phase != PhaseDecision {
		return ErrWrongPhase
	}
	scenario, ok := g.CurrentScenario()
	if !ok {
		return ErrNoScenario
	}
	d, ok := scenario.decisionByID(decisionID)
	if !ok {
		return ErrUnknownDecision
	}
	g.LastTickAt = now
	g.applyDecision(scenario, d, false)
	return nil
}

func (g *Game) applyDecision(scenario Scenario, d Decision, auto bool) {
	g.Scores.Apply(d.Consequences)
	g.History = append(g.History, DecisionRecord{
		ScenarioIndex: g.Index,
		ScenarioID:    scenario.ID,
		DecisionID:    d.ID,
		Auto:          auto,
	})
	g.LastOutcome = &Outcome{
		ScenarioID: scenario.ID,
		DecisionID: d.ID,
		Message:    d.Consequences.Message,
		Auto:       auto,
		Scores:     g.Scores,
	}
	g.Phase = PhaseConsequence
	g.ResumeDecision = false
}

// TriggerEvent interrupts a running decision with a random event, when the
// pool and the interrupt cap allow it. The countdown is suspended at its
// current value and resumes after the choice.
func (g *Game) TriggerEvent(dice Dice, now time.Time) (bool, error) {
	if g.Phase != PhaseDecision {
		return false, ErrWrongPhase
	}
	if !g.drawPendingEvent(dice) {
		return false, nil
	}
	g.ResumeDecision = true
	g.LastTickAt = now
	return true, nil
}

func (g *Game) drawPendingEvent(dice Dice) bool {
	if g.InterruptCount >= MaxInterrupts {
		return false
	}
	ev, ok := DrawEvent(EventPool(), g.DrawnEventIDs, dice)
	if !ok {
		return false
	}
	g.PendingEvent = &ev
	g.DrawnEventIDs = append(g.DrawnEventIDs, ev.ID)
	g.InterruptCount++
	g.Phase = PhaseEvent
	return true
}

// ChooseEventOption applies the selected effects and either resumes the
// suspended decision or continues the advance the event interrupted.
func (g *Game) ChooseEventOption(choiceID string, now time.Time) (AdvanceResult, error) {
	if g.Phase != PhaseEvent || g.PendingEvent == nil {
		return "", ErrWrongPhase
	}
	choice, ok := g.PendingEvent.choiceByID(choiceID)
	if !ok {
		return "", ErrUnknownChoice
	}
	ev := *g.PendingEvent
	g.Scores.Apply(choice.Effects)
	g.LastOutcome = &Outcome{
		EventID:  ev.ID,
		ChoiceID: choice.ID,
		Message:  choice.Effects.Message,
		Scores:   g.Scores,
	}
	g.PendingEvent = nil
	g.LastTickAt = now
	if g.ResumeDecision {
		g.ResumeDecision = false
		g.Phase = PhaseDecision
		return AdvanceResumed, nil
	}
	return g.continueAdvance(now), nil
}

// Advance leaves the consequence screen. Before moving on it runs the
// probabilistic interrupt check; a triggered event pauses advancement until
// the player chooses.
func (g *Game) Advance(dice Dice, now time.Time) (AdvanceResult, error) {
	if g.Phase != PhaseConsequence {
		return "", ErrWrongPhase
	}
	g.LastTickAt = now
	if g.InterruptCount < MaxInterrupts && dice.Float64() < InterruptChance {
		if g.drawPendingEvent(dice) {
			return AdvanceEventPending, nil
		}
	}
	return g.continueAdvance(now), nil
}

func (g *Game) continueAdvance(now time.Time) AdvanceResult {
	if g.Index+1 < len(g.Scenarios) {
		g.Index++
		g.Phase = PhaseDecision
		g.TimerRemaining = DecisionSeconds
		return AdvanceNextScenario
	}
	if g.GeneratedCount < MaxGeneratedScenarios {
		g.Phase = PhaseAwaiting
		g.Generation++
		return AdvanceAwaitScenario
	}
	g.finish(now)
	return AdvanceFinished
}

// AppendScenario installs a generated scenario and resumes play. The
// generation token rejects responses that arrive after the game moved on.
func (g *Game) AppendScenario(s Scenario, generation int64, now time.Time) error {
	if g.Phase != PhaseAwaiting {
		return ErrWrongPhase
	}
	if generation != g.Generation {
		return ErrStaleGeneration
	}
	s.Source = SourceGenerated
	g.Scenarios = append(g.Scenarios, s)
	g.GeneratedCount++
	g.Index++
	g.Phase = PhaseDecision
	g.TimerRemaining = DecisionSeconds
	g.LastTickAt = now
	return nil
}

// FinishEarly ends the game from the awaiting state when generation failed.
// The failure is swallowed: the game simply ends at the scenarios played so
// far.
func (g *Game) FinishEarly(now time.Time) error {
	if g.Phase != PhaseAwaiting {
		return ErrWrongPhase
	}
	g.finish(now)
	return nil
}

// Abort ends the game without a score ceremony. Late collaborator responses
// for an aborted game are discarded by the generation token.
func (g *Game) Abort(now time.Time) error {
	if g.Phase == PhaseResults {
		return ErrWrongPhase
	}
	g.Aborted = true
	g.Generation++
	g.finish(now)
	return nil
}

func (g *Game) finish(now time.Time) {
	g.Phase = PhaseResults
	g.TotalScore = g.Scores.Aggregate()
	g.CompletedAt = now
	g.PendingEvent = nil
	g.ResumeDecision = false
}

// Finished reports whether the game reached its terminal state.
func (g *Game) Finished() bool {
	return g.Phase == PhaseResults
}

// CompletionSeconds is the wall-clock duration of a finished game.
func (g *Game) CompletionSeconds() int {
	if g.CompletedAt.IsZero() {
		return 0
	}
	return int(g.CompletedAt.Sub(g.StartedAt) / time.Second)
}

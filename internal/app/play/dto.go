package play

import (
	"civitech/internal/domain/sim"
)

type StartRequest struct {
	PlayerName  string `json:"player_name"`
	SessionCode string `json:"session_code,omitempty"`
}

type SnapshotRequest struct {
	GameID string `json:"game_id"`
}

type DecideRequest struct {
	GameID     string `json:"game_id"`
	DecisionID string `json:"decision_id"`
}

type EventChoiceRequest struct {
	GameID   string `json:"game_id"`
	ChoiceID string `json:"choice_id"`
}

type AdvanceRequest struct {
	GameID string `json:"game_id"`
}

type AbortRequest struct {
	GameID string `json:"game_id"`
}

// DecisionView hides the consequence deltas from the presentation layer
// until the decision is taken.
type DecisionView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ScenarioView struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Context   string             `json:"context"`
	Source    sim.ScenarioSource `json:"source"`
	Decisions []DecisionView     `json:"decisions"`
}

type EventChoiceView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type EventView struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Type        sim.EventType     `json:"type"`
	Choices     []EventChoiceView `json:"choices"`
}

// Snapshot is the state-machine view the presentation shell polls.
type Snapshot struct {
	GameID           string          `json:"game_id"`
	PlayerName       string          `json:"player_name"`
	SessionID        string          `json:"session_id,omitempty"`
	Phase            sim.Phase       `json:"phase"`
	ScenarioIndex    int             `json:"scenario_index"`
	ScenarioCount    int             `json:"scenario_count"`
	Scenario         *ScenarioView   `json:"scenario,omitempty"`
	PendingEvent     *EventView      `json:"pending_event,omitempty"`
	Scores           sim.ScoreVector `json:"scores"`
	TimerRemaining   int             `json:"timer_remaining"`
	ConsequenceShown bool            `json:"consequence_shown"`
	LastOutcome      *sim.Outcome    `json:"last_outcome,omitempty"`
	TotalScore       int             `json:"total_score,omitempty"`
	Finished         bool            `json:"finished"`
	Aborted          bool            `json:"aborted,omitempty"`
}

type StartResponse struct {
	Snapshot Snapshot `json:"snapshot"`
}

type SnapshotResponse struct {
	Snapshot Snapshot `json:"snapshot"`
}

type DecideResponse struct {
	Snapshot Snapshot `json:"snapshot"`
}

type EventChoiceResponse struct {
	Snapshot Snapshot `json:"snapshot"`
}

type AdvanceResponse struct {
	Result   sim.AdvanceResult `json:"result"`
	Snapshot Snapshot          `json:"snapshot"`
}

type AbortResponse struct {
	Snapshot Snapshot `json:"snapshot"`
}

func snapshotOf(g *sim.Game) Snapshot {
	snap := Snapshot{
		GameID:           g.ID,
		PlayerName:       g.PlayerName,
		SessionID:        g.SessionID,
		Phase:            g.Phase,
		ScenarioIndex:    g.Index,
		ScenarioCount:    len(g.Scenarios),
		Scores:           g.Scores,
		TimerRemaining:   g.TimerRemaining,
		ConsequenceShown: g.Phase == sim.PhaseConsequence,
		LastOutcome:      g.LastOutcome,
		Finished:         g.Finished(),
		Aborted:          g.Aborted,
	}
	if g.Finished() {
		snap.TotalScore = g.TotalScore
	}
	if scenario, ok := g.CurrentScenario(); ok && !g.Finished() {
		view := ScenarioView{
			ID:      scenario.ID,
			Title:   scenario.Title,
			Context: scenario.Context,
			Source:  scenario.Source,
		}
		for _, d := range scenario.Decisions {
			view.Decisions = append(view.Decisions, DecisionView{ID: d.ID, Title: d.Title, Description: d.Description})
		}
		snap.Scenario = &view
	}
	if g.PendingEvent != nil {
		view := EventView{
			ID:          g.PendingEvent.ID,
			Title:       g.PendingEvent.Title,
			Description: g.PendingEvent.Description,
			Type:        g.PendingEvent.Type,
		}
		for _, c := range g.PendingEvent.Choices {
			view.Choices = append(view.Choices, EventChoiceView{ID: c.ID, Title: c.Title})
		}
		snap.PendingEvent = &view
	}
	return snap
}

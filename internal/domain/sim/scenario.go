package sim

// ScenarioSource records where a scenario came from. AI scenarios are
// appended to the ordered sequence and from then on treated exactly like
// built-in ones.
type ScenarioSource string

const (
	SourceBuiltin   ScenarioSource = "builtin"
	SourceGenerated ScenarioSource = "generated"
)

// Scenario is a single decision point: a situation with 2-3 mutually
// exclusive options. Immutable once loaded.
type Scenario struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Context   string         `json:"context"`
	Decisions []Decision     `json:"decisions"`
	Source    ScenarioSource `json:"source"`
}

// Decision is one option within a scenario together with its declared
// consequences.
type Decision struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Consequences ConsequenceDelta `json:"consequences"`
}

func (s Scenario) decisionByID(id string) (Decision, bool) {
	for _, d := range s.Decisions {
		if d.ID == id {
			return d, true
		}
	}
	return Decision{}, false
}

// DecisionRecord is one appended entry of the per-play-through history,
// used for post-game analysis and multiplayer audit. Never mutated after
// append.
type DecisionRecord struct {
	ScenarioIndex int    `json:"scenario_index"`
	ScenarioID    string `json:"scenario_id"`
	DecisionID    string `json:"decision_id"`
	Auto          bool   `json:"auto,omitempty"`
}

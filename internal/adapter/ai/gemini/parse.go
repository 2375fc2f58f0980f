package gemini

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"civitech/internal/app/ports"
	"civitech/internal/domain/sim"
)

// trimFences strips the ```yaml fence the model tends to wrap its output in.
func trimFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```yaml")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

type deltaPayload struct {
	Budget       *float64 `yaml:"budget"`
	Satisfaction *float64 `yaml:"satisfaction"`
	Autonomy     *float64 `yaml:"autonomy"`
	Ecology      *float64 `yaml:"ecology"`
	Risk         *float64 `yaml:"risk"`
	Message      string   `yaml:"message"`
}

func (p deltaPayload) toDomain() sim.ConsequenceDelta {
	return sim.ConsequenceDelta{
		Budget:       p.Budget,
		Satisfaction: p.Satisfaction,
		Autonomy:     p.Autonomy,
		Ecology:      p.Ecology,
		Risk:         p.Risk,
		Message:      p.Message,
	}
}

type scenarioPayload struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Context   string `yaml:"context"`
	Decisions []struct {
		ID           string       `yaml:"id"`
		Title        string       `yaml:"title"`
		Description  string       `yaml:"description"`
		Consequences deltaPayload `yaml:"consequences"`
	} `yaml:"decisions"`
}

func parseScenario(raw string) (sim.Scenario, error) {
	var payload scenarioPayload
	if err := yaml.Unmarshal([]byte(trimFences(raw)), &payload); err != nil {
		return sim.Scenario{}, fmt.Errorf("parse scenario yaml: %v", err)
	}
	if payload.Title == "" || payload.Context == "" {
		return sim.Scenario{}, fmt.Errorf("scenario missing title or context")
	}
	if len(payload.Decisions) != 3 {
		return sim.Scenario{}, fmt.Errorf("scenario has %d decisions, want 3", len(payload.Decisions))
	}
	scenario := sim.Scenario{
		ID:      payload.ID,
		Title:   payload.Title,
		Context: payload.Context,
		Source:  sim.SourceGenerated,
	}
	if scenario.ID == "" {
		scenario.ID = "generated-" + slugOf(payload.Title)
	}
	seen := map[string]bool{}
	for i, d := range payload.Decisions {
		if d.Title == "" {
			return sim.Scenario{}, fmt.Errorf("decision %d missing title", i)
		}
		if d.Consequences.Message == "" {
			return sim.Scenario{}, fmt.Errorf("decision %d missing consequence message", i)
		}
		id := d.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", scenario.ID, i+1)
		}
		if seen[id] {
			return sim.Scenario{}, fmt.Errorf("duplicate decision id %q", id)
		}
		seen[id] = true
		scenario.Decisions = append(scenario.Decisions, sim.Decision{
			ID:           id,
			Title:        d.Title,
			Description:  d.Description,
			Consequences: d.Consequences.toDomain(),
		})
	}
	return scenario, nil
}

func slugOf(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteByte('-')
		}
		if b.Len() >= 24 {
			break
		}
	}
	return strings.Trim(b.String(), "-")
}

var validFocus = map[string]bool{
	"budget": true, "satisfaction": true, "autonomy": true, "ecology": true, "risk": true,
}

func parseAdvice(raw string) (ports.Advice, error) {
	var payload struct {
		Advice  string `yaml:"advice"`
		Focus   string `yaml:"focus"`
		Warning string `yaml:"warning"`
	}
	if err := yaml.Unmarshal([]byte(trimFences(raw)), &payload); err != nil {
		return ports.Advice{}, fmt.Errorf("parse advice yaml: %v", err)
	}
	if payload.Advice == "" {
		return ports.Advice{}, fmt.Errorf("advice missing text")
	}
	if !validFocus[payload.Focus] {
		payload.Focus = ""
	}
	return ports.Advice{Advice: payload.Advice, Focus: payload.Focus, Warning: payload.Warning}, nil
}

var validGrades = map[string]bool{"A": true, "B": true, "C": true, "D": true}

func parseAnalysis(raw string) (ports.Analysis, error) {
	var payload struct {
		OverallGrade        string   `yaml:"overall_grade"`
		Summary             string   `yaml:"summary"`
		Strengths           []string `yaml:"strengths"`
		Improvements        []string `yaml:"improvements"`
		BestDecision        string   `yaml:"best_decision"`
		AlternativeStrategy string   `yaml:"alternative_strategy"`
		RealWorldTip        string   `yaml:"real_world_tip"`
	}
	if err := yaml.Unmarshal([]byte(trimFences(raw)), &payload); err != nil {
		return ports.Analysis{}, fmt.Errorf("parse analysis yaml: %v", err)
	}
	if payload.Summary == "" {
		return ports.Analysis{}, fmt.Errorf("analysis missing summary")
	}
	grade := strings.ToUpper(strings.TrimSpace(payload.OverallGrade))
	if !validGrades[grade] {
		grade = "C"
	}
	return ports.Analysis{
		OverallGrade:        grade,
		Summary:             payload.Summary,
		Strengths:           payload.Strengths,
		Improvements:        payload.Improvements,
		BestDecision:        payload.BestDecision,
		AlternativeStrategy: payload.AlternativeStrategy,
		RealWorldTip:        payload.RealWorldTip,
	}, nil
}

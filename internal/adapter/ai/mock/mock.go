// Package mock is the offline stand-in for the AI collaborators. It serves
// canned but state-aware content so the full game loop works without an API
// key, in development and in end-to-end tests.
package mock

import (
	"context"
	"fmt"

	"civitech/internal/app/ports"
	"civitech/internal/domain/sim"
)

type Provider struct{}

var (
	_ ports.ScenarioGenerator = Provider{}
	_ ports.Advisor           = Provider{}
	_ ports.Analyzer          = Provider{}
)

var cannedScenarios = []sim.Scenario{
	{
		ID:      "mock-data-center",
		Title:   "The data center lease expires",
		Context: "The lease on the municipal data center space ends in six months and the landlord doubled the price. Facilities asks for a decision this quarter.",
		Decisions: []sim.Decision{
			{ID: "mock-dc-renew", Title: "Renew at the new price", Description: "No migration risk, higher running costs.",
				Consequences: sim.Delta(sim.DBudget(-20000), sim.DRisk(-5), sim.DMessage("Continuity preserved, at a steep recurring cost."))},
			{ID: "mock-dc-colo", Title: "Move into a regional colocation", Description: "A shared facility run by the county.",
				Consequences: sim.Delta(sim.DBudget(-8000), sim.DAutonomy(10), sim.DRisk(10), sim.DMessage("The move was rocky but the new site is cheaper and closer."))},
			{ID: "mock-dc-cloud", Title: "Shut it down, go cloud-only", Description: "Decommission the hardware entirely.",
				Consequences: sim.Delta(sim.DBudget(5000), sim.DAutonomy(-15), sim.DEcology(5), sim.DMessage("Hardware sold off; the city now depends fully on its providers."))},
		},
	},
	{
		ID:      "mock-open-data",
		Title:   "Open data portal demand",
		Context: "A citizens' initiative collected signatures demanding an open data portal. The council wants a response before the next session.",
		Decisions: []sim.Decision{
			{ID: "mock-od-build", Title: "Build the portal in-house", Description: "A small team, six months.",
				Consequences: sim.Delta(sim.DBudget(-15000), sim.DSatisfaction(15), sim.DAutonomy(10), sim.DMessage("The portal launched late but belongs to the city."))},
			{ID: "mock-od-buy", Title: "License a commercial platform", Description: "Live in six weeks.",
				Consequences: sim.Delta(sim.DBudget(-10000), sim.DSatisfaction(10), sim.DAutonomy(-10), sim.DMessage("Fast launch on rented ground."))},
			{ID: "mock-od-defer", Title: "Defer to next year's budget", Description: "Politically risky.",
				Consequences: sim.Delta(sim.DSatisfaction(-15), sim.DRisk(5), sim.DMessage("The initiative went to the press; trust took a hit."))},
		},
	},
}

// Generate hands out canned follow-up scenarios, cycling by how many
// scenarios were already played.
func (Provider) Generate(_ context.Context, previous []sim.DecisionRecord, _ sim.ScoreVector) (sim.Scenario, error) {
	s := cannedScenarios[len(previous)%len(cannedScenarios)]
	// Disambiguate ids when the same canned entry repeats within a game.
	s.ID = fmt.Sprintf("%s-%d", s.ID, len(previous))
	decisions := make([]sim.Decision, len(s.Decisions))
	copy(decisions, s.Decisions)
	for i := range decisions {
		decisions[i].ID = fmt.Sprintf("%s-%d", decisions[i].ID, len(previous))
	}
	s.Decisions = decisions
	s.Source = sim.SourceGenerated
	return s, nil
}

// Advise points at the weakest dimension of the current vector.
func (Provider) Advise(_ context.Context, _ sim.Scenario, scores sim.ScoreVector, _ []sim.DecisionRecord) (ports.Advice, error) {
	focus := "budget"
	weakest := scores.Budget / 1000
	for dim, v := range map[string]float64{
		"satisfaction": scores.Satisfaction,
		"autonomy":     scores.Autonomy,
		"ecology":      scores.Ecology,
	} {
		if v < weakest {
			focus, weakest = dim, v
		}
	}
	advice := ports.Advice{
		Advice: fmt.Sprintf("Your %s score is the weakest part of your position right now. Favor options that strengthen it, even if they cost something elsewhere.", focus),
		Focus:  focus,
	}
	if scores.Risk > 70 {
		advice.Warning = "Your risk level is high; another risky move could backfire badly."
	}
	return advice, nil
}

// Analyze produces a grade from the aggregate and templated review text.
func (Provider) Analyze(_ context.Context, decisions []sim.DecisionRecord, finalScores sim.ScoreVector, _ []sim.Scenario) (ports.Analysis, error) {
	total := finalScores.Aggregate()
	grade := "D"
	switch {
	case total >= 120:
		grade = "A"
	case total >= 95:
		grade = "B"
	case total >= 70:
		grade = "C"
	}
	auto := 0
	for _, d := range decisions {
		if d.Auto {
			auto++
		}
	}
	analysis := ports.Analysis{
		OverallGrade: grade,
		Summary: fmt.Sprintf("You finished with a total score of %d across %d decisions. Autonomy ended at %.0f and ecology at %.0f, which tells most of the story of this run.",
			total, len(decisions), finalScores.Autonomy, finalScores.Ecology),
		Strengths:    []string{"You kept the administration operational through every scenario."},
		Improvements: []string{"Weigh long-term autonomy against short-term convenience more deliberately."},
		RealWorldTip: "In public-sector IT, the cheapest option this year is rarely the cheapest option this decade.",
	}
	if auto > 0 {
		analysis.Improvements = append(analysis.Improvements,
			fmt.Sprintf("%d decision(s) timed out and were made for you; budget your deliberation time.", auto))
	}
	return analysis, nil
}

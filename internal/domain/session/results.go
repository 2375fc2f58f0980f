package session

import (
	"sort"
	"time"

	"civitech/internal/domain/sim"
)

// PlayerResult is one player's final outcome, written once at game end and
// read many times by the polled results view.
type PlayerResult struct {
	SessionID             string               `json:"session_id"`
	PlayerName            string               `json:"player_name"`
	Scores                sim.ScoreVector      `json:"scores"`
	Decisions             []sim.DecisionRecord `json:"decisions"`
	TotalScore            int                  `json:"total_score"`
	CompletionTimeSeconds int                  `json:"completion_time_seconds"`
	SubmittedAt           time.Time            `json:"submitted_at"`
}

// Leaderboard orders results by total score descending. The sort is stable:
// ties keep arrival order.
func Leaderboard(results []PlayerResult) []PlayerResult {
	out := make([]PlayerResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalScore > out[j].TotalScore
	})
	return out
}

// DimensionAverage is one dimension of the collaboration-mode team view.
// Risk counts as good below 50; every other dimension above 50.
type DimensionAverage struct {
	Dimension string  `json:"dimension"`
	Mean      float64 `json:"mean"`
	Good      bool    `json:"good"`
}

// TeamAverages computes the unweighted per-dimension mean across all
// submitted results.
func TeamAverages(results []PlayerResult) []DimensionAverage {
	if len(results) == 0 {
		return nil
	}
	n := float64(len(results))
	var budget, satisfaction, autonomy, ecology, risk float64
	for _, r := range results {
		budget += r.Scores.Budget
		satisfaction += r.Scores.Satisfaction
		autonomy += r.Scores.Autonomy
		ecology += r.Scores.Ecology
		risk += r.Scores.Risk
	}
	above := func(mean float64) bool { return mean > 50 }
	return []DimensionAverage{
		{Dimension: "budget", Mean: budget / n, Good: above(budget / n)},
		{Dimension: "satisfaction", Mean: satisfaction / n, Good: above(satisfaction / n)},
		{Dimension: "autonomy", Mean: autonomy / n, Good: above(autonomy / n)},
		{Dimension: "ecology", Mean: ecology / n, Good: above(ecology / n)},
		{Dimension: "risk", Mean: risk / n, Good: risk/n < 50},
	}
}

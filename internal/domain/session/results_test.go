package session

import (
	"testing"

	"civitech/internal/domain/sim"
)

func TestLeaderboard_DescendingStable(t *testing.T) {
	results := []PlayerResult{
		{PlayerName: "Alex", TotalScore: 90},
		{PlayerName: "Bea", TotalScore: 120},
		{PlayerName: "Chris", TotalScore: 90},
	}
	board := Leaderboard(results)
	want := []string{"Bea", "Alex", "Chris"}
	for i, name := range want {
		if board[i].PlayerName != name {
			t.Fatalf("rank %d = %s, want %s", i, board[i].PlayerName, name)
		}
	}
	// The input must stay untouched.
	if results[0].PlayerName != "Alex" {
		t.Fatal("Leaderboard mutated its input")
	}
}

func TestTeamAverages_MeansAndGoodness(t *testing.T) {
	results := []PlayerResult{
		{Scores: sim.ScoreVector{Budget: 80000, Satisfaction: 70, Autonomy: 40, Ecology: 60, Risk: 30}},
		{Scores: sim.ScoreVector{Budget: 40000, Satisfaction: 50, Autonomy: 80, Ecology: 60, Risk: 50}},
	}
	byDim := map[string]DimensionAverage{}
	for _, d := range TeamAverages(results) {
		byDim[d.Dimension] = d
	}
	if byDim["satisfaction"].Mean != 60 || !byDim["satisfaction"].Good {
		t.Fatalf("satisfaction: %+v", byDim["satisfaction"])
	}
	if byDim["budget"].Mean != 60000 || !byDim["budget"].Good {
		t.Fatalf("budget: %+v", byDim["budget"])
	}
	if byDim["autonomy"].Mean != 60 || !byDim["autonomy"].Good {
		t.Fatalf("autonomy: %+v", byDim["autonomy"])
	}
	// Risk mean 40: below 50 counts as good.
	if byDim["risk"].Mean != 40 || !byDim["risk"].Good {
		t.Fatalf("risk: %+v", byDim["risk"])
	}
	// A 50/50 split is not "above 50".
	even := TeamAverages([]PlayerResult{{Scores: sim.ScoreVector{Satisfaction: 50}}})
	for _, d := range even {
		if d.Dimension == "satisfaction" && d.Good {
			t.Fatal("mean of exactly 50 must not count as good")
		}
	}
	if TeamAverages(nil) != nil {
		t.Fatal("empty input must yield nil")
	}
}

func TestTeamAverages_DepletedBudgetIsNotGood(t *testing.T) {
	// Budget follows the same above-50 rule as the percent dimensions; a
	// merely positive mean does not qualify.
	broke := TeamAverages([]PlayerResult{{Scores: sim.ScoreVector{Budget: 40}}})
	for _, d := range broke {
		if d.Dimension == "budget" && d.Good {
			t.Fatalf("budget mean 40 must not count as good: %+v", d)
		}
	}
}

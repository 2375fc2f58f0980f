package gamify

import (
	"fmt"
	"testing"
	"time"

	"civitech/internal/domain/sim"
)

func TestRecordGame_BestsAndCappedHistory(t *testing.T) {
	s := NewPlayerStats("alex")
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < HistoryCap+5; i++ {
		s.RecordGame(GameSummary{
			GameID:     fmt.Sprintf("game-%d", i),
			TotalScore: 50 + i,
			Scores: sim.ScoreVector{
				Budget:       float64(1000 * i),
				Satisfaction: float64(30 + i),
				Autonomy:     float64(20 + i),
				Ecology:      float64(10 + i),
			},
			CompletedAt: at.AddDate(0, 0, i),
		})
	}

	if s.GamesPlayed != HistoryCap+5 {
		t.Fatalf("games played = %d", s.GamesPlayed)
	}
	if len(s.History) != HistoryCap {
		t.Fatalf("history length = %d, want cap %d", len(s.History), HistoryCap)
	}
	if s.History[0].GameID != "game-5" {
		t.Fatalf("oldest retained = %s, want game-5", s.History[0].GameID)
	}
	if s.BestTotal != 50+HistoryCap+4 {
		t.Fatalf("best total = %d", s.BestTotal)
	}
	if s.BestScores.Autonomy != float64(20+HistoryCap+4) {
		t.Fatalf("best autonomy = %v", s.BestScores.Autonomy)
	}
}

func TestFinalVectorBadges_Thresholds(t *testing.T) {
	both := FinalVectorBadges(cfg, sim.ScoreVector{Autonomy: 60, Ecology: 50})
	if len(both) != 2 {
		t.Fatalf("badges = %v, want both thresholds met", both)
	}
	none := FinalVectorBadges(cfg, sim.ScoreVector{Autonomy: 59.9, Ecology: 49.9})
	if len(none) != 0 {
		t.Fatalf("badges = %v, want none", none)
	}
}

func TestCumulativeBadges_Thresholds(t *testing.T) {
	s := NewPlayerStats("alex")
	if got := CumulativeBadges(cfg, s); len(got) != 0 {
		t.Fatalf("fresh stats unlocked %v", got)
	}
	s.GamesPlayed = cfg.VeteranGames
	s.BestTotal = cfg.HighScorerMin
	got := CumulativeBadges(cfg, s)
	if len(got) != 2 {
		t.Fatalf("badges = %v, want veteran and high-scorer", got)
	}
}

package gamify

import (
	"time"

	"civitech/internal/content"
	"civitech/internal/domain/sim"
)

// HistoryCap bounds the per-player running game history.
const HistoryCap = 20

// GameSummary is one archived play-through.
type GameSummary struct {
	GameID      string          `json:"game_id"`
	TotalScore  int             `json:"total_score"`
	Scores      sim.ScoreVector `json:"scores"`
	Decisions   int             `json:"decisions"`
	Events      int             `json:"events"`
	CompletedAt time.Time       `json:"completed_at"`
}

// PlayerStats is the per-player statistics blob, persisted separately from
// the profile.
type PlayerStats struct {
	PlayerName  string          `json:"player_name"`
	GamesPlayed int             `json:"games_played"`
	BestTotal   int             `json:"best_total"`
	BestScores  sim.ScoreVector `json:"best_scores"`
	History     []GameSummary   `json:"history"`

	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlayerStats is the defensive default for missing or corrupt blobs.
func NewPlayerStats(playerName string) *PlayerStats {
	return &PlayerStats{PlayerName: playerName}
}

// RecordGame folds a finished game into the running statistics: best-ever
// values per dimension, best total, and the history capped at the most
// recent HistoryCap entries.
func (s *PlayerStats) RecordGame(summary GameSummary) {
	s.GamesPlayed++
	if summary.TotalScore > s.BestTotal {
		s.BestTotal = summary.TotalScore
	}
	if summary.Scores.Budget > s.BestScores.Budget {
		s.BestScores.Budget = summary.Scores.Budget
	}
	if summary.Scores.Satisfaction > s.BestScores.Satisfaction {
		s.BestScores.Satisfaction = summary.Scores.Satisfaction
	}
	if summary.Scores.Autonomy > s.BestScores.Autonomy {
		s.BestScores.Autonomy = summary.Scores.Autonomy
	}
	if summary.Scores.Ecology > s.BestScores.Ecology {
		s.BestScores.Ecology = summary.Scores.Ecology
	}
	s.History = append(s.History, summary)
	if len(s.History) > HistoryCap {
		s.History = s.History[len(s.History)-HistoryCap:]
	}
}

// FinalVectorBadges returns the badges a finished game's final vector
// unlocks. Thresholds come from content tuning.
func FinalVectorBadges(cfg content.Config, scores sim.ScoreVector) []string {
	var out []string
	if scores.Autonomy >= cfg.AutonomyBadgeMin {
		out = append(out, "sovereignty-champion")
	}
	if scores.Ecology >= cfg.EcologyBadgeMin {
		out = append(out, "green-steward")
	}
	return out
}

// CumulativeBadges returns the badges the running statistics unlock.
func CumulativeBadges(cfg content.Config, s *PlayerStats) []string {
	var out []string
	if s.GamesPlayed >= cfg.VeteranGames {
		out = append(out, "veteran")
	}
	if s.BestTotal >= cfg.HighScorerMin {
		out = append(out, "high-scorer")
	}
	return out
}

// Package gamify holds the persisted gamification state (points, badges,
// streaks, weekly challenges) and its lifecycle rules. Everything here is
// pure; persistence and clocks are injected by the ledger use case.
package gamify

import (
	"fmt"
	"time"

	"civitech/internal/content"
)

// Profile is the per-player gamification blob. It is read, modified and
// written back as a single logical resource; the Version field detects
// concurrent writers.
type Profile struct {
	PlayerName          string                        `json:"player_name"`
	Points              int                           `json:"points"`
	PointsHistory       []PointsEntry                 `json:"points_history"`
	Streak              int                           `json:"streak"`
	LastVisitDate       string                        `json:"last_visit_date,omitempty"`
	TotalVisits         int                           `json:"total_visits"`
	Badges              []string                      `json:"badges"`
	CompletedChallenges []string                      `json:"completed_challenges"`
	WeeklyStats         map[string]map[string]float64 `json:"weekly_stats,omitempty"`

	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PointsEntry is one appended line of the unbounded points history.
type PointsEntry struct {
	Amount int       `json:"amount"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// NewProfile is the lazily-created zero state used whenever no blob exists
// or the stored one is unreadable.
func NewProfile(playerName string) *Profile {
	return &Profile{PlayerName: playerName}
}

// AddPointsResult reports a points award and whether it crossed a level
// boundary.
type AddPointsResult struct {
	Points   int           `json:"points"`
	LevelUp  bool          `json:"level_up"`
	NewLevel content.Level `json:"new_level"`
}

// AddPoints credits amount, appends the history entry and reports level
// crossing against the static ladder.
func (p *Profile) AddPoints(amount int, reason string, levels []content.Level, now time.Time) AddPointsResult {
	before := LevelForPoints(levels, p.Points)
	p.Points += amount
	if p.Points < 0 {
		p.Points = 0
	}
	p.PointsHistory = append(p.PointsHistory, PointsEntry{Amount: amount, Reason: reason, At: now})
	after := LevelForPoints(levels, p.Points)
	return AddPointsResult{
		Points:   p.Points,
		LevelUp:  after.Level > before.Level,
		NewLevel: after,
	}
}

// HasBadge reports membership in the badge set.
func (p *Profile) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// AwardBadge appends the badge once. Returns false without modification
// when the badge is already held, so callers can skip the write.
func (p *Profile) AwardBadge(id string) bool {
	if id == "" || p.HasBadge(id) {
		return false
	}
	p.Badges = append(p.Badges, id)
	return true
}

// VisitResult summarizes a daily-visit tracking pass.
type VisitResult struct {
	FirstToday    bool     `json:"first_today"`
	Streak        int      `json:"streak"`
	PointsAwarded int      `json:"points_awarded"`
	NewBadges     []string `json:"new_badges,omitempty"`
}

// TrackVisit computes day-over-day streak continuity, awards the daily
// bonus once per calendar day and opportunistically checks time-of-day and
// streak-length badges. Repeat visits on the same day are counted but award
// nothing.
func (p *Profile) TrackVisit(cfg content.Config, now time.Time) VisitResult {
	today := now.Format("2006-01-02")
	p.TotalVisits++

	if p.LastVisitDate == today {
		return VisitResult{Streak: p.Streak}
	}
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	if p.LastVisitDate == yesterday {
		p.Streak++
	} else {
		p.Streak = 1
	}
	p.LastVisitDate = today
	// Weekly challenge progress counts visit days, not visit requests.
	p.TrackWeekly(WeekID(now), "visits", 1)

	res := VisitResult{FirstToday: true, Streak: p.Streak, PointsAwarded: cfg.DailyVisitPoints}
	p.Points += cfg.DailyVisitPoints
	p.PointsHistory = append(p.PointsHistory, PointsEntry{Amount: cfg.DailyVisitPoints, Reason: "daily_visit", At: now})

	if now.Hour() < cfg.EarlyBirdBeforeHour && p.AwardBadge("early-bird") {
		res.NewBadges = append(res.NewBadges, "early-bird")
	}
	if now.Hour() >= cfg.NightOwlAfterHour && p.AwardBadge("night-owl") {
		res.NewBadges = append(res.NewBadges, "night-owl")
	}
	for _, days := range cfg.StreakBadgeDays {
		if p.Streak >= days {
			id := fmt.Sprintf("streak-%d", days)
			if p.AwardBadge(id) {
				res.NewBadges = append(res.NewBadges, id)
			}
		}
	}
	return res
}

// TrackWeekly accumulates a metric under the given week bucket. For
// "best_*" keys the maximum is kept instead of a running sum.
func (p *Profile) TrackWeekly(weekID, key string, value float64) {
	if p.WeeklyStats == nil {
		p.WeeklyStats = map[string]map[string]float64{}
	}
	bucket := p.WeeklyStats[weekID]
	if bucket == nil {
		bucket = map[string]float64{}
		p.WeeklyStats[weekID] = bucket
	}
	if isBestMetric(key) {
		if value > bucket[key] {
			bucket[key] = value
		}
		return
	}
	bucket[key] += value
}

func isBestMetric(key string) bool {
	return len(key) > 5 && key[:5] == "best_"
}

// WeeklyProgress reads a tracked metric for a week bucket.
func (p *Profile) WeeklyProgress(weekID, key string) float64 {
	if p.WeeklyStats == nil {
		return 0
	}
	return p.WeeklyStats[weekID][key]
}

// Package content holds the product-tuning side of the game: level
// thresholds, badge definitions, weekly challenge catalog and point values.
// These numbers are configuration, not invariants; deployments can override
// them from a YAML file without touching game logic.
package content

// Level is one rung of the static level ladder. Levels are derived from
// points on demand and never persisted.
type Level struct {
	Level     int    `yaml:"level" json:"level"`
	Name      string `yaml:"name" json:"name"`
	MinPoints int    `yaml:"min_points" json:"min_points"`
}

// Badge is a declared achievement. Award conditions live in game logic;
// the catalog only names them.
type Badge struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Challenge is one weekly challenge catalog entry. The active set of three
// rotates deterministically by week index.
type Challenge struct {
	ID       string  `yaml:"id" json:"id"`
	Title    string  `yaml:"title" json:"title"`
	Target   float64 `yaml:"target" json:"target"`
	Reward   int     `yaml:"reward" json:"reward"`
	TrackKey string  `yaml:"track_key" json:"track_key"`
	Category string  `yaml:"category" json:"category"`
}

// Config is the full tunable surface.
type Config struct {
	Levels     []Level     `yaml:"levels"`
	Badges     []Badge     `yaml:"badges"`
	Challenges []Challenge `yaml:"challenges"`

	DailyVisitPoints int `yaml:"daily_visit_points"`

	// Final-vector badge thresholds checked at game end.
	AutonomyBadgeMin float64 `yaml:"autonomy_badge_min"`
	EcologyBadgeMin  float64 `yaml:"ecology_badge_min"`

	// Streak lengths (consecutive days) that unlock streak badges.
	StreakBadgeDays []int `yaml:"streak_badge_days"`

	// Local-time boundaries for the time-of-day visit badges.
	EarlyBirdBeforeHour int `yaml:"early_bird_before_hour"`
	NightOwlAfterHour   int `yaml:"night_owl_after_hour"`

	// Cumulative-statistics badge thresholds.
	VeteranGames  int `yaml:"veteran_games"`
	HighScorerMin int `yaml:"high_scorer_min"`
}

// Default returns the compiled-in tuning.
func Default() Config {
	return Config{
		Levels: []Level{
			{Level: 1, Name: "Trainee", MinPoints: 0},
			{Level: 2, Name: "Technician", MinPoints: 100},
			{Level: 3, Name: "Project Lead", MinPoints: 300},
			{Level: 4, Name: "Architect", MinPoints: 600},
			{Level: 5, Name: "Director", MinPoints: 1000},
			{Level: 6, Name: "Visionary", MinPoints: 1600},
		},
		Badges: []Badge{
			{ID: "sovereignty-champion", Name: "Sovereignty Champion", Description: "Finish a game with autonomy at 60 or above."},
			{ID: "green-steward", Name: "Green Steward", Description: "Finish a game with ecology at 50 or above."},
			{ID: "streak-3", Name: "Regular", Description: "Visit three days in a row."},
			{ID: "streak-7", Name: "Devoted", Description: "Visit seven days in a row."},
			{ID: "early-bird", Name: "Early Bird", Description: "Visit before 8 in the morning."},
			{ID: "night-owl", Name: "Night Owl", Description: "Visit after 10 in the evening."},
			{ID: "veteran", Name: "Veteran", Description: "Complete five games."},
			{ID: "high-scorer", Name: "High Scorer", Description: "Reach a total score of 150."},
		},
		Challenges: []Challenge{
			{ID: "play-3-games", Title: "Play three games", Target: 3, Reward: 50, TrackKey: "games_played", Category: "play"},
			{ID: "score-120", Title: "Score 120 points in one game", Target: 120, Reward: 60, TrackKey: "best_score", Category: "play"},
			{ID: "autonomy-70", Title: "Reach 70 autonomy", Target: 70, Reward: 40, TrackKey: "best_autonomy", Category: "mastery"},
			{ID: "ecology-60", Title: "Reach 60 ecology", Target: 60, Reward: 40, TrackKey: "best_ecology", Category: "mastery"},
			{ID: "visit-5-days", Title: "Visit five days this week", Target: 5, Reward: 30, TrackKey: "visits", Category: "habit"},
			{ID: "survive-events", Title: "Resolve four random events", Target: 4, Reward: 35, TrackKey: "events_resolved", Category: "play"},
		},
		DailyVisitPoints:    10,
		AutonomyBadgeMin:    60,
		EcologyBadgeMin:     50,
		StreakBadgeDays:     []int{3, 7},
		EarlyBirdBeforeHour: 8,
		NightOwlAfterHour:   22,
		VeteranGames:        5,
		HighScorerMin:       150,
	}
}

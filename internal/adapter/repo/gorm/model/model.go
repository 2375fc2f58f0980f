// Package model holds the gorm row types. Aggregates are persisted as
// JSONB payloads with the version lifted into its own column for the
// optimistic-concurrency predicate.
package model

import "time"

type Game struct {
	GameID    string    `gorm:"column:game_id;primaryKey"`
	Payload   []byte    `gorm:"column:payload;type:jsonb"`
	Version   int64     `gorm:"column:version"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Game) TableName() string { return "games" }

type Profile struct {
	PlayerName string    `gorm:"column:player_name;primaryKey"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
	Version    int64     `gorm:"column:version"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Profile) TableName() string { return "profiles" }

type PlayerStats struct {
	PlayerName string    `gorm:"column:player_name;primaryKey"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
	Version    int64     `gorm:"column:version"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (PlayerStats) TableName() string { return "player_stats" }

type Session struct {
	SessionID string    `gorm:"column:session_id;primaryKey"`
	Code      string    `gorm:"column:code;uniqueIndex"`
	Payload   []byte    `gorm:"column:payload;type:jsonb"`
	Version   int64     `gorm:"column:version"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Session) TableName() string { return "sessions" }

// PlayerResult rows are append-only; the unique (session_id, player_name)
// index enforces write-once per player.
type PlayerResult struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID   string    `gorm:"column:session_id;uniqueIndex:idx_session_player"`
	PlayerName  string    `gorm:"column:player_name;uniqueIndex:idx_session_player"`
	Payload     []byte    `gorm:"column:payload;type:jsonb"`
	SubmittedAt time.Time `gorm:"column:submitted_at"`
}

func (PlayerResult) TableName() string { return "player_results" }

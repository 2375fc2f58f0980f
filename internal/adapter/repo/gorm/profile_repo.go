package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"civitech/internal/adapter/repo/gorm/model"
	"civitech/internal/app/ports"
	"civitech/internal/domain/gamify"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return ProfileRepo{db: db}
}

var _ ports.ProfileRepository = ProfileRepo{}

// GetByPlayer never fails on absence or a corrupt payload; the caller gets
// a fresh profile and the next save recreates the row.
func (r ProfileRepo) GetByPlayer(ctx context.Context, playerName string) (*gamify.Profile, error) {
	var m model.Profile
	if err := getDBFromCtx(ctx, r.db).Where("player_name = ?", playerName).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gamify.NewProfile(playerName), nil
		}
		return nil, err
	}
	var p gamify.Profile
	if err := json.Unmarshal(m.Payload, &p); err != nil {
		return gamify.NewProfile(playerName), nil
	}
	p.Version = m.Version
	return &p, nil
}

func (r ProfileRepo) SaveWithVersion(ctx context.Context, profile *gamify.Profile, expectedVersion int64) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.Profile{
			PlayerName: profile.PlayerName,
			Payload:    payload,
			Version:    profile.Version,
			UpdatedAt:  profile.UpdatedAt,
		}
		return db.Create(&m).Error
	}

	res := db.Model(&model.Profile{}).
		Where("player_name = ? AND version = ?", profile.PlayerName, expectedVersion).
		Updates(map[string]any{
			"payload":    payload,
			"version":    profile.Version,
			"updated_at": profile.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

type StatsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) StatsRepo {
	return StatsRepo{db: db}
}

var _ ports.StatsRepository = StatsRepo{}

func (r StatsRepo) GetByPlayer(ctx context.Context, playerName string) (*gamify.PlayerStats, error) {
	var m model.PlayerStats
	if err := getDBFromCtx(ctx, r.db).Where("player_name = ?", playerName).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gamify.NewPlayerStats(playerName), nil
		}
		return nil, err
	}
	var s gamify.PlayerStats
	if err := json.Unmarshal(m.Payload, &s); err != nil {
		return gamify.NewPlayerStats(playerName), nil
	}
	s.Version = m.Version
	return &s, nil
}

func (r StatsRepo) SaveWithVersion(ctx context.Context, stats *gamify.PlayerStats, expectedVersion int64) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.PlayerStats{
			PlayerName: stats.PlayerName,
			Payload:    payload,
			Version:    stats.Version,
			UpdatedAt:  stats.UpdatedAt,
		}
		return db.Create(&m).Error
	}

	res := db.Model(&model.PlayerStats{}).
		Where("player_name = ? AND version = ?", stats.PlayerName, expectedVersion).
		Updates(map[string]any{
			"payload":    payload,
			"version":    stats.Version,
			"updated_at": stats.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"civitech/internal/adapter/repo/gorm/model"
	"civitech/internal/app/ports"
	"civitech/internal/domain/sim"
)

type GameRepo struct {
	db *gorm.DB
}

func NewGameRepo(db *gorm.DB) GameRepo {
	return GameRepo{db: db}
}

var _ ports.GameRepository = GameRepo{}

func (r GameRepo) GetByID(ctx context.Context, gameID string) (*sim.Game, error) {
	var m model.Game
	if err := getDBFromCtx(ctx, r.db).Where("game_id = ?", gameID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var g sim.Game
	if err := json.Unmarshal(m.Payload, &g); err != nil {
		return nil, err
	}
	// The column is authoritative; the payload copy is informational.
	g.Version = m.Version
	return &g, nil
}

func (r GameRepo) SaveWithVersion(ctx context.Context, game *sim.Game, expectedVersion int64) error {
	payload, err := json.Marshal(game)
	if err != nil {
		return err
	}
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.Game{
			GameID:    game.ID,
			Payload:   payload,
			Version:   game.Version,
			UpdatedAt: game.UpdatedAt,
		}
		return db.Create(&m).Error
	}

	res := db.Model(&model.Game{}).
		Where("game_id = ? AND version = ?", game.ID, expectedVersion).
		Updates(map[string]any{
			"payload":    payload,
			"version":    game.Version,
			"updated_at": game.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

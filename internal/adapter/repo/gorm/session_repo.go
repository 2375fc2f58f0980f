package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"

	"civitech/internal/adapter/repo/gorm/model"
	"civitech/internal/app/ports"
	"civitech/internal/domain/session"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return SessionRepo{db: db}
}

var _ ports.SessionRepository = SessionRepo{}

func (r SessionRepo) GetByCode(ctx context.Context, code string) (*session.Session, error) {
	var m model.Session
	if err := getDBFromCtx(ctx, r.db).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var s session.Session
	if err := json.Unmarshal(m.Payload, &s); err != nil {
		return nil, err
	}
	s.Version = m.Version
	return &s, nil
}

func (r SessionRepo) SaveWithVersion(ctx context.Context, s *session.Session, expectedVersion int64) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.Session{
			SessionID: s.ID,
			Code:      s.Code,
			Payload:   payload,
			Version:   s.Version,
			UpdatedAt: s.UpdatedAt,
		}
		return db.Create(&m).Error
	}

	res := db.Model(&model.Session{}).
		Where("session_id = ? AND version = ?", s.ID, expectedVersion).
		Updates(map[string]any{
			"payload":    payload,
			"version":    s.Version,
			"updated_at": s.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r SessionRepo) Delete(ctx context.Context, sessionID string) error {
	res := getDBFromCtx(ctx, r.db).Where("session_id = ?", sessionID).Delete(&model.Session{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

type ResultRepo struct {
	db *gorm.DB
}

func NewResultRepo(db *gorm.DB) ResultRepo {
	return ResultRepo{db: db}
}

var _ ports.ResultRepository = ResultRepo{}

// Append relies on the unique (session_id, player_name) index to keep the
// write-once contract under concurrent finishes.
func (r ResultRepo) Append(ctx context.Context, result session.PlayerResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	m := model.PlayerResult{
		SessionID:   result.SessionID,
		PlayerName:  result.PlayerName,
		Payload:     payload,
		SubmittedAt: result.SubmittedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r ResultRepo) ListBySession(ctx context.Context, sessionID string) ([]session.PlayerResult, error) {
	var rows []model.PlayerResult
	if err := getDBFromCtx(ctx, r.db).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]session.PlayerResult, 0, len(rows))
	for _, row := range rows {
		var result session.PlayerResult
		if err := json.Unmarshal(row.Payload, &result); err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Postgres unique_violation surfaces as SQLSTATE 23505.
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}

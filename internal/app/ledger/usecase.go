// Package ledger is the gamification use case: points, levels, badges,
// daily visits and the weekly challenge rotation. Every write is a
// versioned read-modify-write of the profile blob.
package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"civitech/internal/app/ports"
	"civitech/internal/content"
	"civitech/internal/domain/gamify"
)

var ErrInvalidRequest = errors.New("invalid ledger request")

type UseCase struct {
	TxManager ports.TxManager
	Profiles  ports.ProfileRepository
	Stats     ports.StatsRepository
	Content   content.Config
	Now       func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

// ChallengeView is one active challenge with the player's tracked progress.
type ChallengeView struct {
	content.Challenge
	Progress  float64 `json:"progress"`
	Completed bool    `json:"completed"`
}

type ProfileRequest struct {
	PlayerName string `json:"player_name"`
}

type ProfileResponse struct {
	Profile    gamify.Profile     `json:"profile"`
	Level      content.Level      `json:"level"`
	NextLevel  *content.Level     `json:"next_level,omitempty"`
	Stats      gamify.PlayerStats `json:"stats"`
	Challenges []ChallengeView    `json:"challenges"`
}

// Profile assembles the read view: profile blob, level position, running
// statistics and this week's challenges with progress. Unknown players get
// the zero profile rather than an error; the blob is created on first write.
func (u UseCase) Profile(ctx context.Context, req ProfileRequest) (ProfileResponse, error) {
	name := strings.TrimSpace(req.PlayerName)
	if name == "" {
		return ProfileResponse{}, ErrInvalidRequest
	}
	profile, err := u.Profiles.GetByPlayer(ctx, name)
	if err != nil {
		return ProfileResponse{}, err
	}
	stats, err := u.Stats.GetByPlayer(ctx, name)
	if err != nil {
		return ProfileResponse{}, err
	}
	resp := ProfileResponse{
		Profile:    *profile,
		Level:      gamify.LevelForPoints(u.Content.Levels, profile.Points),
		Stats:      *stats,
		Challenges: u.challengeViews(profile, u.now()),
	}
	for _, lvl := range u.Content.Levels {
		if lvl.MinPoints > profile.Points {
			next := lvl
			resp.NextLevel = &next
			break
		}
	}
	return resp, nil
}

func (u UseCase) challengeViews(profile *gamify.Profile, now time.Time) []ChallengeView {
	weekIndex := gamify.WeekIndex(now)
	weekID := gamify.WeekID(now)
	active := gamify.ActiveChallenges(u.Content.Challenges, weekIndex)
	out := make([]ChallengeView, 0, len(active))
	for _, c := range active {
		out = append(out, ChallengeView{
			Challenge: c,
			Progress:  profile.WeeklyProgress(weekID, c.TrackKey),
			Completed: profile.ChallengeCompleted(weekIndex, c.ID),
		})
	}
	return out
}

type VisitRequest struct {
	PlayerName string `json:"player_name"`
}

type VisitResponse struct {
	Visit   gamify.VisitResult `json:"visit"`
	Points  int                `json:"points"`
	Level   content.Level      `json:"level"`
	LevelUp bool               `json:"level_up"`
}

// TrackVisit records a daily visit: streak continuity, the once-per-day
// bonus and any time-of-day or streak badges.
func (u UseCase) TrackVisit(ctx context.Context, req VisitRequest) (VisitResponse, error) {
	name := strings.TrimSpace(req.PlayerName)
	if name == "" {
		return VisitResponse{}, ErrInvalidRequest
	}
	var resp VisitResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		profile, err := u.Profiles.GetByPlayer(txCtx, name)
		if err != nil {
			return err
		}
		now := u.now()
		before := gamify.LevelForPoints(u.Content.Levels, profile.Points)
		visit := profile.TrackVisit(u.Content, now)
		after := gamify.LevelForPoints(u.Content.Levels, profile.Points)

		expected := profile.Version
		profile.Version = expected + 1
		profile.UpdatedAt = now
		if err := u.Profiles.SaveWithVersion(txCtx, profile, expected); err != nil {
			return err
		}
		resp = VisitResponse{
			Visit:   visit,
			Points:  profile.Points,
			Level:   after,
			LevelUp: after.Level > before.Level,
		}
		return nil
	})
	if err != nil {
		return VisitResponse{}, err
	}
	return resp, nil
}

type ClaimRequest struct {
	PlayerName  string `json:"player_name"`
	ChallengeID string `json:"challenge_id"`
}

type ClaimResponse struct {
	Challenge content.Challenge      `json:"challenge"`
	Award     gamify.AddPointsResult `json:"award"`
}

// ClaimChallenge validates weekly progress against the active rotation and
// credits the reward in the same write as the completion mark.
func (u UseCase) ClaimChallenge(ctx context.Context, req ClaimRequest) (ClaimResponse, error) {
	name := strings.TrimSpace(req.PlayerName)
	if name == "" || strings.TrimSpace(req.ChallengeID) == "" {
		return ClaimResponse{}, ErrInvalidRequest
	}
	var resp ClaimResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		profile, err := u.Profiles.GetByPlayer(txCtx, name)
		if err != nil {
			return err
		}
		now := u.now()
		challenge, err := profile.ClaimChallenge(u.Content.Challenges, req.ChallengeID, now)
		if err != nil {
			return err
		}
		award := profile.AddPoints(challenge.Reward, "challenge_"+challenge.ID, u.Content.Levels, now)

		expected := profile.Version
		profile.Version = expected + 1
		profile.UpdatedAt = now
		if err := u.Profiles.SaveWithVersion(txCtx, profile, expected); err != nil {
			return err
		}
		resp = ClaimResponse{Challenge: challenge, Award: award}
		return nil
	})
	if err != nil {
		return ClaimResponse{}, err
	}
	return resp, nil
}

package play

import (
	"context"
	"errors"

	"civitech/internal/app/ports"
	"civitech/internal/domain/gamify"
	"civitech/internal/domain/session"
	"civitech/internal/domain/sim"
)

// finalize runs the end-of-game ceremony for a completed (not aborted)
// game inside the caller's transaction: points, badges, statistics, weekly
// tracking and, for multiplayer games, the session result. All of it is
// idempotent per game because finish is only reachable once per game blob.
func (u UseCase) finalize(ctx context.Context, g *sim.Game) error {
	if g.Aborted || !g.Finished() {
		return nil
	}
	now := u.now()

	profile, err := u.Profiles.GetByPlayer(ctx, g.PlayerName)
	if err != nil {
		return err
	}
	profileVersion := profile.Version
	profile.AddPoints(g.TotalScore, "game_completed", u.Content.Levels, now)
	for _, badge := range gamify.FinalVectorBadges(u.Content, g.Scores) {
		profile.AwardBadge(badge)
	}

	stats, err := u.Stats.GetByPlayer(ctx, g.PlayerName)
	if err != nil {
		return err
	}
	statsVersion := stats.Version
	stats.RecordGame(gamify.GameSummary{
		GameID:      g.ID,
		TotalScore:  g.TotalScore,
		Scores:      g.Scores,
		Decisions:   len(g.History),
		Events:      g.InterruptCount,
		CompletedAt: now,
	})
	for _, badge := range gamify.CumulativeBadges(u.Content, stats) {
		profile.AwardBadge(badge)
	}

	weekID := gamify.WeekID(now)
	profile.TrackWeekly(weekID, "games_played", 1)
	profile.TrackWeekly(weekID, "best_score", float64(g.TotalScore))
	profile.TrackWeekly(weekID, "best_autonomy", g.Scores.Autonomy)
	profile.TrackWeekly(weekID, "best_ecology", g.Scores.Ecology)
	profile.TrackWeekly(weekID, "events_resolved", float64(g.InterruptCount))

	profile.Version = profileVersion + 1
	profile.UpdatedAt = now
	if err := u.Profiles.SaveWithVersion(ctx, profile, profileVersion); err != nil {
		return err
	}
	stats.Version = statsVersion + 1
	stats.UpdatedAt = now
	if err := u.Stats.SaveWithVersion(ctx, stats, statsVersion); err != nil {
		return err
	}

	if g.SessionID != "" {
		result := session.PlayerResult{
			SessionID:             g.SessionID,
			PlayerName:            g.PlayerName,
			Scores:                g.Scores,
			Decisions:             g.History,
			TotalScore:            g.TotalScore,
			CompletionTimeSeconds: g.CompletionSeconds(),
			SubmittedAt:           now,
		}
		if err := u.Results.Append(ctx, result); err != nil && !errors.Is(err, ports.ErrConflict) {
			return err
		}
	}

	if u.Metrics != nil {
		u.Metrics.RecordGameFinished(g.TotalScore)
	}
	return nil
}

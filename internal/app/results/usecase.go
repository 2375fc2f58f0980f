// Package results aggregates finished multiplayer games into the polled
// results view: a leaderboard in competition mode, per-dimension team
// averages in collaboration mode.
package results

import (
	"context"
	"errors"
	"strings"

	"civitech/internal/app/ports"
	"civitech/internal/domain/session"
)

var ErrInvalidRequest = errors.New("invalid results request")

type UseCase struct {
	Sessions ports.SessionRepository
	Results  ports.ResultRepository
}

type Request struct {
	Code string `json:"code"`
}

// EntryView is one leaderboard row.
type EntryView struct {
	Rank                  int    `json:"rank"`
	PlayerName            string `json:"player_name"`
	TotalScore            int    `json:"total_score"`
	CompletionTimeSeconds int    `json:"completion_time_seconds"`
}

type Response struct {
	SessionID string       `json:"session_id"`
	Mode      session.Mode `json:"mode"`
	// Complete is true once every session player has a submitted result.
	Complete bool `json:"complete"`
	Expected int  `json:"expected"`
	Received int  `json:"received"`

	Leaderboard []EntryView                `json:"leaderboard,omitempty"`
	Team        []session.DimensionAverage `json:"team,omitempty"`

	PollIntervalSeconds int `json:"poll_interval_seconds"`
}

// BySession returns the partial or final aggregation for a session. Clients
// poll until Complete; results arriving later only ever append.
func (u UseCase) BySession(ctx context.Context, req Request) (Response, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return Response{}, ErrInvalidRequest
	}
	s, err := u.Sessions.GetByCode(ctx, code)
	if err != nil {
		return Response{}, err
	}
	results, err := u.Results.ListBySession(ctx, s.ID)
	if err != nil {
		return Response{}, err
	}

	resp := Response{
		SessionID:           s.ID,
		Mode:                s.Mode,
		Expected:            len(s.Players),
		Received:            len(results),
		Complete:            len(results) >= len(s.Players),
		PollIntervalSeconds: session.PollIntervalSeconds,
	}
	switch s.Mode {
	case session.ModeCollaboration:
		resp.Team = session.TeamAverages(results)
	default:
		for i, r := range session.Leaderboard(results) {
			resp.Leaderboard = append(resp.Leaderboard, EntryView{
				Rank:                  i + 1,
				PlayerName:            r.PlayerName,
				TotalScore:            r.TotalScore,
				CompletionTimeSeconds: r.CompletionTimeSeconds,
			})
		}
	}
	return resp, nil
}

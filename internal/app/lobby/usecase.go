// Package lobby manages multiplayer sessions: create, join, ready-up,
// start and leave. Clients synchronize by polling the session snapshot at
// the advertised interval; every mutation is a versioned read-modify-write
// retried once on conflict.
package lobby

import (
	"context"
	"errors"
	"strings"
	"time"

	"civitech/internal/app/ports"
	"civitech/internal/domain/session"
)

var ErrInvalidRequest = errors.New("invalid lobby request")

type UseCase struct {
	TxManager ports.TxManager
	Sessions  ports.SessionRepository
	Dice      session.Dice
	NewID     func() string
	Now       func() time.Time
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

// PlayerView is one lobby member as shown to polling clients.
type PlayerView struct {
	Name    string `json:"name"`
	IsHost  bool   `json:"is_host"`
	IsReady bool   `json:"is_ready"`
}

// SessionView is the polled lobby snapshot.
type SessionView struct {
	ID                  string         `json:"id"`
	Code                string         `json:"code"`
	Mode                session.Mode   `json:"mode"`
	Status              session.Status `json:"status"`
	Players             []PlayerView   `json:"players"`
	MaxPlayers          int            `json:"max_players"`
	PollIntervalSeconds int            `json:"poll_interval_seconds"`
}

func viewOf(s *session.Session) SessionView {
	view := SessionView{
		ID:                  s.ID,
		Code:                s.Code,
		Mode:                s.Mode,
		Status:              s.Status,
		MaxPlayers:          s.MaxPlayers,
		PollIntervalSeconds: session.PollIntervalSeconds,
	}
	for _, p := range s.Players {
		view.Players = append(view.Players, PlayerView{
			Name:    p.Name,
			IsHost:  p.Name == s.HostName,
			IsReady: p.IsReady,
		})
	}
	return view
}

type CreateRequest struct {
	HostName string       `json:"host_name"`
	Mode     session.Mode `json:"mode"`
}

type CreateResponse struct {
	Session SessionView `json:"session"`
}

// Create opens a new waiting session with a fresh join code. Code
// collisions are resolved by redrawing.
func (u UseCase) Create(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	host := strings.TrimSpace(req.HostName)
	if host == "" {
		return CreateResponse{}, session.ErrInvalidName
	}
	var view SessionView
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		code, err := u.freshCode(txCtx)
		if err != nil {
			return err
		}
		s, err := session.New(u.NewID(), code, host, req.Mode, u.now())
		if err != nil {
			return err
		}
		if err := u.save(txCtx, s, 0); err != nil {
			return err
		}
		view = viewOf(s)
		return nil
	})
	if err != nil {
		return CreateResponse{}, err
	}
	return CreateResponse{Session: view}, nil
}

func (u UseCase) freshCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code := session.NewCode(u.Dice)
		_, err := u.Sessions.GetByCode(ctx, code)
		if errors.Is(err, ports.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not allocate a session code")
}

func (u UseCase) save(ctx context.Context, s *session.Session, expected int64) error {
	s.Version = expected + 1
	s.UpdatedAt = u.now()
	return u.Sessions.SaveWithVersion(ctx, s, expected)
}

// mutate loads the session by code, applies fn and saves. One retry on a
// version conflict covers the common poll-while-joining race.
func (u UseCase) mutate(ctx context.Context, code string, fn func(s *session.Session) error) (SessionView, error) {
	code = normalizeCode(code)
	if code == "" {
		return SessionView{}, ErrInvalidRequest
	}
	var view SessionView
	attempt := func() error {
		return u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
			s, err := u.Sessions.GetByCode(txCtx, code)
			if err != nil {
				return err
			}
			if err := fn(s); err != nil {
				return err
			}
			if err := u.save(txCtx, s, s.Version); err != nil {
				return err
			}
			view = viewOf(s)
			return nil
		})
	}
	err := attempt()
	if errors.Is(err, ports.ErrConflict) {
		err = attempt()
	}
	if err != nil {
		return SessionView{}, err
	}
	return view, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type JoinRequest struct {
	Code       string `json:"code"`
	PlayerName string `json:"player_name"`
}

type JoinResponse struct {
	Session SessionView `json:"session"`
}

func (u UseCase) Join(ctx context.Context, req JoinRequest) (JoinResponse, error) {
	view, err := u.mutate(ctx, req.Code, func(s *session.Session) error {
		return s.Join(req.PlayerName, u.now())
	})
	if err != nil {
		return JoinResponse{}, err
	}
	return JoinResponse{Session: view}, nil
}

type ReadyRequest struct {
	Code       string `json:"code"`
	PlayerName string `json:"player_name"`
}

type ReadyResponse struct {
	Session SessionView `json:"session"`
}

func (u UseCase) ToggleReady(ctx context.Context, req ReadyRequest) (ReadyResponse, error) {
	view, err := u.mutate(ctx, req.Code, func(s *session.Session) error {
		return s.ToggleReady(strings.TrimSpace(req.PlayerName))
	})
	if err != nil {
		return ReadyResponse{}, err
	}
	return ReadyResponse{Session: view}, nil
}

type StartRequest struct {
	Code       string `json:"code"`
	PlayerName string `json:"player_name"`
}

type StartResponse struct {
	Session SessionView `json:"session"`
}

func (u UseCase) Start(ctx context.Context, req StartRequest) (StartResponse, error) {
	view, err := u.mutate(ctx, req.Code, func(s *session.Session) error {
		return s.Start(strings.TrimSpace(req.PlayerName), u.now())
	})
	if err != nil {
		return StartResponse{}, err
	}
	return StartResponse{Session: view}, nil
}

type LeaveRequest struct {
	Code       string `json:"code"`
	PlayerName string `json:"player_name"`
}

type LeaveResponse struct {
	Deleted bool        `json:"deleted"`
	Session SessionView `json:"session,omitzero"`
}

// Leave removes a player; the session is deleted when it empties and the
// host role moves down the join order otherwise.
func (u UseCase) Leave(ctx context.Context, req LeaveRequest) (LeaveResponse, error) {
	code := normalizeCode(req.Code)
	if code == "" {
		return LeaveResponse{}, ErrInvalidRequest
	}
	var resp LeaveResponse
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		s, err := u.Sessions.GetByCode(txCtx, code)
		if err != nil {
			return err
		}
		empty, err := s.Leave(strings.TrimSpace(req.PlayerName))
		if err != nil {
			return err
		}
		if empty {
			if err := u.Sessions.Delete(txCtx, s.ID); err != nil {
				return err
			}
			resp = LeaveResponse{Deleted: true}
			return nil
		}
		if err := u.save(txCtx, s, s.Version); err != nil {
			return err
		}
		resp = LeaveResponse{Session: viewOf(s)}
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}
	return resp, nil
}

type SnapshotRequest struct {
	Code string `json:"code"`
}

type SnapshotResponse struct {
	Session SessionView `json:"session"`
}

// Snapshot is the read side of lobby polling.
func (u UseCase) Snapshot(ctx context.Context, req SnapshotRequest) (SnapshotResponse, error) {
	code := normalizeCode(req.Code)
	if code == "" {
		return SnapshotResponse{}, ErrInvalidRequest
	}
	s, err := u.Sessions.GetByCode(ctx, code)
	if err != nil {
		return SnapshotResponse{}, err
	}
	return SnapshotResponse{Session: viewOf(s)}, nil
}

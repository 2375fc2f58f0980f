// Package session models a multiplayer game instance: a short shareable
// code, a host and 2-4 players moving from a waiting lobby into play.
// Clients synchronize by polling the session record; all writes go through
// versioned read-modify-write in the lobby use case.
package session

import (
	"errors"
	"strings"
	"time"
)

// Mode selects how results are aggregated at the end.
type Mode string

const (
	ModeCompetition   Mode = "competition"
	ModeCollaboration Mode = "collaboration"
)

// Status is the per-session state machine: waiting -> playing, terminal.
// Completion is inferred from the presence of player results, not tracked
// here.
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
)

// PollIntervalSeconds is the fixed cadence advertised to polling clients.
const PollIntervalSeconds = 2

// DefaultMaxPlayers bounds a session.
const DefaultMaxPlayers = 4

// CodeLength is the size of the join code.
const CodeLength = 6

// codeAlphabet excludes visually confusable characters (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

var (
	ErrInvalidMode    = errors.New("invalid session mode")
	ErrInvalidName    = errors.New("invalid player name")
	ErrAlreadyStarted = errors.New("session already started")
	ErrSessionFull    = errors.New("session full")
	ErrNameTaken      = errors.New("player name already taken")
	ErrUnknownPlayer  = errors.New("player not in session")
	ErrNotHost        = errors.New("only the host can start the game")
	ErrNotReady       = errors.New("need at least two players, all ready")
)

// Player is one lobby member.
type Player struct {
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
	IsReady  bool      `json:"is_ready"`
}

// Session is the shared multiplayer record.
type Session struct {
	ID         string   `json:"id"`
	Code       string   `json:"code"`
	HostName   string   `json:"host_name"`
	Mode       Mode     `json:"mode"`
	Status     Status   `json:"status"`
	Players    []Player `json:"players"`
	MaxPlayers int      `json:"max_players"`

	CreatedAt time.Time `json:"created_at"`
	StartedAt time.Time `json:"started_at,omitzero"`

	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Dice is the randomness used for code generation; *math/rand.Rand
// satisfies it.
type Dice interface {
	Intn(n int) int
}

// NewCode draws a CodeLength-character join code from the unambiguous
// alphabet.
func NewCode(dice Dice) string {
	var b strings.Builder
	b.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		b.WriteByte(codeAlphabet[dice.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// New creates a waiting session with the host as its first player.
func New(id, code, hostName string, mode Mode, now time.Time) (*Session, error) {
	hostName = strings.TrimSpace(hostName)
	if hostName == "" {
		return nil, ErrInvalidName
	}
	if mode != ModeCompetition && mode != ModeCollaboration {
		return nil, ErrInvalidMode
	}
	return &Session{
		ID:         id,
		Code:       code,
		HostName:   hostName,
		Mode:       mode,
		Status:     StatusWaiting,
		Players:    []Player{{Name: hostName, JoinedAt: now}},
		MaxPlayers: DefaultMaxPlayers,
		CreatedAt:  now,
	}, nil
}

func (s *Session) playerIndex(name string) int {
	for i, p := range s.Players {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Join appends a player, enforcing the lobby rules in order: the session
// must still be waiting, have a free slot, and the name must be unique.
func (s *Session) Join(playerName string, now time.Time) error {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return ErrInvalidName
	}
	if s.Status != StatusWaiting {
		return ErrAlreadyStarted
	}
	if len(s.Players) >= s.MaxPlayers {
		return ErrSessionFull
	}
	if s.playerIndex(playerName) >= 0 {
		return ErrNameTaken
	}
	s.Players = append(s.Players, Player{Name: playerName, JoinedAt: now})
	return nil
}

// ToggleReady flips the readiness flag of one player.
func (s *Session) ToggleReady(playerName string) error {
	if s.Status != StatusWaiting {
		return ErrAlreadyStarted
	}
	i := s.playerIndex(playerName)
	if i < 0 {
		return ErrUnknownPlayer
	}
	s.Players[i].IsReady = !s.Players[i].IsReady
	return nil
}

// Start is host-only and gated on at least two players, all ready.
func (s *Session) Start(playerName string, now time.Time) error {
	if s.Status != StatusWaiting {
		return ErrAlreadyStarted
	}
	if playerName != s.HostName {
		return ErrNotHost
	}
	if len(s.Players) < 2 {
		return ErrNotReady
	}
	for _, p := range s.Players {
		if !p.IsReady {
			return ErrNotReady
		}
	}
	s.Status = StatusPlaying
	s.StartedAt = now
	return nil
}

// Leave removes a player. When the host leaves, the next remaining player
// in join order inherits the role. The second return is true when the
// session emptied out and should be deleted.
func (s *Session) Leave(playerName string) (empty bool, err error) {
	i := s.playerIndex(playerName)
	if i < 0 {
		return false, ErrUnknownPlayer
	}
	s.Players = append(s.Players[:i], s.Players[i+1:]...)
	if len(s.Players) == 0 {
		return true, nil
	}
	if playerName == s.HostName {
		s.HostName = s.Players[0].Name
	}
	return false, nil
}

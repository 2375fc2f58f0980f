package gamify

import (
	"errors"
	"fmt"
	"time"

	"civitech/internal/content"
)

var (
	ErrUnknownChallenge   = errors.New("unknown challenge")
	ErrChallengeNotActive = errors.New("challenge not active this week")
	ErrAlreadyClaimed     = errors.New("challenge already claimed this week")
	ErrTargetNotMet       = errors.New("challenge target not met")
)

const weekSeconds = 7 * 24 * 60 * 60

// ActiveChallengeCount is the number of challenges live in any given week.
const ActiveChallengeCount = 3

// WeekIndex buckets wall-clock time into 7-day windows. Every client
// derives the same index for the same calendar week, so the active set
// needs no server coordination.
func WeekIndex(now time.Time) int64 {
	return now.Unix() / weekSeconds
}

// WeekID is the string key used for weekly stat buckets.
func WeekID(now time.Time) string {
	return fmt.Sprintf("wk-%d", WeekIndex(now))
}

// ActiveChallenges returns the deterministic rotation of three catalog
// entries for the given week index.
func ActiveChallenges(catalog []content.Challenge, weekIndex int64) []content.Challenge {
	if len(catalog) == 0 {
		return nil
	}
	n := ActiveChallengeCount
	if n > len(catalog) {
		n = len(catalog)
	}
	start := int(weekIndex*int64(ActiveChallengeCount)) % len(catalog)
	if start < 0 {
		start += len(catalog)
	}
	out := make([]content.Challenge, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, catalog[(start+i)%len(catalog)])
	}
	return out
}

// completionKey scopes a claim to one calendar week, so the same challenge
// can be claimed again after the week index rolls over.
func completionKey(weekIndex int64, challengeID string) string {
	return fmt.Sprintf("%d-%s", weekIndex, challengeID)
}

// ChallengeCompleted reports whether the challenge was already claimed in
// the given week.
func (p *Profile) ChallengeCompleted(weekIndex int64, challengeID string) bool {
	key := completionKey(weekIndex, challengeID)
	for _, done := range p.CompletedChallenges {
		if done == key {
			return true
		}
	}
	return false
}

// ClaimChallenge validates the tracked weekly progress against the target
// and marks the challenge completed for this week. Points are credited by
// the caller via AddPoints, keeping one write path for the ledger.
func (p *Profile) ClaimChallenge(catalog []content.Challenge, challengeID string, now time.Time) (content.Challenge, error) {
	weekIndex := WeekIndex(now)
	var challenge content.Challenge
	found := false
	for _, c := range ActiveChallenges(catalog, weekIndex) {
		if c.ID == challengeID {
			challenge = c
			found = true
			break
		}
	}
	if !found {
		for _, c := range catalog {
			if c.ID == challengeID {
				return content.Challenge{}, ErrChallengeNotActive
			}
		}
		return content.Challenge{}, ErrUnknownChallenge
	}

	if p.ChallengeCompleted(weekIndex, challengeID) {
		return content.Challenge{}, ErrAlreadyClaimed
	}
	if p.WeeklyProgress(WeekID(now), challenge.TrackKey) < challenge.Target {
		return content.Challenge{}, ErrTargetNotMet
	}
	p.CompletedChallenges = append(p.CompletedChallenges, completionKey(weekIndex, challengeID))
	return challenge, nil
}

// Package inmemory keeps the KPI counters for the ops endpoint. Process
// local by design; a restart resets them.
package inmemory

import (
	"sync"

	"civitech/internal/app/ports"
)

type Snapshot struct {
	DecisionsTotal     uint64  `json:"decisions_total"`
	DecisionsAuto      uint64  `json:"decisions_auto"`
	GamesFinished      uint64  `json:"games_finished"`
	ScoreSum           int64   `json:"score_sum"`
	AverageScore       float64 `json:"average_score"`
	GenerationFailures uint64  `json:"generation_failures"`
	SaveConflicts      uint64  `json:"save_conflicts"`
}

type Recorder struct {
	mu          sync.Mutex
	decisions   uint64
	autoDecides uint64
	finished    uint64
	scoreSum    int64
	genFailures uint64
	conflicts   uint64
}

var _ ports.GameMetrics = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordDecision(auto bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions++
	if auto {
		r.autoDecides++
	}
}

func (r *Recorder) RecordGameFinished(totalScore int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished++
	r.scoreSum += int64(totalScore)
}

func (r *Recorder) RecordGenerationFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.genFailures++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		DecisionsTotal:     r.decisions,
		DecisionsAuto:      r.autoDecides,
		GamesFinished:      r.finished,
		ScoreSum:           r.scoreSum,
		GenerationFailures: r.genFailures,
		SaveConflicts:      r.conflicts,
	}
	if r.finished > 0 {
		out.AverageScore = float64(r.scoreSum) / float64(r.finished)
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

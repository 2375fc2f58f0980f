package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordDecision(false)
	r.RecordDecision(false)
	r.RecordDecision(true)
	r.RecordGameFinished(90)
	r.RecordGameFinished(110)
	r.RecordGenerationFailure()
	r.RecordConflict()

	s := r.Snapshot()
	if s.DecisionsTotal != 3 {
		t.Fatalf("expected 3 decisions, got %d", s.DecisionsTotal)
	}
	if s.DecisionsAuto != 1 {
		t.Fatalf("expected 1 auto decision, got %d", s.DecisionsAuto)
	}
	if s.GamesFinished != 2 {
		t.Fatalf("expected 2 finished games, got %d", s.GamesFinished)
	}
	if s.AverageScore != 100 {
		t.Fatalf("expected average 100, got %f", s.AverageScore)
	}
	if s.GenerationFailures != 1 || s.SaveConflicts != 1 {
		t.Fatalf("unexpected failure counters: %+v", s)
	}
}

func TestRecorderEmptyAverage(t *testing.T) {
	s := NewRecorder().Snapshot()
	if s.AverageScore != 0 {
		t.Fatalf("expected zero average with no games, got %f", s.AverageScore)
	}
}

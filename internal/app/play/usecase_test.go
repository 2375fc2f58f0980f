package play_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"civitech/internal/adapter/repo/memory"
	"civitech/internal/app/play"
	"civitech/internal/app/ports"
	"civitech/internal/content"
	"civitech/internal/domain/session"
	"civitech/internal/domain/sim"
)

type scriptedDice struct {
	ints   []int
	floats []float64
}

func (d *scriptedDice) Intn(n int) int {
	if len(d.ints) == 0 {
		return 0
	}
	v := d.ints[0]
	d.ints = d.ints[1:]
	return v % n
}

func (d *scriptedDice) Float64() float64 {
	if len(d.floats) == 0 {
		return 1.0
	}
	v := d.floats[0]
	d.floats = d.floats[1:]
	return v
}

type stubGenerator struct {
	err        error
	calls      int
	onGenerate func()
}

func (g *stubGenerator) Generate(_ context.Context, _ []sim.DecisionRecord, _ sim.ScoreVector) (sim.Scenario, error) {
	g.calls++
	if g.onGenerate != nil {
		g.onGenerate()
	}
	if g.err != nil {
		return sim.Scenario{}, g.err
	}
	id := fmt.Sprintf("gen-%d", g.calls)
	return sim.Scenario{
		ID:      id,
		Title:   "Generated scenario",
		Context: "Follow-up situation",
		Decisions: []sim.Decision{
			{ID: id + "-a", Title: "Option A", Consequences: sim.Delta(sim.DBudget(-1000), sim.DMessage("a"))},
			{ID: id + "-b", Title: "Option B", Consequences: sim.Delta(sim.DAutonomy(5), sim.DMessage("b"))},
			{ID: id + "-c", Title: "Option C", Consequences: sim.Delta(sim.DEcology(5), sim.DMessage("c"))},
		},
	}, nil
}

type countingMetrics struct {
	decisions   int
	autoDecides int
	finished    int
	genFailures int
	conflicts   int
}

func (m *countingMetrics) RecordDecision(auto bool) {
	m.decisions++
	if auto {
		m.autoDecides++
	}
}
func (m *countingMetrics) RecordGameFinished(int)   { m.finished++ }
func (m *countingMetrics) RecordGenerationFailure() { m.genFailures++ }
func (m *countingMetrics) RecordConflict()          { m.conflicts++ }

var _ ports.GameMetrics = (*countingMetrics)(nil)

// gateTx delegates to the real manager but can reject the next unit of
// work, simulating a store outage between two halves of a flow.
type gateTx struct {
	inner    ports.TxManager
	failNext bool
}

func (t *gateTx) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	if t.failNext {
		t.failNext = false
		return errors.New("store unavailable")
	}
	return t.inner.RunInTx(ctx, fn)
}

type fixture struct {
	store   *memory.Store
	uc      play.UseCase
	gen     *stubGenerator
	metrics *countingMetrics
	clock   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:   memory.NewStore(),
		gen:     &stubGenerator{},
		metrics: &countingMetrics{},
		clock:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	f.uc = play.UseCase{
		TxManager: memory.NewTxManager(f.store),
		Games:     memory.NewGameRepo(f.store),
		Profiles:  memory.NewProfileRepo(f.store),
		Stats:     memory.NewStatsRepo(f.store),
		Sessions:  memory.NewSessionRepo(f.store),
		Results:   memory.NewResultRepo(f.store),
		Generator: f.gen,
		Metrics:   f.metrics,
		Content:   content.Default(),
		Dice:      &scriptedDice{},
		Now:       func() time.Time { return f.clock },
	}
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func mustStart(t *testing.T, f *fixture) play.Snapshot {
	t.Helper()
	resp, err := f.uc.Start(context.Background(), play.StartRequest{PlayerName: "kim"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return resp.Snapshot
}

func TestStartCreatesDecisionPhaseGame(t *testing.T) {
	f := newFixture(t)
	snap := mustStart(t, f)

	if snap.Phase != sim.PhaseDecision {
		t.Fatalf("phase = %s, want %s", snap.Phase, sim.PhaseDecision)
	}
	if snap.TimerRemaining != sim.DecisionSeconds {
		t.Fatalf("timer = %d, want %d", snap.TimerRemaining, sim.DecisionSeconds)
	}
	if snap.Scenario == nil || len(snap.Scenario.Decisions) < 2 {
		t.Fatalf("expected a scenario with decisions, got %+v", snap.Scenario)
	}

	g, err := f.uc.Games.GetByID(context.Background(), snap.GameID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if g.Version != 1 {
		t.Fatalf("persisted version = %d, want 1", g.Version)
	}
}

func TestStartRejectsBlankName(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Start(context.Background(), play.StartRequest{PlayerName: "   "})
	if !errors.Is(err, play.ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestSnapshotTicksWallClock(t *testing.T) {
	f := newFixture(t)
	snap := mustStart(t, f)

	f.advance(30 * time.Second)
	resp, err := f.uc.Snapshot(context.Background(), play.SnapshotRequest{GameID: snap.GameID})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if resp.Snapshot.TimerRemaining != 30 {
		t.Fatalf("timer = %d, want 30", resp.Snapshot.TimerRemaining)
	}

	// Crossing zero auto-resolves the decision.
	f.advance(40 * time.Second)
	resp, err = f.uc.Snapshot(context.Background(), play.SnapshotRequest{GameID: snap.GameID})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if resp.Snapshot.Phase != sim.PhaseConsequence {
		t.Fatalf("phase = %s, want consequence", resp.Snapshot.Phase)
	}
	if resp.Snapshot.LastOutcome == nil || !resp.Snapshot.LastOutcome.Auto {
		t.Fatalf("expected auto outcome, got %+v", resp.Snapshot.LastOutcome)
	}
	if f.metrics.autoDecides != 1 {
		t.Fatalf("autoDecides = %d, want 1", f.metrics.autoDecides)
	}
}

func TestSnapshotPersistsAutoDecision(t *testing.T) {
	f := newFixture(t)
	snap := mustStart(t, f)

	f.advance(70 * time.Second)
	first, err := f.uc.Snapshot(context.Background(), play.SnapshotRequest{GameID: snap.GameID})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if first.Snapshot.Phase != sim.PhaseConsequence || first.Snapshot.LastOutcome == nil {
		t.Fatalf("expected auto-resolved consequence, got %+v", first.Snapshot)
	}

	// The auto-decision must be stored, not recomputed on every poll.
	g, err := f.uc.Games.GetByID(context.Background(), snap.GameID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if g.Phase != sim.PhaseConsequence {
		t.Fatalf("persisted phase = %s, want consequence", g.Phase)
	}
	if len(g.History) != 1 {
		t.Fatalf("persisted history = %d entries, want 1", len(g.History))
	}
	if g.Version != 2 {
		t.Fatalf("persisted version = %d, want 2", g.Version)
	}

	second, err := f.uc.Snapshot(context.Background(), play.SnapshotRequest{GameID: snap.GameID})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if second.Snapshot.LastOutcome == nil ||
		second.Snapshot.LastOutcome.DecisionID != first.Snapshot.LastOutcome.DecisionID {
		t.Fatalf("second poll outcome = %+v, want %+v", second.Snapshot.LastOutcome, first.Snapshot.LastOutcome)
	}
	if f.metrics.autoDecides != 1 {
		t.Fatalf("autoDecides = %d, want 1 across repeated polls", f.metrics.autoDecides)
	}
}

func TestDecideThenAdvanceMovesToNextScenario(t *testing.T) {
	f := newFixture(t)
	snap := mustStart(t, f)
	first := snap.Scenario.ID

	dec, err := f.uc.Decide(context.Background(), play.DecideRequest{
		GameID:     snap.GameID,
		DecisionID: snap.Scenario.Decisions[0].ID,
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if dec.Snapshot.Phase != sim.PhaseConsequence {
		t.Fatalf("phase = %s, want consequence", dec.Snapshot.Phase)
	}
	if !dec.Snapshot.ConsequenceShown {
		t.Fatal("expected consequence shown")
	}

	adv, err := f.uc.Advance(context.Background(), play.AdvanceRequest{GameID: snap.GameID})
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if adv.Result != sim.AdvanceNextScenario {
		t.Fatalf("result = %s, want next_scenario", adv.Result)
	}
	if adv.Snapshot.Scenario.ID == first {
		t.Fatal("expected a different scenario after advance")
	}
	if adv.Snapshot.TimerRemaining != sim.DecisionSeconds {
		t.Fatalf("timer = %d, want fresh countdown", adv.Snapshot.TimerRemaining)
	}
}

func TestDecideUnknownDecision(t *testing.T) {
	f := newFixture(t)
	snap := mustStart(t, f)

	_, err := f.uc.Decide(context.Background(), play.DecideRequest{GameID: snap.GameID, DecisionID: "nope"})
	if !errors.Is(err, sim.ErrUnknownDecision) {
		t.Fatalf("err = %v, want ErrUnknownDecision", err)
	}
}

func TestAdvanceInterruptAndEventChoice(t *testing.T) {
	f := newFixture(t)
	f.uc.Dice = &scriptedDice{floats: []float64{0.0}} // force the interrupt roll
	snap := mustStart(t, f)

	if _, err := f.uc.Decide(context.Background(), play.DecideRequest{
		GameID:     snap.GameID,
		DecisionID: snap.Scenario.Decisions[0].ID,
	}); err != nil {
		t.Fatalf("Decide: %v", err)
	}

	adv, err := f.uc.Advance(context.Background(), play.AdvanceRequest{GameID: snap.GameID})
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if adv.Result != sim.AdvanceEventPending {
		t.Fatalf("result = %s, want event_pending", adv.Result)
	}
	if adv.Snapshot.PendingEvent == nil || len(adv.Snapshot.PendingEvent.Choices) == 0 {
		t.Fatalf("expected a pending event with choices, got %+v", adv.Snapshot.PendingEvent)
	}

	choice, err := f.uc.EventChoice(context.Background(), play.EventChoiceRequest{
		GameID:   snap.GameID,
		ChoiceID: adv.Snapshot.PendingEvent.Choices[0].ID,
	})
	if err != nil {
		t.Fatalf("EventChoice: %v", err)
	}
	if choice.Snapshot.Phase != sim.PhaseDecision {
		t.Fatalf("phase = %s, want decision after event", choice.Snapshot.Phase)
	}
	if choice.Snapshot.PendingEvent != nil {
		t.Fatal("pending event should be cleared")
	}
}

// playThroughBuiltins finishes the five catalog scenarios without
// interrupts and returns the last advance response.
func playThroughBuiltins(t *testing.T, f *fixture, gameID string) play.AdvanceResponse {
	t.Helper()
	var adv play.AdvanceResponse
	for i := 0; i < 5; i++ {
		resp, err := f.uc.Snapshot(context.Background(), play.SnapshotRequest{GameID: gameID})
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if _, err := f.uc.Decide(context.Background(), play.DecideRequest{
			GameID:     gameID,
			DecisionID: resp.Snapshot.Scenario.Decisions[0].ID,
		}); err != nil {
			t.Fatalf("Decide scenario %d: %v", i, err)
		}
		adv, err = f.uc.Advance(context.Background(), play.AdvanceRequest{GameID: gameID})
		if err != nil {
			t.Fatalf("Advance scenario %d: %v", i, err)
		}
	}
	return adv
}

func TestGeneratedScenariosExtendTheGame(t *testing.T) {
	f := newFixture(t)
	snap := mustStart(t, f)

	adv := playThroughBuiltins(t, f, snap.GameID)
	if adv.Result != sim.AdvanceNextScenario {
		t.Fatalf("result = %s, want next_scenario from generation", adv.Result)
	}
	if adv.Snapshot.Scenario == nil || adv.Snapshot.Scenario.Source != sim.SourceGenerated {
		t.Fatalf("expected a generated scenario, got %+v", adv.Snapshot.Scenario)
	}
	if f.gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", f.gen.calls)
	}

	// Play the two generated scenarios to the end.
	for i := 0; i < sim.MaxGeneratedScenarios; i++ {
		resp, err := f.uc.Snapshot(context.Background(), play.SnapshotRequest{GameID: snap.GameID})
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if _, err := f.uc.Decide(context.Background(), play.DecideRequest{
			GameID:     snap.GameID,
			DecisionID: resp.Snapshot.Scenario.Decisions[0].ID,
		}); err != nil {
			t.Fatalf("Decide generated %d: %v", i, err)
		}
		adv, err = f.uc.Advance(context.Background(), play.AdvanceRequest{GameID: snap.GameID})
		if err != nil {
			t.Fatalf("Advance generated %d: %v", i, err)
		}
	}
	if adv.Result != sim.AdvanceFinished {
		t.Fatalf("result = %s, want finished", adv.Result)
	}
	if !adv.Snapshot.Finished || adv.Snapshot.TotalScore == 0 {
		t.Fatalf("expected finished snapshot with total score, got %+v", adv.Snapshot)
	}

	profile, err := f.uc.Profiles.GetByPlayer(context.Background(), "kim")
	if err != nil {
		t.Fatalf("GetByPlayer: %v", err)
	}
	if profile.Points != adv.Snapshot.TotalScore {
		t.Fatalf("points = %d, want %d", profile.Points, adv.Snapshot.TotalScore)
	}
	stats, err := f.uc.Stats.GetByPlayer(context.Background(), "kim")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.GamesPlayed != 1 || len(stats.History) != 1 {
		t.Fatalf("stats = %+v, want one recorded game", stats)
	}
	if f.metrics.finished != 1 {
		t.Fatalf("finished metric = %d, want 1", f.metrics.finished)
	}
}

func TestGenerationFailureEndsGameQuietly(t *testing.T) {
	f := newFixture(t)
	f.gen.err = ports.ErrGenerationFailed
	snap := mustStart(t, f)

	adv := playThroughBuiltins(t, f, snap.GameID)
	if adv.Result != sim.AdvanceFinished {
		t.Fatalf("result = %s, want finished after failed generation", adv.Result)
	}
	if !adv.Snapshot.Finished {
		t.Fatal("expected finished snapshot")
	}
	if f.metrics.genFailures != 1 {
		t.Fatalf("genFailures = %d, want 1", f.metrics.genFailures)
	}
	// The degraded ending still runs the full score ceremony.
	profile, err := f.uc.Profiles.GetByPlayer(context.Background(), "kim")
	if err != nil {
		t.Fatalf("GetByPlayer: %v", err)
	}
	if profile.Points != adv.Snapshot.TotalScore {
		t.Fatalf("points = %d, want %d", profile.Points, adv.Snapshot.TotalScore)
	}
}

func TestAdvanceStaysAwaitingWhenGenerationCannotConclude(t *testing.T) {
	f := newFixture(t)
	gate := &gateTx{inner: f.uc.TxManager}
	f.uc.TxManager = gate
	// Fail the transaction that would append the generated scenario.
	f.gen.onGenerate = func() { gate.failNext = true }
	snap := mustStart(t, f)

	adv := playThroughBuiltins(t, f, snap.GameID)
	if adv.Result != sim.AdvanceAwaitScenario {
		t.Fatalf("result = %s, want await_scenario", adv.Result)
	}
	if adv.Snapshot.Phase != sim.PhaseAwaiting {
		t.Fatalf("phase = %s, want awaiting", adv.Snapshot.Phase)
	}

	// The stored game agrees with the reported result.
	resp, err := f.uc.Snapshot(context.Background(), play.SnapshotRequest{GameID: snap.GameID})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if resp.Snapshot.Phase != sim.PhaseAwaiting {
		t.Fatalf("polled phase = %s, want awaiting", resp.Snapshot.Phase)
	}
}

func TestAbortSkipsScoreCeremony(t *testing.T) {
	f := newFixture(t)
	snap := mustStart(t, f)

	resp, err := f.uc.Abort(context.Background(), play.AbortRequest{GameID: snap.GameID})
	if err != nil {
		t.Fatalf("Abort: %v", err)
	}
	if !resp.Snapshot.Finished || !resp.Snapshot.Aborted {
		t.Fatalf("expected finished aborted snapshot, got %+v", resp.Snapshot)
	}

	profile, err := f.uc.Profiles.GetByPlayer(context.Background(), "kim")
	if err != nil {
		t.Fatalf("GetByPlayer: %v", err)
	}
	if profile.Points != 0 || len(profile.PointsHistory) != 0 {
		t.Fatalf("aborted game must not award points, got %+v", profile)
	}
}

func seedPlayingSession(t *testing.T, f *fixture, players ...string) *session.Session {
	t.Helper()
	s, err := session.New("sess-1", "ABCDEF", players[0], session.ModeCompetition, f.clock)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	for _, p := range players[1:] {
		if err := s.Join(p, f.clock); err != nil {
			t.Fatalf("Join: %v", err)
		}
	}
	for _, p := range players {
		if err := s.ToggleReady(p); err != nil {
			t.Fatalf("ToggleReady: %v", err)
		}
	}
	if err := s.Start(players[0], f.clock); err != nil {
		t.Fatalf("session Start: %v", err)
	}
	s.Version = 1
	if err := f.uc.Sessions.SaveWithVersion(context.Background(), s, 0); err != nil {
		t.Fatalf("save session: %v", err)
	}
	return s
}

func TestMultiplayerStartChecksSessionState(t *testing.T) {
	f := newFixture(t)

	// Waiting session: play cannot start yet.
	s, err := session.New("sess-0", "WAITIN", "kim", session.ModeCompetition, f.clock)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	s.Version = 1
	if err := f.uc.Sessions.SaveWithVersion(context.Background(), s, 0); err != nil {
		t.Fatalf("save session: %v", err)
	}
	_, err = f.uc.Start(context.Background(), play.StartRequest{PlayerName: "kim", SessionCode: "WAITIN"})
	if !errors.Is(err, play.ErrSessionNotStarted) {
		t.Fatalf("err = %v, want ErrSessionNotStarted", err)
	}

	seedPlayingSession(t, f, "host", "kim")
	_, err = f.uc.Start(context.Background(), play.StartRequest{PlayerName: "mallory", SessionCode: "ABCDEF"})
	if !errors.Is(err, play.ErrNotSessionMember) {
		t.Fatalf("err = %v, want ErrNotSessionMember", err)
	}

	resp, err := f.uc.Start(context.Background(), play.StartRequest{PlayerName: "kim", SessionCode: "abcdef"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if resp.Snapshot.SessionID != "sess-1" {
		t.Fatalf("session id = %q, want sess-1", resp.Snapshot.SessionID)
	}
}

func TestFinishedMultiplayerGameSubmitsResult(t *testing.T) {
	f := newFixture(t)
	f.gen.err = ports.ErrGenerationFailed // shortest path to the results phase
	seedPlayingSession(t, f, "host", "kim")

	resp, err := f.uc.Start(context.Background(), play.StartRequest{PlayerName: "kim", SessionCode: "ABCDEF"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	adv := playThroughBuiltins(t, f, resp.Snapshot.GameID)
	if adv.Result != sim.AdvanceFinished {
		t.Fatalf("result = %s, want finished", adv.Result)
	}

	results, err := f.uc.Results.ListBySession(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(results) != 1 || results[0].PlayerName != "kim" {
		t.Fatalf("results = %+v, want one for kim", results)
	}
	if results[0].TotalScore != adv.Snapshot.TotalScore {
		t.Fatalf("result score = %d, want %d", results[0].TotalScore, adv.Snapshot.TotalScore)
	}
	if len(results[0].Decisions) != 5 {
		t.Fatalf("decisions = %d, want 5", len(results[0].Decisions))
	}
}

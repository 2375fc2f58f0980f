package advisor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"civitech/internal/adapter/repo/memory"
	"civitech/internal/app/advisor"
	"civitech/internal/app/ports"
	"civitech/internal/domain/sim"
)

type stubAdvisor struct {
	advice ports.Advice
	err    error
}

func (s stubAdvisor) Advise(context.Context, sim.Scenario, sim.ScoreVector, []sim.DecisionRecord) (ports.Advice, error) {
	return s.advice, s.err
}

type stubAnalyzer struct {
	analysis ports.Analysis
	err      error
}

func (s stubAnalyzer) Analyze(context.Context, []sim.DecisionRecord, sim.ScoreVector, []sim.Scenario) (ports.Analysis, error) {
	return s.analysis, s.err
}

func seedGame(t *testing.T, store *memory.Store, mutate func(*sim.Game)) *sim.Game {
	t.Helper()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	g := sim.NewGame("game-1", "kim", now)
	if err := g.Start(now); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if mutate != nil {
		mutate(g)
	}
	g.Version = 1
	if err := memory.NewGameRepo(store).SaveWithVersion(context.Background(), g, 0); err != nil {
		t.Fatalf("save game: %v", err)
	}
	return g
}

func TestAdviceDuringDecision(t *testing.T) {
	store := memory.NewStore()
	seedGame(t, store, nil)
	uc := advisor.UseCase{
		Games:   memory.NewGameRepo(store),
		Advisor: stubAdvisor{advice: ports.Advice{Advice: "mind the budget", Focus: "budget"}},
	}

	resp, err := uc.Advice(context.Background(), advisor.AdviceRequest{GameID: "game-1"})
	if err != nil {
		t.Fatalf("Advice: %v", err)
	}
	if !resp.Available || resp.Advice.Focus != "budget" {
		t.Fatalf("resp = %+v, want available budget advice", resp)
	}
}

func TestAdviceDegradesOnFailure(t *testing.T) {
	store := memory.NewStore()
	seedGame(t, store, nil)
	uc := advisor.UseCase{
		Games:   memory.NewGameRepo(store),
		Advisor: stubAdvisor{err: ports.ErrGenerationFailed},
	}

	resp, err := uc.Advice(context.Background(), advisor.AdviceRequest{GameID: "game-1"})
	if err != nil {
		t.Fatalf("Advice must not propagate model failures, got %v", err)
	}
	if resp.Available {
		t.Fatal("expected unavailable advice")
	}
}

func TestAdviceOutsideDecisionPhase(t *testing.T) {
	store := memory.NewStore()
	seedGame(t, store, func(g *sim.Game) {
		if err := g.Abort(time.Date(2026, 3, 2, 12, 1, 0, 0, time.UTC)); err != nil {
			panic(err)
		}
	})
	uc := advisor.UseCase{
		Games:   memory.NewGameRepo(store),
		Advisor: stubAdvisor{advice: ports.Advice{Advice: "x"}},
	}

	resp, err := uc.Advice(context.Background(), advisor.AdviceRequest{GameID: "game-1"})
	if err != nil {
		t.Fatalf("Advice: %v", err)
	}
	if resp.Available {
		t.Fatal("no advice outside the decision phase")
	}
}

func TestAdviceUnknownGame(t *testing.T) {
	uc := advisor.UseCase{Games: memory.NewGameRepo(memory.NewStore()), Advisor: stubAdvisor{}}
	_, err := uc.Advice(context.Background(), advisor.AdviceRequest{GameID: "missing"})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func finishGame(g *sim.Game) {
	dice := sim.NewDice(1)
	now := g.StartedAt
	for !g.Finished() {
		scenario, ok := g.CurrentScenario()
		if !ok {
			break
		}
		if err := g.SelectDecision(scenario.Decisions[0].ID, now); err != nil {
			panic(err)
		}
		res, err := g.Advance(dice, now)
		if err != nil {
			panic(err)
		}
		switch res {
		case sim.AdvanceEventPending:
			after, err := g.ChooseEventOption(g.PendingEvent.Choices[0].ID, now)
			if err != nil {
				panic(err)
			}
			if after == sim.AdvanceAwaitScenario {
				if err := g.FinishEarly(now); err != nil {
					panic(err)
				}
			}
		case sim.AdvanceAwaitScenario:
			if err := g.FinishEarly(now); err != nil {
				panic(err)
			}
		}
	}
}

func TestAnalysisForFinishedGame(t *testing.T) {
	store := memory.NewStore()
	seedGame(t, store, func(g *sim.Game) { finishGame(g) })
	uc := advisor.UseCase{
		Games:    memory.NewGameRepo(store),
		Analyzer: stubAnalyzer{analysis: ports.Analysis{OverallGrade: "B", Summary: "solid run"}},
	}

	resp, err := uc.Analysis(context.Background(), advisor.AnalysisRequest{GameID: "game-1"})
	if err != nil {
		t.Fatalf("Analysis: %v", err)
	}
	if !resp.Available || resp.Analysis.OverallGrade != "B" {
		t.Fatalf("resp = %+v, want grade B", resp)
	}
}

func TestAnalysisUnavailableForRunningGame(t *testing.T) {
	store := memory.NewStore()
	seedGame(t, store, nil)
	uc := advisor.UseCase{
		Games:    memory.NewGameRepo(store),
		Analyzer: stubAnalyzer{analysis: ports.Analysis{OverallGrade: "A"}},
	}

	resp, err := uc.Analysis(context.Background(), advisor.AnalysisRequest{GameID: "game-1"})
	if err != nil {
		t.Fatalf("Analysis: %v", err)
	}
	if resp.Available {
		t.Fatal("analysis requires a finished game")
	}
}

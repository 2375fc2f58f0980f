package sim

import (
	"math/rand"
	"testing"
)

func TestDrawEvent_NeverReturnsExcludedID(t *testing.T) {
	pool := EventPool()
	rng := rand.New(rand.NewSource(7))
	excluded := []string{}
	for i := 0; i < len(pool); i++ {
		ev, ok := DrawEvent(pool, excluded, rng)
		if !ok {
			t.Fatalf("draw %d: pool exhausted too early", i)
		}
		for _, id := range excluded {
			if ev.ID == id {
				t.Fatalf("draw %d returned excluded id %q", i, id)
			}
		}
		excluded = append(excluded, ev.ID)
	}
	if _, ok := DrawEvent(pool, excluded, rng); ok {
		t.Fatal("expected exhausted pool to report no event")
	}
}

func TestDrawEvent_EmptyPool(t *testing.T) {
	if _, ok := DrawEvent(nil, nil, rand.New(rand.NewSource(1))); ok {
		t.Fatal("expected no event from empty pool")
	}
}

func TestEventPool_ChoicesAreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, ev := range EventPool() {
		if seen[ev.ID] {
			t.Fatalf("duplicate event id %q", ev.ID)
		}
		seen[ev.ID] = true
		if len(ev.Choices) < 2 {
			t.Fatalf("event %q has %d choices, want >= 2", ev.ID, len(ev.Choices))
		}
		switch ev.Type {
		case EventCrisis, EventOpportunity, EventNeutral:
		default:
			t.Fatalf("event %q has unknown type %q", ev.ID, ev.Type)
		}
	}
}

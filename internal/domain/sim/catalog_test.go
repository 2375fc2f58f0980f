package sim

import "testing"

func TestBuiltinScenarios_Shape(t *testing.T) {
	scenarios := BuiltinScenarios()
	if len(scenarios) != 5 {
		t.Fatalf("catalog size = %d, want 5", len(scenarios))
	}
	seen := map[string]bool{}
	for _, s := range scenarios {
		if seen[s.ID] {
			t.Fatalf("duplicate scenario id %q", s.ID)
		}
		seen[s.ID] = true
		if s.Source != SourceBuiltin {
			t.Fatalf("scenario %q source = %q", s.ID, s.Source)
		}
		if n := len(s.Decisions); n < 2 || n > 3 {
			t.Fatalf("scenario %q has %d decisions, want 2-3", s.ID, n)
		}
		ids := map[string]bool{}
		for _, d := range s.Decisions {
			if ids[d.ID] {
				t.Fatalf("scenario %q: duplicate decision id %q", s.ID, d.ID)
			}
			ids[d.ID] = true
			if d.Consequences.Message == "" {
				t.Fatalf("scenario %q decision %q has no outcome message", s.ID, d.ID)
			}
		}
	}
}

func TestBuiltinScenarios_CallersGetIndependentCopies(t *testing.T) {
	a := BuiltinScenarios()
	b := BuiltinScenarios()
	a[0].Decisions[0].ID = "mutated"
	if b[0].Decisions[0].ID == "mutated" {
		t.Fatal("catalog shares decision slices between calls")
	}
}

package sim

const (
	// DecisionSeconds is the per-scenario countdown. Expiry auto-selects a
	// decision; it is the only authoritative timeout in the core.
	DecisionSeconds = 60

	// InterruptChance is checked between scenarios before advancing.
	InterruptChance = 0.35

	// MaxInterrupts caps random-event draws per play-through.
	MaxInterrupts = 3

	// MaxGeneratedScenarios caps AI-generated scenarios per play-through.
	MaxGeneratedScenarios = 2
)

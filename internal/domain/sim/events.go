package sim

// EventType classifies a random interrupt event.
type EventType string

const (
	EventCrisis      EventType = "crisis"
	EventOpportunity EventType = "opportunity"
	EventNeutral     EventType = "neutral"
)

// RandomEvent interrupts the scenario flow and demands a choice before the
// game continues. Events are drawn without replacement within one
// play-through.
type RandomEvent struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        EventType     `json:"type"`
	Choices     []EventChoice `json:"choices"`
}

// EventChoice is one player-selectable outcome of a random event.
type EventChoice struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Effects ConsequenceDelta `json:"effects"`
}

func (e RandomEvent) choiceByID(id string) (EventChoice, bool) {
	for _, c := range e.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return EventChoice{}, false
}

// Dice is the randomness the simulation consumes. *math/rand.Rand satisfies
// it; tests inject fixed sequences.
type Dice interface {
	Intn(n int) int
	Float64() float64
}

// DrawEvent picks uniformly from pool, skipping excluded ids. The second
// return is false once the pool is exhausted; drawing never fails otherwise.
func DrawEvent(pool []RandomEvent, excluded []string, dice Dice) (RandomEvent, bool) {
	seen := make(map[string]bool, len(excluded))
	for _, id := range excluded {
		seen[id] = true
	}
	candidates := make([]RandomEvent, 0, len(pool))
	for _, e := range pool {
		if !seen[e.ID] {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return RandomEvent{}, false
	}
	return candidates[dice.Intn(len(candidates))], true
}

// EventPool returns the fixed interrupt pool.
func EventPool() []RandomEvent {
	return []RandomEvent{
		{
			ID:    "power-outage",
			Title: "Regional power outage",
			Type:  EventCrisis,
			Description: "A grid failure takes the main site offline. Generators cover " +
				"thirty minutes; the UPS vendor quotes an emergency intervention.",
			Choices: []EventChoice{
				{
					ID:    "pay-intervention",
					Title: "Pay for the emergency intervention",
					Effects: Delta(DBudget(-6000), DRisk(-10),
						DMessage("Technicians arrive within the hour. Services blink but hold.")),
				},
				{
					ID:    "ride-it-out",
					Title: "Ride it out on generators",
					Effects: Delta(DSatisfaction(-10), DRisk(10),
						DMessage("Two services drop for the afternoon. The incident review writes itself.")),
				},
			},
		},
		{
			ID:    "eu-grant",
			Title: "European digital-transition grant",
			Type:  EventOpportunity,
			Description: "A call for projects opens with a short deadline. The application " +
				"would consume your architect's week.",
			Choices: []EventChoice{
				{
					ID:    "apply",
					Title: "Drop everything and apply",
					Effects: Delta(DBudget(15000), DAutonomy(5),
						DMessage("The application lands twelve minutes before the deadline, and it pays off.")),
				},
				{
					ID:    "skip",
					Title: "Let this round pass",
					Effects: Delta(DSatisfaction(5),
						DMessage("The team keeps its focus on the running projects. The grant goes elsewhere.")),
				},
			},
		},
		{
			ID:    "phishing-wave",
			Title: "Targeted phishing wave",
			Type:  EventCrisis,
			Description: "Finance receives convincing invoices carrying a credential " +
				"harvester. Three people already clicked.",
			Choices: []EventChoice{
				{
					ID:    "lockdown",
					Title: "Force password resets and block mail",
					Effects: Delta(DSatisfaction(-5), DRisk(-15),
						DMessage("An uncomfortable afternoon of resets. No account was taken over.")),
				},
				{
					ID:    "warn-only",
					Title: "Send a warning and monitor",
					Effects: Delta(DRisk(15),
						DMessage("The warning is read by some. The harvested credentials are sold by others.")),
				},
			},
		},
		{
			ID:    "press-story",
			Title: "Journalist asks about your cloud contracts",
			Type:  EventNeutral,
			Description: "A local paper prepares a piece on public money and foreign " +
				"cloud providers, and wants a statement today.",
			Choices: []EventChoice{
				{
					ID:    "transparency",
					Title: "Publish the contracts and explain",
					Effects: Delta(DSatisfaction(10), DAutonomy(5),
						DMessage("The article turns out balanced. Transparency reads well.")),
				},
				{
					ID:    "no-comment",
					Title: "Decline to comment",
					Effects: Delta(DSatisfaction(-10),
						DMessage("The piece runs with 'the administration declined to answer'. It reads as expected.")),
				},
			},
		},
		{
			ID:    "intern-audit",
			Title: "An intern finds an open database",
			Type:  EventOpportunity,
			Description: "A security intern responsibly reports a misconfigured database " +
				"exposed to the internet for months.",
			Choices: []EventChoice{
				{
					ID:    "reward-fix",
					Title: "Fix it and reward the intern",
					Effects: Delta(DBudget(-1000), DRisk(-10), DSatisfaction(5),
						DMessage("Patched the same day. The intern asks for a permanent contract; HR is thinking about it.")),
				},
				{
					ID:    "quiet-fix",
					Title: "Fix it quietly",
					Effects: Delta(DRisk(-5),
						DMessage("Closed without a word. The intern's write-up appears on a blog three months later.")),
				},
			},
		},
		{
			ID:    "heat-wave",
			Title: "Heat wave hits the server room",
			Type:  EventCrisis,
			Description: "Cooling struggles at 41°C outside. You can throttle services or " +
				"rent mobile air conditioning.",
			Choices: []EventChoice{
				{
					ID:    "rent-cooling",
					Title: "Rent mobile cooling units",
					Effects: Delta(DBudget(-4000), DEcology(-10),
						DMessage("Diesel-powered chillers keep the racks alive. The carbon ledger notices.")),
				},
				{
					ID:    "throttle",
					Title: "Throttle non-essential services",
					Effects: Delta(DSatisfaction(-5), DEcology(5),
						DMessage("Batch jobs wait for the night. The building learns what 'degraded mode' means.")),
				},
			},
		},
	}
}

package sim

// BuiltinScenarios returns the fixed ordered catalog. The slice is rebuilt
// on every call so a game can append generated scenarios without mutating
// shared state.
func BuiltinScenarios() []Scenario {
	return []Scenario{
		{
			ID:     "server-room",
			Title:  "The server room is on its last legs",
			Source: SourceBuiltin,
			Context: "The on-premise server room hosting every core application is fifteen years " +
				"old. Cooling failures are now monthly and the maintenance contract expires in " +
				"six weeks. Your team wants a decision before the summer heat wave.",
			Decisions: []Decision{
				{
					ID:          "sovereign-cloud",
					Title:       "Migrate to a certified sovereign cloud",
					Description: "Move the core applications to a qualified national cloud provider.",
					Consequences: Delta(
						DBudget(-25000), DSatisfaction(10), DAutonomy(-10), DEcology(10), DRisk(-15),
						DMessage("Migration completed with two weekends of downtime. Hosting is now resilient, but you depend on the provider's roadmap."),
					),
				},
				{
					ID:          "renew-hardware",
					Title:       "Renew the hardware on premise",
					Description: "Buy new servers and keep everything in-house.",
					Consequences: Delta(
						DBudget(-40000), DAutonomy(15), DEcology(-10), DRisk(-5),
						DMessage("New machines hum in the basement. Full control retained, at a steep price and with all the old single-site risks."),
					),
				},
				{
					ID:          "shared-datacenter",
					Title:       "Join the regional shared datacenter",
					Description: "Pool infrastructure with neighbouring institutions.",
					Consequences: Delta(
						DBudget(-12000), DSatisfaction(5), DAutonomy(5), DEcology(15), DRisk(-10),
						DMessage("Mutualised racks cut costs and carbon. Governance meetings are now part of your calendar."),
					),
				},
			},
		},
		{
			ID:     "office-suite",
			Title:  "Office suite licences are up for renewal",
			Source: SourceBuiltin,
			Context: "The proprietary office suite contract triples in price at renewal. " +
				"An internal working group has benchmarked an open-source alternative and " +
				"staff representatives are asking where their tools are heading.",
			Decisions: []Decision{
				{
					ID:          "open-source-migration",
					Title:       "Migrate to the open-source suite",
					Description: "Fund training and a phased migration to open formats.",
					Consequences: Delta(
						DBudget(-18000), DSatisfaction(5), DAutonomy(25), DEcology(15),
						DMessage("The migration plan is rolling. Training costs bite now, but licence fees vanish and documents finally belong to you."),
					),
				},
				{
					ID:          "renew-licences",
					Title:       "Renew the proprietary licences",
					Description: "Accept the new pricing to avoid any disruption.",
					Consequences: Delta(
						DBudget(-30000), DSatisfaction(5), DAutonomy(-15), DRisk(-5),
						DMessage("Nothing changes on the desktops. The invoice did, and so did your negotiating position for next time."),
					),
				},
			},
		},
		{
			ID:     "network-coverage",
			Title:  "Dead zones in the public network",
			Source: SourceBuiltin,
			Context: "Two districts still have no usable connectivity for public services. " +
				"An operator offers a quick commercial deal; the alternative is a slower " +
				"publicly-run fibre extension.",
			Decisions: []Decision{
				{
					ID:          "public-fibre",
					Title:       "Extend the public fibre network",
					Description: "Commission the public operator, 18-month horizon.",
					Consequences: Delta(
						DBudget(-35000), DSatisfaction(15), DAutonomy(20), DEcology(-5),
						DMessage("Trenches first, gratitude later. The network will be yours to govern for decades."),
					),
				},
				{
					ID:          "commercial-deal",
					Title:       "Sign the operator's turnkey offer",
					Description: "Fast coverage through a private 10-year concession.",
					Consequences: Delta(
						DBudget(-8000), DSatisfaction(10), DAutonomy(-20), DRisk(5),
						DMessage("Coverage lights up within months. The concession terms will outlive your mandate."),
					),
				},
				{
					ID:          "wireless-stopgap",
					Title:       "Deploy a wireless stopgap",
					Description: "Radio links now, defer the structural choice.",
					Consequences: Delta(
						DBudget(-5000), DSatisfaction(5), DRisk(10),
						DMessage("The dead zones flicker to life. Everyone knows it is temporary, including the weather."),
					),
				},
			},
		},
		{
			ID:     "ransomware-audit",
			Title:  "The audit report nobody wanted",
			Source: SourceBuiltin,
			Context: "A security audit rates your exposure to ransomware as critical: flat " +
				"network, aging backups, no incident plan. A neighbouring institution was " +
				"paralysed for three weeks last winter.",
			Decisions: []Decision{
				{
					ID:          "full-hardening",
					Title:       "Fund the full hardening plan",
					Description: "Segmentation, offline backups, incident response training.",
					Consequences: Delta(
						DBudget(-22000), DSatisfaction(-5), DAutonomy(10), DRisk(-30),
						DMessage("Months of change windows and grumbling, then quiet confidence. The next phishing wave bounces off."),
					),
				},
				{
					ID:          "cyber-insurance",
					Title:       "Buy cyber insurance instead",
					Description: "Transfer the financial risk, defer the technical work.",
					Consequences: Delta(
						DBudget(-9000), DRisk(-5),
						DMessage("The premium is paid. The auditors note that insurance does not restore encrypted files."),
					),
				},
				{
					ID:          "minimal-patching",
					Title:       "Patch the worst findings only",
					Description: "Close the critical holes with existing staff.",
					Consequences: Delta(
						DBudget(-3000), DAutonomy(5), DRisk(-10),
						DMessage("The team fixes what it can between tickets. Better, not good."),
					),
				},
			},
		},
		{
			ID:     "green-it",
			Title:  "Equipment renewal under a carbon lens",
			Source: SourceBuiltin,
			Context: "Four hundred workstations reach end of warranty this year. The default " +
				"is a full replacement; the sustainability office proposes refurbishment and " +
				"lifetime extension instead.",
			Decisions: []Decision{
				{
					ID:          "refurbish-extend",
					Title:       "Refurbish and extend lifetimes",
					Description: "Upgrade what can be upgraded, buy refurbished for the rest.",
					Consequences: Delta(
						DBudget(-10000), DSatisfaction(-5), DAutonomy(5), DEcology(25),
						DMessage("Older machines, lighter footprint. A few power users lobby loudly for exceptions."),
					),
				},
				{
					ID:          "full-replacement",
					Title:       "Replace the whole fleet",
					Description: "New hardware for everyone, old units resold.",
					Consequences: Delta(
						DBudget(-28000), DSatisfaction(15), DEcology(-15), DRisk(-5),
						DMessage("Boot times drop, morale rises, and the carbon report gains an uncomfortable chapter."),
					),
				},
			},
		},
	}
}

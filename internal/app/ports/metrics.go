package ports

// GameMetrics is the KPI sink for the play path.
type GameMetrics interface {
	RecordDecision(auto bool)
	RecordGameFinished(totalScore int)
	RecordGenerationFailure()
	RecordConflict()
}

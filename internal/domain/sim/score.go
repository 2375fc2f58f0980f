package sim

import "math"

// ScoreVector is the five-dimensional numeric state tracked through a
// play-through. Budget is an absolute amount, the other dimensions are
// percentages kept in [0,100].
type ScoreVector struct {
	Budget       float64 `json:"budget"`
	Satisfaction float64 `json:"satisfaction"`
	Autonomy     float64 `json:"autonomy"`
	Ecology      float64 `json:"ecology"`
	Risk         float64 `json:"risk"`
}

// ConsequenceDelta is a partial ScoreVector of signed changes plus the
// outcome message shown to the player. Nil fields are untouched dimensions.
type ConsequenceDelta struct {
	Budget       *float64 `json:"budget,omitempty"`
	Satisfaction *float64 `json:"satisfaction,omitempty"`
	Autonomy     *float64 `json:"autonomy,omitempty"`
	Ecology      *float64 `json:"ecology,omitempty"`
	Risk         *float64 `json:"risk,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// Delta is a construction helper for catalog data. Zero fields are treated
// as present deltas of zero only when explicitly set through the pointer
// helpers, so catalog entries list just the dimensions they touch.
func Delta(fields ...func(*ConsequenceDelta)) ConsequenceDelta {
	var d ConsequenceDelta
	for _, f := range fields {
		f(&d)
	}
	return d
}

func DBudget(v float64) func(*ConsequenceDelta) { return func(d *ConsequenceDelta) { d.Budget = &v } }
func DSatisfaction(v float64) func(*ConsequenceDelta) {
	return func(d *ConsequenceDelta) { d.Satisfaction = &v }
}
func DAutonomy(v float64) func(*ConsequenceDelta) {
	return func(d *ConsequenceDelta) { d.Autonomy = &v }
}
func DEcology(v float64) func(*ConsequenceDelta) { return func(d *ConsequenceDelta) { d.Ecology = &v } }
func DRisk(v float64) func(*ConsequenceDelta)    { return func(d *ConsequenceDelta) { d.Risk = &v } }
func DMessage(msg string) func(*ConsequenceDelta) {
	return func(d *ConsequenceDelta) { d.Message = msg }
}

// DefaultScores is the fixed starting vector for every game.
func DefaultScores() ScoreVector {
	return ScoreVector{
		Budget:       100000,
		Satisfaction: 50,
		Autonomy:     20,
		Ecology:      30,
		Risk:         50,
	}
}

// Apply adds each present field of delta to the vector, then clamps the
// percent dimensions to [0,100] and budget to a floor of zero. The receiver
// is returned mutated; callers never roll a vector back.
func (v *ScoreVector) Apply(delta ConsequenceDelta) {
	if delta.Budget != nil {
		v.Budget += *delta.Budget
	}
	if delta.Satisfaction != nil {
		v.Satisfaction += *delta.Satisfaction
	}
	if delta.Autonomy != nil {
		v.Autonomy += *delta.Autonomy
	}
	if delta.Ecology != nil {
		v.Ecology += *delta.Ecology
	}
	if delta.Risk != nil {
		v.Risk += *delta.Risk
	}
	v.clamp()
}

func (v *ScoreVector) clamp() {
	if v.Budget < 0 {
		v.Budget = 0
	}
	v.Satisfaction = clampPercent(v.Satisfaction)
	v.Autonomy = clampPercent(v.Autonomy)
	v.Ecology = clampPercent(v.Ecology)
	v.Risk = clampPercent(v.Risk)
}

func clampPercent(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 100 {
		return 100
	}
	return x
}

// Aggregate folds the vector into the single total used on leaderboards:
// the mean of the three positive percent dimensions plus a diminishing
// budget bonus. The formula is frozen for compatibility with stored scores.
func (v ScoreVector) Aggregate() int {
	return int(math.Round((v.Satisfaction+v.Autonomy+v.Ecology)/3 + v.Budget/2000))
}

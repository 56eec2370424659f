package football

import (
	"math"
	rand "math/rand/v2"
)

// Edge is the rating matchup for one offense against one defense.
type Edge struct {
	// Multiplier scales positive yardage.
	Multiplier float64
	// Execution is the rating differential over 100; it shifts the
	// discrete event rates.
	Execution float64
}

// Outcome is what the outcome model resolved for one snap.
type Outcome struct {
	Result      PlayResult
	Yards       int
	OutOfBounds bool
	// TurnoverSpot is where the ball was lost, on the offense's scale.
	// Only set for interceptions; it may lie in the end zone (>= 100).
	TurnoverSpot int
}

// OutcomeModel turns a rating matchup into yardage and discrete results.
type OutcomeModel struct {
	tuning Tuning
}

// NewOutcomeModel returns an outcome model for tuning t.
func NewOutcomeModel(t Tuning) OutcomeModel {
	return OutcomeModel{tuning: t}
}

// Edge computes the matchup for offense against the opposing defense,
// applying home field on non-neutral games.
func (m OutcomeModel) Edge(teams [2]Team, offense Side, neutral bool) Edge {
	off := teams[offense].Offense
	def := teams[offense.Other()].Defense
	if !neutral {
		if offense == Home {
			off += m.tuning.HomeFieldBonus
		} else {
			def += m.tuning.HomeFieldBonus
		}
	}
	diff := float64(off - def)
	return Edge{
		Multiplier: clamp(1+diff*m.tuning.RatingScale, m.tuning.MultiplierMin, m.tuning.MultiplierMax),
		Execution:  diff / 100,
	}
}

// Run resolves a designed run from position.
func (m OutcomeModel) Run(rng *rand.Rand, e Edge, position int, tempo Tempo) Outcome {
	yards := m.yardage(rng, m.tuning.RunMean, m.tuning.RunStdDev, e.Multiplier)
	fumbled := rng.Float64() < m.rate(m.tuning.FumbleRate, -m.tuning.FumbleSwing, e.Execution)
	oob := m.outOfBounds(rng, tempo)

	if fumbled {
		// The ball comes loose at the end of the run, short of either goal line.
		spot := min(max(position+yards, 1), 99)
		return Outcome{Result: ResultFumble, Yards: spot - position}
	}
	return m.settle(Outcome{Result: ResultGain, Yards: yards, OutOfBounds: oob}, position)
}

// Pass resolves a called pass: sack first, then completion, then an
// interception check on the incompletions.
func (m OutcomeModel) Pass(rng *rand.Rand, e Edge, position int, tempo Tempo) Outcome {
	if rng.Float64() < m.rate(m.tuning.SackRate, -m.tuning.SackSwing, e.Execution) {
		loss := 3 + rng.IntN(7)
		return m.settle(Outcome{Result: ResultSack, Yards: -loss}, position)
	}

	if rng.Float64() >= m.rate(m.tuning.CompletionRate, m.tuning.CompletionSwing, e.Execution) {
		if rng.Float64() < m.rate(m.tuning.InterceptionRate, -m.tuning.InterceptionSwing, e.Execution) {
			air := 5 + rng.IntN(21)
			return Outcome{Result: ResultInterception, TurnoverSpot: position + air}
		}
		return Outcome{Result: ResultIncomplete}
	}

	yards := m.yardage(rng, m.tuning.PassMean, m.tuning.PassStdDev, e.Multiplier)
	oob := m.outOfBounds(rng, tempo)
	return m.settle(Outcome{Result: ResultComplete, Yards: yards, OutOfBounds: oob}, position)
}

// FieldGoalDistance is the kick length from position, including the
// snap and hold.
func (m OutcomeModel) FieldGoalDistance(position int) int {
	return 100 - position + m.tuning.FieldGoalAllowance
}

// FieldGoalChance is the probability a kick from position is good. It
// decays linearly inside three distance bands, each steeper than the last.
func (m OutcomeModel) FieldGoalChance(position int) float64 {
	d := float64(m.FieldGoalDistance(position))
	var p float64
	switch {
	case d <= 39:
		p = 0.99 - 0.006*max(d-17, 0)
	case d <= 49:
		p = 0.858 - 0.015*(d-39)
	default:
		p = 0.708 - 0.035*(d-49)
	}
	return clamp(p, 0, 1)
}

// FieldGoal attempts a kick from position.
func (m OutcomeModel) FieldGoal(rng *rand.Rand, position int) Outcome {
	if rng.Float64() < m.FieldGoalChance(position) {
		return Outcome{Result: ResultFieldGoalGood}
	}
	return Outcome{Result: ResultFieldGoalMissed}
}

// PuntReturnPosition is where the receiving team takes over after a punt
// from position.
func (m OutcomeModel) PuntReturnPosition(position int) int {
	landing := position + m.tuning.PuntNet
	if landing >= 100 {
		return m.tuning.Touchback
	}
	return 100 - landing
}

// InterceptionReturnPosition is where the defense takes over after picking
// the ball off at spot.
func (m OutcomeModel) InterceptionReturnPosition(spot int) int {
	if spot >= 100 {
		return m.tuning.Touchback
	}
	return 100 - spot
}

// Kickoff samples the receiving team's starting position.
func (m OutcomeModel) Kickoff(rng *rand.Rand) int {
	if rng.Float64() < m.tuning.KickoffTouchbackRate {
		return m.tuning.KickoffTouchback
	}
	return m.tuning.KickoffReturnMin + rng.IntN(m.tuning.KickoffReturnMax-m.tuning.KickoffReturnMin+1)
}

// yardage draws a base gain, keeps losses as drawn and amplifies gains so
// the distribution has a long positive tail.
func (m OutcomeModel) yardage(rng *rand.Rand, mean, stddev, multiplier float64) int {
	base := rng.NormFloat64()*stddev + mean
	if base < 0 {
		return int(math.Round(base))
	}
	amplified := base + base*base/m.tuning.Amplify
	return min(int(math.Round(amplified*multiplier)), m.tuning.MaxPlayGain)
}

// settle clamps yardage at the goal lines: a gain that reaches the end zone
// is a touchdown, a loss into the offense's own end zone is a safety.
func (m OutcomeModel) settle(o Outcome, position int) Outcome {
	spot := position + o.Yards
	switch {
	case spot >= 100:
		o.Yards = 100 - position
		o.Result = ResultTouchdown
		o.OutOfBounds = false
	case spot <= 0:
		o.Yards = -position
		o.Result = ResultSafety
		o.OutOfBounds = false
	}
	return o
}

// rate shifts base by swing*execution and keeps it inside the band around
// base, so no event becomes certain or impossible.
func (m OutcomeModel) rate(base, swing, execution float64) float64 {
	lo := base * (1 - m.tuning.RateBand)
	hi := min(base*(1+m.tuning.RateBand), m.tuning.RateCeiling)
	return clamp(base+swing*execution, lo, hi)
}

func (m OutcomeModel) outOfBounds(rng *rand.Rand, tempo Tempo) bool {
	p := m.tuning.OutOfBoundsRate
	switch tempo {
	case TempoFast:
		p *= 2.5
	case TempoChew:
		p = 0
	}
	return rng.Float64() < p
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

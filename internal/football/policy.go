package football

import (
	"math"
	rand "math/rand/v2"
)

// Situation is everything the play caller looks at before a snap.
type Situation struct {
	Down        int
	ToGo        int
	Position    int
	Quarter     int
	SecondsLeft int
	Untimed     bool
	// Diff is the offense's score minus the defense's.
	Diff int
	// LastChance is set on the second possession of an overtime pair, when
	// the offense cannot get the ball back in this period.
	LastChance bool
}

// Situation builds the play caller's view of the snap cur is waiting on.
func (g *Game) Situation(cur DriveCursor) Situation {
	off := cur.Drive.Offense
	return Situation{
		Down:        cur.Down,
		ToGo:        cur.ToGo,
		Position:    cur.Position,
		Quarter:     g.Quarter,
		SecondsLeft: g.SecondsLeft,
		Untimed:     g.Untimed,
		Diff:        g.Score[off] - g.Score[off.Other()],
		LastChance:  g.Untimed && g.OvertimePossessions%2 == 1,
	}
}

// Policy is the automatic play caller. It never mutates game state and
// only the run/pass coin flip consumes randomness.
type Policy struct {
	tuning  Tuning
	outcome OutcomeModel
}

// NewPolicy returns a play caller for tuning t that consults m for kick
// ranges.
func NewPolicy(t Tuning, m OutcomeModel) Policy {
	return Policy{tuning: t, outcome: m}
}

// Call picks the play for s.
func (p Policy) Call(rng *rand.Rand, s Situation) Call {
	if s.Down >= 4 {
		if c := p.FourthDown(s); c != CallAuto {
			return c
		}
	} else if p.lastSecondsKick(s) {
		return CallFieldGoal
	}
	if rng.Float64() < p.PassWeight(s) {
		return CallPass
	}
	return CallRun
}

// FourthDown looks the situation up in the fourth down table and applies
// the catch-up overrides. CallAuto means go for it.
func (p Policy) FourthDown(s Situation) Call {
	t := p.tuning
	kickable := p.outcome.FieldGoalChance(s.Position) >= t.MinFieldGoalChance

	var c Call
	switch {
	case s.Position < t.OwnTerritoryLine:
		c = CallPunt
	case s.Position < t.ScoringTerritoryLine:
		c = CallPunt
		if s.ToGo <= t.MidfieldGoDistance {
			c = CallAuto
		}
	default:
		goDistance := t.ShortGoDistance
		if s.Position >= t.GoalToGoLine {
			goDistance = t.GoalToGoGoDistance
		}
		switch {
		case s.ToGo <= goDistance:
			c = CallAuto
		case kickable:
			c = CallFieldGoal
		case s.Position >= t.DesperationLine && s.ToGo <= t.DesperationGoDistance:
			c = CallAuto
		default:
			c = CallPunt
		}
	}

	needed := p.PointsNeeded(s)
	switch {
	case needed > 3:
		return CallAuto
	case needed > 0 && p.late(s) && kickable:
		return CallFieldGoal
	case needed > 0 && s.LastChance:
		return CallAuto
	}
	return c
}

// Tempo derives the pace from the score and the clock.
func (p Policy) Tempo(s Situation) Tempo {
	switch {
	case s.Untimed:
		return TempoNormal
	case s.Quarter >= 4 && s.SecondsLeft <= p.tuning.LateGameWindow && s.Diff < 0:
		return TempoFast
	case s.Quarter >= 4 && s.SecondsLeft <= p.tuning.LateGameWindow && s.Diff > 0:
		return TempoChew
	case s.Quarter == 2 && s.SecondsLeft <= p.tuning.LateHalfWindow:
		return TempoFast
	}
	return TempoNormal
}

// PassWeight is the probability of calling a pass on a non-kicking down.
func (p Policy) PassWeight(s Situation) float64 {
	t := p.tuning
	w := t.PassWeightBase
	switch {
	case s.Down >= 3 && s.ToGo >= t.LongYardage:
		w += t.LongBonus
	case s.Down == 3 && s.ToGo >= t.MediumYardage:
		w += t.MediumBonus
	case s.Down <= 2 && s.ToGo <= t.ShortYardage:
		w -= t.ShortPenalty
	}
	if p.late(s) {
		switch {
		case s.Diff < 0:
			w += t.TrailingLateBonus
		case s.Diff > 0:
			w -= t.LeadingLatePenalty
		}
	}
	return clamp(w, t.PassWeightMin, t.PassWeightMax)
}

// PointsNeeded is how many points the offense has to score on this
// possession to stay on pace to catch up. It is zero unless trailing.
func (p Policy) PointsNeeded(s Situation) int {
	deficit := -s.Diff
	if deficit <= 0 {
		return 0
	}
	if s.Untimed {
		if s.LastChance {
			return deficit
		}
		return 0
	}
	possessions := math.Ceil(float64(p.secondsRemaining(s)) / float64(p.tuning.AvgPossessionSeconds) / 2)
	return int(math.Ceil(float64(deficit) / math.Max(1, possessions)))
}

func (p Policy) secondsRemaining(s Situation) int {
	return max(4-s.Quarter, 0)*p.tuning.QuarterSeconds + s.SecondsLeft
}

func (p Policy) late(s Situation) bool {
	return s.LastChance || (!s.Untimed && s.Quarter >= 4 && s.SecondsLeft <= p.tuning.LateGameWindow)
}

// lastSecondsKick sends the kicker out when the half is about to expire
// and three points are worth having.
func (p Policy) lastSecondsKick(s Situation) bool {
	if s.Untimed || s.SecondsLeft > p.tuning.LastSecondsKick {
		return false
	}
	if s.Quarter != 2 && s.Quarter < 4 {
		return false
	}
	if p.outcome.FieldGoalChance(s.Position) < p.tuning.MinFieldGoalChance {
		return false
	}
	return s.Quarter == 2 || p.PointsNeeded(s) <= 3
}

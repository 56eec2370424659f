package football

import rand "math/rand/v2"

// ClockState is the game clock before a snap.
type ClockState struct {
	Quarter     int
	SecondsLeft int
	// Stopped is true when the previous play stopped the clock, so no
	// time runs off before this snap.
	Stopped bool
}

// ClockInput describes the play whose duration is being charged.
type ClockInput struct {
	Type        PlayType
	Result      PlayResult
	FirstDown   bool
	OutOfBounds bool
	// Change is true when the play ended the possession.
	Change bool
	Tempo  Tempo
}

// ClockTick is the clock after a play.
type ClockTick struct {
	Elapsed     int
	Quarter     int
	SecondsLeft int
	Stopped     bool
	HalfOver    bool
	GameOver    bool
}

type secondsRange struct{ min, max int }

func (r secondsRange) sample(rng *rand.Rand) int {
	return r.min + rng.IntN(r.max-r.min+1)
}

// Snap-to-whistle durations.
var actionTimes = map[PlayResult]secondsRange{
	ResultGain:            {4, 7},
	ResultComplete:        {5, 8},
	ResultIncomplete:      {4, 6},
	ResultSack:            {5, 7},
	ResultInterception:    {6, 12},
	ResultFumble:          {5, 10},
	ResultTouchdown:       {5, 10},
	ResultSafety:          {5, 8},
	ResultPunt:            {8, 12},
	ResultFieldGoalGood:   {5, 7},
	ResultFieldGoalMissed: {5, 7},
}

// Time that runs between plays while the clock is live.
var runoffTimes = map[Tempo]secondsRange{
	TempoNormal: {22, 32},
	TempoFast:   {6, 12},
	TempoChew:   {34, 40},
}

// ClockModel advances the game clock. It holds no state of its own.
type ClockModel struct {
	tuning Tuning
}

// NewClockModel returns a clock model for tuning t.
func NewClockModel(t Tuning) ClockModel {
	return ClockModel{tuning: t}
}

// Advance charges a play against the clock, rolling quarters as they
// expire. Time left over in an expired quarter is discarded.
func (c ClockModel) Advance(rng *rand.Rand, st ClockState, in ClockInput) ClockTick {
	elapsed := actionTimes[in.Result].sample(rng)
	if !st.Stopped {
		elapsed += runoffTimes[tempoOrNormal(in.Tempo)].sample(rng)
	}

	tick := ClockTick{
		Elapsed:     elapsed,
		Quarter:     st.Quarter,
		SecondsLeft: st.SecondsLeft - elapsed,
	}

	if tick.SecondsLeft <= 0 {
		tick.Elapsed = max(st.SecondsLeft, 0)
		tick.Stopped = true
		switch {
		case st.Quarter >= 4:
			tick.GameOver = true
			tick.Quarter = 4
			tick.SecondsLeft = 0
		case st.Quarter == 2:
			tick.HalfOver = true
			tick.Quarter = 3
			tick.SecondsLeft = c.tuning.QuarterSeconds
		default:
			tick.Quarter++
			tick.SecondsLeft = c.tuning.QuarterSeconds
		}
		return tick
	}

	tick.Stopped = c.stops(in, tick.Quarter, tick.SecondsLeft)
	return tick
}

// stops applies the sideline rules: dead balls that always stop the clock,
// and first downs or out-of-bounds gains that only stop it late in a half.
func (c ClockModel) stops(in ClockInput, quarter, secondsLeft int) bool {
	if in.Change {
		return true
	}
	switch in.Result {
	case ResultIncomplete, ResultInterception, ResultFumble, ResultTouchdown,
		ResultSafety, ResultPunt, ResultFieldGoalGood, ResultFieldGoalMissed:
		return true
	}
	if in.Type == PlayPunt || in.Type == PlayFieldGoal {
		return true
	}
	if c.lateWindow(quarter, secondsLeft) {
		return in.FirstDown || in.OutOfBounds
	}
	return false
}

func (c ClockModel) lateWindow(quarter, secondsLeft int) bool {
	switch {
	case quarter == 2:
		return secondsLeft <= c.tuning.LateHalfWindow
	case quarter >= 4:
		return secondsLeft <= c.tuning.LateGameWindow
	}
	return false
}

func tempoOrNormal(t Tempo) Tempo {
	if _, ok := runoffTimes[t]; ok {
		return t
	}
	return TempoNormal
}

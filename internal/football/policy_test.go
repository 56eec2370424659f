package football

import (
	"testing"

	"github.com/lox/gridiron/internal/randutil"
	"github.com/stretchr/testify/assert"
)

func testPolicy() Policy {
	t := DefaultTuning()
	return NewPolicy(t, NewOutcomeModel(t))
}

func TestFourthDown(t *testing.T) {
	t.Parallel()
	p := testPolicy()

	tests := []struct {
		name string
		s    Situation
		want Call
	}{
		{"deep in own territory", Situation{Down: 4, ToGo: 8, Position: 5, Quarter: 1, SecondsLeft: 600}, CallPunt},
		{"own territory and short", Situation{Down: 4, ToGo: 1, Position: 35, Quarter: 1, SecondsLeft: 600}, CallPunt},
		{"midfield and inches", Situation{Down: 4, ToGo: 1, Position: 50, Quarter: 2, SecondsLeft: 600}, CallAuto},
		{"midfield and three", Situation{Down: 4, ToGo: 3, Position: 50, Quarter: 2, SecondsLeft: 600}, CallPunt},
		{"opponent territory and two", Situation{Down: 4, ToGo: 2, Position: 70, Quarter: 3, SecondsLeft: 600}, CallAuto},
		{"opponent territory and long", Situation{Down: 4, ToGo: 6, Position: 70, Quarter: 3, SecondsLeft: 600}, CallFieldGoal},
		{"goal to go from the 8", Situation{Down: 4, ToGo: 3, Position: 92, Quarter: 1, SecondsLeft: 600}, CallAuto},
		{"goal to go and four", Situation{Down: 4, ToGo: 4, Position: 92, Quarter: 1, SecondsLeft: 600}, CallFieldGoal},
		{"down ten late must go", Situation{Down: 4, ToGo: 6, Position: 70, Quarter: 4, SecondsLeft: 60, Diff: -10}, CallAuto},
		{"down ten late will not punt", Situation{Down: 4, ToGo: 8, Position: 5, Quarter: 4, SecondsLeft: 60, Diff: -10}, CallAuto},
		{"down two late kicks", Situation{Down: 4, ToGo: 1, Position: 70, Quarter: 4, SecondsLeft: 60, Diff: -2}, CallFieldGoal},
		{"leading late punts", Situation{Down: 4, ToGo: 8, Position: 5, Quarter: 4, SecondsLeft: 60, Diff: 10}, CallPunt},
		{"overtime answer needs a touchdown", Situation{Down: 4, ToGo: 6, Position: 80, Quarter: 4, Untimed: true, LastChance: true, Diff: -7}, CallAuto},
		{"overtime answer kicks to tie", Situation{Down: 4, ToGo: 6, Position: 80, Quarter: 4, Untimed: true, LastChance: true, Diff: -3}, CallFieldGoal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.FourthDown(tt.s))
		})
	}
}

func TestCallFourthAndLongAtOwnFive(t *testing.T) {
	t.Parallel()
	p := testPolicy()
	s := Situation{Down: 4, ToGo: 8, Position: 5, Quarter: 2, SecondsLeft: 400}

	for seed := range int64(200) {
		assert.Equal(t, CallPunt, p.Call(randutil.New(seed), s))
	}
}

func TestCallLastSecondsKick(t *testing.T) {
	t.Parallel()
	p := testPolicy()
	rng := randutil.New(1)

	assert.Equal(t, CallFieldGoal, p.Call(rng, Situation{Down: 1, ToGo: 10, Position: 75, Quarter: 2, SecondsLeft: 5}))
	assert.Equal(t, CallFieldGoal, p.Call(rng, Situation{Down: 2, ToGo: 7, Position: 80, Quarter: 4, SecondsLeft: 4, Diff: -2}))

	for range 50 {
		c := p.Call(rng, Situation{Down: 1, ToGo: 10, Position: 75, Quarter: 4, SecondsLeft: 5, Diff: -7})
		assert.Contains(t, []Call{CallRun, CallPass}, c, "a field goal does not help down seven")
		c = p.Call(rng, Situation{Down: 1, ToGo: 10, Position: 30, Quarter: 2, SecondsLeft: 5})
		assert.Contains(t, []Call{CallRun, CallPass}, c, "out of range")
	}
}

func TestPassWeight(t *testing.T) {
	t.Parallel()
	p := testPolicy()

	tests := []struct {
		name string
		s    Situation
		want float64
	}{
		{"first and ten", Situation{Down: 1, ToGo: 10, Quarter: 1, SecondsLeft: 900}, 0.55},
		{"third and long", Situation{Down: 3, ToGo: 10, Quarter: 1, SecondsLeft: 900}, 0.80},
		{"third and medium", Situation{Down: 3, ToGo: 5, Quarter: 1, SecondsLeft: 900}, 0.65},
		{"first and one", Situation{Down: 1, ToGo: 1, Quarter: 1, SecondsLeft: 900}, 0.35},
		{"trailing late on third and long", Situation{Down: 3, ToGo: 10, Quarter: 4, SecondsLeft: 100, Diff: -3}, 0.90},
		{"leading late on second and two", Situation{Down: 2, ToGo: 2, Quarter: 4, SecondsLeft: 100, Diff: 3}, 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, p.PassWeight(tt.s), 1e-9)
		})
	}
}

func TestTempo(t *testing.T) {
	t.Parallel()
	p := testPolicy()

	assert.Equal(t, TempoNormal, p.Tempo(Situation{Quarter: 1, SecondsLeft: 60}))
	assert.Equal(t, TempoFast, p.Tempo(Situation{Quarter: 2, SecondsLeft: 90, Diff: 7}), "two-minute drill")
	assert.Equal(t, TempoFast, p.Tempo(Situation{Quarter: 4, SecondsLeft: 200, Diff: -4}))
	assert.Equal(t, TempoChew, p.Tempo(Situation{Quarter: 4, SecondsLeft: 200, Diff: 4}))
	assert.Equal(t, TempoNormal, p.Tempo(Situation{Quarter: 4, SecondsLeft: 200}))
	assert.Equal(t, TempoNormal, p.Tempo(Situation{Quarter: 4, Untimed: true, Diff: -3}))
}

func TestPointsNeeded(t *testing.T) {
	t.Parallel()
	p := testPolicy()

	assert.Equal(t, 0, p.PointsNeeded(Situation{Quarter: 4, SecondsLeft: 30, Diff: 3}))
	assert.Equal(t, 0, p.PointsNeeded(Situation{Quarter: 4, SecondsLeft: 30}))
	assert.Equal(t, 2, p.PointsNeeded(Situation{Quarter: 1, SecondsLeft: 900, Diff: -14}))
	assert.Equal(t, 14, p.PointsNeeded(Situation{Quarter: 4, SecondsLeft: 100, Diff: -14}))
	assert.Equal(t, 7, p.PointsNeeded(Situation{Quarter: 4, SecondsLeft: 600, Diff: -14}))
	assert.Equal(t, 7, p.PointsNeeded(Situation{Untimed: true, LastChance: true, Diff: -7}))
	assert.Equal(t, 0, p.PointsNeeded(Situation{Untimed: true, Diff: -7}))
}

package football

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuningValidate(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())

	tests := []struct {
		name   string
		mutate func(*Tuning)
		want   string
	}{
		{"zero quarter", func(t *Tuning) { t.QuarterSeconds = 0 }, "quarter_seconds"},
		{"negative punt", func(t *Tuning) { t.PuntNet = -50 }, "punt_net"},
		{"zero punt", func(t *Tuning) { t.PuntNet = 0 }, "punt_net"},
		{"negative allowance", func(t *Tuning) { t.FieldGoalAllowance = -1 }, "field_goal_allowance"},
		{"sack rate above one", func(t *Tuning) { t.SackRate = 1.5 }, "sack_rate"},
		{"negative completion rate", func(t *Tuning) { t.CompletionRate = -0.1 }, "completion_rate"},
		{"fumble rate", func(t *Tuning) { t.FumbleRate = 2 }, "fumble_rate"},
		{"touchback rate", func(t *Tuning) { t.KickoffTouchbackRate = 1.2 }, "kickoff_touchback_rate"},
		{"pass weight base", func(t *Tuning) { t.PassWeightBase = -0.5 }, "pass_weight_base"},
		{"fourth down lines descend", func(t *Tuning) { t.OwnTerritoryLine = 70 }, "must ascend"},
		{"desperation line", func(t *Tuning) { t.DesperationLine = 100 }, "fourth down lines"},
		{"negative window", func(t *Tuning) { t.LateGameWindow = -1 }, "clock windows"},
		{"max play gain", func(t *Tuning) { t.MaxPlayGain = 0 }, "max_play_gain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.mutate(&tuning)
			assert.ErrorContains(t, tuning.Validate(), tt.want)
		})
	}
}

func TestPositivePuntNetKeepsSpotsOnTheField(t *testing.T) {
	tuning := DefaultTuning()
	tuning.PuntNet = 1
	require.NoError(t, tuning.Validate())
	m := NewOutcomeModel(tuning)
	for pos := 1; pos < 100; pos++ {
		next := m.PuntReturnPosition(pos)
		assert.True(t, next > 0 && next < 100, "punt from %d spotted at %d", pos, next)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/gridiron/internal/football"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLeague = `
name = "Test League"
seed = 42

team "hbr" {
  name    = "Harbor Pilots"
  offense = 82
  defense = 74

  player "Ray Okafor" {
    position = "qb"
    rating   = 84
  }
  player "Dante Mills" {
    position = "RB"
  }
  player "Cole Brandt" {
    id       = "cb-1"
    position = "WR"
    rating   = 79
  }
}

team "rdg" {
  offense = 77
  defense = 80
}

game "week1-1" {
  home = "hbr"
  away = "rdg"
}

game "bowl" {
  home    = "rdg"
  away    = "hbr"
  neutral = true
}

tuning {
  home_field_bonus = 5
  run_mean         = 3.5
}
`

func TestParseLeague(t *testing.T) {
	l, err := ParseLeague([]byte(sampleLeague), "test.hcl")
	require.NoError(t, err)
	require.NoError(t, l.Validate())

	assert.Equal(t, "Test League", l.Name)
	assert.Equal(t, int64(42), l.Seed)
	require.Len(t, l.Teams, 2)
	require.Len(t, l.Games, 2)

	hbr := l.Team("hbr")
	require.NotNil(t, hbr)
	require.Len(t, hbr.Players, 3)
	assert.Equal(t, "QB", hbr.Players[0].Position, "positions are upper-cased")
	assert.Equal(t, "hbr-ray-okafor", hbr.Players[0].ID)
	assert.Equal(t, DefaultRating, hbr.Players[1].Rating)
	assert.Equal(t, "cb-1", hbr.Players[2].ID)

	assert.Equal(t, "RDG", l.Team("rdg").Name, "missing names default to the id")
	assert.Nil(t, l.Team("nope"))
}

func TestTuningOverrides(t *testing.T) {
	l, err := ParseLeague([]byte(sampleLeague), "test.hcl")
	require.NoError(t, err)

	tuning, err := l.SimTuning()
	require.NoError(t, err)
	want := football.DefaultTuning()
	want.HomeFieldBonus = 5
	want.RunMean = 3.5
	assert.Equal(t, want, tuning)
}

func TestTuningBlockCoversPolicyAndClock(t *testing.T) {
	l, err := ParseLeague([]byte(sampleLeague), "test.hcl")
	require.NoError(t, err)
	thirty, seventy, window := 30, 70, 240
	bonus := 0.3
	l.Tuning.OwnTerritoryLine = &thirty
	l.Tuning.DesperationLine = &seventy
	l.Tuning.LateGameWindow = &window
	l.Tuning.LongBonus = &bonus

	tuning, err := l.SimTuning()
	require.NoError(t, err)
	assert.Equal(t, 30, tuning.OwnTerritoryLine)
	assert.Equal(t, 70, tuning.DesperationLine)
	assert.Equal(t, 240, tuning.LateGameWindow)
	assert.Equal(t, 0.3, tuning.LongBonus)
}

func TestTuningAttributesDecode(t *testing.T) {
	l, err := ParseLeague([]byte(`
team "a" {
  offense = 70
  defense = 70
}
team "b" {
  offense = 70
  defense = 70
}
tuning {
  own_territory_line    = 30
  short_go_distance     = 3
  late_half_window      = 90
  late_game_window      = 240
  trailing_late_bonus   = 0.3
  pass_weight_max       = 0.8
  kickoff_return_min    = 15
  kickoff_return_max    = 35
}
`), "tuning.hcl")
	require.NoError(t, err)
	require.NoError(t, l.Validate())

	tuning, err := l.SimTuning()
	require.NoError(t, err)
	want := football.DefaultTuning()
	want.OwnTerritoryLine = 30
	want.ShortGoDistance = 3
	want.LateHalfWindow = 90
	want.LateGameWindow = 240
	want.TrailingLateBonus = 0.3
	want.PassWeightMax = 0.8
	want.KickoffReturnMin = 15
	want.KickoffReturnMax = 35
	assert.Equal(t, want, tuning)
}

func TestTuningBlockRejectsBadValues(t *testing.T) {
	for _, attr := range []string{"punt_net = -50", "sack_rate = 1.5", "kickoff_touchback_rate = -0.2"} {
		t.Run(attr, func(t *testing.T) {
			l, err := ParseLeague([]byte(`
team "a" {
  offense = 70
  defense = 70
}
team "b" {
  offense = 70
  defense = 70
}
tuning {
  `+attr+`
}
`), "tuning.hcl")
			require.NoError(t, err)
			assert.ErrorContains(t, l.Validate(), "tuning")
		})
	}
}

func TestNoTuningBlock(t *testing.T) {
	l := DefaultLeague()
	tuning, err := l.SimTuning()
	require.NoError(t, err)
	assert.Equal(t, football.DefaultTuning(), tuning)
}

func TestMatchups(t *testing.T) {
	l, err := ParseLeague([]byte(sampleLeague), "test.hcl")
	require.NoError(t, err)

	matchups, err := l.Matchups()
	require.NoError(t, err)
	require.Len(t, matchups, 2)

	m := matchups[0]
	assert.Equal(t, "week1-1", m.ID)
	assert.Equal(t, "Harbor Pilots", m.Teams[football.Home].Name)
	assert.Equal(t, 80, m.Teams[football.Away].Defense)
	assert.False(t, m.Neutral)

	qb, ok := m.Lineups[football.Home].Starter(football.QB)
	require.True(t, ok)
	assert.Equal(t, "Ray Okafor", qb.Name)
	assert.Equal(t, 84, qb.Rating)
	_, ok = m.Lineups[football.Away].Starter(football.QB)
	assert.False(t, ok, "a team without players has an empty lineup")

	assert.True(t, matchups[1].Neutral)
	assert.Equal(t, "rdg", matchups[1].Teams[football.Home].ID)

	_, err = l.Matchup("x", "hbr", "zzz", false)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *League {
		l, err := ParseLeague([]byte(sampleLeague), "test.hcl")
		require.NoError(t, err)
		return l
	}

	tests := []struct {
		name   string
		mutate func(*League)
		want   string
	}{
		{"one team", func(l *League) { l.Teams = l.Teams[:1] }, "at least two teams"},
		{"duplicate team", func(l *League) { l.Teams[1].ID = "hbr" }, "duplicate id"},
		{"offense rating", func(l *League) { l.Teams[0].Offense = 0 }, "offense rating 0"},
		{"defense rating", func(l *League) { l.Teams[1].Defense = 120 }, "defense rating 120"},
		{"bad position", func(l *League) { l.Teams[0].Players[0].Position = "XX" }, "invalid position"},
		{"player rating", func(l *League) { l.Teams[0].Players[1].Rating = -3 }, "rating -3"},
		{"duplicate player", func(l *League) { l.Teams[0].Players[1].ID = "cb-1" }, "already used"},
		{"unknown home", func(l *League) { l.Games[0].Home = "zzz" }, "unknown home team"},
		{"unknown away", func(l *League) { l.Games[0].Away = "zzz" }, "unknown away team"},
		{"self game", func(l *League) { l.Games[0].Away = "hbr" }, "cannot play itself"},
		{"duplicate game", func(l *League) { l.Games[1].ID = "week1-1" }, "duplicate id"},
		{"bad tuning", func(l *League) {
			zero := 0
			l.Tuning.QuarterSeconds = &zero
		}, "tuning"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := base()
			tt.mutate(l)
			err := l.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := ParseLeague([]byte(`team "x" {`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse")

	_, err = ParseLeague([]byte(`team "x" { name = "X" }`), "missing.hcl")
	assert.ErrorContains(t, err, "failed to decode", "offense and defense are required")
}

func TestLoadLeague(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "league.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleLeague), 0o644))

	l, err := LoadLeague(path)
	require.NoError(t, err)
	assert.Equal(t, "Test League", l.Name)

	l, err = LoadLeague(filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLeague(), l)
}

func TestDefaultLeague(t *testing.T) {
	l := DefaultLeague()
	require.NoError(t, l.Validate())

	matchups, err := l.Matchups()
	require.NoError(t, err)
	require.Len(t, matchups, 2)
	for _, m := range matchups {
		for _, side := range []football.Side{football.Home, football.Away} {
			for _, pos := range football.Positions {
				_, ok := m.Lineups[side].Starter(pos)
				assert.True(t, ok, "%s %s has a %s", m.ID, side, pos)
			}
		}
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "ray-okafor", slug("Ray Okafor"))
	assert.Equal(t, "d-andre-o-neil-jr", slug("D'Andre O'Neil, Jr."))
	assert.Equal(t, "", slug("  "))
}

func TestExampleLeague(t *testing.T) {
	l, err := LoadLeague(filepath.Join("..", "..", "examples", "league.hcl"))
	require.NoError(t, err)
	require.NoError(t, l.Validate())

	assert.Equal(t, "Northern Conference", l.Name)
	assert.Len(t, l.Teams, 4)

	matchups, err := l.Matchups()
	require.NoError(t, err)
	require.Len(t, matchups, 3)
	assert.True(t, matchups[2].Neutral)
	assert.Len(t, matchups[0].Lineups[0][football.RB], 2)
	assert.Empty(t, matchups[1].Lineups[0], "teams without players field no starters")

	tuning, err := l.SimTuning()
	require.NoError(t, err)
	assert.Equal(t, 2, tuning.HomeFieldBonus)
}

package history_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/gridiron/internal/boxscore"
	"github.com/lox/gridiron/internal/config"
	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/history"
	"github.com/lox/gridiron/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playGame(t *testing.T, seed int64) (*football.Result, *boxscore.BoxScore) {
	t.Helper()
	matchups, err := config.DefaultLeague().Matchups()
	require.NoError(t, err)
	m := matchups[0]

	rng := randutil.New(seed)
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	e := football.NewEngine(rng, football.WithLogger(logger))
	res, err := e.PlayGame(football.NewGame(m, e.Tuning()))
	require.NoError(t, err)
	return res, boxscore.Attribute(rng, res.Plays(), m.Lineups)
}

func TestFormatPlay(t *testing.T) {
	tests := []struct {
		name string
		play football.Play
		want string
	}{
		{
			"run",
			football.Play{Quarter: 1, SecondsLeft: 842, Down: 1, ToGo: 10, Position: 25, Type: football.PlayRun, Result: football.ResultGain, Yards: 4},
			"Q1 14:02 1&10 @25 run gain +4",
		},
		{
			"sack",
			football.Play{Quarter: 3, SecondsLeft: 61, Down: 3, ToGo: 7, Position: 40, Type: football.PlayPass, Result: football.ResultSack, Yards: -6},
			"Q3 1:01 3&7 @40 pass sack -6",
		},
		{
			"punt with description",
			football.Play{Quarter: 2, SecondsLeft: 5, Down: 4, ToGo: 9, Position: 30, Type: football.PlayPunt, Result: football.ResultPunt, Kick: 40, Description: "Nash punts 40 yards"},
			"Q2 0:05 4&9 @30 punt punt 40 | Nash punts 40 yards",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, history.FormatPlay(tt.play))
		})
	}
}

func TestNew(t *testing.T) {
	res, box := playGame(t, 3)
	played := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)

	gl, err := history.New(res, 3, box, played)
	require.NoError(t, err)

	assert.Equal(t, res.Game.ID, gl.Game)
	assert.Equal(t, []string{"hbr", "rdg"}, gl.TeamIDs)
	assert.Equal(t, []int{res.Game.Score[0], res.Game.Score[1]}, gl.Score)
	assert.Equal(t, res.Game.Teams[res.Game.Winner].ID, gl.Winner)
	assert.Equal(t, "2026-09-13T17:00:00Z", gl.Time)
	require.Len(t, gl.Drives, len(res.Drives))

	plays := 0
	for i, d := range gl.Drives {
		assert.Equal(t, string(res.Drives[i].Result), d.Result)
		plays += len(d.Actions)
	}
	assert.Equal(t, len(res.Plays()), plays)
	assert.Len(t, gl.Players, len(box.Players))

	last := gl.Drives[len(gl.Drives)-1]
	assert.Equal(t, gl.Score, last.Score, "the last drive carries the final score")
}

func TestNewRejectsUnfinished(t *testing.T) {
	_, err := history.New(nil, 0, nil, time.Time{})
	assert.Error(t, err)

	g := football.NewGame(football.Matchup{ID: "x"}, football.DefaultTuning())
	_, err = history.New(&football.Result{Game: g}, 0, nil, time.Time{})
	assert.ErrorContains(t, err, "not final")
}

func TestEncode(t *testing.T) {
	res, box := playGame(t, 8)
	gl, err := history.New(res, 8, box, time.Time{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, history.Encode(&buf, gl))
	out := buf.String()
	assert.Contains(t, out, `game = "week1-1"`)
	assert.Contains(t, out, "[[drives]]")
	assert.Contains(t, out, "[[players]]")
	assert.NotContains(t, out, "\ntime = ", "zero timestamps are omitted")

	data, err := history.EncodeToBytes(gl)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))

	assert.Error(t, history.Encode(&buf, nil))
}

func TestWriteRead(t *testing.T) {
	res, box := playGame(t, 11)
	played := time.Date(2026, 10, 4, 20, 30, 0, 0, time.UTC)
	gl, err := history.New(res, 11, box, played)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "logs", gl.Game+".toml")
	require.NoError(t, history.Write(path, gl))

	got, err := history.Read(path)
	require.NoError(t, err)
	assert.Equal(t, gl.Score, got.Score)
	assert.Equal(t, gl.Drives, got.Drives)
	assert.Equal(t, gl.Players, got.Players)
	assert.True(t, played.Equal(got.Timestamp))
}

func TestReadErrors(t *testing.T) {
	_, err := history.Read(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("game = [unterminated"), 0o644))
	_, err = history.Read(path)
	assert.ErrorContains(t, err, "decode")
}

package football

import (
	"testing"

	"github.com/lox/gridiron/internal/gameid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayGameFinishes(t *testing.T) {
	t.Parallel()

	for seed := range int64(100) {
		e := testEngine(seed)
		g := NewGame(evenMatchup(), e.Tuning())
		result, err := e.PlayGame(g)
		require.NoError(t, err)

		assert.True(t, g.Final)
		assert.False(t, g.Tied(), "seed %d ended tied", seed)
		winner := Home
		if g.Score[Away] > g.Score[Home] {
			winner = Away
		}
		assert.Equal(t, winner, g.Winner)
		assert.Equal(t, len(result.Drives), g.Drives)

		if g.Overtime > 0 {
			assert.True(t, g.Untimed)
			assert.GreaterOrEqual(t, g.OvertimePossessions, 2)
			assert.Zero(t, g.OvertimePossessions%2, "overtime ends on a complete pair")
		} else {
			last := result.Drives[len(result.Drives)-1]
			assert.Equal(t, 4, g.Quarter)
			assert.Equal(t, 0, g.SecondsLeft)
			assert.Contains(t, []DriveResult{DriveEndOfGame, DriveTouchdown, DriveFieldGoal, DriveSafety}, last.Result)
		}
	}
}

func TestPlayGameHalftime(t *testing.T) {
	t.Parallel()

	for seed := range int64(50) {
		e := testEngine(seed)
		g := NewGame(evenMatchup(), e.Tuning())
		result, err := e.PlayGame(g)
		require.NoError(t, err)

		assert.Equal(t, g.Opening, result.Drives[0].Offense)
		found := false
		for i := 1; i < len(result.Drives); i++ {
			prev, d := result.Drives[i-1], result.Drives[i]
			if prev.StartQuarter <= 2 && d.StartQuarter >= 3 {
				found = true
				assert.Equal(t, g.Opening.Other(), d.Offense, "seed %d: second half kickoff", seed)
				assert.Equal(t, 900, d.StartSeconds)
				break
			}
		}
		assert.True(t, found, "seed %d: no second half", seed)
	}
}

func TestPlayGameAlternatesPossession(t *testing.T) {
	t.Parallel()
	e := testEngine(8)
	g := NewGame(evenMatchup(), e.Tuning())
	result, err := e.PlayGame(g)
	require.NoError(t, err)

	firstOvertime := len(result.Drives) - g.OvertimePossessions
	for i := 1; i < len(result.Drives); i++ {
		prev, d := result.Drives[i-1], result.Drives[i]
		if prev.StartQuarter <= 2 && d.StartQuarter >= 3 {
			continue
		}
		if g.Overtime > 0 && i == firstOvertime {
			continue
		}
		assert.Equal(t, prev.Defense, d.Offense, "drive %d", d.ID)
	}
}

func TestPlayGameDeterministic(t *testing.T) {
	t.Parallel()

	play := func(seed int64) *Result {
		e := testEngine(seed)
		result, err := e.PlayGame(NewGame(testMatchup(82, 74, 71, 79), e.Tuning()))
		require.NoError(t, err)
		return result
	}

	assert.Equal(t, play(21), play(21))
	assert.NotEqual(t, play(21).Plays(), play(22).Plays())
}

// Driving every snap through Step with automatic calls must reproduce
// PlayGame exactly for the same seed.
func TestStepMatchesPlayGame(t *testing.T) {
	t.Parallel()

	for seed := range int64(25) {
		m := testMatchup(80, 72, 76, 78)

		batch := testEngine(seed)
		want, err := batch.PlayGame(NewGame(m, batch.Tuning()))
		require.NoError(t, err)

		var seq gameid.Sequence
		e := testEngine(seed, WithIDs(&seq))
		g := NewGame(m, e.Tuning())
		cur, err := e.Open(g)
		require.NoError(t, err)

		var drives []Drive
		var plays []Play
		for {
			res, err := e.Step(g, cur, CallAuto)
			require.NoError(t, err)
			plays = append(plays, res.Play)
			if !res.DriveOver {
				cur = res.Cursor
				continue
			}
			drives = append(drives, res.Cursor.Drive)
			next, ok, err := e.ChangePossession(g, res)
			require.NoError(t, err)
			if !ok {
				break
			}
			cur = next
		}

		assert.Equal(t, want.Drives, drives, "seed %d", seed)
		assert.Equal(t, want.Plays(), plays, "seed %d", seed)
		assert.Equal(t, want.Game, g, "seed %d", seed)
		assert.Equal(t, len(plays), seq.Plays)
	}
}

func TestRegulationTieGoesToOvertime(t *testing.T) {
	t.Parallel()
	e := testEngine(9)
	g := NewGame(evenMatchup(), e.Tuning())
	g.Quarter, g.SecondsLeft = 4, 0
	g.Score = [2]int{17, 17}

	res, err := e.Step(g, e.NewDrive(g, Home, 30), CallRun)
	require.NoError(t, err)
	require.True(t, res.GameOver)
	require.True(t, g.Tied())

	next, ok, err := e.ChangePossession(g, res)
	require.NoError(t, err)
	require.True(t, ok, "tied regulation must not end the game")
	assert.False(t, g.Final)
	assert.True(t, g.Untimed)
	assert.Equal(t, 1, g.Overtime)
	assert.Equal(t, 75, next.Position)
	assert.Equal(t, 1, next.Down)
	assert.Equal(t, 10, next.ToGo)
}

func TestRegulationEndsWithWinner(t *testing.T) {
	t.Parallel()
	e := testEngine(10)
	g := NewGame(evenMatchup(), e.Tuning())
	g.Quarter, g.SecondsLeft = 4, 0
	g.Score = [2]int{10, 17}

	res, err := e.Step(g, e.NewDrive(g, Home, 30), CallRun)
	require.NoError(t, err)

	_, ok, err := e.ChangePossession(g, res)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, g.Final)
	assert.Equal(t, Away, g.Winner)
}

func TestOvertimeNeverEndsTied(t *testing.T) {
	t.Parallel()

	for seed := range int64(200) {
		e := testEngine(seed)
		g := NewGame(evenMatchup(), e.Tuning())
		g.Quarter, g.SecondsLeft = 4, 0
		g.Score = [2]int{20, 20}
		g.Untimed, g.Overtime = true, 1

		cur := e.NewDrive(g, Side(seed%2), e.Tuning().OvertimeStart)
		for {
			res, err := e.RunDrive(g, cur)
			require.NoError(t, err)
			next, ok, err := e.ChangePossession(g, res)
			require.NoError(t, err)
			if !ok {
				break
			}
			assert.Equal(t, res.Cursor.Drive.Defense, next.Drive.Offense)
			cur = next
		}

		assert.True(t, g.Final)
		assert.False(t, g.Tied())
		assert.GreaterOrEqual(t, g.OvertimePossessions, 2)
		assert.Zero(t, g.OvertimePossessions%2, "seed %d", seed)
		assert.Equal(t, g.OvertimePossessions/2, g.Overtime)
	}
}

func TestChangePossessionRejectsOpenDrive(t *testing.T) {
	t.Parallel()
	e := testEngine(11)
	g := NewGame(evenMatchup(), e.Tuning())
	cur, err := e.Open(g)
	require.NoError(t, err)

	_, _, err = e.ChangePossession(g, StepResult{Cursor: cur})
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestOpenFinishedGame(t *testing.T) {
	t.Parallel()
	e := testEngine(13)
	g := NewGame(evenMatchup(), e.Tuning())
	_, err := e.PlayGame(g)
	require.NoError(t, err)

	_, err = e.Open(g)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestPlayGameRunaway(t *testing.T) {
	t.Parallel()
	tuning := DefaultTuning()
	tuning.MaxGameDrives = 3
	e := testEngine(12, WithTuning(tuning))

	_, err := e.PlayGame(NewGame(evenMatchup(), e.Tuning()))
	assert.ErrorIs(t, err, ErrRunaway)
}

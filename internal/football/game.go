package football

import "fmt"

// Game is the mutable record of one game. Every play updates it in place.
type Game struct {
	ID      string    `json:"id"`
	Teams   [2]Team   `json:"teams"`
	Lineups [2]Lineup `json:"lineups"`
	Neutral bool      `json:"neutral"`

	Score        [2]int `json:"score"`
	Quarter      int    `json:"quarter"`
	SecondsLeft  int    `json:"seconds_left"`
	ClockStopped bool   `json:"clock_stopped"`
	// Untimed is set once overtime starts and the clock no longer runs.
	Untimed             bool `json:"untimed"`
	Overtime            int  `json:"overtime"`
	OvertimePossessions int  `json:"overtime_possessions"`
	Drives              int  `json:"drives"`

	Opening Side `json:"opening"`
	Final   bool `json:"final"`
	Winner  Side `json:"winner"`
}

// NewGame sets up the opening whistle for m.
func NewGame(m Matchup, t Tuning) *Game {
	return &Game{
		ID:           m.ID,
		Teams:        m.Teams,
		Lineups:      m.Lineups,
		Neutral:      m.Neutral,
		Quarter:      1,
		SecondsLeft:  t.QuarterSeconds,
		ClockStopped: true,
	}
}

// Tied reports whether the scores are level.
func (g *Game) Tied() bool {
	return g.Score[Home] == g.Score[Away]
}

// Period names the current period: Q1-Q4 or OT1, OT2 and so on.
func (g *Game) Period() string {
	if g.Untimed {
		return fmt.Sprintf("OT%d", g.Overtime)
	}
	return fmt.Sprintf("Q%d", g.Quarter)
}

// Clock formats the time left in the quarter as m:ss.
func (g *Game) Clock() string {
	return fmt.Sprintf("%d:%02d", g.SecondsLeft/60, g.SecondsLeft%60)
}

// Result is a finished game with its full record.
type Result struct {
	Game   *Game   `json:"game"`
	Drives []Drive `json:"drives"`
}

// Plays flattens the drives into the game's play-by-play.
func (r *Result) Plays() []Play {
	var plays []Play
	for _, d := range r.Drives {
		plays = append(plays, d.Plays...)
	}
	return plays
}

// Open tosses the coin and returns the cursor for the opening kickoff
// return.
func (e *Engine) Open(g *Game) (DriveCursor, error) {
	if g.Drives != 0 || g.Final {
		return DriveCursor{}, fmt.Errorf("game %s already started: %w", g.ID, ErrGameOver)
	}
	g.Opening = Side(e.rng.IntN(2))
	e.logger.Debug("Kickoff", "game", g.ID, "receiving", g.Opening)
	return e.NewDrive(g, g.Opening, e.outcome.Kickoff(e.rng)), nil
}

// ChangePossession applies the restart after the drive that res completed:
// kickoffs, field flips, halftime, overtime pairs and the final whistle.
// It returns false once the game is final.
func (e *Engine) ChangePossession(g *Game, res StepResult) (DriveCursor, bool, error) {
	d := res.Cursor.Drive
	if !res.DriveOver || !d.Complete() {
		return DriveCursor{}, false, invariantf("drive %d: possession changed before the drive ended", d.ID)
	}
	g.Drives++
	if g.Drives >= e.tuning.MaxGameDrives {
		return DriveCursor{}, false, fmt.Errorf("game %s reached %d drives: %w", g.ID, g.Drives, ErrRunaway)
	}

	switch {
	case g.Untimed:
		g.OvertimePossessions++
		if g.OvertimePossessions%2 == 0 {
			if !g.Tied() {
				return DriveCursor{}, false, e.finish(g)
			}
			g.Overtime++
			e.logger.Debug("Overtime period tied", "game", g.ID, "period", g.Overtime)
		}
		return e.NewDrive(g, d.Defense, e.tuning.OvertimeStart), true, nil

	case res.GameOver:
		if !g.Tied() {
			return DriveCursor{}, false, e.finish(g)
		}
		g.Untimed = true
		g.ClockStopped = true
		g.Overtime = 1
		g.OvertimePossessions = 0
		first := Side(e.rng.IntN(2))
		e.logger.Debug("Overtime", "game", g.ID, "first", first)
		return e.NewDrive(g, first, e.tuning.OvertimeStart), true, nil

	case res.HalfOver:
		e.logger.Debug("Halftime", "game", g.ID, "score", fmt.Sprintf("%d-%d", g.Score[Home], g.Score[Away]))
		return e.NewDrive(g, g.Opening.Other(), e.outcome.Kickoff(e.rng)), true, nil
	}

	if res.NextPosition <= 0 || res.NextPosition >= 100 {
		return DriveCursor{}, false, invariantf("drive %d: next possession spotted at %d", d.ID, res.NextPosition)
	}
	return e.NewDrive(g, d.Defense, res.NextPosition), true, nil
}

// PlayGame simulates g from the opening kickoff to the final whistle.
func (e *Engine) PlayGame(g *Game) (*Result, error) {
	cur, err := e.Open(g)
	if err != nil {
		return nil, err
	}

	result := &Result{Game: g}
	for {
		res, err := e.RunDrive(g, cur)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", g.ID, err)
		}
		result.Drives = append(result.Drives, res.Cursor.Drive)

		next, ok, err := e.ChangePossession(g, res)
		if err != nil {
			return nil, err
		}
		if !ok {
			return result, nil
		}
		cur = next
	}
}

func (e *Engine) finish(g *Game) error {
	if g.Tied() {
		return invariantf("game %s finished tied at %d", g.ID, g.Score[Home])
	}
	g.Final = true
	g.Winner = Home
	if g.Score[Away] > g.Score[Home] {
		g.Winner = Away
	}
	e.logger.Debug("Final", "game", g.ID, "home", g.Score[Home], "away", g.Score[Away], "overtime", g.Overtime)
	return nil
}

package football

import (
	"fmt"
	"slices"
)

// Play is one down, finalized when it is created.
type Play struct {
	ID          int        `json:"id"`
	DriveID     int        `json:"drive_id"`
	Offense     Side       `json:"offense"`
	Down        int        `json:"down"`
	ToGo        int        `json:"to_go"`
	Position    int        `json:"position"`
	Type        PlayType   `json:"type"`
	Called      bool       `json:"called,omitempty"`
	Result      PlayResult `json:"result"`
	Yards       int        `json:"yards"`
	Kick        int        `json:"kick,omitempty"`
	Description string     `json:"description"`
	Tempo       Tempo      `json:"tempo"`
	FirstDown   bool       `json:"first_down,omitempty"`
	OutOfBounds bool       `json:"out_of_bounds,omitempty"`

	// Clock and score at the snap. Overtime is the period number once
	// regulation is over.
	Quarter     int    `json:"quarter"`
	SecondsLeft int    `json:"seconds_left"`
	Overtime    int    `json:"overtime,omitempty"`
	Score       [2]int `json:"score"`
	Elapsed     int    `json:"elapsed"`
}

// Period names the period the play was snapped in.
func (p Play) Period() string {
	if p.Overtime > 0 {
		return fmt.Sprintf("OT%d", p.Overtime)
	}
	return fmt.Sprintf("Q%d", p.Quarter)
}

// Drive is one possession. Result, Points, ScoredBy and Score are written
// once, by the play that ends it.
type Drive struct {
	ID            int         `json:"id"`
	Offense       Side        `json:"offense"`
	Defense       Side        `json:"defense"`
	StartPosition int         `json:"start_position"`
	StartQuarter  int         `json:"start_quarter"`
	StartSeconds  int         `json:"start_seconds"`
	Result        DriveResult `json:"result"`
	Points        int         `json:"points"`
	ScoredBy      Side        `json:"scored_by"`
	Score         [2]int      `json:"score"`
	Plays         []Play      `json:"plays"`
}

// Complete reports whether the drive has its terminal result.
func (d Drive) Complete() bool {
	return d.Result != DriveInProgress
}

// Yards is the net yardage gained from scrimmage.
func (d Drive) Yards() int {
	total := 0
	for _, p := range d.Plays {
		if p.Type == PlayRun || p.Type == PlayPass {
			total += p.Yards
		}
	}
	return total
}

// Elapsed is the time of possession in seconds.
func (d Drive) Elapsed() int {
	total := 0
	for _, p := range d.Plays {
		total += p.Elapsed
	}
	return total
}

// DriveCursor is the continuation of a drive between snaps: the drive so
// far plus the spot, down and distance of the next play.
type DriveCursor struct {
	Drive    Drive `json:"drive"`
	Position int   `json:"position"`
	Down     int   `json:"down"`
	ToGo     int   `json:"to_go"`
}

// StepResult is what one snap produced.
type StepResult struct {
	Cursor    DriveCursor
	Play      Play
	DriveOver bool
	// NextPosition is where the other team starts after a completed drive.
	// It is zero when the half or game ended, since ChangePossession
	// decides those restarts.
	NextPosition int
	HalfOver     bool
	GameOver     bool
}

// NewDrive opens a possession for offense at position.
func (e *Engine) NewDrive(g *Game, offense Side, position int) DriveCursor {
	return DriveCursor{
		Drive: Drive{
			ID:            e.ids.NextDrive(),
			Offense:       offense,
			Defense:       offense.Other(),
			StartPosition: position,
			StartQuarter:  g.Quarter,
			StartSeconds:  g.SecondsLeft,
		},
		Position: position,
		Down:     1,
		ToGo:     min(e.tuning.FirstDownDistance, 100-position),
	}
}

// Step runs exactly one down of the drive at cur. call is the offense's
// decision; CallAuto defers to the policy. g is updated in place with the
// clock and any points scored. cur is not modified.
func (e *Engine) Step(g *Game, cur DriveCursor, call Call) (StepResult, error) {
	if g.Final {
		return StepResult{}, ErrGameOver
	}
	if cur.Drive.Complete() {
		return StepResult{}, ErrDriveOver
	}
	if err := e.checkCursor(cur); err != nil {
		return StepResult{}, err
	}
	if len(cur.Drive.Plays) >= e.tuning.MaxDrivePlays {
		return StepResult{}, fmt.Errorf("drive %d ran %d plays: %w", cur.Drive.ID, len(cur.Drive.Plays), ErrRunaway)
	}

	s := g.Situation(cur)
	called := call != CallAuto
	if !called {
		call = e.policy.Call(e.rng, s)
	}
	typ, ok := call.playType()
	if !ok {
		return StepResult{}, fmt.Errorf("%q: %w", call, ErrUnknownCall)
	}
	tempo := e.policy.Tempo(s)

	off := cur.Drive.Offense
	def := off.Other()
	o := e.resolve(g, off, typ, cur.Position, tempo)

	play := Play{
		ID:          e.ids.NextPlay(),
		DriveID:     cur.Drive.ID,
		Offense:     off,
		Down:        cur.Down,
		ToGo:        cur.ToGo,
		Position:    cur.Position,
		Type:        typ,
		Called:      called,
		Result:      o.Result,
		Yards:       o.Yards,
		Tempo:       tempo,
		OutOfBounds: o.OutOfBounds,
		Quarter:     g.Quarter,
		SecondsLeft: g.SecondsLeft,
		Score:       g.Score,
	}
	if g.Untimed {
		play.Overtime = g.Overtime
	}

	next := DriveCursor{Drive: cur.Drive, Position: cur.Position, Down: cur.Down, ToGo: cur.ToGo}
	res := StepResult{}
	var result DriveResult

	spot := cur.Position + o.Yards
	switch o.Result {
	case ResultTouchdown:
		result = DriveTouchdown
	case ResultSafety:
		result = DriveSafety
	case ResultInterception:
		result = DriveInterception
		res.NextPosition = e.outcome.InterceptionReturnPosition(o.TurnoverSpot)
	case ResultFumble:
		result = DriveFumble
		res.NextPosition = 100 - spot
	case ResultPunt:
		result = DrivePunt
		play.Kick = e.tuning.PuntNet
		res.NextPosition = e.outcome.PuntReturnPosition(cur.Position)
	case ResultFieldGoalGood:
		result = DriveFieldGoal
		play.Kick = e.outcome.FieldGoalDistance(cur.Position)
	case ResultFieldGoalMissed:
		result = DriveMissedFieldGoal
		play.Kick = e.outcome.FieldGoalDistance(cur.Position)
		res.NextPosition = 100 - cur.Position
	default:
		switch {
		case o.Yards >= cur.ToGo:
			play.FirstDown = true
			next.Position = spot
			next.Down = 1
			next.ToGo = min(e.tuning.FirstDownDistance, 100-spot)
		case cur.Down >= 4:
			result = DriveTurnoverOnDowns
			res.NextPosition = 100 - spot
		default:
			next.Position = spot
			next.Down = cur.Down + 1
			next.ToGo = cur.ToGo - o.Yards
		}
	}
	over := result != DriveInProgress

	if !g.Untimed {
		tick := e.clock.Advance(e.rng, ClockState{
			Quarter:     g.Quarter,
			SecondsLeft: g.SecondsLeft,
			Stopped:     g.ClockStopped,
		}, ClockInput{
			Type:        typ,
			Result:      o.Result,
			FirstDown:   play.FirstDown,
			OutOfBounds: o.OutOfBounds,
			Change:      over,
			Tempo:       tempo,
		})
		play.Elapsed = tick.Elapsed
		g.Quarter = tick.Quarter
		g.SecondsLeft = tick.SecondsLeft
		g.ClockStopped = tick.Stopped
		res.HalfOver = tick.HalfOver
		res.GameOver = tick.GameOver
	}

	if res.HalfOver || res.GameOver {
		over = true
		if !result.Scoring() {
			result = DriveEndOfHalf
			if res.GameOver {
				result = DriveEndOfGame
			}
			res.NextPosition = 0
		}
	}

	play.Description = e.describe(g, play)
	next.Drive.Plays = append(slices.Clip(cur.Drive.Plays), play)

	if over {
		points, toDefense := result.Points()
		scorer := off
		if toDefense {
			scorer = def
		}
		g.Score[scorer] += points

		next.Drive.Result = result
		next.Drive.Points = points
		next.Drive.ScoredBy = scorer
		next.Drive.Score = g.Score
		if result.Scoring() && !res.HalfOver && !res.GameOver && !g.Untimed {
			res.NextPosition = e.outcome.Kickoff(e.rng)
		}

		e.logger.Debug("Drive over", "drive", next.Drive.ID, "offense", off, "result", result,
			"plays", len(next.Drive.Plays), "score", fmt.Sprintf("%d-%d", g.Score[Home], g.Score[Away]))
	} else if err := e.checkCursor(next); err != nil {
		return StepResult{}, err
	}

	res.Cursor = next
	res.Play = play
	res.DriveOver = over
	return res, nil
}

// RunDrive steps the drive at cur with automatic calls until it ends and
// returns the final step, whose cursor holds the completed drive.
func (e *Engine) RunDrive(g *Game, cur DriveCursor) (StepResult, error) {
	for {
		res, err := e.Step(g, cur, CallAuto)
		if err != nil {
			return StepResult{}, err
		}
		if res.DriveOver {
			return res, nil
		}
		cur = res.Cursor
	}
}

func (e *Engine) resolve(g *Game, off Side, typ PlayType, position int, tempo Tempo) Outcome {
	switch typ {
	case PlayRun:
		return e.outcome.Run(e.rng, e.outcome.Edge(g.Teams, off, g.Neutral), position, tempo)
	case PlayPass:
		return e.outcome.Pass(e.rng, e.outcome.Edge(g.Teams, off, g.Neutral), position, tempo)
	case PlayPunt:
		return Outcome{Result: ResultPunt}
	default:
		return e.outcome.FieldGoal(e.rng, position)
	}
}

func (e *Engine) checkCursor(cur DriveCursor) error {
	switch {
	case cur.Position <= 0 || cur.Position >= 100:
		return invariantf("drive %d: ball spotted at %d", cur.Drive.ID, cur.Position)
	case cur.Down < 1 || cur.Down > 4:
		return invariantf("drive %d: down %d", cur.Drive.ID, cur.Down)
	case cur.ToGo < 1 || cur.Position+cur.ToGo > 100:
		return invariantf("drive %d: %d to go from %d", cur.Drive.ID, cur.ToGo, cur.Position)
	}
	return nil
}

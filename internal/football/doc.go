// Package football simulates American football games possession by
// possession.
//
// The main type is Engine, which owns a game's random stream and resolves
// one down at a time. A Game is the mutable scoreboard the engine updates;
// drives and plays are returned as finished records.
//
// # Basic Usage
//
// Simulate a whole game:
//
//	e := football.NewEngine(randutil.New(42))
//	g := football.NewGame(matchup, e.Tuning())
//	result, err := e.PlayGame(g)
//
// # Stepping
//
// Step performs exactly one down and returns a DriveCursor describing the
// next snap. The cursor is plain data, so a caller can stop between plays,
// persist it, and continue later:
//
//	cur, _ := e.Open(g)
//	for {
//	    res, err := e.Step(g, cur, football.CallPass)
//	    // ...
//	    if res.DriveOver {
//	        cur, ok, err = e.ChangePossession(g, res)
//	    } else {
//	        cur = res.Cursor
//	    }
//	}
//
// RunDrive and PlayGame are loops over Step and ChangePossession, so a game
// stepped with CallAuto draws the same random numbers, and produces the same
// plays, as PlayGame with the same seed.
//
// # Architecture
//
// The engine composes four models, each configured by Tuning:
//   - ClockModel: play durations, quarter rollover, clock stoppages
//   - OutcomeModel: yardage, turnovers, kicks, rating edges
//   - Policy: run/pass weighting, fourth down, tempo, points needed
//   - Engine.Step / ChangePossession: drive and game transitions
package football

// Package boxscore credits a finished play log to individual players.
//
// The engine only records team-level outcomes. Attribution walks the plays
// afterwards and picks the ball carrier, receiver, tackler and so on by a
// weighted draw over the starters eligible for each role. The result never
// feeds back into the game state.
package boxscore

import (
	rand "math/rand/v2"
	"slices"

	"github.com/lox/gridiron/internal/football"
)

// Line is one player's counting stats.
type Line struct {
	PlayerID string            `json:"player_id" toml:"player_id"`
	Name     string            `json:"name" toml:"name"`
	Team     football.Side     `json:"team" toml:"team"`
	Position football.Position `json:"position" toml:"position"`

	Carries   int `json:"carries,omitempty" toml:"carries,omitempty"`
	RushYards int `json:"rush_yards,omitempty" toml:"rush_yards,omitempty"`
	RushTDs   int `json:"rush_tds,omitempty" toml:"rush_tds,omitempty"`
	Fumbles   int `json:"fumbles,omitempty" toml:"fumbles,omitempty"`

	Attempts       int `json:"attempts,omitempty" toml:"attempts,omitempty"`
	Completions    int `json:"completions,omitempty" toml:"completions,omitempty"`
	PassYards      int `json:"pass_yards,omitempty" toml:"pass_yards,omitempty"`
	PassTDs        int `json:"pass_tds,omitempty" toml:"pass_tds,omitempty"`
	Interceptions  int `json:"interceptions,omitempty" toml:"interceptions,omitempty"`
	TimesSacked    int `json:"times_sacked,omitempty" toml:"times_sacked,omitempty"`
	Targets        int `json:"targets,omitempty" toml:"targets,omitempty"`
	Receptions     int `json:"receptions,omitempty" toml:"receptions,omitempty"`
	ReceivingYards int `json:"receiving_yards,omitempty" toml:"receiving_yards,omitempty"`
	ReceivingTDs   int `json:"receiving_tds,omitempty" toml:"receiving_tds,omitempty"`

	Tackles          int `json:"tackles,omitempty" toml:"tackles,omitempty"`
	Sacks            int `json:"sacks,omitempty" toml:"sacks,omitempty"`
	Picks            int `json:"picks,omitempty" toml:"picks,omitempty"`
	FumblesRecovered int `json:"fumbles_recovered,omitempty" toml:"fumbles_recovered,omitempty"`
	Safeties         int `json:"safeties,omitempty" toml:"safeties,omitempty"`

	FieldGoalsMade     int `json:"field_goals_made,omitempty" toml:"field_goals_made,omitempty"`
	FieldGoalsAttempts int `json:"field_goals_attempted,omitempty" toml:"field_goals_attempted,omitempty"`
	LongFieldGoal      int `json:"long_field_goal,omitempty" toml:"long_field_goal,omitempty"`
	Punts              int `json:"punts,omitempty" toml:"punts,omitempty"`
	PuntYards          int `json:"punt_yards,omitempty" toml:"punt_yards,omitempty"`
}

// TeamTotals aggregates a side's offense.
type TeamTotals struct {
	Plays      int `json:"plays" toml:"plays"`
	FirstDowns int `json:"first_downs" toml:"first_downs"`
	RushYards  int `json:"rush_yards" toml:"rush_yards"`
	PassYards  int `json:"pass_yards" toml:"pass_yards"`
	Turnovers  int `json:"turnovers" toml:"turnovers"`
	Sacked     int `json:"sacked" toml:"sacked"`
}

// Yards is total offense.
func (t TeamTotals) Yards() int {
	return t.RushYards + t.PassYards
}

// BoxScore holds every credited player plus team totals.
type BoxScore struct {
	Players map[string]*Line `json:"players"`
	Teams   [2]TeamTotals    `json:"teams"`
}

// Lines returns one side's lines in position order, then by player id.
func (b *BoxScore) Lines(side football.Side) []Line {
	var lines []Line
	for _, l := range b.Players {
		if l.Team == side {
			lines = append(lines, *l)
		}
	}
	slices.SortFunc(lines, func(a, b Line) int {
		if d := positionIndex(a.Position) - positionIndex(b.Position); d != 0 {
			return d
		}
		switch {
		case a.PlayerID < b.PlayerID:
			return -1
		case a.PlayerID > b.PlayerID:
			return 1
		}
		return 0
	})
	return lines
}

// Player returns the line for id, if the player was credited with anything.
func (b *BoxScore) Player(id string) (Line, bool) {
	l, ok := b.Players[id]
	if !ok {
		return Line{}, false
	}
	return *l, true
}

type weight struct {
	pos  football.Position
	bias float64
}

// Eligibility tables. The order is the draw order and must stay fixed for a
// given seed to reproduce.
var (
	rushers     = []weight{{football.RB, 1.0}, {football.QB, 0.15}}
	receivers   = []weight{{football.WR, 1.0}, {football.TE, 0.6}, {football.RB, 0.35}}
	passRushers = []weight{{football.DL, 1.0}, {football.LB, 0.6}}
	ballHawks   = []weight{{football.CB, 1.0}, {football.S, 0.8}, {football.LB, 0.3}}
	tacklers    = []weight{{football.LB, 1.0}, {football.S, 0.7}, {football.CB, 0.6}, {football.DL, 0.5}}
	recoverers  = []weight{{football.DL, 1.0}, {football.LB, 1.0}, {football.CB, 0.5}, {football.S, 0.5}}
)

// Attribute credits plays to the starters in lineups. The same rng seed,
// plays and lineups always produce the same box score. Roles nobody on the
// roster can fill are skipped without drawing.
func Attribute(rng *rand.Rand, plays []football.Play, lineups [2]football.Lineup) *BoxScore {
	if rng == nil {
		panic("boxscore: rng is required")
	}
	a := attributor{rng: rng, lineups: lineups, box: &BoxScore{Players: make(map[string]*Line)}}
	for _, p := range plays {
		a.play(p)
	}
	return a.box
}

type attributor struct {
	rng     *rand.Rand
	lineups [2]football.Lineup
	box     *BoxScore
}

func (a *attributor) play(p football.Play) {
	off, def := p.Offense, p.Offense.Other()
	team := &a.box.Teams[off]
	if p.FirstDown {
		team.FirstDowns++
	}

	switch p.Type {
	case football.PlayRun:
		team.Plays++
		team.RushYards += p.Yards
		carrier := a.pick(off, rushers)
		if carrier != nil {
			carrier.Carries++
			carrier.RushYards += p.Yards
		}
		switch p.Result {
		case football.ResultTouchdown:
			if carrier != nil {
				carrier.RushTDs++
			}
		case football.ResultFumble:
			team.Turnovers++
			if carrier != nil {
				carrier.Fumbles++
			}
			if l := a.pick(def, recoverers); l != nil {
				l.FumblesRecovered++
			}
		case football.ResultSafety:
			if l := a.pick(def, tacklers); l != nil {
				l.Tackles++
				l.Safeties++
			}
		default:
			a.tackle(def, p)
		}

	case football.PlayPass:
		team.Plays++
		qb := a.starter(off, football.QB)
		switch p.Result {
		case football.ResultSack, football.ResultSafety:
			// A pass ending in the end zone is charged as a sack.
			team.Sacked++
			team.PassYards += p.Yards
			if qb != nil {
				qb.TimesSacked++
			}
			if l := a.pick(def, passRushers); l != nil {
				l.Sacks++
				l.Tackles++
				if p.Result == football.ResultSafety {
					l.Safeties++
				}
			}
		case football.ResultIncomplete:
			if qb != nil {
				qb.Attempts++
			}
			if l := a.pick(off, receivers); l != nil {
				l.Targets++
			}
		case football.ResultInterception:
			team.Turnovers++
			if qb != nil {
				qb.Attempts++
				qb.Interceptions++
			}
			if l := a.pick(off, receivers); l != nil {
				l.Targets++
			}
			if l := a.pick(def, ballHawks); l != nil {
				l.Picks++
			}
		default:
			a.completion(off, def, qb, p, team)
		}

	case football.PlayFieldGoal:
		k := a.starter(off, football.K)
		if k == nil {
			return
		}
		k.FieldGoalsAttempts++
		if p.Result == football.ResultFieldGoalGood {
			k.FieldGoalsMade++
			k.LongFieldGoal = max(k.LongFieldGoal, p.Kick)
		}

	case football.PlayPunt:
		if l := a.starter(off, football.P); l != nil {
			l.Punts++
			l.PuntYards += p.Kick
		}
	}
}

func (a *attributor) completion(off, def football.Side, qb *Line, p football.Play, team *TeamTotals) {
	team.PassYards += p.Yards
	td := p.Result == football.ResultTouchdown
	if qb != nil {
		qb.Attempts++
		qb.Completions++
		qb.PassYards += p.Yards
		if td {
			qb.PassTDs++
		}
	}
	if l := a.pick(off, receivers); l != nil {
		l.Targets++
		l.Receptions++
		l.ReceivingYards += p.Yards
		if td {
			l.ReceivingTDs++
		}
	}
	if !td {
		a.tackle(def, p)
	}
}

// tackle credits the stop on a play that ended in bounds.
func (a *attributor) tackle(def football.Side, p football.Play) {
	if p.OutOfBounds || p.Result == football.ResultTouchdown {
		return
	}
	if l := a.pick(def, tacklers); l != nil {
		l.Tackles++
	}
}

func (a *attributor) starter(side football.Side, pos football.Position) *Line {
	p, ok := a.lineups[side].Starter(pos)
	if !ok {
		return nil
	}
	return a.line(side, p)
}

// pick draws one player from the eligible positions, weighted by rating
// times the position bias.
func (a *attributor) pick(side football.Side, table []weight) *Line {
	type candidate struct {
		player football.Player
		weight float64
	}
	var (
		candidates []candidate
		total      float64
	)
	for _, w := range table {
		for _, p := range a.lineups[side][w.pos] {
			cw := float64(max(p.Rating, 1)) * w.bias
			candidates = append(candidates, candidate{p, cw})
			total += cw
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	r := a.rng.Float64() * total
	for _, c := range candidates {
		if r < c.weight {
			return a.line(side, c.player)
		}
		r -= c.weight
	}
	return a.line(side, candidates[len(candidates)-1].player)
}

func (a *attributor) line(side football.Side, p football.Player) *Line {
	if l, ok := a.box.Players[p.ID]; ok {
		return l
	}
	l := &Line{PlayerID: p.ID, Name: p.Name, Team: side, Position: p.Position}
	a.box.Players[p.ID] = l
	return l
}

func positionIndex(pos football.Position) int {
	if i := slices.Index(football.Positions, pos); i >= 0 {
		return i
	}
	return len(football.Positions)
}

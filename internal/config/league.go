// Package config loads league files: teams with their starters, a slate of
// games and optional overrides of the simulation constants.
//
// League files are HCL:
//
//	name = "Coastal League"
//
//	team "hbr" {
//	  name    = "Harbor Pilots"
//	  offense = 82
//	  defense = 74
//
//	  player "Ray Okafor" {
//	    position = "QB"
//	    rating   = 84
//	  }
//	}
//
//	game "week1-1" {
//	  home = "hbr"
//	  away = "rdg"
//	}
//
//	tuning {
//	  home_field_bonus = 2
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/gridiron/internal/football"
)

const (
	DefaultRating = 70
	MinRating     = 1
	MaxRating     = 99
)

// League represents a complete league file
type League struct {
	Name   string        `hcl:"name,optional"`
	Seed   int64         `hcl:"seed,optional"`
	Teams  []TeamConfig  `hcl:"team,block"`
	Games  []GameConfig  `hcl:"game,block"`
	Tuning *TuningConfig `hcl:"tuning,block"`
}

// TeamConfig defines a team and its starters
type TeamConfig struct {
	ID      string         `hcl:"id,label"`
	Name    string         `hcl:"name,optional"`
	Offense int            `hcl:"offense"`
	Defense int            `hcl:"defense"`
	Players []PlayerConfig `hcl:"player,block"`
}

// PlayerConfig defines one starter
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	ID       string `hcl:"id,optional"`
	Position string `hcl:"position"`
	Rating   int    `hcl:"rating,optional"`
}

// GameConfig schedules one game
type GameConfig struct {
	ID      string `hcl:"id,label"`
	Home    string `hcl:"home"`
	Away    string `hcl:"away"`
	Neutral bool   `hcl:"neutral,optional"`
}

// TuningConfig overrides individual simulation constants. Unset attributes
// keep their defaults.
type TuningConfig struct {
	QuarterSeconds        *int     `hcl:"quarter_seconds,optional"`
	FirstDownDistance     *int     `hcl:"first_down_distance,optional"`
	OvertimeStart         *int     `hcl:"overtime_start,optional"`
	MaxDrivePlays         *int     `hcl:"max_drive_plays,optional"`
	MaxGameDrives         *int     `hcl:"max_game_drives,optional"`
	HomeFieldBonus        *int     `hcl:"home_field_bonus,optional"`
	RatingScale           *float64 `hcl:"rating_scale,optional"`
	MultiplierMin         *float64 `hcl:"multiplier_min,optional"`
	MultiplierMax         *float64 `hcl:"multiplier_max,optional"`
	RunMean               *float64 `hcl:"run_mean,optional"`
	RunStdDev             *float64 `hcl:"run_std_dev,optional"`
	PassMean              *float64 `hcl:"pass_mean,optional"`
	PassStdDev            *float64 `hcl:"pass_std_dev,optional"`
	Amplify               *float64 `hcl:"amplify,optional"`
	MaxPlayGain           *int     `hcl:"max_play_gain,optional"`
	SackRate              *float64 `hcl:"sack_rate,optional"`
	SackSwing             *float64 `hcl:"sack_swing,optional"`
	CompletionRate        *float64 `hcl:"completion_rate,optional"`
	CompletionSwing       *float64 `hcl:"completion_swing,optional"`
	InterceptionRate      *float64 `hcl:"interception_rate,optional"`
	InterceptionSwing     *float64 `hcl:"interception_swing,optional"`
	FumbleRate            *float64 `hcl:"fumble_rate,optional"`
	FumbleSwing           *float64 `hcl:"fumble_swing,optional"`
	RateBand              *float64 `hcl:"rate_band,optional"`
	RateCeiling           *float64 `hcl:"rate_ceiling,optional"`
	OutOfBoundsRate       *float64 `hcl:"out_of_bounds_rate,optional"`
	FieldGoalAllowance    *int     `hcl:"field_goal_allowance,optional"`
	PuntNet               *int     `hcl:"punt_net,optional"`
	Touchback             *int     `hcl:"touchback,optional"`
	KickoffTouchback      *int     `hcl:"kickoff_touchback,optional"`
	KickoffTouchbackRate  *float64 `hcl:"kickoff_touchback_rate,optional"`
	KickoffReturnMin      *int     `hcl:"kickoff_return_min,optional"`
	KickoffReturnMax      *int     `hcl:"kickoff_return_max,optional"`
	LateHalfWindow        *int     `hcl:"late_half_window,optional"`
	LateGameWindow        *int     `hcl:"late_game_window,optional"`
	PassWeightBase        *float64 `hcl:"pass_weight_base,optional"`
	PassWeightMin         *float64 `hcl:"pass_weight_min,optional"`
	PassWeightMax         *float64 `hcl:"pass_weight_max,optional"`
	AvgPossessionSeconds  *int     `hcl:"avg_possession_seconds,optional"`
	MinFieldGoalChance    *float64 `hcl:"min_field_goal_chance,optional"`
	LongYardage           *int     `hcl:"long_yardage,optional"`
	MediumYardage         *int     `hcl:"medium_yardage,optional"`
	ShortYardage          *int     `hcl:"short_yardage,optional"`
	LongBonus             *float64 `hcl:"long_bonus,optional"`
	MediumBonus           *float64 `hcl:"medium_bonus,optional"`
	ShortPenalty          *float64 `hcl:"short_penalty,optional"`
	TrailingLateBonus     *float64 `hcl:"trailing_late_bonus,optional"`
	LeadingLatePenalty    *float64 `hcl:"leading_late_penalty,optional"`
	LastSecondsKick       *int     `hcl:"last_seconds_kick,optional"`
	OwnTerritoryLine      *int     `hcl:"own_territory_line,optional"`
	ScoringTerritoryLine  *int     `hcl:"scoring_territory_line,optional"`
	GoalToGoLine          *int     `hcl:"goal_to_go_line,optional"`
	DesperationLine       *int     `hcl:"desperation_line,optional"`
	MidfieldGoDistance    *int     `hcl:"midfield_go_distance,optional"`
	ShortGoDistance       *int     `hcl:"short_go_distance,optional"`
	GoalToGoGoDistance    *int     `hcl:"goal_to_go_go_distance,optional"`
	DesperationGoDistance *int     `hcl:"desperation_go_distance,optional"`
}

// Apply returns base with every set override applied.
func (c *TuningConfig) Apply(base football.Tuning) football.Tuning {
	if c == nil {
		return base
	}
	set(&base.QuarterSeconds, c.QuarterSeconds)
	set(&base.FirstDownDistance, c.FirstDownDistance)
	set(&base.OvertimeStart, c.OvertimeStart)
	set(&base.MaxDrivePlays, c.MaxDrivePlays)
	set(&base.MaxGameDrives, c.MaxGameDrives)
	set(&base.HomeFieldBonus, c.HomeFieldBonus)
	set(&base.RatingScale, c.RatingScale)
	set(&base.MultiplierMin, c.MultiplierMin)
	set(&base.MultiplierMax, c.MultiplierMax)
	set(&base.RunMean, c.RunMean)
	set(&base.RunStdDev, c.RunStdDev)
	set(&base.PassMean, c.PassMean)
	set(&base.PassStdDev, c.PassStdDev)
	set(&base.Amplify, c.Amplify)
	set(&base.MaxPlayGain, c.MaxPlayGain)
	set(&base.SackRate, c.SackRate)
	set(&base.SackSwing, c.SackSwing)
	set(&base.CompletionRate, c.CompletionRate)
	set(&base.CompletionSwing, c.CompletionSwing)
	set(&base.InterceptionRate, c.InterceptionRate)
	set(&base.InterceptionSwing, c.InterceptionSwing)
	set(&base.FumbleRate, c.FumbleRate)
	set(&base.FumbleSwing, c.FumbleSwing)
	set(&base.RateBand, c.RateBand)
	set(&base.RateCeiling, c.RateCeiling)
	set(&base.OutOfBoundsRate, c.OutOfBoundsRate)
	set(&base.FieldGoalAllowance, c.FieldGoalAllowance)
	set(&base.PuntNet, c.PuntNet)
	set(&base.Touchback, c.Touchback)
	set(&base.KickoffTouchback, c.KickoffTouchback)
	set(&base.KickoffTouchbackRate, c.KickoffTouchbackRate)
	set(&base.KickoffReturnMin, c.KickoffReturnMin)
	set(&base.KickoffReturnMax, c.KickoffReturnMax)
	set(&base.LateHalfWindow, c.LateHalfWindow)
	set(&base.LateGameWindow, c.LateGameWindow)
	set(&base.PassWeightBase, c.PassWeightBase)
	set(&base.PassWeightMin, c.PassWeightMin)
	set(&base.PassWeightMax, c.PassWeightMax)
	set(&base.AvgPossessionSeconds, c.AvgPossessionSeconds)
	set(&base.MinFieldGoalChance, c.MinFieldGoalChance)
	set(&base.LongYardage, c.LongYardage)
	set(&base.MediumYardage, c.MediumYardage)
	set(&base.ShortYardage, c.ShortYardage)
	set(&base.LongBonus, c.LongBonus)
	set(&base.MediumBonus, c.MediumBonus)
	set(&base.ShortPenalty, c.ShortPenalty)
	set(&base.TrailingLateBonus, c.TrailingLateBonus)
	set(&base.LeadingLatePenalty, c.LeadingLatePenalty)
	set(&base.LastSecondsKick, c.LastSecondsKick)
	set(&base.OwnTerritoryLine, c.OwnTerritoryLine)
	set(&base.ScoringTerritoryLine, c.ScoringTerritoryLine)
	set(&base.GoalToGoLine, c.GoalToGoLine)
	set(&base.DesperationLine, c.DesperationLine)
	set(&base.MidfieldGoDistance, c.MidfieldGoDistance)
	set(&base.ShortGoDistance, c.ShortGoDistance)
	set(&base.GoalToGoGoDistance, c.GoalToGoGoDistance)
	set(&base.DesperationGoDistance, c.DesperationGoDistance)
	return base
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// LoadLeague loads a league from an HCL file. A missing file yields the
// built-in default league.
func LoadLeague(filename string) (*League, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultLeague(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// ParseLeague parses league source. filename is only used in diagnostics.
func ParseLeague(src []byte, filename string) (*League, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*League, error) {
	var league League
	if diags := gohcl.DecodeBody(body, nil, &league); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	league.applyDefaults()
	return &league, nil
}

func (l *League) applyDefaults() {
	if l.Name == "" {
		l.Name = "League"
	}
	for i := range l.Teams {
		team := &l.Teams[i]
		if team.Name == "" {
			team.Name = strings.ToUpper(team.ID)
		}
		for j := range team.Players {
			p := &team.Players[j]
			p.Position = strings.ToUpper(strings.TrimSpace(p.Position))
			if p.Rating == 0 {
				p.Rating = DefaultRating
			}
			if p.ID == "" {
				p.ID = team.ID + "-" + slug(p.Name)
			}
		}
	}
}

// Validate checks ratings, positions and the schedule.
func (l *League) Validate() error {
	if len(l.Teams) < 2 {
		return errors.New("at least two teams must be configured")
	}

	teams := make(map[string]bool, len(l.Teams))
	players := make(map[string]string)
	for _, team := range l.Teams {
		if team.ID == "" {
			return errors.New("team id must not be empty")
		}
		if teams[team.ID] {
			return fmt.Errorf("team %s: duplicate id", team.ID)
		}
		teams[team.ID] = true
		if err := checkRating(team.Offense); err != nil {
			return fmt.Errorf("team %s: offense %w", team.ID, err)
		}
		if err := checkRating(team.Defense); err != nil {
			return fmt.Errorf("team %s: defense %w", team.ID, err)
		}
		for _, p := range team.Players {
			if !validPosition(p.Position) {
				return fmt.Errorf("team %s: player %s: invalid position %q", team.ID, p.Name, p.Position)
			}
			if err := checkRating(p.Rating); err != nil {
				return fmt.Errorf("team %s: player %s: %w", team.ID, p.Name, err)
			}
			if other, ok := players[p.ID]; ok {
				return fmt.Errorf("team %s: player id %s already used by team %s", team.ID, p.ID, other)
			}
			players[p.ID] = team.ID
		}
	}

	games := make(map[string]bool, len(l.Games))
	for _, g := range l.Games {
		if games[g.ID] {
			return fmt.Errorf("game %s: duplicate id", g.ID)
		}
		games[g.ID] = true
		if !teams[g.Home] {
			return fmt.Errorf("game %s: unknown home team %s", g.ID, g.Home)
		}
		if !teams[g.Away] {
			return fmt.Errorf("game %s: unknown away team %s", g.ID, g.Away)
		}
		if g.Home == g.Away {
			return fmt.Errorf("game %s: a team cannot play itself", g.ID)
		}
	}

	if _, err := l.SimTuning(); err != nil {
		return err
	}
	return nil
}

// SimTuning returns the default constants with the league's overrides.
func (l *League) SimTuning() (football.Tuning, error) {
	t := l.Tuning.Apply(football.DefaultTuning())
	if err := t.Validate(); err != nil {
		return football.Tuning{}, fmt.Errorf("tuning: %w", err)
	}
	return t, nil
}

// Team returns a team by id.
func (l *League) Team(id string) *TeamConfig {
	for i := range l.Teams {
		if l.Teams[i].ID == id {
			return &l.Teams[i]
		}
	}
	return nil
}

// Matchup builds the engine input for home against away.
func (l *League) Matchup(id, home, away string, neutral bool) (football.Matchup, error) {
	h, a := l.Team(home), l.Team(away)
	if h == nil {
		return football.Matchup{}, fmt.Errorf("unknown team %s", home)
	}
	if a == nil {
		return football.Matchup{}, fmt.Errorf("unknown team %s", away)
	}
	return football.Matchup{
		ID:      id,
		Teams:   [2]football.Team{h.team(), a.team()},
		Lineups: [2]football.Lineup{h.lineup(), a.lineup()},
		Neutral: neutral,
	}, nil
}

// Matchups builds every scheduled game in file order.
func (l *League) Matchups() ([]football.Matchup, error) {
	out := make([]football.Matchup, 0, len(l.Games))
	for _, g := range l.Games {
		m, err := l.Matchup(g.ID, g.Home, g.Away, g.Neutral)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", g.ID, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (t *TeamConfig) team() football.Team {
	return football.Team{ID: t.ID, Name: t.Name, Offense: t.Offense, Defense: t.Defense}
}

func (t *TeamConfig) lineup() football.Lineup {
	l := football.Lineup{}
	for _, p := range t.Players {
		pos := football.Position(p.Position)
		l[pos] = append(l[pos], football.Player{ID: p.ID, Name: p.Name, Position: pos, Rating: p.Rating})
	}
	return l
}

func checkRating(r int) error {
	if r < MinRating || r > MaxRating {
		return fmt.Errorf("rating %d outside %d-%d", r, MinRating, MaxRating)
	}
	return nil
}

func validPosition(p string) bool {
	for _, pos := range football.Positions {
		if string(pos) == p {
			return true
		}
	}
	return false
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/gridiron/internal/config"
	"github.com/lox/gridiron/internal/football"
)

// LeagueFlags selects the league file shared by every command.
type LeagueFlags struct {
	League string `short:"l" default:"league.hcl" type:"path" help:"League file (the built-in league is used when it does not exist)"`
}

func (f LeagueFlags) load() (*config.League, error) {
	league, err := config.LoadLeague(f.League)
	if err != nil {
		return nil, err
	}
	if err := league.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", f.League, err)
	}
	return league, nil
}

// MatchupFlags picks a scheduled game or an ad hoc pairing.
type MatchupFlags struct {
	Game    string `arg:"" optional:"" help:"Scheduled game id (defaults to the first game in the league)"`
	Home    string `help:"Home team id, overriding the schedule"`
	Away    string `help:"Away team id, overriding the schedule"`
	Neutral bool   `help:"Play at a neutral site"`
}

func (f MatchupFlags) resolve(league *config.League) (football.Matchup, error) {
	if f.Home != "" || f.Away != "" {
		if f.Home == "" || f.Away == "" {
			return football.Matchup{}, errors.New("--home and --away must be given together")
		}
		if f.Home == f.Away {
			return football.Matchup{}, fmt.Errorf("team %s cannot play itself", f.Home)
		}
		id := f.Game
		if id == "" {
			id = f.Away + "-at-" + f.Home
		}
		return league.Matchup(id, f.Home, f.Away, f.Neutral)
	}

	if len(league.Games) == 0 {
		return football.Matchup{}, errors.New("league has no games scheduled; use --home and --away")
	}
	game := league.Games[0]
	if f.Game != "" {
		found := false
		for _, g := range league.Games {
			if g.ID == f.Game {
				game, found = g, true
				break
			}
		}
		if !found {
			return football.Matchup{}, fmt.Errorf("no game %q in league %s", f.Game, league.Name)
		}
	}
	return league.Matchup(game.ID, game.Home, game.Away, game.Neutral || f.Neutral)
}

// resolveSeed prefers the flag, then the league seed, then the wall clock.
func resolveSeed(flag *int64, league *config.League, logger *log.Logger) int64 {
	switch {
	case flag != nil:
		logger.Debug("Using deterministic seed", "seed", *flag)
		return *flag
	case league.Seed != 0:
		logger.Debug("Using league seed", "seed", league.Seed)
		return league.Seed
	}
	seed := time.Now().UnixNano()
	logger.Info("Using random seed", "seed", seed)
	return seed
}

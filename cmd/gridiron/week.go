package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/gridiron/internal/history"
	"github.com/lox/gridiron/internal/simulator"
)

// WeekCmd plays the league's whole schedule.
type WeekCmd struct {
	LeagueFlags `embed:""`

	Seed    *int64 `help:"Deterministic RNG seed; game i uses seed+i"`
	Workers int    `default:"0" help:"Parallel games (0 = GOMAXPROCS)"`
	Drives  bool   `help:"Print each game's drive summaries"`
	LogDir  string `type:"path" help:"Write a TOML game log per game into this directory"`
}

func (c *WeekCmd) Run(logger *log.Logger) error {
	league, err := c.load()
	if err != nil {
		return err
	}
	matchups, err := league.Matchups()
	if err != nil {
		return err
	}
	if len(matchups) == 0 {
		return fmt.Errorf("league %s has no games scheduled", league.Name)
	}
	tuning, err := league.SimTuning()
	if err != nil {
		return err
	}
	seed := resolveSeed(c.Seed, league, logger)

	ctx := setupSignalHandler(logger)
	start := time.Now()
	reports, err := simulator.RunSlate(ctx, matchups, simulator.SlateConfig{
		Seed:    seed,
		Tuning:  &tuning,
		Workers: c.Workers,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	logger.Info("Slate complete", "league", league.Name, "games", len(reports), "duration", time.Since(start).Round(time.Millisecond))

	fmt.Println(titleStyle.Render(league.Name))
	for _, r := range reports {
		if c.Drives {
			fmt.Println()
			printGame(os.Stdout, r, false)
		} else {
			fmt.Printf("%-10s %s\n", r.Matchup.ID, scoreLine(r.Result.Game))
		}
	}

	if c.LogDir == "" {
		return nil
	}
	played := time.Now()
	for _, r := range reports {
		gl, err := history.New(r.Result, r.Seed, r.Box, played)
		if err != nil {
			return err
		}
		gl.League = league.Name
		path := filepath.Join(c.LogDir, r.Matchup.ID+".toml")
		if err := history.Write(path, gl); err != nil {
			return fmt.Errorf("write game log: %w", err)
		}
		logger.Debug("Wrote game log", "path", path)
	}
	logger.Info("Wrote game logs", "dir", c.LogDir, "games", len(reports))
	return nil
}

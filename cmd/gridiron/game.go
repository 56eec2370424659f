package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/history"
	"github.com/lox/gridiron/internal/simulator"
)

// GameCmd simulates a single game.
type GameCmd struct {
	LeagueFlags  `embed:""`
	MatchupFlags `embed:""`

	Seed  *int64 `help:"Deterministic RNG seed (defaults to the league seed)"`
	Quiet bool   `short:"q" help:"Only print drive summaries and the final score"`
	NoBox bool   `help:"Skip the box score"`
	Out   string `short:"o" type:"path" help:"Write a TOML game log to this path"`
}

func (c *GameCmd) Run(logger *log.Logger) error {
	league, err := c.load()
	if err != nil {
		return err
	}
	m, err := c.resolve(league)
	if err != nil {
		return err
	}
	tuning, err := league.SimTuning()
	if err != nil {
		return err
	}
	seed := resolveSeed(c.Seed, league, logger)

	reports, err := simulator.RunSlate(context.Background(), []football.Matchup{m}, simulator.SlateConfig{
		Seed:    seed,
		Tuning:  &tuning,
		Workers: 1,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	report := reports[0]

	printGame(os.Stdout, report, !c.Quiet)
	if !c.NoBox {
		printBoxScore(os.Stdout, report.Result.Game, report.Box)
	}

	if c.Out != "" {
		gl, err := history.New(report.Result, report.Seed, report.Box, time.Now())
		if err != nil {
			return err
		}
		gl.League = league.Name
		if err := history.Write(c.Out, gl); err != nil {
			return fmt.Errorf("write game log: %w", err)
		}
		logger.Info("Wrote game log", "path", c.Out)
	}
	return nil
}

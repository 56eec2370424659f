package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/gridiron/internal/simulator"
)

// BenchCmd measures one matchup over many seeded games.
type BenchCmd struct {
	LeagueFlags  `embed:""`
	MatchupFlags `embed:""`

	Games     int    `short:"n" default:"1000" help:"Number of games to simulate"`
	Seed      *int64 `help:"Base RNG seed; game i uses seed+i"`
	Workers   int    `default:"0" help:"Parallel games (0 = GOMAXPROCS)"`
	Duplicate bool   `help:"Replay every seed with home and away swapped"`
}

func (c *BenchCmd) Run(logger *log.Logger) error {
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

	sim := simulator.New(simulator.Config{
		Games:     c.Games,
		Seed:      seed,
		Matchup:   m,
		Tuning:    &tuning,
		Duplicate: c.Duplicate,
		Workers:   c.Workers,
		Logger:    logger,
	})

	logger.Info("Starting simulation", "home", m.Teams[0].Name, "away", m.Teams[1].Name,
		"games", c.Games, "seed", seed, "duplicate", c.Duplicate)
	start := time.Now()
	stats, err := sim.Run(setupSignalHandler(logger))
	if err != nil {
		return err
	}
	if err := stats.Validate(); err != nil {
		logger.Warn("Statistics failed validation", "error", err)
	}
	logger.Info("Simulation complete", "duration", time.Since(start).Round(time.Millisecond))

	simulator.PrintSummary(stats, m)
	return nil
}

package simulator

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/gridiron/internal/boxscore"
	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/gameid"
	"github.com/lox/gridiron/internal/randutil"
	"github.com/lox/gridiron/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Seed    int64
	Matchup football.Matchup
	// Tuning overrides the default constants when set.
	Tuning *football.Tuning
	// Duplicate replays every seed with the teams' home and away roles
	// swapped, cancelling out home-field advantage.
	Duplicate bool
	// Workers bounds parallel games. Zero means GOMAXPROCS.
	Workers int
	Logger  *log.Logger
}

// Simulator runs many seeded games of one matchup.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config}
}

// Run plays every game and returns statistics from the point of view of the
// matchup as configured: Home is Matchup.Teams[0] even in swapped replays.
// Game i uses seed Seed+i, so results do not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	tuning := s.tuning()
	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	legs := 1
	if s.config.Duplicate {
		legs = 2
	}
	results := make([]statistics.GameResult, s.config.Games*legs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i := range s.config.Games {
		seed := s.config.Seed + int64(i)
		for leg := range legs {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				m := s.config.Matchup
				if leg == 1 {
					m = Mirror(m)
				}
				res, err := PlayGame(seed, m, tuning, s.config.Logger)
				if err != nil {
					return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
				}
				r := statistics.FromResult(seed, res)
				if leg == 1 {
					r.Score[0], r.Score[1] = r.Score[1], r.Score[0]
				}
				results[i*legs+leg] = r
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	s.config.Logger.Debug("Simulation complete", "games", stats.Games, "mean_margin", stats.Mean())
	return stats, nil
}

func (s *Simulator) tuning() football.Tuning {
	if s.config.Tuning != nil {
		return *s.config.Tuning
	}
	return football.DefaultTuning()
}

func (s *Simulator) workers() int {
	if s.config.Workers > 0 {
		return s.config.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// PlayGame simulates one game on its own random stream and id sequence.
func PlayGame(seed int64, m football.Matchup, t football.Tuning, logger *log.Logger) (*football.Result, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	e := football.NewEngine(randutil.New(seed),
		football.WithTuning(t),
		football.WithIDs(&gameid.Sequence{}),
		football.WithLogger(logger.With("seed", seed)),
	)
	return e.PlayGame(football.NewGame(m, t))
}

// Mirror swaps the home and away teams.
func Mirror(m football.Matchup) football.Matchup {
	m.Teams[0], m.Teams[1] = m.Teams[1], m.Teams[0]
	m.Lineups[0], m.Lineups[1] = m.Lineups[1], m.Lineups[0]
	return m
}

// GameReport is one finished game of a slate.
type GameReport struct {
	Matchup football.Matchup
	Seed    int64
	Result  *football.Result
	Box     *boxscore.BoxScore
}

// SlateConfig configures RunSlate.
type SlateConfig struct {
	Seed    int64
	Tuning  *football.Tuning
	Workers int
	Logger  *log.Logger
}

// RunSlate plays a week of independent games in parallel. Game i uses seed
// Seed+i and reports come back in input order. Cancelling ctx stops games
// that have not started yet.
func RunSlate(ctx context.Context, matchups []football.Matchup, cfg SlateConfig) ([]GameReport, error) {
	sim := New(Config{Tuning: cfg.Tuning, Workers: cfg.Workers, Logger: cfg.Logger})
	tuning := sim.tuning()
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	logger := sim.config.Logger.WithPrefix("slate")

	reports := make([]GameReport, len(matchups))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sim.workers())
	for i, m := range matchups {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := cfg.Seed + int64(i)
			stream := randutil.NewStream(seed)
			e := football.NewEngine(stream.Rand(),
				football.WithTuning(tuning),
				football.WithIDs(&gameid.Sequence{}),
				football.WithLogger(logger.With("game", m.ID)),
			)
			res, err := e.PlayGame(football.NewGame(m, tuning))
			if err != nil {
				return fmt.Errorf("game %s: %w", m.ID, err)
			}
			reports[i] = GameReport{
				Matchup: m,
				Seed:    seed,
				Result:  res,
				Box:     boxscore.Attribute(stream.Rand(), res.Plays(), m.Lineups),
			}
			logger.Debug("Game final", "game", m.ID,
				"home", m.Teams[football.Home].Name, "away", m.Teams[football.Away].Name,
				"score", fmt.Sprintf("%d-%d", res.Game.Score[0], res.Game.Score[1]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// PrintSummary prints a summary of simulation results to stdout.
func PrintSummary(stats *statistics.Statistics, m football.Matchup) {
	FprintSummary(os.Stdout, stats, m)
}

// FprintSummary writes a summary of simulation results to w.
func FprintSummary(w io.Writer, stats *statistics.Statistics, m football.Matchup) {
	home, away := m.Teams[football.Home].Name, m.Teams[football.Away].Name
	low, high := stats.ConfidenceInterval95()
	wlo, whi := stats.WinRateCI95(football.Home)

	fmt.Fprintf(w, "\n=== FINAL RESULTS: %s vs %s ===\n", home, away)
	fmt.Fprintf(w, "Games played: %d\n", stats.Games)

	fmt.Fprintf(w, "\n=== MARGIN (%s minus %s) ===\n", home, away)
	fmt.Fprintf(w, "Mean: %.2f points/game\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.2f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.2f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.3f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== RESULTS ===\n")
	fmt.Fprintf(w, "%s wins: %d (%.1f%%, 95%% CI %.1f%%-%.1f%%)\n", home,
		stats.Sides[football.Home].Wins, stats.WinRate(football.Home)*100, wlo*100, whi*100)
	fmt.Fprintf(w, "%s wins: %d (%.1f%%)\n", away, stats.Sides[football.Away].Wins, stats.WinRate(football.Away)*100)
	fmt.Fprintf(w, "Points/game: %s %.1f, %s %.1f\n", home, stats.PointsPerGame(football.Home), away, stats.PointsPerGame(football.Away))
	fmt.Fprintf(w, "Overtime: %d games (%.1f%%), %d periods\n", stats.Overtimes, stats.OvertimeRate()*100, stats.OTPeriods)
	fmt.Fprintf(w, "One-score games: %d, blowouts (>21): %d, shutouts: %d, max margin: %d\n",
		stats.OneScore, stats.Blowouts, stats.Shutouts, stats.MaxMargin)

	fmt.Fprintf(w, "\n=== DRIVES ===\n")
	fmt.Fprintf(w, "Drives/game: %.1f, plays/game: %.1f, turnovers/game: %.2f\n",
		stats.DrivesPerGame(), stats.PlaysPerGame(), float64(stats.Turnovers)/float64(max(stats.Games, 1)))
	for _, r := range driveResultOrder {
		n := stats.DriveResults[r]
		if n == 0 || stats.Drives == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-18s %6d (%.1f%%)\n", r, n, float64(n)/float64(stats.Drives)*100)
	}
}

var driveResultOrder = []football.DriveResult{
	football.DriveTouchdown,
	football.DriveFieldGoal,
	football.DriveMissedFieldGoal,
	football.DrivePunt,
	football.DriveTurnoverOnDowns,
	football.DriveInterception,
	football.DriveFumble,
	football.DriveSafety,
	football.DriveEndOfHalf,
	football.DriveEndOfGame,
}

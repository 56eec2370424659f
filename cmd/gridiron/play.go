package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/gridiron/internal/boxscore"
	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/gameid"
	"github.com/lox/gridiron/internal/history"
	"github.com/lox/gridiron/internal/randutil"
	"github.com/lox/gridiron/internal/session"
	"github.com/lox/gridiron/internal/tui"
)

// PlayCmd runs an interactive game in the terminal.
type PlayCmd struct {
	LeagueFlags  `embed:""`
	MatchupFlags `embed:""`

	Side     string `enum:"home,away" default:"home" help:"Team you coach (home or away)"`
	Spectate bool   `help:"Watch without calling plays"`
	Seed     *int64 `help:"Deterministic RNG seed (defaults to the league seed)"`
	Dir      string `default:".gridiron" type:"path" help:"Directory for saved games"`
	Resume   string `help:"Resume the saved game with this id"`
	Out      string `short:"o" type:"path" help:"Write a TOML game log here when the game ends"`
	LogFile  string `default:"gridiron.log" type:"path" help:"Debug log file (the terminal belongs to the UI)"`
}

func (c *PlayCmd) Run(logger *log.Logger) error {
	debugFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create debug log: %w", err)
	}
	defer func() {
		if err := debugFile.Close(); err != nil {
			logger.Error("Failed to close debug file", "error", err)
		}
	}()
	fileLogger := log.NewWithOptions(debugFile, log.Options{
		Level:           logger.GetLevel(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	league, err := c.load()
	if err != nil {
		return err
	}
	tuning, err := league.SimTuning()
	if err != nil {
		return err
	}
	opts := []session.Option{session.WithTuning(tuning)}
	if c.Spectate {
		opts = append(opts, session.Spectate())
	}
	mgr := session.NewManager(session.ManagerConfig{
		Dir:     c.Dir,
		Logger:  fileLogger,
		Options: opts,
	})

	id := c.Resume
	var seed int64
	if id != "" {
		if _, err := mgr.Load(id); err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return fmt.Errorf("no saved game %s in %s", id, c.Dir)
			}
			return err
		}
	} else {
		m, err := c.resolve(league)
		if err != nil {
			return err
		}
		human := football.Home
		if c.Side == "away" {
			human = football.Away
		}
		seed = resolveSeed(c.Seed, league, fileLogger)
		id = gameid.Generate()
		if _, err := mgr.Start(id, seed, m, human); err != nil {
			return err
		}
	}

	var s *session.Session
	if _, err := mgr.Do(id, func(sess *session.Session) (session.Update, error) {
		s = sess
		return sess.State(), nil
	}); err != nil {
		return err
	}

	model := tui.NewTUIModel(s, fileLogger)
	model.SetSaveFunc(func(*session.Session) error { return mgr.Save(id) })
	runErr := tui.Run(model)

	if err := mgr.Close(id); err != nil {
		logger.Error("Failed to save game", "game", id, "error", err)
	}
	if runErr != nil {
		return runErr
	}

	res := s.Result()
	if res == nil {
		fmt.Printf("Game saved. Resume with: gridiron play --resume %s\n", id)
		return nil
	}
	fmt.Println(finalStyle.Render(scoreLine(res.Game)))
	if c.Out == "" {
		return nil
	}
	box := boxscore.Attribute(randutil.New(seed), res.Plays(), res.Game.Lineups)
	gl, err := history.New(res, seed, box, time.Now())
	if err != nil {
		return err
	}
	gl.League = league.Name
	if err := history.Write(c.Out, gl); err != nil {
		return fmt.Errorf("write game log: %w", err)
	}
	logger.Info("Wrote game log", "path", c.Out)
	return nil
}

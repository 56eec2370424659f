// Package session lets a caller coach one team through a game a play at a
// time. A Session wraps the football engine with the same possession rules
// the batch simulator uses, and can be suspended between any two plays.
package session

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/gameid"
	"github.com/lox/gridiron/internal/randutil"
)

// DefaultPlayLimit bounds ToEnd. A regulation game runs around 150 plays.
const DefaultPlayLimit = 2000

var (
	ErrNotYourBall = errors.New("human team is not on offense")
	ErrNotStarted  = errors.New("session not started")
	ErrStarted     = errors.New("session already started")
)

// Session is one interactive game. It is not safe for concurrent use; a
// Manager serializes access when sessions are shared.
type Session struct {
	stream *randutil.Stream
	ids    *gameid.Sequence
	engine *football.Engine
	game   *football.Game
	cursor football.DriveCursor
	drives []football.Drive

	human     football.Side
	coached   bool
	started   bool
	playLimit int
	tuning    football.Tuning
	logger    *log.Logger

	// err is the first engine failure. Once set the session is unusable.
	err error
}

// Option configures a Session during creation.
type Option func(*config)

type config struct {
	tuning    football.Tuning
	logger    *log.Logger
	playLimit int
	spectate  bool
}

// WithTuning replaces the default engine constants.
func WithTuning(t football.Tuning) Option {
	return func(c *config) { c.tuning = t }
}

// WithLogger sets the session and engine logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithPlayLimit overrides DefaultPlayLimit for ToEnd.
func WithPlayLimit(n int) Option {
	return func(c *config) { c.playLimit = n }
}

// Spectate hands both teams to the automatic play caller. Submit always
// returns ErrNotYourBall.
func Spectate() Option {
	return func(c *config) { c.spectate = true }
}

func newConfig(opts []Option) *config {
	cfg := &config{
		tuning:    football.DefaultTuning(),
		playLimit: DefaultPlayLimit,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return cfg
}

// New creates a session for m in which the caller coaches human. The game
// draws its randomness from a stream seeded with seed, so a session played
// entirely with automatic calls reproduces the batch simulation of the same
// seed.
func New(seed int64, m football.Matchup, human football.Side, opts ...Option) *Session {
	cfg := newConfig(opts)
	s := &Session{
		stream:    randutil.NewStream(seed),
		ids:       &gameid.Sequence{},
		human:     human,
		coached:   !cfg.spectate,
		playLimit: cfg.playLimit,
		tuning:    cfg.tuning,
		logger:    cfg.logger.WithPrefix("session").With("game", m.ID),
	}
	s.engine = s.newEngine(cfg.logger)
	s.game = football.NewGame(m, cfg.tuning)
	return s
}

func (s *Session) newEngine(logger *log.Logger) *football.Engine {
	return football.NewEngine(s.stream.Rand(),
		football.WithTuning(s.tuning),
		football.WithIDs(s.ids),
		football.WithLogger(logger),
	)
}

// Start tosses the coin and sets up the opening drive.
func (s *Session) Start() (Update, error) {
	if s.started {
		return Update{}, ErrStarted
	}
	cur, err := s.engine.Open(s.game)
	if err != nil {
		return Update{}, err
	}
	s.cursor = cur
	s.started = true
	s.logger.Info("Session started", "human", s.human, "coached", s.coached, "opening", s.game.Opening)
	return s.update(nil, nil), nil
}

// Submit runs one play with the caller's decision. The human team must be
// on offense; CallAuto lets the policy pick this one play.
func (s *Session) Submit(call football.Call) (Update, error) {
	if err := s.ready(); err != nil {
		return Update{}, err
	}
	if !s.coached || s.cursor.Drive.Offense != s.human {
		return Update{}, ErrNotYourBall
	}
	var u collector
	if err := s.step(call, &u); err != nil {
		return Update{}, err
	}
	return s.update(u.plays, u.drives), nil
}

// AutoPlays runs up to n plays with automatic calls for both teams. It
// stops early at the final whistle.
func (s *Session) AutoPlays(n int) (Update, error) {
	if err := s.ready(); err != nil {
		return Update{}, err
	}
	var u collector
	for i := 0; i < n && !s.game.Final; i++ {
		if err := s.step(football.CallAuto, &u); err != nil {
			return Update{}, err
		}
	}
	return s.update(u.plays, u.drives), nil
}

// AutoDrive finishes the current drive with automatic calls.
func (s *Session) AutoDrive() (Update, error) {
	if err := s.ready(); err != nil {
		return Update{}, err
	}
	var u collector
	for len(u.drives) == 0 && !s.game.Final {
		if err := s.step(football.CallAuto, &u); err != nil {
			return Update{}, err
		}
	}
	return s.update(u.plays, u.drives), nil
}

// ToEnd plays the rest of the game with automatic calls. It fails with
// football.ErrRunaway if the game has not ended within the play limit.
func (s *Session) ToEnd() (Update, error) {
	if err := s.ready(); err != nil {
		return Update{}, err
	}
	var u collector
	for !s.game.Final {
		if len(u.plays) >= s.playLimit {
			s.err = fmt.Errorf("game %s still running after %d plays: %w", s.game.ID, len(u.plays), football.ErrRunaway)
			return Update{}, s.err
		}
		if err := s.step(football.CallAuto, &u); err != nil {
			return Update{}, err
		}
	}
	return s.update(u.plays, u.drives), nil
}

func (s *Session) ready() error {
	switch {
	case s.err != nil:
		return s.err
	case !s.started:
		return ErrNotStarted
	case s.game.Final:
		return football.ErrGameOver
	}
	return nil
}

type collector struct {
	plays  []football.Play
	drives []football.Drive
}

// step is the only place a session advances the game. It shares Step and
// ChangePossession with the batch path.
func (s *Session) step(call football.Call, u *collector) error {
	res, err := s.engine.Step(s.game, s.cursor, call)
	if err != nil {
		if !errors.Is(err, football.ErrUnknownCall) {
			s.err = err
			s.logger.Error("Session failed", "error", err)
		}
		return err
	}
	u.plays = append(u.plays, res.Play)
	if !res.DriveOver {
		s.cursor = res.Cursor
		return nil
	}

	s.drives = append(s.drives, res.Cursor.Drive)
	u.drives = append(u.drives, res.Cursor.Drive)

	next, ok, err := s.engine.ChangePossession(s.game, res)
	if err != nil {
		s.err = err
		s.logger.Error("Session failed", "error", err)
		return err
	}
	if !ok {
		s.cursor = football.DriveCursor{}
		s.logger.Info("Session final", "home", s.game.Score[football.Home], "away", s.game.Score[football.Away])
		return nil
	}
	s.cursor = next
	return nil
}

// Game returns the live scoreboard record. Callers must not modify it.
func (s *Session) Game() *football.Game {
	return s.game
}

// Human returns the side the caller coaches.
func (s *Session) Human() football.Side {
	return s.human
}

// Drives returns the completed drives so far.
func (s *Session) Drives() []football.Drive {
	return slices.Clone(s.drives)
}

// Result returns the finished game, or nil while it is still being played.
func (s *Session) Result() *football.Result {
	if !s.game.Final {
		return nil
	}
	return &football.Result{Game: s.game, Drives: s.Drives()}
}

// State reports the current scoreboard and prompt without advancing.
func (s *Session) State() Update {
	return s.update(nil, nil)
}

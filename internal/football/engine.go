package football

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/gridiron/internal/gameid"
)

// IDAllocator hands out drive and play ids. *gameid.Sequence satisfies it.
type IDAllocator interface {
	NextDrive() int
	NextPlay() int
}

// Engine resolves plays for one game. It owns the game's random stream, so
// an engine must not be shared between games or goroutines.
type Engine struct {
	rng     *rand.Rand
	tuning  Tuning
	clock   ClockModel
	outcome OutcomeModel
	policy  Policy
	ids     IDAllocator
	logger  *log.Logger
}

// EngineOption configures an Engine during creation.
type EngineOption func(*engineConfig)

type engineConfig struct {
	tuning Tuning
	ids    IDAllocator
	logger *log.Logger
}

// NewEngine creates an engine drawing every random decision from rng.
//
// Example usage:
//
//	// Deterministic game
//	e := NewEngine(randutil.New(42))
//
//	// Custom constants and a shared id sequence
//	e := NewEngine(rng, WithTuning(t), WithIDs(&seq))
func NewEngine(rng *rand.Rand, opts ...EngineOption) *Engine {
	if rng == nil {
		panic("rng is required for engine creation")
	}

	cfg := &engineConfig{
		tuning: DefaultTuning(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.ids == nil {
		cfg.ids = &gameid.Sequence{}
	}
	if cfg.logger == nil {
		cfg.logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	outcome := NewOutcomeModel(cfg.tuning)
	return &Engine{
		rng:     rng,
		tuning:  cfg.tuning,
		clock:   NewClockModel(cfg.tuning),
		outcome: outcome,
		policy:  NewPolicy(cfg.tuning, outcome),
		ids:     cfg.ids,
		logger:  cfg.logger,
	}
}

// WithTuning replaces the default constants.
func WithTuning(t Tuning) EngineOption {
	return func(c *engineConfig) {
		c.tuning = t
	}
}

// WithIDs sets the allocator for drive and play ids. The default is a
// fresh gameid.Sequence.
func WithIDs(ids IDAllocator) EngineOption {
	return func(c *engineConfig) {
		c.ids = ids
	}
}

// WithLogger sets the logger drive and game milestones are written to.
func WithLogger(logger *log.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// Tuning returns the constants the engine runs with.
func (e *Engine) Tuning() Tuning { return e.tuning }

// Policy returns the automatic play caller.
func (e *Engine) Policy() Policy { return e.policy }

// Outcome returns the outcome model.
func (e *Engine) Outcome() OutcomeModel { return e.outcome }

package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/gridiron/internal/fileutil"
	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/gameid"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExists   = errors.New("session already exists")
)

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// Dir is where snapshots are saved. Empty disables persistence.
	Dir string
	// IdleTimeout expires sessions nobody has touched for this long. Zero
	// keeps sessions until they are closed.
	IdleTimeout time.Duration
	Clock       quartz.Clock
	Logger      *log.Logger
	Options     []Option
}

// Manager keys sessions by game id. Calls for one game are serialized;
// different games proceed in parallel. Idle sessions are saved (when a
// directory is configured) and dropped.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	cfg      ManagerConfig
	logger   *log.Logger
}

type entry struct {
	mu       sync.Mutex
	session  *Session
	lastUsed time.Time
	timer    *quartz.Timer
	closed   bool
}

// NewManager creates a manager. A nil clock means the real clock.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Manager{
		sessions: make(map[string]*entry),
		cfg:      cfg,
		logger:   cfg.Logger.WithPrefix("sessions"),
	}
}

// Start creates and starts a session for gameID.
func (m *Manager) Start(gameID string, seed int64, match football.Matchup, human football.Side) (Update, error) {
	if err := gameid.Validate(gameID); err != nil {
		return Update{}, fmt.Errorf("invalid game id %q: %w", gameID, err)
	}
	match.ID = gameID
	s := New(seed, match, human, m.options()...)
	u, err := s.Start()
	if err != nil {
		return Update{}, err
	}
	if err := m.register(gameID, s); err != nil {
		return Update{}, err
	}
	m.logger.Info("Started session", "game", gameID, "home", match.Teams[football.Home].Name, "away", match.Teams[football.Away].Name)
	return u, nil
}

// Load restores gameID from its saved snapshot and registers it.
func (m *Manager) Load(gameID string) (Update, error) {
	if m.cfg.Dir == "" {
		return Update{}, fmt.Errorf("load %s: %w", gameID, ErrNotFound)
	}
	data, err := os.ReadFile(m.path(gameID))
	if errors.Is(err, os.ErrNotExist) {
		return Update{}, fmt.Errorf("load %s: %w", gameID, ErrNotFound)
	} else if err != nil {
		return Update{}, fmt.Errorf("load %s: %w", gameID, err)
	}
	s, err := UnmarshalSnapshot(data, m.options()...)
	if err != nil {
		return Update{}, fmt.Errorf("load %s: %w", gameID, err)
	}
	if err := m.register(gameID, s); err != nil {
		return Update{}, err
	}
	m.logger.Info("Loaded session", "game", gameID)
	return s.State(), nil
}

// Submit forwards a play call to gameID.
func (m *Manager) Submit(gameID string, call football.Call) (Update, error) {
	return m.Do(gameID, func(s *Session) (Update, error) { return s.Submit(call) })
}

// AutoPlays runs n automatic plays in gameID.
func (m *Manager) AutoPlays(gameID string, n int) (Update, error) {
	return m.Do(gameID, func(s *Session) (Update, error) { return s.AutoPlays(n) })
}

// AutoDrive finishes the current drive of gameID.
func (m *Manager) AutoDrive(gameID string) (Update, error) {
	return m.Do(gameID, (*Session).AutoDrive)
}

// ToEnd plays gameID to the final whistle.
func (m *Manager) ToEnd(gameID string) (Update, error) {
	return m.Do(gameID, (*Session).ToEnd)
}

// Do runs fn with exclusive access to the session for gameID and marks the
// session as used.
func (m *Manager) Do(gameID string, fn func(*Session) (Update, error)) (Update, error) {
	m.mu.Lock()
	e, ok := m.sessions[gameID]
	m.mu.Unlock()
	if !ok {
		return Update{}, fmt.Errorf("%s: %w", gameID, ErrNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return Update{}, fmt.Errorf("%s: %w", gameID, ErrNotFound)
	}
	e.lastUsed = m.cfg.Clock.Now()
	if e.timer != nil {
		e.timer.Reset(m.cfg.IdleTimeout)
	}
	return fn(e.session)
}

// Save writes the snapshot for gameID.
func (m *Manager) Save(gameID string) error {
	m.mu.Lock()
	e, ok := m.sessions[gameID]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: %w", gameID, ErrNotFound)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return m.save(gameID, e.session)
}

// Close saves and removes gameID.
func (m *Manager) Close(gameID string) error {
	m.mu.Lock()
	e, ok := m.sessions[gameID]
	delete(m.sessions, gameID)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: %w", gameID, ErrNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return m.retire(gameID, e)
}

// CloseAll saves and removes every session.
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := m.Close(id); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) register(gameID string, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[gameID]; ok {
		return fmt.Errorf("%s: %w", gameID, ErrExists)
	}
	e := &entry{session: s, lastUsed: m.cfg.Clock.Now()}
	if m.cfg.IdleTimeout > 0 {
		e.timer = m.cfg.Clock.AfterFunc(m.cfg.IdleTimeout, func() { m.expire(gameID, e) }, "session", "expire")
	}
	m.sessions[gameID] = e
	return nil
}

func (m *Manager) expire(gameID string, e *entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || m.cfg.Clock.Since(e.lastUsed) < m.cfg.IdleTimeout {
		return
	}

	m.mu.Lock()
	if m.sessions[gameID] == e {
		delete(m.sessions, gameID)
	}
	m.mu.Unlock()

	m.logger.Info("Session idle, expiring", "game", gameID, "idle", m.cfg.Clock.Since(e.lastUsed))
	if err := m.retire(gameID, e); err != nil {
		m.logger.Error("Failed to save expired session", "game", gameID, "error", err)
	}
}

// retire stops the entry's timer and saves it. e.mu must be held.
func (m *Manager) retire(gameID string, e *entry) error {
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
	}
	return m.save(gameID, e.session)
}

func (m *Manager) save(gameID string, s *Session) error {
	if m.cfg.Dir == "" {
		return nil
	}
	data, err := s.MarshalSnapshot()
	if err != nil {
		return fmt.Errorf("save %s: %w", gameID, err)
	}
	if err := fileutil.WriteFileAtomic(m.path(gameID), data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", gameID, err)
	}
	m.logger.Debug("Saved session", "game", gameID)
	return nil
}

func (m *Manager) path(gameID string) string {
	return filepath.Join(m.cfg.Dir, gameID+".json")
}

func (m *Manager) options() []Option {
	return append([]Option{WithLogger(m.cfg.Logger)}, m.cfg.Options...)
}

package session

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/gameid"
	"github.com/lox/gridiron/internal/randutil"
)

const snapshotVersion = 1

// Snapshot is everything a suspended session needs to resume: the game,
// the open drive, the completed drives, the position of the random stream
// and the id counters.
type Snapshot struct {
	Version int                  `json:"version"`
	Human   football.Side        `json:"human"`
	Coached bool                 `json:"coached"`
	Started bool                 `json:"started"`
	Tuning  football.Tuning      `json:"tuning"`
	Game    football.Game        `json:"game"`
	Cursor  football.DriveCursor `json:"cursor"`
	Drives  []football.Drive     `json:"drives"`
	RNG     []byte               `json:"rng"`
	IDs     gameid.Sequence      `json:"ids"`
}

// Snapshot captures the session between plays.
func (s *Session) Snapshot() (Snapshot, error) {
	if s.err != nil {
		return Snapshot{}, fmt.Errorf("cannot snapshot failed session: %w", s.err)
	}
	rng, err := s.stream.MarshalBinary()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot rng: %w", err)
	}
	cursor := s.cursor
	cursor.Drive.Plays = slices.Clone(cursor.Drive.Plays)
	return Snapshot{
		Version: snapshotVersion,
		Human:   s.human,
		Coached: s.coached,
		Started: s.started,
		Tuning:  s.tuning,
		Game:    *s.game,
		Cursor:  cursor,
		Drives:  slices.Clone(s.drives),
		RNG:     rng,
		IDs:     *s.ids,
	}, nil
}

// Restore rebuilds a session from a snapshot. The restored session plays
// on exactly as the original would have. Tuning comes from the snapshot;
// only logging options apply.
func Restore(snap Snapshot, opts ...Option) (*Session, error) {
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if err := snap.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot tuning: %w", err)
	}
	stream, err := randutil.RestoreStream(snap.RNG)
	if err != nil {
		return nil, err
	}
	cfg := newConfig(opts)

	game := snap.Game
	ids := snap.IDs
	s := &Session{
		stream:    stream,
		ids:       &ids,
		game:      &game,
		cursor:    snap.Cursor,
		drives:    slices.Clone(snap.Drives),
		human:     snap.Human,
		coached:   snap.Coached,
		started:   snap.Started,
		playLimit: cfg.playLimit,
		tuning:    snap.Tuning,
		logger:    cfg.logger.WithPrefix("session").With("game", game.ID),
	}
	s.engine = s.newEngine(cfg.logger)
	s.logger.Info("Session restored", "period", game.Period(), "clock", game.Clock(), "drives", len(s.drives))
	return s, nil
}

// MarshalSnapshot encodes the session as JSON.
func (s *Session) MarshalSnapshot() ([]byte, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snap, "", "  ")
}

// UnmarshalSnapshot decodes JSON written by MarshalSnapshot and restores it.
func UnmarshalSnapshot(data []byte, opts ...Option) (*Session, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return Restore(snap, opts...)
}

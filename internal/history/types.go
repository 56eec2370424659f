package history

import (
	"time"

	"github.com/lox/gridiron/internal/boxscore"
)

// GameLog is the archived record of one finished game.
type GameLog struct {
	Game     string   `toml:"game"`
	League   string   `toml:"league,omitempty"`
	Seed     int64    `toml:"seed"`
	Teams    []string `toml:"teams"`
	TeamIDs  []string `toml:"team_ids"`
	Score    []int    `toml:"score"`
	Winner   string   `toml:"winner"`
	Overtime int      `toml:"overtime,omitempty"`
	Neutral  bool     `toml:"neutral,omitempty"`
	Time     string   `toml:"time,omitempty"`

	Drives  []DriveEntry    `toml:"drives"`
	Players []boxscore.Line `toml:"players,omitempty"`

	Timestamp time.Time `toml:"-"`
}

// DriveEntry is one possession.
type DriveEntry struct {
	ID      int      `toml:"id"`
	Offense string   `toml:"offense"`
	Start   int      `toml:"start"`
	Result  string   `toml:"result"`
	Points  int      `toml:"points,omitempty"`
	Yards   int      `toml:"yards"`
	Elapsed string   `toml:"elapsed"`
	Score   []int    `toml:"score"`
	Actions []string `toml:"actions"`
}

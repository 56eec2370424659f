// Package history archives finished games as TOML game logs.
package history

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lox/gridiron/internal/boxscore"
	"github.com/lox/gridiron/internal/fileutil"
	"github.com/lox/gridiron/internal/football"
)

// New builds the log for a finished game. box may be nil.
func New(res *football.Result, seed int64, box *boxscore.BoxScore, played time.Time) (*GameLog, error) {
	if res == nil || res.Game == nil {
		return nil, fmt.Errorf("history: result is nil")
	}
	g := res.Game
	if !g.Final {
		return nil, fmt.Errorf("history: game %s is not final", g.ID)
	}

	log := &GameLog{
		Game:      g.ID,
		Seed:      seed,
		Teams:     []string{g.Teams[football.Home].Name, g.Teams[football.Away].Name},
		TeamIDs:   []string{g.Teams[football.Home].ID, g.Teams[football.Away].ID},
		Score:     []int{g.Score[football.Home], g.Score[football.Away]},
		Winner:    g.Teams[g.Winner].ID,
		Overtime:  g.Overtime,
		Neutral:   g.Neutral,
		Timestamp: played,
	}
	if !played.IsZero() {
		log.Time = played.UTC().Format(time.RFC3339)
	}

	for _, d := range res.Drives {
		entry := DriveEntry{
			ID:      d.ID,
			Offense: g.Teams[d.Offense].ID,
			Start:   d.StartPosition,
			Result:  string(d.Result),
			Points:  d.Points,
			Yards:   d.Yards(),
			Elapsed: fmt.Sprintf("%d:%02d", d.Elapsed()/60, d.Elapsed()%60),
			Score:   []int{d.Score[football.Home], d.Score[football.Away]},
			Actions: make([]string, 0, len(d.Plays)),
		}
		for _, p := range d.Plays {
			entry.Actions = append(entry.Actions, FormatPlay(p))
		}
		log.Drives = append(log.Drives, entry)
	}

	if box != nil {
		for _, side := range []football.Side{football.Home, football.Away} {
			log.Players = append(log.Players, box.Lines(side)...)
		}
	}
	return log, nil
}

// FormatPlay renders a play in the compact log notation:
//
//	Q2 3:41 3&7 @62 pass complete +12 | <description>
func FormatPlay(p football.Play) string {
	var b strings.Builder
	if p.Overtime > 0 {
		b.WriteString(p.Period() + " ")
	} else {
		fmt.Fprintf(&b, "%s %d:%02d ", p.Period(), p.SecondsLeft/60, p.SecondsLeft%60)
	}
	fmt.Fprintf(&b, "%d&%d @%d %s %s", p.Down, p.ToGo, p.Position, p.Type, p.Result)
	switch p.Type {
	case football.PlayRun, football.PlayPass:
		fmt.Fprintf(&b, " %+d", p.Yards)
	case football.PlayPunt, football.PlayFieldGoal:
		fmt.Fprintf(&b, " %d", p.Kick)
	}
	if p.Description != "" {
		b.WriteString(" | ")
		b.WriteString(p.Description)
	}
	return b.String()
}

// Encode writes the game log to the provided writer in TOML format.
func Encode(w io.Writer, log *GameLog) error {
	if log == nil {
		return fmt.Errorf("history: game log is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(log)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(log *GameLog) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, log); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// Write saves the log to path atomically.
func Write(path string, log *GameLog) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Encode(w, log)
	})
}

// Read loads a log written by Write.
func Read(path string) (*GameLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	var log GameLog
	if _, err := toml.Decode(string(data), &log); err != nil {
		return nil, fmt.Errorf("history: decode %s: %w", path, err)
	}
	if log.Time != "" {
		if ts, err := time.Parse(time.RFC3339, log.Time); err == nil {
			log.Timestamp = ts
		}
	}
	return &log, nil
}

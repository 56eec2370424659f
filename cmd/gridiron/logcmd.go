package main

import (
	"fmt"
	"strings"

	"github.com/lox/gridiron/internal/history"
)

// LogCmd renders a game log written by game --out or week --log-dir.
type LogCmd struct {
	File  string `arg:"" type:"existingfile" help:"Path to a TOML game log"`
	Plays bool   `help:"List every play"`
}

func (c *LogCmd) Run() error {
	gl, err := history.Read(c.File)
	if err != nil {
		return err
	}
	if len(gl.Teams) != 2 || len(gl.Score) != 2 {
		return fmt.Errorf("%s: game log must name two teams", c.File)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s at %s", gl.Teams[1], gl.Teams[0])))
	if gl.League != "" {
		fmt.Printf("%s, ", gl.League)
	}
	fmt.Printf("game %s, seed %d", gl.Game, gl.Seed)
	if !gl.Timestamp.IsZero() {
		fmt.Printf(", played %s", gl.Timestamp.Local().Format("Mon Jan 2 15:04"))
	}
	fmt.Print("\n\n")

	names := map[string]string{}
	for i, id := range gl.TeamIDs {
		names[id] = gl.Teams[i]
	}
	for _, d := range gl.Drives {
		if c.Plays {
			for _, a := range d.Actions {
				fmt.Printf("  %s\n", a)
			}
		}
		line := fmt.Sprintf("-- %s: %s, %d yards, %s", names[d.Offense], strings.ReplaceAll(d.Result, "_", " "), d.Yards, d.Elapsed)
		if len(d.Score) == 2 {
			line += fmt.Sprintf(" (%d-%d)", d.Score[0], d.Score[1])
		}
		fmt.Println(driveStyle.Render(line))
	}

	final := fmt.Sprintf("FINAL: %s %d, %s %d", gl.Teams[0], gl.Score[0], gl.Teams[1], gl.Score[1])
	if gl.Overtime > 0 {
		final += fmt.Sprintf(" (OT%d)", gl.Overtime)
	}
	fmt.Println(finalStyle.Render(final))
	return nil
}

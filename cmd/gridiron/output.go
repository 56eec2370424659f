package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/gridiron/internal/boxscore"
	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/history"
	"github.com/lox/gridiron/internal/simulator"
	"github.com/lox/gridiron/internal/tui"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E7D32")).
			Padding(0, 1).
			Bold(true)

	driveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A29BFE"))

	finalStyle = lipgloss.NewStyle().Bold(true)
)

// printGame writes the game header, each drive and the final score. With
// plays set every snap is listed under its drive.
func printGame(w io.Writer, r simulator.GameReport, plays bool) {
	g := r.Result.Game
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s at %s", g.Teams[football.Away].Name, g.Teams[football.Home].Name)))
	fmt.Fprintf(w, "game %s, seed %d\n\n", g.ID, r.Seed)

	for _, d := range r.Result.Drives {
		if plays {
			for _, p := range d.Plays {
				fmt.Fprintf(w, "  %s\n", history.FormatPlay(p))
			}
		}
		fmt.Fprintln(w, driveStyle.Render(driveLine(g, d)))
		if plays {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w, finalStyle.Render(scoreLine(g)))
}

func driveLine(g *football.Game, d football.Drive) string {
	el := d.Elapsed()
	return fmt.Sprintf("-- %s from %s: %s, %d plays, %d yards, %d:%02d (%d-%d)",
		g.Teams[d.Offense].Name, tui.FieldPosition(d.StartPosition), strings.ReplaceAll(string(d.Result), "_", " "),
		len(d.Plays), d.Yards(), el/60, el%60, d.Score[football.Home], d.Score[football.Away])
}

func scoreLine(g *football.Game) string {
	s := fmt.Sprintf("FINAL: %s %d, %s %d", g.Teams[football.Home].Name, g.Score[football.Home],
		g.Teams[football.Away].Name, g.Score[football.Away])
	if g.Overtime > 0 {
		s += fmt.Sprintf(" (OT%d)", g.Overtime)
	}
	return s
}

// printBoxScore writes team totals and the non-empty player lines.
func printBoxScore(w io.Writer, g *football.Game, box *boxscore.BoxScore) {
	if box == nil {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-22s %6s %6s %6s %6s %6s %4s\n", "TEAM", "PLAYS", "1ST", "RUSH", "PASS", "TOTAL", "TO")
	for _, side := range []football.Side{football.Home, football.Away} {
		t := box.Teams[side]
		fmt.Fprintf(w, "%-22s %6d %6d %6d %6d %6d %4d\n",
			g.Teams[side].Name, t.Plays, t.FirstDowns, t.RushYards, t.PassYards, t.Yards(), t.Turnovers)
	}

	for _, side := range []football.Side{football.Home, football.Away} {
		lines := box.Lines(side)
		fmt.Fprintf(w, "\n%s\n", finalStyle.Render(g.Teams[side].Name))
		for _, l := range lines {
			if l.Attempts > 0 {
				fmt.Fprintf(w, "  %-3s %-20s %d/%d, %d yds, %d TD, %d INT, sacked %d\n",
					l.Position, l.Name, l.Completions, l.Attempts, l.PassYards, l.PassTDs, l.Interceptions, l.TimesSacked)
			}
		}
		for _, l := range lines {
			if l.Carries > 0 {
				fmt.Fprintf(w, "  %-3s %-20s %d car, %d yds, %d TD, %d fum\n",
					l.Position, l.Name, l.Carries, l.RushYards, l.RushTDs, l.Fumbles)
			}
		}
		for _, l := range lines {
			if l.Targets > 0 {
				fmt.Fprintf(w, "  %-3s %-20s %d/%d rec, %d yds, %d TD\n",
					l.Position, l.Name, l.Receptions, l.Targets, l.ReceivingYards, l.ReceivingTDs)
			}
		}
		for _, l := range lines {
			if l.Tackles+l.Sacks+l.Picks+l.FumblesRecovered+l.Safeties > 0 {
				fmt.Fprintf(w, "  %-3s %-20s %d tkl, %d sck, %d int, %d fr\n",
					l.Position, l.Name, l.Tackles, l.Sacks, l.Picks, l.FumblesRecovered)
			}
		}
		for _, l := range lines {
			if l.FieldGoalsAttempts > 0 {
				fmt.Fprintf(w, "  %-3s %-20s FG %d/%d, long %d\n",
					l.Position, l.Name, l.FieldGoalsMade, l.FieldGoalsAttempts, l.LongFieldGoal)
			}
			if l.Punts > 0 {
				fmt.Fprintf(w, "  %-3s %-20s %d punts, %.1f avg\n",
					l.Position, l.Name, l.Punts, float64(l.PuntYards)/float64(l.Punts))
			}
		}
	}
}

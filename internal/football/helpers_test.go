package football

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/gridiron/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func testEngine(seed int64, opts ...EngineOption) *Engine {
	return NewEngine(randutil.New(seed), append([]EngineOption{WithLogger(testLogger())}, opts...)...)
}

func testLineup(prefix string) Lineup {
	l := Lineup{}
	for i, pos := range Positions {
		l[pos] = []Player{{
			ID:       fmt.Sprintf("%s-%s", prefix, pos),
			Name:     fmt.Sprintf("%s %s", prefix, pos),
			Position: pos,
			Rating:   60 + i,
		}}
	}
	return l
}

func testMatchup(homeOff, homeDef, awayOff, awayDef int) Matchup {
	return Matchup{
		ID: "test",
		Teams: [2]Team{
			{ID: "hom", Name: "Home", Offense: homeOff, Defense: homeDef},
			{ID: "awy", Name: "Away", Offense: awayOff, Defense: awayDef},
		},
		Lineups: [2]Lineup{testLineup("Home"), testLineup("Away")},
	}
}

func evenMatchup() Matchup {
	return testMatchup(75, 75, 75, 75)
}

// eachPlay walks every drive and calls fn for each play along
// with the next play of the same drive, if any.
func eachPlay(t *testing.T, drives []Drive, fn func(d Drive, p Play, next *Play)) {
	t.Helper()
	for _, d := range drives {
		for i := range d.Plays {
			var next *Play
			if i+1 < len(d.Plays) {
				next = &d.Plays[i+1]
			}
			fn(d, d.Plays[i], next)
		}
	}
}

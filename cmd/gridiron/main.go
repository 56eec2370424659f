package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Debug   bool             `help:"Enable debug logging"`

	Game  GameCmd  `cmd:"" help:"Simulate one game and print the play-by-play"`
	Week  WeekCmd  `cmd:"" help:"Simulate every scheduled game in the league file"`
	Bench BenchCmd `cmd:"" help:"Simulate many games of one matchup and print statistics"`
	Play  PlayCmd  `cmd:"" help:"Coach a team through a game in the terminal"`
	Log   LogCmd   `cmd:"" help:"Print a saved TOML game log"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gridiron"),
		kong.Description("Drive-by-drive American football game simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(setupLogger(cli.Debug))
	ctx.FatalIfErrorf(err)
}

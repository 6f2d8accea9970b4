package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play Star Match in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot rounds headless and report win rates"`
	Sample   SampleCmd        `cmd:"" help:"Draw star counts for a pool and compare against the expected weights"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("starmatch"),
		kong.Description("Pick numbers that add up to the stars before the clock runs out"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"cardsharpner.hcl" help:"Path to HCL configuration file"`
	LogLevel string           `short:"l" help:"Log level (overrides config)"`

	Analyze AnalyzeCmd `cmd:"" help:"Parse hand history files and export per-hand statistics"`
	Replay  ReplayCmd  `cmd:"" help:"Step through a parsed hand action by action"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cardsharpner"),
		kong.Description("Hand history parser and statistics engine for online poker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

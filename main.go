package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/bananaslice/bslice/internal/cli"
	"github.com/bananaslice/bslice/internal/output"
)

var (
	version = "dev"
)

func main() {
	// Parse CLI
	cliInstance := &cli.CLI{}
	parser := kong.Must(cliInstance,
		kong.Name("bslice"),
		kong.Description("Keep the BananaSlice API key in the OS keychain"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	// Shell completion support (bash/zsh/fish)
	kongplete.Complete(parser)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	// Run command with bound dependencies
	err = ctx.Run()
	if err != nil {
		// We need a formatter instance, create a basic one for error output
		formatter := output.New("plain")
		os.Exit(output.ExitWithError(formatter, err))
	}
}

// Command fxchain renders audio files through an effect chain, measures
// the chain's frequency response and monitors it live.
//
// Usage:
//
//	fxchain render [flags] <input> <output>
//	fxchain response [flags]
//	fxchain play [flags] <input>
//	fxchain effects
//
// Examples:
//
//	fxchain render --effects filter,slew --set cutoff=0.3 in.wav out.wav
//	fxchain response --preset warm.json --points 24 --smooth 3
//	fxchain play --sweep cutoff --period 4s in.flac
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-fxchain/internal/cli"
)

// version is set via ldflags at build time.
var version = "dev"

// Globals are shared by every subcommand.
type Globals struct {
	Verbose bool        `short:"v" help:"Log debug output to stderr"`
	Version versionFlag `help:"Show version information"`

	logger *slog.Logger
}

type versionFlag bool

// BeforeApply prints the version and exits before argument validation.
func (versionFlag) BeforeApply(app *kong.Kong) error {
	cli.PrintVersion(version)
	app.Exit(0)

	return nil
}

var CLI struct {
	Globals

	Render   RenderCmd   `cmd:"" help:"Render an audio file through the chain to WAV"`
	Response ResponseCmd `cmd:"" help:"Print the chain's magnitude response"`
	Play     PlayCmd     `cmd:"" help:"Play an audio file through the chain"`
	Effects  EffectsCmd  `cmd:"" help:"List the available effects"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("fxchain"),
		kong.Description("Run audio through a chain of small effects."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter),
	)

	CLI.logger = initLogger(CLI.Verbose)

	if err := ctx.Run(&CLI.Globals); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

// initLogger logs warnings by default and everything, with source
// positions, in verbose mode.
func initLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: verbose,
	})

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

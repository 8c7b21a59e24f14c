// Package cli implements the command-line interface for edl.
package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/edl/cli/cmd"
	"github.com/ardnew/edl/pkg"
)

// CLI is the top-level command-line interface for edl.
type CLI struct {
	Log logConfig `embed:"" group:"log" prefix:"log-"`

	Version kong.VersionFlag `help:"Print version and exit"`

	Eval  cmd.Eval  `cmd:"" default:"withargs" help:"Compile a source listing into a bundle"`
	Check cmd.Check `cmd:""                    help:"Report static errors in a source listing"`
}

// Run executes the edl CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact: true,
				Summary: true,
			}),
		kong.Vars{"version": pkg.Name + " " + strings.TrimSpace(pkg.Version)},
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// Execute the selected command
	return ktx.Run(ctx)
}

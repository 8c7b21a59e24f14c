package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/edl/lang"
	"github.com/ardnew/edl/log"
	"github.com/ardnew/edl/schema"
)

// Eval compiles a source listing into a bundle rendered as YAML.
type Eval struct {
	Schema string `help:"Element schema definition file"               short:"s" required:"" type:"existingfile"`
	Output string `help:"Write the bundle to a file instead of stdout" short:"o" optional:""`
	Source string `help:"Source listing file or '-' for stdin"         short:"f" default:"-"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	reg, err := schema.Load(e.Schema, schema.WithLogger(log.Default()))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"), slog.String("schema", e.Schema))
	}

	source, err := readSource(e.Source)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"), slog.String("source", e.Source))
	}

	bundle, err := lang.Run(ctx, source, schema.NewProvider(reg),
		lang.WithLogger(log.Default()))
	if err != nil {
		srcErr := &lang.SourceError{}
		if errors.As(err, &srcErr) {
			printDiagnostics(os.Stderr,
				append(append([]lang.Diagnostic{}, srcErr.Static...), srcErr.Runtime...))
		}

		return lang.WrapError(err).
			With(slog.String("command", "eval"), slog.String("source", e.Source))
	}

	rendered, err := schema.RenderBundle(bundle)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	if e.Output != "" {
		return os.WriteFile(e.Output, rendered, 0o644)
	}

	fmt.Print(string(rendered))

	return nil
}

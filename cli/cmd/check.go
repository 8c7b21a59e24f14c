package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/edl/lang"
	"github.com/ardnew/edl/log"
)

// Check scans and parses a source listing and reports static errors
// without evaluating it. No element schema is required.
type Check struct {
	Source string `help:"Source listing file or '-' for stdin" short:"f" default:"-"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	source, err := readSource(c.Source)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "check"), slog.String("source", c.Source))
	}

	diags := lang.Check(ctx, source, lang.WithLogger(log.Default()))
	if len(diags) == 0 {
		fmt.Println(styleSummary.Render("no errors found"))

		return nil
	}

	printDiagnostics(os.Stderr, diags)

	return lang.ErrSourceErrors.
		With(slog.String("command", "check"), slog.Int("errors", len(diags)))
}

// Package cmd implements the subcommands of the edl command-line interface.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/edl/lang"
)

// Styles applied to diagnostics printed for human consumption.
// Severity and location are colorized only when the terminal supports it,
// which lipgloss detects on its own.
var (
	styleLocation = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleSummary  = lipgloss.NewStyle().Faint(true)
)

// readSource reads an entire source listing from the given path,
// or from standard input when path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", lang.ErrReadInput.Wrap(err)
		}

		return string(source), nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return "", lang.ErrReadInput.Wrap(err)
	}

	return string(source), nil
}

// printDiagnostics renders each diagnostic on its own line followed by a
// summary count.
func printDiagnostics(w io.Writer, diags []lang.Diagnostic) {
	for _, d := range diags {
		where := ""

		switch {
		case d.Token != nil && d.Token.Kind == lang.KindEOF:
			where = " at end:"
		case d.Token != nil:
			where = fmt.Sprintf(" at '%s':", d.Token.Lexeme)
		}

		fmt.Fprintf(w, "%s %s %s\n",
			styleLocation.Render(fmt.Sprintf("[line %d]", d.Line)),
			styleError.Render("error"+where),
			d.Message,
		)
	}

	noun := "errors"
	if len(diags) == 1 {
		noun = "error"
	}

	fmt.Fprintln(w, styleSummary.Render(fmt.Sprintf("%d %s found", len(diags), noun)))
}

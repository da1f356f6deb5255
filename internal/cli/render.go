package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/typeset/internal/presentation/graph"
	"github.com/aretw0/typeset/internal/presentation/tui"
	"github.com/muesli/termenv"
)

// IO bundles the streams a command uses.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// profile picks the colour profile for w: none unless w is a terminal.
func profile(w io.Writer) termenv.Profile {
	if f, ok := w.(*os.File); ok && tui.IsTerminal(f) {
		return termenv.EnvColorProfile()
	}
	return termenv.Ascii
}

// Render writes the markup of the document at path.
func Render(opts Options, path string, stdio IO) error {
	logger, err := opts.Logger()
	if err != nil {
		return err
	}
	engine, err := createEngine(opts, logger, nil)
	if err != nil {
		return err
	}
	_, tree, err := readTree(path, stdio.In)
	if err != nil {
		return err
	}
	if err := engine.Render(stdio.Out, tree); err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdio.Out)
	return err
}

// Describe writes the text form of the document at path, with its notes on
// the error stream. It fails if the tree holds error-flagged segments and
// strict is set.
func Describe(opts Options, path string, strict bool, stdio IO) error {
	logger, err := opts.Logger()
	if err != nil {
		return err
	}
	engine, err := createEngine(opts, logger, nil)
	if err != nil {
		return err
	}
	_, tree, err := readTree(path, stdio.In)
	if err != nil {
		return err
	}

	report := engine.Report(tree)
	fmt.Fprintln(stdio.Out, report.Text)
	tui.WriteDiagnostics(stdio.Err, profile(stdio.Err), report)
	if strict && len(report.Errors) > 0 {
		return fmt.Errorf("%d segment(s) flagged with errors", len(report.Errors))
	}
	return nil
}

// InspectOptions selects the inspection output. Raw skips terminal
// rendering of the markdown report.
type InspectOptions struct {
	Mermaid bool
	Raw     bool
}

// Inspect writes a report or a Mermaid graph of the document at path.
func Inspect(opts Options, path string, iopts InspectOptions, stdio IO) error {
	logger, err := opts.Logger()
	if err != nil {
		return err
	}
	engine, err := createEngine(opts, logger, nil)
	if err != nil {
		return err
	}
	name, tree, err := readTree(path, stdio.In)
	if err != nil {
		return err
	}

	if iopts.Mermaid {
		_, err := io.WriteString(stdio.Out, graph.GenerateMermaid(tree))
		return err
	}

	md := tui.Markdown(name, engine.Markup(tree), engine.Report(tree))
	f, isFile := stdio.Out.(*os.File)
	if iopts.Raw || !isFile || !tui.IsTerminal(f) {
		_, err := io.WriteString(stdio.Out, md)
		return err
	}

	render, err := tui.NewRenderer(tui.Width(f))
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdio.Out, out)
	return err
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/matzehuels/tablescroll/pkg/dom"
	tsio "github.com/matzehuels/tablescroll/pkg/io"
	"github.com/matzehuels/tablescroll/pkg/scroll"
)

// layoutCommand creates the layout command for laying out scroll tables.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
		report string
	)

	cmd := &cobra.Command{
		Use:   "layout [file.html]",
		Short: "Lay out data-scroll tables as scrollable viewports",
		Long: `Lay out data-scroll tables as scrollable viewports.

Every table carrying a data-scroll attribute (or every table with --all) is
wrapped in generated containers that pin its header and footer and scroll its
body. Running layout again on its own output converges: previous layouts are
removed first.

Use "-" as the file to read stdin; with -o - the HTML goes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], output, report, &flags, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scroll.html)")
	cmd.Flags().StringVar(&report, "report", "", "write a JSON layout report to this file")
	flags.register(cmd)

	return cmd
}

// runLayout lays out the target tables of input and writes the result.
func (c *CLI) runLayout(ctx context.Context, input, output, report string, flags *layoutFlags, opts scroll.Options) error {
	doc, err := tsio.ImportHTML(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	m := c.newTerminal(flags.width)
	engine := newEngine(ctx, m)
	tables := c.targets(doc, flags)
	if len(tables) == 0 {
		printWarning("No tables to lay out in %s", input)
	}

	spinner := newSpinner(ctx, os.Stderr, layoutMessage(len(tables)))
	spinner.Start()
	defer spinner.Stop()

	prog := newProgress(loggerFromContext(ctx))
	rep, failed := layoutTables(ctx, engine, tables, opts)
	// Log lines must not share the spinner's line.
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	w, h := m.Viewport()
	rep.Viewport = tsio.Size{Width: w, Height: h}
	prog.done("Laid out " + plural(len(tables)-failed, "table", "tables"))

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutput(input)
	}
	if err := tsio.ExportHTML(doc, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if report != "" {
		if err := writeReport(rep, report); err != nil {
			return err
		}
	}

	if outputPath != tsio.Stdio {
		if failed > 0 {
			spinner.StopWithError(fmt.Sprintf("Laid out %d of %d tables", len(tables)-failed, len(tables)))
		} else {
			spinner.StopWithSuccess("Layout complete")
		}
		printFile(outputPath)
		if report != "" {
			printFile(report)
		}
		printStats(len(tables), failed, rep.Scrollbar)
		printNewline()
		printNextStep("Preview", "tablescroll view "+outputPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tables failed", failed, len(tables))
	}
	return nil
}

// layoutMessage is the progress message shown while n tables are laid out.
func layoutMessage(n int) string {
	return "Laying out " + plural(n, "table", "tables") + "..."
}

// layoutTables lays out each table, logging and counting failures.
func layoutTables(ctx context.Context, engine *scroll.Engine, tables []*html.Node, opts scroll.Options) (*tsio.Report, int) {
	logger := loggerFromContext(ctx)
	rep := &tsio.Report{Scrollbar: engine.ScrollbarWidth()}
	failed := 0
	for i, t := range tables {
		if ctx.Err() != nil {
			break
		}
		res, err := engine.Layout(ctx, t, opts)
		if err != nil {
			failed++
			id, _ := dom.Attr(t, "id")
			logger.Warn("layout failed", "table", i, "id", id, "err", err)
		}
		rep.Tables = append(rep.Tables, tsio.NewTableReport(i, t, res, err))
	}
	return rep, failed
}

func writeReport(rep *tsio.Report, path string) error {
	if path == tsio.Stdio {
		return tsio.WriteJSON(rep, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return tsio.WriteJSON(rep, f)
}

// resetCommand creates the reset command for removing previous layouts.
func (c *CLI) resetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "reset [file.html]",
		Short: "Remove scroll layouts and restore the original tables",
		Long: `Remove scroll layouts and restore the original tables.

Every laid-out table is unwrapped and gets back the exact inline styles it had
before layout. Tables that were never laid out are left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReset(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scroll.html)")
	cmd.ValidArgsFunction = htmlArgs

	return cmd
}

// runReset tears down every layout in input and writes the result.
func (c *CLI) runReset(ctx context.Context, input, output string) error {
	doc, err := tsio.ImportHTML(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	engine := newEngine(ctx, c.newTerminal(0))
	reset := 0
	for _, t := range dom.Tables(doc) {
		if !dom.HasMarker(t.Parent, dom.MarkerInner) {
			continue
		}
		if err := engine.Reset(ctx, t); err != nil {
			return fmt.Errorf("reset table: %w", err)
		}
		reset++
	}
	loggerFromContext(ctx).Debug("reset tables", "count", reset)

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutput(input)
	}
	if err := tsio.ExportHTML(doc, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if outputPath != tsio.Stdio {
		printSuccess("Removed %d layouts", reset)
		printFile(outputPath)
	}
	return nil
}

// defaultOutput derives the output path from the input path. Stdin input
// defaults to stdout.
func defaultOutput(input string) string {
	if input == tsio.Stdio {
		return tsio.Stdio
	}
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	if ext == "" {
		ext = ".html"
	}
	return base + outputSuffix + ext
}

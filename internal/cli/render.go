package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/matzehuels/tablescroll/pkg/errors"
	tsio "github.com/matzehuels/tablescroll/pkg/io"
	"github.com/matzehuels/tablescroll/pkg/render"
	"github.com/matzehuels/tablescroll/pkg/scroll"
)

// renderOptions holds the render command's own flags.
type renderOptions struct {
	table  int
	offset int
	plain  bool
}

// renderCommand creates the render command for printing a table as text.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags layoutFlags
		ro    renderOptions
	)

	cmd := &cobra.Command{
		Use:   "render [file.html]",
		Short: "Print a scroll table as terminal text",
		Long: `Print a scroll table as terminal text.

The selected table is laid out for the terminal width (or --width) and drawn
with its header and footer pinned and its body scrolled down by --offset
lines. Output to a pipe is unstyled unless the terminal is attached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("plain") {
				ro.plain = !isTerminal(os.Stdout)
			}
			return c.runRender(cmd.Context(), args[0], &flags, opts, ro)
		},
	}

	cmd.Flags().IntVar(&ro.table, "table", 0, "index of the table to render")
	cmd.Flags().IntVar(&ro.offset, "offset", 0, "body scroll offset in lines")
	cmd.Flags().BoolVar(&ro.plain, "plain", false, "disable colors and text styles")
	flags.register(cmd)

	return cmd
}

// runRender lays out one table of input and prints its rendering.
func (c *CLI) runRender(ctx context.Context, input string, flags *layoutFlags, opts scroll.Options, ro renderOptions) error {
	doc, err := tsio.ImportHTML(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	table, err := c.pickTable(doc, flags, ro.table)
	if err != nil {
		return err
	}

	m := c.newTerminal(flags.width)
	if _, err := newEngine(ctx, m).Layout(ctx, table, opts); err != nil {
		return fmt.Errorf("layout table %d: %w", ro.table, err)
	}

	var ropts []render.Option
	if ro.plain {
		ropts = append(ropts, render.WithStyles(render.PlainStyles()))
	}
	v, err := render.New(m, ropts...).Render(table, ro.offset)
	if err != nil {
		return fmt.Errorf("render table %d: %w", ro.table, err)
	}
	loggerFromContext(ctx).Debug("rendered table",
		"index", ro.table,
		"lines", v.Height,
		"width", v.Width,
		"offset", v.Offset,
		"max_offset", v.MaxOffset,
	)
	fmt.Println(v.String())
	return nil
}

// pickTable returns the index-th target table of doc.
func (c *CLI) pickTable(doc *html.Node, flags *layoutFlags, index int) (*html.Node, error) {
	tables := c.targets(doc, flags)
	if index < 0 || index >= len(tables) {
		return nil, errors.New(errors.ErrCodeNotFound, "table %d not found (%d tables)", index, len(tables))
	}
	return tables[index], nil
}

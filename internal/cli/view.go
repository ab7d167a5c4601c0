package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	tsio "github.com/matzehuels/tablescroll/pkg/io"
	"github.com/matzehuels/tablescroll/pkg/render"
	"github.com/matzehuels/tablescroll/pkg/resize"
	"github.com/matzehuels/tablescroll/pkg/scroll"
)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "view [file.html]",
		Short: "Scroll through tables interactively",
		Long: `Scroll through tables interactively.

The tables are laid out for the current terminal and laid out again whenever
the window is resized. Resize events are debounced: a burst of events causes a
single relayout once the window stops changing (resize.debounce in the config
file, 100ms by default).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runView(cmd.Context(), args[0], &flags, opts)
		},
	}

	flags.register(cmd)

	return cmd
}

// runView loads input, lays out its tables, and runs the viewer until quit.
func (c *CLI) runView(ctx context.Context, input string, flags *layoutFlags, opts scroll.Options) error {
	doc, err := tsio.ImportHTML(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	quiet := viewerLogger(c.Logger)

	m := c.newTerminal(flags.width)
	engine := scroll.New(m, scroll.WithLogger(quiet))

	var p *tea.Program
	coord := resize.New(engine,
		resize.WithDelay(c.Config.Resize.Debounce),
		resize.WithOptions(opts),
		resize.WithLogger(quiet),
		resize.WithDispatch(func(fn func()) { p.Send(relayoutMsg{run: fn}) }),
	)
	defer coord.Close()

	coord.Add(c.targets(doc, flags)...)
	if err := coord.Load(ctx); err != nil {
		c.Logger.Warn("some tables could not be laid out", "err", err)
	}

	model := newViewModel(ctx, coord, render.New(m))
	p = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

// viewerLogger returns the logger used while the viewer owns the screen.
// Log lines would tear through the alternate screen, so only debug runs keep
// logging.
func viewerLogger(l *log.Logger) *log.Logger {
	if l.GetLevel() == log.DebugLevel {
		return l
	}
	return log.New(io.Discard)
}

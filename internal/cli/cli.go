// Package cli implements the tablescroll command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
	"golang.org/x/term"

	"github.com/matzehuels/tablescroll/pkg/config"
	"github.com/matzehuels/tablescroll/pkg/dom"
	"github.com/matzehuels/tablescroll/pkg/errors"
	"github.com/matzehuels/tablescroll/pkg/measure"
	"github.com/matzehuels/tablescroll/pkg/scroll"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tablescroll"

	// outputSuffix is inserted before the extension of default output files.
	outputSuffix = ".scroll"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Layout Flags
// =============================================================================

// layoutFlags are shared by every command that runs layout passes.
type layoutFlags struct {
	height string
	space  int
	width  int
	all    bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.height, "height", "", `viewport height in lines, or "false" (default: data-scroll attribute)`)
	cmd.Flags().IntVar(&f.space, "space", scroll.DefaultSpace, "extra width reserved per column")
	cmd.Flags().IntVar(&f.width, "width", 0, "viewport width in columns (default: terminal width)")
	cmd.Flags().BoolVar(&f.all, "all", false, "lay out every table, not only those with data-scroll")

	cmd.ValidArgsFunction = htmlArgs
	_ = cmd.RegisterFlagCompletionFunc("height", heightValues)
}

// options merges the config file with flags the user actually set.
func (c *CLI) options(cmd *cobra.Command, f *layoutFlags) (scroll.Options, error) {
	opts, err := c.Config.LayoutOptions()
	if err != nil {
		return scroll.Options{}, err
	}
	if cmd.Flags().Changed("height") {
		h, err := scroll.ParseHeight(f.height)
		if err != nil {
			return scroll.Options{}, err
		}
		opts.Height = h
	}
	if cmd.Flags().Changed("space") {
		if err := errors.ValidateSpace(f.space); err != nil {
			return scroll.Options{}, err
		}
		opts.Space = f.space
	}
	return opts, nil
}

// targets returns the tables a layout command works on.
func (c *CLI) targets(doc *html.Node, f *layoutFlags) []*html.Node {
	if f.all || c.Config.Layout.All {
		return dom.Tables(doc)
	}
	return dom.ScrollTables(doc)
}

// =============================================================================
// Terminal
// =============================================================================

// newTerminal creates the measurer. A positive width wins, then the config
// file, then the size of the controlling terminal, then the defaults.
func (c *CLI) newTerminal(width int) *measure.Terminal {
	w, h := c.viewport(width)
	return measure.NewTerminal(w, h, c.Config.TerminalOptions())
}

func (c *CLI) viewport(width int) (int, int) {
	w, h := c.Config.Terminal.Width, c.Config.Terminal.Height
	if tw, th, ok := terminalSize(os.Stdout); ok {
		if w == 0 {
			w = tw
		}
		if h == 0 {
			h = th
		}
	}
	if width > 0 {
		w = width
	}
	if w == 0 {
		w = measure.DefaultViewportWidth
	}
	if h == 0 {
		h = measure.DefaultViewportHeight
	}
	return w, h
}

// terminalSize reports the size of f when it is a terminal.
func terminalSize(f *os.File) (int, int, bool) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, false
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// newEngine creates a layout engine logging through the context's logger.
func newEngine(ctx context.Context, m measure.Measurer) *scroll.Engine {
	return scroll.New(m, scroll.WithLogger(loggerFromContext(ctx)))
}

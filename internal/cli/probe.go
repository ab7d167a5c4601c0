package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tablescroll/pkg/measure"
)

// probeCommand creates the probe command that reports the scrollbar width.
func (c *CLI) probeCommand() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Print the scrollbar gutter width",
		Long: `Print the scrollbar gutter width.

The width is measured the way layout measures it: a detached scroll container
is forced to overflow and the width its content loses is the gutter. It depends
only on the configured scrollbar glyph.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := c.newTerminal(0)
			width := measure.NewScrollbarProbe(m).Width()
			if !long || !isTerminal(os.Stdout) {
				fmt.Println(width)
				return nil
			}
			w, h := m.Viewport()
			printKeyValue("scrollbar", fmt.Sprintf("%d", width))
			printKeyValue("glyph", fmt.Sprintf("%q (%d cells)", m.ScrollbarGlyph(), ansi.StringWidth(m.ScrollbarGlyph())))
			printKeyValue("viewport", fmt.Sprintf("%dx%d", w, h))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "show the glyph and viewport too")

	return cmd
}

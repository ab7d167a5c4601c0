package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	tsio "github.com/matzehuels/tablescroll/pkg/io"
	"github.com/matzehuels/tablescroll/pkg/scroll"
)

// inspectCommand creates the inspect command for summarizing layouts.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags  layoutFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file.html]",
		Short: "Summarize the layout geometry of each table",
		Long: `Summarize the layout geometry of each table.

Each target table is laid out in memory (the file is not modified) and its
reserved header and footer heights, viewport height, natural and adjusted
column widths are printed as a table, or as JSON with --json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args[0], &flags, opts, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	flags.register(cmd)

	return cmd
}

// runInspect lays out input's tables and prints the report.
func (c *CLI) runInspect(ctx context.Context, input string, flags *layoutFlags, opts scroll.Options, asJSON bool) error {
	doc, err := tsio.ImportHTML(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	m := c.newTerminal(flags.width)
	rep, _ := layoutTables(ctx, newEngine(ctx, m), c.targets(doc, flags), opts)
	w, h := m.Viewport()
	rep.Viewport = tsio.Size{Width: w, Height: h}

	if asJSON {
		return writeReport(rep, tsio.Stdio)
	}
	fmt.Println(reportTable(rep))
	printKeyValue("viewport", fmt.Sprintf("%dx%d", w, h))
	printKeyValue("scrollbar", strconv.Itoa(rep.Scrollbar))
	return nil
}

// reportTable formats rep for the terminal.
func reportTable(rep *tsio.Report) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(rep.Tables))
	for i, t := range rep.Tables {
		id := t.ID
		if id == "" {
			id = "-"
		}
		switch {
		case t.Error != "":
			rows[i] = []string{strconv.Itoa(t.Index), id, "", "", "", "", "", t.Error}
		case t.Disabled:
			rows[i] = []string{strconv.Itoa(t.Index), id, "", "", "", "", "", "disabled"}
		default:
			rows[i] = []string{
				strconv.Itoa(t.Index), id,
				strconv.Itoa(t.Head), strconv.Itoa(t.Foot), strconv.Itoa(t.Viewport),
				joinInts(t.Natural), joinInts(t.Widths),
				strconv.Itoa(t.OuterWidth),
			}
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "ID", "Head", "Foot", "Body", "Natural", "Widths", "Width").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= 0 && row < len(rep.Tables) && rep.Tables[row].Error != "" {
				return lipgloss.NewStyle().Foreground(colorRed)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

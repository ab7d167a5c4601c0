package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tablescroll/pkg/dom"
	"github.com/matzehuels/tablescroll/pkg/errors"
	tsio "github.com/matzehuels/tablescroll/pkg/io"
)

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"page.html", "page.scroll.html"},
		{"dir/report.htm", "dir/report.scroll.htm"},
		{"noext", "noext.scroll.html"},
		{"-", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := defaultOutput(tt.input); got != tt.want {
				t.Errorf("defaultOutput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOptionsMerge(t *testing.T) {
	tests := []struct {
		name       string
		cfgHeight  string
		cfgSpace   int
		args       []string
		wantHeight string
		wantSpace  int
	}{
		{"config only", "7", 2, nil, "7", 2},
		{"attribute decides", "", 0, nil, "", 0},
		{"height flag wins", "7", 2, []string{"--height", "5"}, "5", 2},
		{"space flag wins", "", 2, []string{"--space", "1"}, "", 1},
		{"disable by flag", "7", 0, []string{"--height", "false"}, "false", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&bytes.Buffer{}, log.InfoLevel)
			c.Config.Layout.Height = tt.cfgHeight
			c.Config.Layout.Space = tt.cfgSpace

			var f layoutFlags
			cmd := &cobra.Command{Use: "test"}
			f.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}

			opts, err := c.options(cmd, &f)
			if err != nil {
				t.Fatalf("options() error = %v", err)
			}
			if got := opts.Height.String(); got != tt.wantHeight {
				t.Errorf("Height = %q, want %q", got, tt.wantHeight)
			}
			if opts.Space != tt.wantSpace {
				t.Errorf("Space = %d, want %d", opts.Space, tt.wantSpace)
			}
		})
	}
}

func TestViewportPrecedence(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.Config.Terminal.Width = 50
	c.Config.Terminal.Height = 12

	if w, h := c.viewport(0); w != 50 || h != 12 {
		t.Errorf("viewport(0) = %dx%d, want 50x12", w, h)
	}
	if w, _ := c.viewport(33); w != 33 {
		t.Errorf("viewport(33) width = %d, want 33", w)
	}
}

func TestTargetsAndPickTable(t *testing.T) {
	doc, err := dom.ParseString(testPage)
	if err != nil {
		t.Fatal(err)
	}
	c := New(&bytes.Buffer{}, log.InfoLevel)

	if got := len(c.targets(doc, &layoutFlags{})); got != 1 {
		t.Errorf("targets() = %d tables, want 1", got)
	}
	if got := len(c.targets(doc, &layoutFlags{all: true})); got != 2 {
		t.Errorf("targets(--all) = %d tables, want 2", got)
	}

	table, err := c.pickTable(doc, &layoutFlags{}, 0)
	if err != nil {
		t.Fatalf("pickTable(0) error = %v", err)
	}
	if id, _ := dom.Attr(table, "id"); id != "orders" {
		t.Errorf("pickTable(0) id = %q, want orders", id)
	}
	if _, err := c.pickTable(doc, &layoutFlags{}, 1); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("pickTable(1) error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name     string
		tables   int
		failed   int
		contains []string
		excludes []string
	}{
		{"single", 1, 0, []string{"1 table", "scrollbar 1"}, []string{"failed"}},
		{"failures", 3, 2, []string{"3 tables", "2 failed"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := statsLine(tt.tables, tt.failed, 1)
			for _, s := range tt.contains {
				if !strings.Contains(line, s) {
					t.Errorf("statsLine() = %q, missing %q", line, s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(line, s) {
					t.Errorf("statsLine() = %q, should not contain %q", line, s)
				}
			}
		})
	}
}

func TestReportTable(t *testing.T) {
	rep := &tsio.Report{
		Scrollbar: 1,
		Tables: []tsio.TableReport{
			{Index: 0, ID: "orders", Head: 1, Foot: 1, Viewport: 5, Natural: []int{7, 5}, Widths: []int{6, 5}, OuterWidth: 12},
			{Index: 1, Disabled: true},
			{Index: 2, Error: "bad height"},
		},
	}

	out := reportTable(rep)
	for _, want := range []string{"Natural", "orders", "7 5", "6 5", "disabled", "bad height"} {
		if !strings.Contains(out, want) {
			t.Errorf("reportTable() missing %q:\n%s", want, out)
		}
	}
}

func TestHTMLArgsCompletion(t *testing.T) {
	exts, dir := htmlArgs(nil, nil, "")
	if dir != cobra.ShellCompDirectiveFilterFileExt || len(exts) != 2 {
		t.Errorf("htmlArgs() = %v, %v", exts, dir)
	}
	if _, dir := htmlArgs(nil, []string{"page.html"}, ""); dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("htmlArgs() after first arg directive = %v", dir)
	}
}

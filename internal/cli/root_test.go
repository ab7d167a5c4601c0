package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	tsio "github.com/matzehuels/tablescroll/pkg/io"
)

const testPage = `<html><head></head><body>` +
	`<table id="orders" data-scroll="4"><thead><tr><th>Item</th><th>Qty</th></tr></thead>` +
	`<tbody><tr><td>apple</td><td>1</td></tr><tr><td>pear</td><td>2</td></tr>` +
	`<tr><td>plum</td><td>3</td></tr><tr><td>fig</td><td>4</td></tr>` +
	`<tr><td>kiwi</td><td>5</td></tr></tbody></table>` +
	`<table id="plain"><tbody><tr><td>x</td></tr></tbody></table>` +
	`</body></html>`

// execute runs the root command with a fresh CLI and a config file holding cfg.
func execute(t *testing.T, cfg string, args ...string) error {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", path}, args...))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func writePage(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte(testPage), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()

	want := []string{"layout", "reset", "render", "view", "inspect", "probe", "completion"}
	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{name})
			if err != nil || cmd.Name() != name {
				t.Errorf("Find(%q) = %v, %v", name, cmd, err)
			}
		})
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("root command has no --config flag")
	}
}

func TestLayoutResetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := writePage(t, dir)
	out := filepath.Join(dir, "out.html")
	report := filepath.Join(dir, "report.json")
	cfg := "[terminal]\nwidth = 40\nheight = 20\n"

	if err := execute(t, cfg, "layout", in, "-o", out, "--report", report); err != nil {
		t.Fatalf("layout: %v", err)
	}
	laid, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(laid), `data-id="outer"`); n != 1 {
		t.Errorf("layout produced %d outer containers, want 1", n)
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatal(err)
	}
	var rep tsio.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rep.Viewport.Width != 40 || rep.Viewport.Height != 20 {
		t.Errorf("report viewport = %+v, want 40x20", rep.Viewport)
	}
	if len(rep.Tables) != 1 || rep.Tables[0].ID != "orders" {
		t.Fatalf("report tables = %+v, want only orders", rep.Tables)
	}
	if got := rep.Tables[0]; got.Head != 1 || got.Viewport != 3 {
		t.Errorf("orders head/viewport = %d/%d, want 1/3", got.Head, got.Viewport)
	}

	restored := filepath.Join(dir, "restored.html")
	if err := execute(t, cfg, "reset", out, "-o", restored); err != nil {
		t.Fatalf("reset: %v", err)
	}
	data, err = os.ReadFile(restored)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, gone := range []string{"data-id=", "style=", "data-scroll-origin"} {
		if strings.Contains(got, gone) {
			t.Errorf("reset output still contains %s:\n%s", gone, got)
		}
	}
	if !strings.Contains(got, `data-scroll="4"`) {
		t.Error("reset dropped the data-scroll attribute")
	}
}

func TestLayoutAllTables(t *testing.T) {
	dir := t.TempDir()
	in := writePage(t, dir)
	out := filepath.Join(dir, "out.html")

	if err := execute(t, "", "layout", in, "-o", out, "--all", "--height", "6", "--width", "30"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), `data-id="outer"`); n != 2 {
		t.Errorf("--all laid out %d tables, want 2", n)
	}
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	in := writePage(t, dir)

	tests := []struct {
		name string
		cfg  string
		args []string
	}{
		{"invalid height flag", "", []string{"layout", in, "--height", "tall"}},
		{"negative space flag", "", []string{"layout", in, "--space", "-1"}},
		{"missing input", "", []string{"layout", filepath.Join(dir, "missing.html")}},
		{"unknown config key", "[layout]\nbogus = 1\n", []string{"probe"}},
		{"render table out of range", "", []string{"render", in, "--table", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.cfg, tt.args...); err == nil {
				t.Error("Execute() succeeded, want error")
			}
		})
	}
}

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/tablescroll/pkg/dom"
	"github.com/matzehuels/tablescroll/pkg/errors"
	"github.com/matzehuels/tablescroll/pkg/measure"
)

const ellipsis = "…"

// Renderer draws laid-out tables measured by a terminal measurer.
type Renderer struct {
	m      *measure.Terminal
	styles Styles
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyles sets the renderer's styles.
func WithStyles(s Styles) Option {
	return func(r *Renderer) { r.styles = s }
}

// New creates a renderer using DefaultStyles.
func New(m *measure.Terminal, opts ...Option) *Renderer {
	r := &Renderer{m: m, styles: DefaultStyles()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// View is one rendered frame of a scroll table.
type View struct {
	Lines     []string
	Width     int // display width of every line
	Height    int // len(Lines)
	Offset    int // body scroll offset actually used
	MaxOffset int // largest useful offset
	BodyLines int // total body lines, visible or not
	Viewport  int // body lines visible at once
}

// String joins the lines with newlines.
func (v *View) String() string { return strings.Join(v.Lines, "\n") }

// Render draws table with its body scrolled down by offset lines. The offset
// is clamped to [0, MaxOffset]. The table must carry a scroll layout.
func (r *Renderer) Render(table *html.Node, offset int) (*View, error) {
	if !dom.IsElement(table, atom.Table) {
		return nil, errors.New(errors.ErrCodeInvalidTable, "node is not a table element")
	}
	inner := table.Parent
	if !dom.HasMarker(inner, dom.MarkerInner) || !dom.HasMarker(inner.Parent, dom.MarkerOuter) {
		return nil, errors.New(errors.ErrCodeInvalidTable, "table has no scroll layout")
	}
	outer := inner.Parent

	width := r.m.OuterWidth(outer)
	gutter := min(width, ansi.StringWidth(r.m.ScrollbarGlyph()))
	content := width - gutter
	headH := length(outer, "padding-top")
	footH := length(outer, "padding-bottom")
	viewport := length(inner, "height")

	caption := dom.Caption(table)
	bottom := caption != nil && dom.StyleValue(caption, "caption-side") == "bottom"

	var head, foot []string
	if caption != nil && !bottom {
		head = r.caption(caption, width)
	}
	head = append(head, r.group(dom.THead(table), width, r.styles.Header)...)
	foot = r.group(dom.TFoot(table), width, r.styles.Footer)
	if bottom {
		foot = append(foot, r.caption(caption, width)...)
	}
	tbody := dom.TBody(table)
	rows := dom.Rows(tbody)
	heights := make([]int, len(rows))
	total := 0
	for i, tr := range rows {
		heights[i] = r.m.OuterHeight(tr)
		total += heights[i]
	}

	v := &View{
		BodyLines: total,
		Viewport:  viewport,
		MaxOffset: max(0, total-viewport),
	}
	v.Offset = min(max(0, offset), v.MaxOffset)
	body := r.window(tbody, rows, heights, content, v.Offset, viewport)

	var lines []string
	lines = append(lines, fitHeight(head, headH, width)...)
	bar := r.scrollbar(viewport, total, v.Offset, gutter)
	for i := 0; i < viewport; i++ {
		line := spaces(content)
		if i < len(body) {
			line = body[i]
		}
		lines = append(lines, line+bar[i])
	}
	lines = append(lines, fitHeight(foot, footH, width)...)

	margin := r.m.Margin(outer)
	v.Width = width + margin.Horizontal()
	left, right := spaces(margin.Left), spaces(margin.Right)
	for i, l := range lines {
		lines[i] = left + l + right
	}
	blank := spaces(v.Width)
	for i := 0; i < margin.Top; i++ {
		lines = append([]string{blank}, lines...)
	}
	for i := 0; i < margin.Bottom; i++ {
		lines = append(lines, blank)
	}

	v.Lines = lines
	v.Height = len(lines)
	return v, nil
}

// group draws every row of a row group, each line fitted to width.
func (r *Renderer) group(g *html.Node, width int, style lipgloss.Style) []string {
	if g == nil {
		return nil
	}
	cols := r.m.Columns(g)
	var out []string
	for _, tr := range dom.Rows(g) {
		for _, l := range r.row(tr, cols, r.m.OuterHeight(tr), style) {
			out = append(out, fitWidth(l, width))
		}
	}
	return out
}

// window draws the body lines [offset, offset+n). Rows entirely outside the
// window are skipped without being drawn.
func (r *Renderer) window(g *html.Node, rows []*html.Node, heights []int, width, offset, n int) []string {
	if g == nil || n <= 0 {
		return nil
	}
	cols := r.m.Columns(g)
	out := make([]string, 0, n)
	y := 0
	for i, tr := range rows {
		h := heights[i]
		if y >= offset+n {
			break
		}
		if y+h > offset {
			for k, l := range r.row(tr, cols, h, r.styles.Body) {
				if y+k >= offset && y+k < offset+n {
					out = append(out, fitWidth(l, width))
				}
			}
		}
		y += h
	}
	return out
}

// row draws tr as h lines. Cells take their widths from cols by colspan.
func (r *Renderer) row(tr *html.Node, cols []int, h int, style lipgloss.Style) []string {
	lines := make([]string, h)
	col := 0
	for _, c := range dom.Cells(tr) {
		span := dom.Colspan(c)
		w := 0
		for i := col; i < col+span && i < len(cols); i++ {
			w += cols[i]
		}
		col += span
		block := r.cell(c, w, h, style)
		for y := range lines {
			lines[y] += block[y]
		}
	}
	return lines
}

// cell draws c as h lines of exactly w columns. The frame is left blank.
func (r *Renderer) cell(c *html.Node, w, h int, style lipgloss.Style) []string {
	f := r.m.Frame(c)
	cw := max(0, w-f.Horizontal())
	left := min(f.Left, w)
	right := max(0, w-cw-left)
	text := dom.Lines(c)
	pos := align(c)

	out := make([]string, h)
	for y := range out {
		i := y - f.Top
		if i < 0 || i >= len(text) || cw == 0 {
			out[y] = spaces(w)
			continue
		}
		line := lipgloss.PlaceHorizontal(cw, pos, ansi.Truncate(text[i], cw, ellipsis))
		out[y] = spaces(left) + style.Render(line) + spaces(right)
	}
	return out
}

func (r *Renderer) caption(c *html.Node, width int) []string {
	var out []string
	for _, l := range dom.Lines(c) {
		l = lipgloss.PlaceHorizontal(width, lipgloss.Center, ansi.Truncate(l, width, ellipsis))
		out = append(out, r.styles.Caption.Render(l))
	}
	return out
}

// scrollbar returns the gutter column for each visible body line. The thumb
// is drawn only when the body is taller than the viewport.
func (r *Renderer) scrollbar(viewport, total, offset, gutter int) []string {
	out := make([]string, viewport)
	track := r.styles.Track.Render(spaces(gutter))
	for i := range out {
		out[i] = track
	}
	if total <= viewport || gutter == 0 || viewport == 0 {
		return out
	}
	size := max(1, viewport*viewport/total)
	pos := offset * (viewport - size) / (total - viewport)
	thumb := r.styles.Thumb.Render(fitWidth(r.m.ScrollbarGlyph(), gutter))
	for i := pos; i < pos+size && i < viewport; i++ {
		out[i] = thumb
	}
	return out
}

func align(c *html.Node) lipgloss.Position {
	switch dom.StyleValue(c, "text-align") {
	case "right":
		return lipgloss.Right
	case "center":
		return lipgloss.Center
	}
	return lipgloss.Left
}

func length(n *html.Node, prop string) int {
	v, _ := dom.ParseLength(dom.StyleValue(n, prop))
	return max(0, v)
}

func fitHeight(lines []string, h, width int) []string {
	out := make([]string, 0, h)
	for i := 0; i < h; i++ {
		if i < len(lines) {
			out = append(out, lines[i])
		} else {
			out = append(out, spaces(width))
		}
	}
	return out
}

func fitWidth(s string, w int) string {
	sw := ansi.StringWidth(s)
	if sw > w {
		return ansi.Truncate(s, w, "")
	}
	return s + spaces(w-sw)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

package measure

import (
	"sync"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/tablescroll/pkg/dom"
)

// Defaults for the terminal box model.
const (
	DefaultViewportWidth  = 80
	DefaultViewportHeight = 24
	DefaultScrollbar      = "│"
)

// DefaultCellPadding gives every table cell one column of breathing room on
// each side unless its inline style says otherwise.
var DefaultCellPadding = Edges{Left: 1, Right: 1}

// TerminalOptions configures a Terminal measurer.
type TerminalOptions struct {
	CellPadding Edges  // default padding of th/td elements
	CellBorder  Edges  // default border widths of th/td elements
	Scrollbar   string // glyph drawn in the scrollbar gutter
}

// Terminal measures a document laid out on a character grid.
// It is safe for concurrent use; the viewport may change between calls.
type Terminal struct {
	mu     sync.RWMutex
	width  int
	height int

	cellPadding Edges
	cellBorder  Edges
	scrollbar   string
}

// NewTerminal creates a measurer for a viewport of the given size.
// A zero Scrollbar option selects DefaultScrollbar.
func NewTerminal(width, height int, opts TerminalOptions) *Terminal {
	if opts.Scrollbar == "" {
		opts.Scrollbar = DefaultScrollbar
	}
	return &Terminal{
		width:       width,
		height:      height,
		cellPadding: opts.CellPadding,
		cellBorder:  opts.CellBorder,
		scrollbar:   opts.Scrollbar,
	}
}

// SetViewport resizes the root containing block.
func (t *Terminal) SetViewport(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width, t.height = width, height
}

// Viewport returns the current root containing block size.
func (t *Terminal) Viewport() (int, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.width, t.height
}

// ScrollbarGlyph returns the glyph drawn in the scrollbar gutter.
func (t *Terminal) ScrollbarGlyph() string { return t.scrollbar }

func (t *Terminal) gutter() int { return ansi.StringWidth(t.scrollbar) }

// Margin implements Measurer.
func (t *Terminal) Margin(n *html.Node) Edges {
	if !isElement(n) {
		return Edges{}
	}
	return edges(dom.GetStyle(n), "margin", "margin-", "", Edges{})
}

// Frame implements Measurer.
func (t *Terminal) Frame(n *html.Node) Edges {
	return t.padding(n).Add(t.border(n))
}

func (t *Terminal) padding(n *html.Node) Edges {
	if !isElement(n) {
		return Edges{}
	}
	def := Edges{}
	if isCell(n) {
		def = t.cellPadding
	}
	return edges(dom.GetStyle(n), "padding", "padding-", "", def)
}

func (t *Terminal) border(n *html.Node) Edges {
	if !isElement(n) {
		return Edges{}
	}
	def := Edges{}
	if isCell(n) {
		def = t.cellBorder
	}
	return edges(dom.GetStyle(n), "border-width", "border-", "-width", def)
}

// InnerWidth implements Measurer.
func (t *Terminal) InnerWidth(n *html.Node) int {
	return max(0, t.OuterWidth(n)-t.border(n).Horizontal())
}

// OuterWidth implements Measurer.
func (t *Terminal) OuterWidth(n *html.Node) int {
	if !isElement(n) {
		return 0
	}
	switch n.DataAtom {
	case atom.Td, atom.Th:
		return t.cellWidth(n)
	case atom.Tr:
		w := 0
		for _, c := range dom.Cells(n) {
			w += t.OuterWidth(c)
		}
		return w
	case atom.Thead, atom.Tbody, atom.Tfoot:
		if IsBlock(n) {
			return t.buildGrid([]*html.Node{n}).total()
		}
		return t.OuterWidth(n.Parent)
	case atom.Table:
		return t.tableWidth(n)
	case atom.Caption:
		if IsAbsolute(n) && dom.StyleValue(n, "width") == "100%" {
			if cb := positionedAncestor(n); cb != nil {
				return t.InnerWidth(cb)
			}
		}
		return t.OuterWidth(n.Parent)
	}
	if w, ok := explicitWidth(n); ok {
		return w + t.Frame(n).Horizontal()
	}
	return max(0, t.availableWidth(n)-t.Margin(n).Horizontal())
}

// OuterHeight implements Measurer.
func (t *Terminal) OuterHeight(n *html.Node) int {
	if !isElement(n) {
		return 0
	}
	frame := t.Frame(n).Vertical()
	if h, ok := dom.ParseLength(dom.StyleValue(n, "height")); ok {
		return h + frame
	}
	switch n.DataAtom {
	case atom.Table:
		h := 0
		for _, c := range dom.ChildElements(n, atom.Caption, atom.Thead, atom.Tbody, atom.Tfoot) {
			if !IsAbsolute(c) {
				h += t.OuterHeight(c)
			}
		}
		return h + frame
	case atom.Thead, atom.Tbody, atom.Tfoot:
		h := 0
		for _, r := range dom.Rows(n) {
			h += t.OuterHeight(r)
		}
		return h
	case atom.Tr:
		h := 0
		for _, c := range dom.Cells(n) {
			h = max(h, t.OuterHeight(c))
		}
		return h
	case atom.Td, atom.Th:
		return max(1, len(dom.Lines(n))) + frame
	case atom.Caption:
		return len(dom.Lines(n)) + frame
	}
	return t.contentHeight(n) + frame
}

// contentHeight sums the in-flow element children of n, margins included.
func (t *Terminal) contentHeight(n *html.Node) int {
	h := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isElement(c) || IsAbsolute(c) {
			continue
		}
		h += t.OuterHeight(c) + t.Margin(c).Vertical()
	}
	return h
}

// Overflows reports whether n shows a vertical scrollbar.
func (t *Terminal) Overflows(n *html.Node) bool {
	switch dom.StyleValue(n, "overflow") {
	case "scroll":
		return true
	case "auto":
		h, ok := dom.ParseLength(dom.StyleValue(n, "height"))
		return ok && t.contentHeight(n) > h
	}
	return false
}

// availableWidth is the content width of n's containing block.
func (t *Terminal) availableWidth(n *html.Node) int {
	p := n.Parent
	if !isElement(p) {
		w, _ := t.Viewport()
		return w
	}
	w := t.OuterWidth(p) - t.Frame(p).Horizontal()
	if t.Overflows(p) {
		w -= t.gutter()
	}
	return max(0, w)
}

func (t *Terminal) tableWidth(table *html.Node) int {
	frame := t.Frame(table).Horizontal()
	groups := dom.RowGroups(table)
	blocks := false
	for _, g := range groups {
		blocks = blocks || IsBlock(g)
	}
	if blocks {
		// Block row groups lay out independently; the table wraps the widest.
		w := 0
		for _, g := range groups {
			w = max(w, t.OuterWidth(g))
		}
		return w + frame
	}
	if w, ok := explicitWidth(table); ok {
		return w + frame
	}
	natural := t.buildGrid(groups).total() + frame
	avail := t.availableWidth(table) - t.Margin(table).Horizontal()
	return max(0, min(natural, avail))
}

func (t *Terminal) cellWidth(cell *html.Node) int {
	row := cell.Parent
	if !dom.IsElement(row, atom.Tr) || !isRowGroup(row.Parent) {
		return t.naturalWidth(cell)
	}
	col := 0
	for _, c := range dom.Cells(row) {
		if c == cell {
			break
		}
		col += dom.Colspan(c)
	}
	return t.groupGrid(row.Parent).span(col, dom.Colspan(cell))
}

// Columns returns the border-box column widths the rows of group are laid
// out on: the group's own grid when it is a block, the grid it shares with
// the table's other in-flow groups otherwise. Callers sizing many cells of
// one group should build this once and walk it with each row's colspans
// instead of measuring cell by cell.
func (t *Terminal) Columns(group *html.Node) []int {
	if !isRowGroup(group) {
		return nil
	}
	return t.groupGrid(group).cols
}

func (t *Terminal) groupGrid(group *html.Node) grid {
	if IsBlock(group) {
		return t.buildGrid([]*html.Node{group})
	}
	return t.buildGrid(flowGroups(group.Parent))
}

// naturalWidth is the border-box width a cell needs for its widest line.
func (t *Terminal) naturalWidth(cell *html.Node) int {
	w := 0
	for _, l := range dom.Lines(cell) {
		w = max(w, ansi.StringWidth(l))
	}
	return w + t.Frame(cell).Horizontal()
}

// flowGroups returns the row groups that still share the table's grid.
func flowGroups(table *html.Node) []*html.Node {
	var out []*html.Node
	for _, g := range dom.RowGroups(table) {
		if !IsBlock(g) {
			out = append(out, g)
		}
	}
	return out
}

func explicitWidth(n *html.Node) (int, bool) {
	return dom.ParseLength(dom.StyleValue(n, "width"))
}

func positionedAncestor(n *html.Node) *html.Node {
	for p := n.Parent; isElement(p); p = p.Parent {
		switch dom.StyleValue(p, "position") {
		case "relative", "absolute":
			return p
		}
	}
	return nil
}

// IsAbsolute reports whether n is taken out of flow by position:absolute.
func IsAbsolute(n *html.Node) bool {
	return dom.StyleValue(n, "position") == "absolute"
}

// IsBlock reports whether n has display:block.
func IsBlock(n *html.Node) bool {
	return dom.StyleValue(n, "display") == "block"
}

func isElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

func isCell(n *html.Node) bool {
	return n.DataAtom == atom.Td || n.DataAtom == atom.Th
}

func isRowGroup(n *html.Node) bool {
	return dom.IsElement(n, atom.Thead) || dom.IsElement(n, atom.Tbody) || dom.IsElement(n, atom.Tfoot)
}

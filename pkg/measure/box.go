// Package measure computes element geometry for the table layout engine.
//
// A Measurer answers the questions a browser answers through outerWidth,
// outerHeight and computed margins. The shipped Terminal measurer lays a
// document out on a character grid: one "pixel" is one terminal column
// horizontally and one line vertically, text width is measured in display
// cells, and inline style declarations (width, height, padding, border
// widths, margin, position, display, overflow) drive the box model.
//
// # Column grid
//
// Table cells report the width of the columns they occupy, not of their own
// text. Columns are sized by the widest cell content among all rows sharing
// the grid; a column holding a cell with an explicit width is fixed to that
// width and clips longer content. A row group with display:block gets an
// independent grid, which is why fixed header and footer rows need
// their widths synchronized with the body.
package measure

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/tablescroll/pkg/dom"
)

// Edges holds per-side lengths for padding, border, or margin.
type Edges struct {
	Top, Right, Bottom, Left int
}

// Horizontal returns Left + Right.
func (e Edges) Horizontal() int { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e Edges) Vertical() int { return e.Top + e.Bottom }

// Add returns the per-side sum of e and o.
func (e Edges) Add(o Edges) Edges {
	return Edges{
		Top:    e.Top + o.Top,
		Right:  e.Right + o.Right,
		Bottom: e.Bottom + o.Bottom,
		Left:   e.Left + o.Left,
	}
}

// Measurer reports element geometry in the document's length unit.
// A nil node measures as zero.
type Measurer interface {
	// OuterWidth is the border-box width of n.
	OuterWidth(n *html.Node) int
	// OuterHeight is the border-box height of n.
	OuterHeight(n *html.Node) int
	// InnerWidth is the padding-box width of n.
	InnerWidth(n *html.Node) int
	// Margin is n's resolved margin.
	Margin(n *html.Node) Edges
	// Frame is n's padding plus border.
	Frame(n *html.Node) Edges
}

// Viewporter is implemented by measurers whose root containing block follows
// the host window.
type Viewporter interface {
	SetViewport(width, height int)
	Viewport() (width, height int)
}

// edges reads a box property from its shorthand and per-side declarations.
// Per-side names are prefix + side + suffix, e.g. "border-left-width".
func edges(s dom.Style, shorthand, prefix, suffix string, def Edges) Edges {
	e := def
	if v, ok := s.Get(shorthand); ok {
		e = shorthandEdges(v, def)
	}
	sides := []struct {
		name string
		dst  *int
	}{
		{"top", &e.Top},
		{"right", &e.Right},
		{"bottom", &e.Bottom},
		{"left", &e.Left},
	}
	for _, side := range sides {
		if v, ok := s.Get(prefix + side.name + suffix); ok {
			if n, ok := dom.ParseLength(v); ok {
				*side.dst = n
			}
		}
	}
	return e
}

// shorthandEdges expands a 1-4 value CSS shorthand.
func shorthandEdges(v string, def Edges) Edges {
	var vals []int
	for _, f := range strings.Fields(v) {
		n, ok := dom.ParseLength(f)
		if !ok {
			return def
		}
		vals = append(vals, n)
	}
	switch len(vals) {
	case 1:
		return Edges{vals[0], vals[0], vals[0], vals[0]}
	case 2:
		return Edges{vals[0], vals[1], vals[0], vals[1]}
	case 3:
		return Edges{vals[0], vals[1], vals[2], vals[1]}
	case 4:
		return Edges{vals[0], vals[1], vals[2], vals[3]}
	}
	return def
}

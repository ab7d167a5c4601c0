package measure

import (
	"golang.org/x/net/html"

	"github.com/matzehuels/tablescroll/pkg/dom"
)

// grid holds border-box column widths for one table layout context.
type grid struct {
	cols []int
}

type placedCell struct {
	node *html.Node
	col  int
	span int
}

func (g grid) total() int {
	w := 0
	for _, c := range g.cols {
		w += c
	}
	return w
}

func (g grid) span(col, n int) int {
	w := 0
	for i := col; i < col+n && i < len(g.cols); i++ {
		w += g.cols[i]
	}
	return w
}

// buildGrid sizes the columns shared by the rows of groups.
//
// Explicit single-column widths fix their column first, then single-column
// content widens the remaining columns, then spanning cells spread any
// shortfall evenly over the non-fixed columns they cover, leftmost columns
// taking the remainder.
func (t *Terminal) buildGrid(groups []*html.Node) grid {
	var cells []placedCell
	n := 0
	for _, g := range groups {
		for _, r := range dom.Rows(g) {
			col := 0
			for _, c := range dom.Cells(r) {
				span := dom.Colspan(c)
				cells = append(cells, placedCell{node: c, col: col, span: span})
				col += span
			}
			n = max(n, col)
		}
	}

	cols := make([]int, n)
	fixed := make([]bool, n)

	for _, pc := range cells {
		if pc.span != 1 {
			continue
		}
		if w, ok := explicitWidth(pc.node); ok {
			w += t.Frame(pc.node).Horizontal()
			if !fixed[pc.col] || w > cols[pc.col] {
				cols[pc.col] = w
			}
			fixed[pc.col] = true
		}
	}
	for _, pc := range cells {
		if pc.span != 1 || fixed[pc.col] {
			continue
		}
		cols[pc.col] = max(cols[pc.col], t.naturalWidth(pc.node))
	}
	for _, pc := range cells {
		if pc.span == 1 {
			continue
		}
		need := t.naturalWidth(pc.node)
		if w, ok := explicitWidth(pc.node); ok {
			need = w + t.Frame(pc.node).Horizontal()
		}
		var open []int
		have := 0
		for i := pc.col; i < pc.col+pc.span; i++ {
			have += cols[i]
			if !fixed[i] {
				open = append(open, i)
			}
		}
		if need <= have || len(open) == 0 {
			continue
		}
		extra := need - have
		each, rest := extra/len(open), extra%len(open)
		for k, i := range open {
			cols[i] += each
			if k < rest {
				cols[i]++
			}
		}
	}
	return grid{cols: cols}
}

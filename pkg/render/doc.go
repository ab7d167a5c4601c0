// Package render draws a laid-out scroll table on a character grid.
//
// # Overview
//
// The renderer reads the geometry a layout pass left in the document: the
// outer wrapper's width, padding and margins, the inner container's height
// and the explicit cell widths. It never measures column widths itself, so
// what it draws is exactly what the layout engine decided.
//
// A rendered [View] stacks, top to bottom:
//
//   - the outer wrapper's top margin
//   - the header region (caption on top, then thead rows)
//   - the body window: ViewportHeight lines starting at the scroll offset,
//     with the scrollbar gutter on the right
//   - the footer region (tfoot rows, then a bottom caption)
//   - the bottom margin
//
// Every line has the same display width: the outer width plus the left and
// right margins.
//
// # Usage
//
//	r := render.New(term)
//	v, err := r.Render(table, offset)
//	fmt.Println(v)
//
// Styles come from lipgloss; [PlainStyles] produces output without escape
// sequences, which is what tests and pipes want.
package render

// Package dom provides the small set of document-tree operations the table
// layout engine needs, on top of golang.org/x/net/html.
//
// The parsed *html.Node tree is treated as a live document: callers query
// tables and their row groups, read and write inline style declarations,
// and wrap or unwrap elements in generated containers.
//
// # Inline styles
//
// Style values are kept as an ordered list of declarations so that a
// round-trip through ParseStyle and Style.String preserves the author's
// ordering:
//
//	s := dom.GetStyle(cell)
//	s.Set("width", "12px")
//	dom.SetStyle(cell, s)
//
// # Original-style stash
//
// Stash records a node's original style attribute in data-scroll-origin
// before the first mutation; Restore puts it back and drops the marker. Nodes
// that had no style attribute at all also carry data-scroll-unstyled, so an
// empty style="" survives the round trip. This lets a later teardown return
// every touched node to its exact original inline-style state.
package dom

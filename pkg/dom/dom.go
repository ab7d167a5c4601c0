package dom

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attributes used by the layout engine.
const (
	// AttrScroll marks a table as auto-managed; its value is the target
	// viewport height or the literal "false".
	AttrScroll = "data-scroll"

	// AttrID identifies the wrappers generated by a layout pass.
	AttrID = "data-id"

	// AttrOrigin holds a node's original style attribute while a layout is applied.
	AttrOrigin = "data-scroll-origin"

	// AttrUnstyled flags a stashed node that had no style attribute at all.
	AttrUnstyled = "data-scroll-unstyled"
)

// Marker values carried in AttrID.
const (
	MarkerInner = "inner"
	MarkerOuter = "outer"
)

// Parse reads an HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ParseString is Parse for an in-memory document.
func ParseString(s string) (*html.Node, error) {
	return html.Parse(strings.NewReader(s))
}

// Render writes the document to w.
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// RenderString renders n to a string. Render errors are impossible for
// in-memory writers, so an empty string is returned on failure.
func RenderString(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// IsElement reports whether n is an element with the given tag.
func IsElement(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

// XPath queries over the document tree.
const (
	queryTables       = "//table"
	queryScrollTables = "//table[@" + AttrScroll + "]"
	queryStashed      = "descendant-or-self::*[@" + AttrOrigin + "]"
)

// Tables returns every table element in the document, in document order.
func Tables(root *html.Node) []*html.Node {
	if root == nil {
		return nil
	}
	return htmlquery.Find(root, queryTables)
}

// ScrollTables returns every table carrying the data-scroll attribute.
func ScrollTables(root *html.Node) []*html.Node {
	if root == nil {
		return nil
	}
	return htmlquery.Find(root, queryScrollTables)
}

// Stashed returns root and every descendant holding a stashed original
// style, in document order.
func Stashed(root *html.Node) []*html.Node {
	if root == nil {
		return nil
	}
	return htmlquery.Find(root, queryStashed)
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the named attribute if present.
func RemoveAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// ChildElement returns the first element child of n with the given tag.
func ChildElement(n *html.Node, a atom.Atom) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c, a) {
			return c
		}
	}
	return nil
}

// ChildElements returns every element child of n with one of the given tags.
func ChildElements(n *html.Node, tags ...atom.Atom) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		for _, a := range tags {
			if c.DataAtom == a {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Caption returns the table's caption, or nil.
func Caption(table *html.Node) *html.Node { return ChildElement(table, atom.Caption) }

// THead returns the table's header row group, or nil.
func THead(table *html.Node) *html.Node { return ChildElement(table, atom.Thead) }

// TBody returns the table's first body row group, or nil.
func TBody(table *html.Node) *html.Node { return ChildElement(table, atom.Tbody) }

// TFoot returns the table's footer row group, or nil.
func TFoot(table *html.Node) *html.Node { return ChildElement(table, atom.Tfoot) }

// RowGroups returns the table's row groups in document order.
func RowGroups(table *html.Node) []*html.Node {
	return ChildElements(table, atom.Thead, atom.Tbody, atom.Tfoot)
}

// Rows returns the tr children of a row group.
func Rows(group *html.Node) []*html.Node {
	return ChildElements(group, atom.Tr)
}

// Cells returns the th/td children of a row.
func Cells(row *html.Node) []*html.Node {
	return ChildElements(row, atom.Th, atom.Td)
}

// ReferenceCells returns the cells of a row group's reference row: the last
// row for a header, the first row otherwise.
func ReferenceCells(group *html.Node) []*html.Node {
	rows := Rows(group)
	if len(rows) == 0 {
		return nil
	}
	if IsElement(group, atom.Thead) {
		return Cells(rows[len(rows)-1])
	}
	return Cells(rows[0])
}

// Colspan returns the cell's column span; missing or invalid values count as 1.
func Colspan(cell *html.Node) int {
	v, ok := Attr(cell, "colspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Ancestor returns the nearest ancestor of n with the given tag, or nil.
func Ancestor(n *html.Node, a atom.Atom) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if IsElement(p, a) {
			return p
		}
	}
	return nil
}

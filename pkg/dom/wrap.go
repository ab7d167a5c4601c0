package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewDiv creates a detached div element with the given attributes.
func NewDiv(attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     attrs,
	}
}

// Wrap puts wrapper in n's place and moves n inside it. wrapper must be detached.
func Wrap(n, wrapper *html.Node) {
	if p := n.Parent; p != nil {
		p.InsertBefore(wrapper, n)
		p.RemoveChild(n)
	}
	wrapper.AppendChild(n)
}

// Unwrap replaces n's parent with n, discarding the parent and any other
// children it had. It returns the removed parent, or nil when n has no
// element parent.
func Unwrap(n *html.Node) *html.Node {
	p := n.Parent
	if p == nil || p.Type != html.ElementNode || p.Parent == nil {
		return nil
	}
	gp := p.Parent
	p.RemoveChild(n)
	gp.InsertBefore(n, p)
	gp.RemoveChild(p)
	return p
}

// HasMarker reports whether n is a generated wrapper with the given marker.
func HasMarker(n *html.Node, marker string) bool {
	if !IsElement(n, atom.Div) {
		return false
	}
	v, ok := Attr(n, AttrID)
	return ok && v == marker
}

// Stash records n's current style attribute unless one is already recorded.
// A node without a style attribute is also flagged with AttrUnstyled so that
// Restore can tell it apart from an empty style="".
func Stash(n *html.Node) {
	if n == nil {
		return
	}
	if _, ok := Attr(n, AttrOrigin); ok {
		return
	}
	v, ok := Attr(n, "style")
	SetAttr(n, AttrOrigin, v)
	if !ok {
		SetAttr(n, AttrUnstyled, "")
	}
}

// Restore returns n's style attribute to the value recorded by Stash.
// Nodes without a recorded value are left untouched. A style attribute that
// survived the layout keeps its position among n's attributes.
func Restore(n *html.Node) {
	if n == nil {
		return
	}
	v, ok := Attr(n, AttrOrigin)
	if !ok {
		return
	}
	RemoveAttr(n, AttrOrigin)
	if _, unstyled := Attr(n, AttrUnstyled); unstyled {
		RemoveAttr(n, AttrUnstyled)
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", v)
}

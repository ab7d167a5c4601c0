package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Lines returns the rendered text lines of n. Whitespace runs collapse to a
// single space, <br> starts a new line, and each line is trimmed. An element
// with no text yields no lines.
func Lines(n *html.Node) []string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(collapse(c.Data))
		case IsElement(c, atom.Br):
			b.WriteByte('\n')
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			walk(k)
		}
	}
	if n == nil {
		return nil
	}
	walk(n)

	text := strings.TrimSpace(b.String())
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// Text returns the element's text with lines joined by newlines.
func Text(n *html.Node) string {
	return strings.Join(Lines(n), "\n")
}

func collapse(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}

package dom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Declaration is one property: value pair of an inline style.
type Declaration struct {
	Property string
	Value    string
}

// Style is an ordered inline style declaration list.
type Style []Declaration

// ParseStyle parses a style attribute value. Property names are lowercased;
// declarations without a colon are dropped.
func ParseStyle(s string) Style {
	var out Style
	for _, part := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k == "" {
			continue
		}
		out = out.with(k, v)
	}
	return out
}

// Get returns the value of a property.
func (s Style) Get(prop string) (string, bool) {
	for _, d := range s {
		if d.Property == prop {
			return d.Value, true
		}
	}
	return "", false
}

// Set sets prop to val. An empty val removes the property, mirroring how an
// empty string clears an inline style in a browser.
func (s *Style) Set(prop, val string) {
	if val == "" {
		s.Del(prop)
		return
	}
	*s = s.with(prop, val)
}

// Del removes prop.
func (s *Style) Del(prop string) {
	out := (*s)[:0]
	for _, d := range *s {
		if d.Property != prop {
			out = append(out, d)
		}
	}
	*s = out
}

func (s Style) with(prop, val string) Style {
	for i, d := range s {
		if d.Property == prop {
			s[i].Value = val
			return s
		}
	}
	return append(s, Declaration{Property: prop, Value: val})
}

// String serializes the declarations.
func (s Style) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.Property + ": " + d.Value
	}
	return strings.Join(parts, "; ")
}

// GetStyle parses n's style attribute.
func GetStyle(n *html.Node) Style {
	v, _ := Attr(n, "style")
	return ParseStyle(v)
}

// SetStyle writes s to n's style attribute. An empty s removes the attribute
// unless n is stashed with an original one.
func SetStyle(n *html.Node, s Style) {
	if len(s) == 0 && !hadStyle(n) {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", s.String())
}

// hadStyle reports whether n is stashed with an original style attribute,
// whose slot must stay in place until Restore.
func hadStyle(n *html.Node) bool {
	if _, ok := Attr(n, AttrOrigin); !ok {
		return false
	}
	_, unstyled := Attr(n, AttrUnstyled)
	return !unstyled
}

// StyleValue returns one inline style property of n.
func StyleValue(n *html.Node, prop string) string {
	v, _ := GetStyle(n).Get(prop)
	return v
}

// SetStyleValues updates properties of n's inline style from alternating
// property, value pairs. Empty values clear the property.
func SetStyleValues(n *html.Node, kv ...string) {
	s := GetStyle(n)
	for i := 0; i+1 < len(kv); i += 2 {
		s.Set(kv[i], kv[i+1])
	}
	SetStyle(n, s)
}

// Px formats a length in the document's unit.
func Px(n int) string {
	return strconv.Itoa(n) + "px"
}

// ParseLength parses an absolute length such as "12px" or "12". Percentages,
// keywords and empty values report ok=false.
func ParseLength(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasSuffix(v, "%") {
		return 0, false
	}
	v = strings.TrimSuffix(v, "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

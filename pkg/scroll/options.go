package scroll

import (
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/matzehuels/tablescroll/pkg/dom"
	"github.com/matzehuels/tablescroll/pkg/errors"
)

// DefaultSpace is the extra per-column width added to measured body cells.
const DefaultSpace = 0

// Height is the target viewport height of a layout pass. The zero value
// means "unset": the table's data-scroll attribute decides.
type Height struct {
	px       int
	set      bool
	disabled bool
}

// Px returns an explicit viewport height.
func Px(n int) Height { return Height{px: n, set: true} }

// Disabled returns the height that only tears down a previous layout.
func Disabled() Height { return Height{set: true, disabled: true} }

// ParseHeight parses "false" or an integer height.
func ParseHeight(s string) (Height, error) {
	n, enabled, err := errors.ParseHeight(s)
	if err != nil {
		return Height{}, err
	}
	if !enabled {
		return Disabled(), nil
	}
	return Px(n), nil
}

// IsSet reports whether h overrides the data-scroll attribute.
func (h Height) IsSet() bool { return h.set }

// String formats h the way ParseHeight accepts it.
func (h Height) String() string {
	switch {
	case !h.set:
		return ""
	case h.disabled:
		return "false"
	}
	return strconv.Itoa(h.px)
}

// resolve picks the effective height for table.
func (h Height) resolve(table *html.Node) (px int, enabled bool, err error) {
	if h.set {
		return h.px, !h.disabled, nil
	}
	v, ok := dom.Attr(table, dom.AttrScroll)
	if !ok {
		return 0, false, errors.New(errors.ErrCodeInvalidHeight,
			"no height given and table has no %s attribute", dom.AttrScroll)
	}
	return errors.ParseHeight(v)
}

// Options configures one layout pass.
type Options struct {
	Height Height // target viewport height; zero uses data-scroll
	Space  int    // extra width reserved per column
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithScrollbar sets the source of the scrollbar gutter width.
func WithScrollbar(p Scrollbar) Option {
	return func(e *Engine) {
		if p != nil {
			e.scrollbar = p
		}
	}
}

// Scrollbar reports the host's vertical scrollbar width.
type Scrollbar interface {
	Width() int
}

package measure

import (
	"sync"

	"github.com/matzehuels/tablescroll/pkg/dom"
)

// ScrollbarProbe measures the width of the host's vertical scrollbar once and
// caches it for the life of the probe. The value depends only on how the host
// draws scrollbars, never on document content, so it is never invalidated.
type ScrollbarProbe struct {
	m     Measurer
	once  sync.Once
	width int
}

// NewScrollbarProbe creates a probe that measures through m.
func NewScrollbarProbe(m Measurer) *ScrollbarProbe {
	return &ScrollbarProbe{m: m}
}

// Width returns the scrollbar gutter width. It is non-negative and stable
// across calls.
func (p *ScrollbarProbe) Width() int {
	p.once.Do(func() {
		p.width = probeScrollbar(p.m)
	})
	return p.width
}

// probeScrollbar builds a detached 50-line scroll container, measures a child
// before and after forcing it taller than the container, and returns the
// difference in the child's inner width.
func probeScrollbar(m Measurer) int {
	outer := dom.NewDiv()
	dom.SetStyleValues(outer, "height", dom.Px(50), "overflow", "auto")
	inner := dom.NewDiv()
	outer.AppendChild(inner)

	before := m.InnerWidth(inner)
	dom.SetStyleValues(inner, "height", dom.Px(60))
	after := m.InnerWidth(inner)

	return max(0, before-after)
}

// Package scroll turns a table into a fixed-header, fixed-footer, vertically
// scrollable viewport whose header, body and footer columns stay aligned.
//
// A layout pass wraps the table in two generated containers:
//
//	<div data-id="outer" style="position: relative; padding-top: H; padding-bottom: F; ...">
//	  <div data-id="inner" style="overflow: auto; height: V">
//	    <table> ... </table>
//	  </div>
//	</div>
//
// The header and footer row groups are pinned inside the outer padding with
// position:absolute, the body becomes a block that scrolls inside the inner
// container, and every reference-row cell gets an explicit width taken from
// one shared column-width vector.
//
// Every pass starts by tearing down the previous one, so calling Layout
// repeatedly (for instance on each resize) converges instead of nesting
// wrappers, and Layout with Disabled() restores the original document.
//
//	e := scroll.New(measure.NewTerminal(120, 40, measure.TerminalOptions{}))
//	res, err := e.Layout(ctx, table, scroll.Options{Height: scroll.Px(20)})
package scroll

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/tablescroll/pkg/dom"
	"github.com/matzehuels/tablescroll/pkg/errors"
	"github.com/matzehuels/tablescroll/pkg/measure"
	"github.com/matzehuels/tablescroll/pkg/observability"
)

// Engine lays out tables against a Measurer.
type Engine struct {
	m         measure.Measurer
	scrollbar Scrollbar
	logger    *log.Logger
}

// New creates an engine. Without WithScrollbar the engine probes the
// scrollbar width through m once and caches it.
func New(m measure.Measurer, opts ...Option) *Engine {
	e := &Engine{m: m, logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}
	if e.scrollbar == nil {
		e.scrollbar = measure.NewScrollbarProbe(m)
	}
	return e
}

// Measurer returns the engine's measurer.
func (e *Engine) Measurer() measure.Measurer { return e.m }

// ScrollbarWidth returns the gutter width added to the outer wrapper.
func (e *Engine) ScrollbarWidth() int { return e.scrollbar.Width() }

// Result describes a completed layout pass.
type Result struct {
	Disabled bool // the pass only tore down a previous layout

	CaptionHeight  int
	FixedHeight    int // caption + header + footer, before caption placement
	HeadHeight     int // reserved above the body, caption included when on top
	FootHeight     int // reserved below the body, caption included when at the bottom
	ViewportHeight int // height of the scrolling body container

	Natural    []int // body reference widths plus space
	Widths     []int // column widths after overflow distribution
	TableWidth int   // measured table width the widths were fitted to
	OuterWidth int   // width given to the outer wrapper
}

// Layout lays out table with the given options. The table must be a table
// element with a tbody; anything else is rejected before the document is
// touched.
func (e *Engine) Layout(ctx context.Context, table *html.Node, opts Options) (*Result, error) {
	id, _ := dom.Attr(table, "id")
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, id)
	start := time.Now()

	res, err := e.layout(ctx, table, opts)

	columns := 0
	if res != nil {
		columns = len(res.Widths)
	}
	hooks.OnLayoutComplete(ctx, id, columns, time.Since(start), err)
	return res, err
}

// Reset removes a previous layout from table, if any. It is Layout with
// Disabled().
func (e *Engine) Reset(ctx context.Context, table *html.Node) error {
	_, err := e.Layout(ctx, table, Options{Height: Disabled()})
	return err
}

func (e *Engine) layout(ctx context.Context, table *html.Node, opts Options) (*Result, error) {
	if !dom.IsElement(table, atom.Table) {
		return nil, errors.New(errors.ErrCodeInvalidTable, "node is not a table element")
	}
	tbody := dom.TBody(table)
	if tbody == nil {
		return nil, errors.New(errors.ErrCodeInvalidTable, "table has no tbody")
	}
	if err := errors.ValidateSpace(opts.Space); err != nil {
		return nil, err
	}
	height, enabled, err := opts.Height.resolve(table)
	if err != nil {
		return nil, err
	}

	if teardown(table) {
		id, _ := dom.Attr(table, "id")
		observability.Layout().OnReset(ctx, id)
	}
	if !enabled {
		return &Result{Disabled: true}, nil
	}

	m := e.m
	caption := dom.Caption(table)
	thead := dom.THead(table)
	tfoot := dom.TFoot(table)

	res := &Result{}
	res.CaptionHeight = m.OuterHeight(caption)
	res.FixedHeight = m.OuterHeight(table) - m.OuterHeight(tbody)
	res.HeadHeight = res.FixedHeight - m.OuterHeight(tfoot) - res.CaptionHeight
	res.FootHeight = res.FixedHeight - m.OuterHeight(thead) - res.CaptionHeight

	top, bottom := 0, 0
	if caption != nil {
		dom.Stash(caption)
		if dom.StyleValue(caption, "caption-side") == "bottom" {
			bottom = res.CaptionHeight
			dom.SetStyleValues(caption, "bottom", "0")
			res.FootHeight += res.CaptionHeight
		} else {
			top = res.CaptionHeight
			dom.SetStyleValues(caption, "top", "0")
			res.HeadHeight += res.CaptionHeight
		}
		dom.SetStyleValues(caption, "width", "100%", "position", "absolute")
	}

	margin := m.Margin(table)
	dom.Stash(table)
	s := dom.GetStyle(table)
	s.Del("margin")
	s.Set("margin-top", "0")
	s.Set("margin-right", "0")
	s.Set("margin-bottom", "0")
	s.Set("margin-left", "0")
	dom.SetStyle(table, s)

	res.ViewportHeight = max(0, height-res.FixedHeight)
	outer := dom.NewDiv(html.Attribute{Key: dom.AttrID, Val: dom.MarkerOuter})
	dom.SetStyleValues(outer,
		"position", "relative",
		"padding-top", dom.Px(res.HeadHeight),
		"padding-bottom", dom.Px(res.FootHeight),
		"margin-top", dom.Px(margin.Top),
		"margin-right", dom.Px(margin.Right),
		"margin-bottom", dom.Px(margin.Bottom),
		"margin-left", dom.Px(margin.Left),
	)
	inner := dom.NewDiv(html.Attribute{Key: dom.AttrID, Val: dom.MarkerInner})
	dom.SetStyleValues(inner,
		"overflow", "auto",
		"height", dom.Px(res.ViewportHeight),
	)
	dom.Wrap(table, outer)
	dom.Wrap(table, inner)

	heads := dom.ReferenceCells(thead)
	bodys := dom.ReferenceCells(tbody)
	foots := dom.ReferenceCells(tfoot)

	res.Natural = make([]int, len(bodys))
	for i, c := range bodys {
		res.Natural[i] = m.OuterWidth(c) + opts.Space
	}
	res.TableWidth = m.OuterWidth(table)
	res.Widths = Distribute(res.Natural, res.TableWidth)

	if thead != nil {
		dom.Stash(thead)
		dom.SetStyleValues(thead, "position", "absolute", "top", dom.Px(top), "display", "block")
	}
	dom.Stash(tbody)
	dom.SetStyleValues(tbody, "display", "block")
	if tfoot != nil {
		dom.Stash(tfoot)
		dom.SetStyleValues(tfoot, "position", "absolute", "bottom", dom.Px(bottom), "display", "block")
	}

	e.applyWidths(heads, SpanWidths(spans(heads), res.Widths))
	e.applyWidths(bodys, res.Widths)
	e.applyWidths(foots, SpanWidths(spans(foots), res.Widths))

	ref := thead
	if ref == nil {
		ref = tbody
	}
	res.OuterWidth = m.OuterWidth(ref) + e.scrollbar.Width()
	dom.SetStyleValues(outer, "width", dom.Px(res.OuterWidth-m.Frame(outer).Horizontal()))

	e.logger.Debug("table layout",
		"head", res.HeadHeight,
		"foot", res.FootHeight,
		"viewport", res.ViewportHeight,
		"columns", len(res.Widths),
		"overflow", sum(res.Natural)-res.TableWidth,
		"width", res.OuterWidth,
	)
	return res, nil
}

// applyWidths gives cells[i] the outer width widths[i]. The content width is
// the target minus the cell's own padding and border, so the rendered outer
// width matches whatever box model the cell has. Cells past the end of
// widths are left alone.
func (e *Engine) applyWidths(cells []*html.Node, widths []int) {
	for i, c := range cells {
		if i >= len(widths) {
			return
		}
		content := max(0, widths[i]-e.m.Frame(c).Horizontal())
		dom.Stash(c)
		dom.SetStyleValues(c, "width", dom.Px(content))
	}
}

func spans(cells []*html.Node) []int {
	out := make([]int, len(cells))
	for i, c := range cells {
		out[i] = dom.Colspan(c)
	}
	return out
}

// teardown reverses a previous layout pass. It reports whether there was one.
func teardown(table *html.Node) bool {
	if !dom.HasMarker(table.Parent, dom.MarkerInner) {
		return false
	}
	dom.Unwrap(table)
	if dom.HasMarker(table.Parent, dom.MarkerOuter) {
		dom.Unwrap(table)
	}
	for _, n := range dom.Stashed(table) {
		dom.Restore(n)
	}
	return true
}

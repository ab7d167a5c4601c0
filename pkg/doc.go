// Package pkg provides the core libraries for Tablescroll table layouts.
//
// # Overview
//
// Tablescroll turns an HTML table into a fixed-header, fixed-footer,
// vertically scrollable viewport. The table is wrapped in two generated
// containers; the header and footer are lifted into the outer container's
// padding, the body scrolls inside the inner one, and column widths are
// synchronized so all three regions stay aligned.
//
// # Architecture
//
// The typical data flow through Tablescroll:
//
//	HTML document
//	     ↓
//	[io] package (read and parse)
//	     ↓
//	[scroll] package (wrap, measure, synchronize widths)
//	     ↓
//	[render] package (draw a frame) or [io] (write HTML back)
//
// # Quick Start
//
//	doc, _ := io.ImportHTML("report.html")
//	m := measure.NewTerminal(80, 24, measure.TerminalOptions{})
//	e := scroll.New(m)
//	for _, t := range dom.ScrollTables(doc) {
//	    if _, err := e.Layout(ctx, t, scroll.Options{}); err != nil {
//	        log.Warn("layout failed", "err", err)
//	    }
//	}
//	_ = io.ExportHTML(doc, "report.scroll.html")
//
// # Main Packages
//
// [dom] - Element helpers over golang.org/x/net/html: inline styles, the
// generated wrappers and the stashed original styles that make layout
// reversible.
//
// [measure] - The box model. [measure.Terminal] measures tables in character
// cells; the scrollbar probe derives the gutter width from it.
//
// [scroll] - The layout engine: Layout, Reset, and the width arithmetic
// ([scroll.Distribute], [scroll.SpanWidths]).
//
// [resize] - A registry of tables that is laid out on load and again after
// debounced resizes.
//
// [render] - Draws a laid-out table as terminal text at a scroll offset.
//
// [config] - TOML configuration for layout defaults, debounce delay and the
// terminal box model.
//
// [io] - HTML import/export and JSON layout reports.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for layout and resize events.
//
// # Testing
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/scroll/...      # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [dom]: https://pkg.go.dev/github.com/matzehuels/tablescroll/pkg/dom
// [measure]: https://pkg.go.dev/github.com/matzehuels/tablescroll/pkg/measure
// [scroll]: https://pkg.go.dev/github.com/matzehuels/tablescroll/pkg/scroll
// [resize]: https://pkg.go.dev/github.com/matzehuels/tablescroll/pkg/resize
// [render]: https://pkg.go.dev/github.com/matzehuels/tablescroll/pkg/render
// [config]: https://pkg.go.dev/github.com/matzehuels/tablescroll/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/tablescroll/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/tablescroll/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tablescroll/pkg/observability
package pkg

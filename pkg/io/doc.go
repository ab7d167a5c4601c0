// Package io reads and writes the HTML documents tablescroll operates on and
// exports layout reports as JSON.
//
// # Documents
//
// Use [ImportHTML] to read a document from a file path ("-" reads stdin), or
// [ReadHTML] to read from any io.Reader. [ExportHTML] and [WriteHTML] are the
// inverse:
//
//	doc, err := io.ImportHTML("orders.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// ... lay out tables ...
//	err = io.ExportHTML(doc, "orders.out.html")
//
// A missing input file yields an error carrying errors.ErrCodeFileNotFound.
//
// # Reports
//
// A [Report] summarizes one layout pass per table: the reserved header and
// footer heights, the viewport height and the natural and adjusted column
// widths. [WriteJSON] encodes it with two-space indentation:
//
//	{
//	  "viewport": {"width": 80, "height": 24},
//	  "scrollbar": 1,
//	  "tables": [
//	    {
//	      "index": 0,
//	      "id": "orders",
//	      "head": 2,
//	      "foot": 1,
//	      "viewport": 5,
//	      "natural": [5, 3, 5],
//	      "widths": [5, 3, 5],
//	      "outer_width": 14
//	    }
//	  ]
//	}
//
// Tables whose pass failed carry an "error" string instead of geometry.
package io

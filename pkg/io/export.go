package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html"

	"github.com/matzehuels/tablescroll/pkg/dom"
	"github.com/matzehuels/tablescroll/pkg/scroll"
)

// Report summarizes a layout run over one document.
type Report struct {
	Viewport  Size          `json:"viewport"`
	Scrollbar int           `json:"scrollbar"`
	Tables    []TableReport `json:"tables"`
}

// Size is a width and height in character cells.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TableReport is the outcome of one table's layout pass.
type TableReport struct {
	Index    int    `json:"index"`
	ID       string `json:"id,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
	Error    string `json:"error,omitempty"`

	Head       int   `json:"head"`
	Foot       int   `json:"foot"`
	Viewport   int   `json:"viewport"`
	Natural    []int `json:"natural,omitempty"`
	Widths     []int `json:"widths,omitempty"`
	OuterWidth int   `json:"outer_width"`
}

// NewTableReport builds the report entry for table. Exactly one of res and
// err is expected to be non-nil.
func NewTableReport(index int, table *html.Node, res *scroll.Result, err error) TableReport {
	tr := TableReport{Index: index}
	tr.ID, _ = dom.Attr(table, "id")
	if err != nil {
		tr.Error = err.Error()
		return tr
	}
	if res == nil {
		return tr
	}
	tr.Disabled = res.Disabled
	tr.Head = res.HeadHeight
	tr.Foot = res.FootHeight
	tr.Viewport = res.ViewportHeight
	tr.Natural = res.Natural
	tr.Widths = res.Widths
	tr.OuterWidth = res.OuterWidth
	return tr
}

// WriteJSON encodes r as indented JSON.
func WriteJSON(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteHTML renders doc to w.
func WriteHTML(doc *html.Node, w io.Writer) error {
	if err := dom.Render(w, doc); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// ExportHTML writes doc to the file at path, or stdout when path is Stdio.
func ExportHTML(doc *html.Node, path string) error {
	if path == Stdio {
		return WriteHTML(doc, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteHTML(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

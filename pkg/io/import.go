package io

import (
	"io"
	"os"

	"golang.org/x/net/html"

	"github.com/matzehuels/tablescroll/pkg/dom"
	"github.com/matzehuels/tablescroll/pkg/errors"
)

// Stdio is the path that selects stdin for input and stdout for output.
const Stdio = "-"

// ReadHTML parses an HTML document from r. ReadHTML does not close r.
func ReadHTML(r io.Reader) (*html.Node, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse html")
	}
	return doc, nil
}

// ImportHTML reads the HTML document at path, or stdin when path is Stdio.
func ImportHTML(path string) (*html.Node, error) {
	if path == Stdio {
		return ReadHTML(os.Stdin)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadHTML(f)
}

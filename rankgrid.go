// Package rankgrid reconstructs contest standings from scoreboard PDFs that
// have been rendered to page primitives by pdf2json.
//
// Basic usage:
//
//	rows, warnings, err := rankgrid.Open("scoreboard.json").Problems(13).Rows()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", rankgrid.FormatWarnings(warnings))
//	}
//
// Producing a standard ranklist:
//
//	list, _, err := rankgrid.Open("scoreboard.json").
//	    Problems(13).
//	    WithLogger(logger).
//	    Ranklist(srk.DefaultContest())
//
// For finer control the tables package exposes every pipeline stage.
package rankgrid

import (
	"io"
	"strings"

	"github.com/tsawler/rankgrid/model"
	"github.com/tsawler/rankgrid/pdf2json"
	"github.com/tsawler/rankgrid/tables"
)

// Warning is a non-fatal diagnostic about a page or a cell
type Warning = tables.Warning

// Open returns an Extractor reading the pdf2json document at filename. The
// file is read by each terminal operation.
//
// Example:
//
//	rows, warnings, err := rankgrid.Open("scoreboard.json").Problems(5).Rows()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader returns an Extractor over a pdf2json document read from r. The
// document is decoded immediately; a decode error is reported by the first
// terminal operation.
func FromReader(r io.Reader) *Extractor {
	e := &Extractor{options: defaultOptions(), loaded: true}
	root, err := pdf2json.Decode(r)
	if err != nil {
		e.err = err
		return e
	}
	e.doc = pdf2json.ToDocument(root)
	return e
}

// FromPages returns an Extractor over pages that are already in the page model
func FromPages(pages []model.Page) *Extractor {
	doc := model.NewDocument()
	for _, p := range pages {
		doc.AddPage(p)
	}
	return &Extractor{doc: doc, loaded: true, options: defaultOptions()}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil.
//
// Example:
//
//	count := rankgrid.Must(rankgrid.Open("scoreboard.json").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRows wraps a terminal operation returning (T, []Warning, error) and
// panics if the error is non-nil. Warnings are discarded.
//
// Example:
//
//	rows := rankgrid.MustRows(rankgrid.Open("scoreboard.json").Problems(5).Rows())
func MustRows[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// FormatWarnings joins warnings into one line each
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

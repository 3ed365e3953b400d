// Package pdf2json reads the JSON page dumps produced by the pdf2json renderer
// and converts them into the primitive page model used by the tables engine.
//
// Only the elements the engine consumes are decoded: page dimensions, filled
// rectangles (Fills) and positioned text runs (Texts). Line segments, form
// fields and box sets are ignored.
package pdf2json

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Root is the top-level document object. Older renderer versions wrap the
// pages in a "formImage" object; both layouts are accepted.
type Root struct {
	Meta      map[string]interface{} `json:"Meta,omitempty"`
	Pages     []Page                 `json:"Pages"`
	FormImage *struct {
		Pages []Page `json:"Pages"`
	} `json:"formImage,omitempty"`
}

// Page is one rendered page
type Page struct {
	Width  float64 `json:"Width"`
	Height float64 `json:"Height"`
	Fills  []Fill  `json:"Fills"`
	Texts  []Text  `json:"Texts"`
}

// Fill is a filled rectangle. Clr is a palette index; Oc is an explicit
// colour such as "#000000" and is only present on some fills.
type Fill struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	W   float64 `json:"w"`
	H   float64 `json:"h"`
	Clr *int    `json:"clr,omitempty"`
	Oc  string  `json:"oc,omitempty"`
}

// Text is a positioned text element made of one or more runs
type Text struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	W   float64 `json:"w,omitempty"`
	Clr *int    `json:"clr,omitempty"`
	Oc  string  `json:"oc,omitempty"`
	A   string  `json:"A,omitempty"`
	R   []Run   `json:"R"`
}

// Run is a styled fragment of a text element. T is URI encoded. TS holds
// [fontFaceId, fontSize, bold, italic].
type Run struct {
	T  string    `json:"T"`
	S  *int      `json:"S,omitempty"`
	TS []float64 `json:"TS,omitempty"`
	RA *float64  `json:"RA,omitempty"`
}

// FontSize returns the size element of TS, or 0 when absent
func (r Run) FontSize() float64 {
	if len(r.TS) < 2 {
		return 0
	}
	return r.TS[1]
}

// AllPages returns the document's pages regardless of the wrapping layout
func (r *Root) AllPages() []Page {
	if len(r.Pages) == 0 && r.FormImage != nil {
		return r.FormImage.Pages
	}
	return r.Pages
}

// Decode reads a pdf2json document from r
func Decode(r io.Reader) (*Root, error) {
	var root Root
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode pdf2json document: %w", err)
	}
	return &root, nil
}

// Load reads a pdf2json document from a file
func Load(filename string) (*Root, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

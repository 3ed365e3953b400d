package model

import "strings"

// Fill is a filled rectangle drawn on a page. Thin fills are how the
// renderer draws ruling lines, so they double as row and column separators.
type Fill struct {
	X, Y float64
	W, H float64

	// Color is the renderer's palette index for the fill colour, if any
	Color *int

	// OwnerTag is the explicit stroke colour tag (e.g. "#000000"); empty
	// for plain background fills
	OwnerTag string
}

// BBox returns the fill's bounding box
func (f Fill) BBox() BBox {
	return BBox{X: f.X, Y: f.Y, Width: f.W, Height: f.H}
}

// Right returns the right edge of the fill
func (f Fill) Right() float64 {
	return f.X + f.W
}

// Fragment is one styled piece of a text run
type Fragment struct {
	Content string
	Size    float64 // font size in points, 0 when unknown
}

// TextRun is a positioned run of text made of one or more fragments
type TextRun struct {
	X, Y float64

	// FontSize is the renderer's size hint for the run; the baseline offset
	// used when binning is derived from it
	FontSize float64

	Fragments []Fragment
}

// Content returns the concatenated fragment contents
func (t TextRun) Content() string {
	if len(t.Fragments) == 1 {
		return t.Fragments[0].Content
	}
	var sb strings.Builder
	for _, f := range t.Fragments {
		sb.WriteString(f.Content)
	}
	return sb.String()
}

// Page is the primitive model of one rendered page
type Page struct {
	Index  int     // 0-indexed page number
	Width  float64 // canvas width in page units
	Height float64 // canvas height in page units
	Fills  []Fill
	Texts  []TextRun
}

// Bounds returns the page canvas as a bounding box
func (p *Page) Bounds() BBox {
	return BBox{Width: p.Width, Height: p.Height}
}

// TextsInRegion returns the text runs whose anchor lies within bbox
func (p *Page) TextsInRegion(bbox BBox) []TextRun {
	var texts []TextRun
	for _, t := range p.Texts {
		if bbox.Contains(Point{X: t.X, Y: t.Y}) {
			texts = append(texts, t)
		}
	}
	return texts
}

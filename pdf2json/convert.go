package pdf2json

import (
	"fmt"
	"net/url"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/rankgrid/model"
)

// DecodeText decodes a run's URI-encoded content. '+' stands for a space.
// Content that is not valid percent-encoding is returned unchanged.
func DecodeText(raw string) string {
	s, err := url.QueryUnescape(raw)
	if err != nil {
		return raw
	}
	return norm.NFC.String(s)
}

// ToPage converts one rendered page into the primitive page model
func ToPage(index int, p Page) model.Page {
	page := model.Page{
		Index:  index,
		Width:  p.Width,
		Height: p.Height,
		Fills:  make([]model.Fill, 0, len(p.Fills)),
		Texts:  make([]model.TextRun, 0, len(p.Texts)),
	}

	for _, f := range p.Fills {
		page.Fills = append(page.Fills, model.Fill{
			X:        f.X,
			Y:        f.Y,
			W:        f.W,
			H:        f.H,
			Color:    f.Clr,
			OwnerTag: f.Oc,
		})
	}

	for _, t := range p.Texts {
		run := model.TextRun{
			X:         t.X,
			Y:         t.Y,
			Fragments: make([]model.Fragment, 0, len(t.R)),
		}
		// the size hint of the first run positions the whole element
		if len(t.R) > 0 {
			run.FontSize = t.R[0].FontSize()
		}
		for _, r := range t.R {
			run.Fragments = append(run.Fragments, model.Fragment{
				Content: DecodeText(r.T),
				Size:    r.FontSize(),
			})
		}
		page.Texts = append(page.Texts, run)
	}

	return page
}

// ToDocument converts a decoded pdf2json document into the page model
func ToDocument(root *Root) *model.Document {
	doc := model.NewDocument()
	for k, v := range root.Meta {
		s, ok := v.(string)
		if !ok {
			continue
		}
		switch k {
		case "Title":
			doc.Metadata.Title = s
		case "Creator":
			doc.Metadata.Creator = s
		case "Producer":
			doc.Metadata.Producer = s
		default:
			doc.Metadata.Custom[k] = s
		}
	}

	for i, p := range root.AllPages() {
		doc.AddPage(ToPage(i, p))
	}
	return doc
}

// LoadDocument reads a pdf2json file and converts it into the page model
func LoadDocument(filename string) (*model.Document, error) {
	root, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return ToDocument(root), nil
}

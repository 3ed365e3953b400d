package overlay

import (
	"context"
	"fmt"

	"github.com/coregx/gxpdf/creator"

	"github.com/tsawler/rankgrid/model"
	"github.com/tsawler/rankgrid/tables"
)

// LineWidth is the stroke width of grid lines in points
const LineWidth = 0.8

var (
	columnColor    = creator.Red
	rowColor       = creator.Blue
	highlightColor = creator.Color{R: 1, G: 165.0 / 255.0, B: 0}
)

// PDFOptions selects fills to highlight on one page
type PDFOptions struct {
	// HighlightPage is the page whose fills are highlighted, -1 for none
	HighlightPage int

	// HighlightFills are indices into that page's fills
	HighlightFills []int
}

// pageTransform maps page-model coordinates (origin top left) to PDF points
// (origin bottom left)
type pageTransform struct {
	scaleX, scaleY float64
	height         float64
}

func newPageTransform(pdfW, pdfH float64, page *model.Page) pageTransform {
	t := pageTransform{scaleX: 1, scaleY: 1, height: pdfH}
	if page != nil && page.Width > 0 {
		t.scaleX = pdfW / page.Width
	}
	if page != nil && page.Height > 0 {
		t.scaleY = pdfH / page.Height
	}
	return t
}

func (t pageTransform) x(v float64) float64 { return v * t.scaleX }
func (t pageTransform) y(v float64) float64 { return t.height - v*t.scaleY }

// WritePDF copies the PDF at src to dst with the inferred grid drawn on
// every page: column separators in red, row separators in blue. When
// opts.HighlightPage names a page, the selected fills on it are drawn as
// orange rectangles.
func WritePDF(ctx context.Context, src, dst string, pages []model.Page, res *tables.Result, opts PDFOptions) error {
	app, err := creator.NewAppender(src)
	if err != nil {
		return fmt.Errorf("failed to open source PDF: %w", err)
	}
	defer app.Close()

	for i := 0; i < app.PageCount(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		pdfPage, err := app.GetPage(i)
		if err != nil {
			return fmt.Errorf("failed to get page %d: %w", i, err)
		}

		var page *model.Page
		if i < len(pages) {
			page = &pages[i]
		}
		if err := drawGrid(pdfPage, page, i, res); err != nil {
			return fmt.Errorf("failed to draw grid on page %d: %w", i, err)
		}
		if page != nil && i == opts.HighlightPage {
			if err := drawHighlights(pdfPage, page, opts.HighlightFills); err != nil {
				return fmt.Errorf("failed to highlight fills on page %d: %w", i, err)
			}
		}
	}

	if err := app.WriteToFileContext(ctx, dst); err != nil {
		return fmt.Errorf("failed to write debug PDF: %w", err)
	}
	return nil
}

func drawGrid(pdfPage *creator.Page, page *model.Page, index int, res *tables.Result) error {
	w, h := pdfPage.Width(), pdfPage.Height()
	t := newPageTransform(w, h, page)

	for _, x := range res.SeparatorX {
		err := pdfPage.DrawLine(t.x(x), 0, t.x(x), h, &creator.LineOptions{Color: columnColor, Width: LineWidth})
		if err != nil {
			return err
		}
	}

	for _, pg := range res.Grid {
		if pg.PageIndex != index {
			continue
		}
		for _, y := range pg.SeparatorY {
			err := pdfPage.DrawLine(0, t.y(y), w, t.y(y), &creator.LineOptions{Color: rowColor, Width: LineWidth})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func drawHighlights(pdfPage *creator.Page, page *model.Page, fills []int) error {
	t := newPageTransform(pdfPage.Width(), pdfPage.Height(), page)
	color := highlightColor

	for _, i := range fills {
		if i < 0 || i >= len(page.Fills) {
			continue
		}
		b := page.Fills[i].BBox()
		// the rectangle's lower-left corner is the fill's bottom edge
		err := pdfPage.DrawRect(t.x(b.Left()), t.y(b.Bottom()), b.Width*t.scaleX, b.Height*t.scaleY, &creator.RectOptions{FillColor: &color})
		if err != nil {
			return err
		}
	}
	return nil
}

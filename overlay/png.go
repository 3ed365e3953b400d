package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/rankgrid/model"
	"github.com/tsawler/rankgrid/tables"
)

// DefaultScale is the number of pixels per page unit used when no scale is given
const DefaultScale = 24.0

var (
	pngBackground = color.RGBA{255, 255, 255, 255}
	pngFill       = color.RGBA{200, 200, 200, 255}
	pngRuling     = color.RGBA{0, 0, 0, 255}
	pngColumn     = color.RGBA{255, 0, 0, 255}
	pngRow        = color.RGBA{0, 0, 255, 255}
	pngText       = color.RGBA{40, 40, 40, 255}
)

// RenderPNG rasterizes one page: fills (ruling fills in black), the column
// and row separators of the inferred grid, and each text run at its anchor
func RenderPNG(w io.Writer, page model.Page, grid model.PageGrid, res *tables.Result, scale float64) error {
	if page.Width <= 0 || page.Height <= 0 {
		return fmt.Errorf("page %d has no dimensions", page.Index)
	}
	if scale <= 0 {
		scale = DefaultScale
	}

	width := int(page.Width*scale + 0.5)
	height := int(page.Height*scale + 0.5)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(pngBackground), image.Point{}, draw.Src)

	px := func(v float64) int { return int(v*scale + 0.5) }

	bounds := page.Bounds()
	for _, f := range page.Fills {
		b := f.BBox()
		if !b.Intersects(bounds) {
			continue
		}
		c := pngFill
		if f.OwnerTag != "" {
			c = pngRuling
		}
		r := image.Rect(px(b.Left()), px(b.Top()), px(b.Right()), px(b.Bottom()))
		if r.Dy() == 0 {
			r.Max.Y++
		}
		if r.Dx() == 0 {
			r.Max.X++
		}
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Over)
	}

	if res != nil {
		for _, x := range res.SeparatorX {
			vline(img, px(x), pngColumn)
		}
	}
	for _, y := range grid.SeparatorY {
		hline(img, px(y), pngRow)
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(pngText),
		Face: basicfont.Face7x13,
	}
	for _, t := range page.TextsInRegion(bounds) {
		d.Dot = fixed.P(px(t.X), px(t.Y)+basicfont.Face7x13.Ascent)
		d.DrawString(t.Content())
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

func vline(img *image.RGBA, x int, c color.RGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X {
		return
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		img.SetRGBA(x, y, c)
	}
}

func hline(img *image.RGBA, y int, c color.RGBA) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		img.SetRGBA(x, y, c)
	}
}

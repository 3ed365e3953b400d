package model

// Point is a position in page units
type Point struct {
	X, Y float64
}

// BBox is an axis-aligned box in page coordinates. Y is the top edge and
// the box extends downward by Height.
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from its top-left corner and size
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

func (b BBox) Left() float64   { return b.X }
func (b BBox) Right() float64  { return b.X + b.Width }
func (b BBox) Top() float64    { return b.Y }
func (b BBox) Bottom() float64 { return b.Y + b.Height }

// Contains reports whether p lies in the box, edges included
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

// Intersects reports whether the boxes overlap or touch. Zero-height ruling
// fills intersect the boxes they lie on.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Bottom() < other.Top() ||
		b.Top() > other.Bottom())
}

/**
 * Geometry primitives shared across OCR and diff packages.
 *
 * Coordinates are in pixels with the origin at the top-left corner of the
 * rendered page image.
 */

package geometry

// BoundingBox is a rectangular region on a page. Value type; never mutated.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (b BoundingBox) Right() int { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b BoundingBox) Bottom() int { return b.Y + b.Height }

// Union returns the smallest box containing both b and other.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	minX := min(b.X, other.X)
	minY := min(b.Y, other.Y)
	maxX := max(b.Right(), other.Right())
	maxY := max(b.Bottom(), other.Bottom())
	return BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Enclose returns the smallest box containing every box in boxes.
// Returns the zero box for an empty slice.
func Enclose(boxes []BoundingBox) BoundingBox {
	if len(boxes) == 0 {
		return BoundingBox{}
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = out.Union(b)
	}
	return out
}

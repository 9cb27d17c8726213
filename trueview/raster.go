package trueview

import (
	"image"
	"image/color"
	"math"
)

// strokeSegment draws a hard-edged capsule (a thick line with rounded
// ends) from (x0,y0) to (x1,y1), width lw, fully opaque. Every covered
// pixel is set to c with no partial-coverage blending: the design this
// renderer imitates always shows crisp thread edges, never antialiased
// ones.
func strokeSegment(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA, lw int) {
	if lw < 1 {
		lw = 1
	}
	radius := float64(lw) / 2
	if radius < 0.5 {
		radius = 0.5
	}

	minX := int(math.Floor(math.Min(x0, x1) - radius))
	maxX := int(math.Ceil(math.Max(x0, x1) + radius))
	minY := int(math.Floor(math.Min(y0, y1) - radius))
	maxY := int(math.Ceil(math.Max(y0, y1) + radius))

	bounds := img.Bounds()
	if minX < bounds.Min.X {
		minX = bounds.Min.X
	}
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxX > bounds.Max.X-1 {
		maxX = bounds.Max.X - 1
	}
	if maxY > bounds.Max.Y-1 {
		maxY = bounds.Max.Y - 1
	}

	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			cx, cy := float64(px)+0.5, float64(py)+0.5
			if distToSegmentSq(cx, cy, x0, y0, dx, dy, lenSq) <= radius*radius {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

// distToSegmentSq returns the squared distance from (px,py) to the
// segment starting at (x0,y0) with delta (dx,dy) and squared length
// lenSq.
func distToSegmentSq(px, py, x0, y0, dx, dy, lenSq float64) float64 {
	if lenSq == 0 {
		ox, oy := px-x0, py-y0
		return ox*ox + oy*oy
	}
	t := ((px-x0)*dx + (py-y0)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	cx, cy := x0+t*dx, y0+t*dy
	ox, oy := px-cx, py-cy
	return ox*ox + oy*oy
}

package trueview

import (
	"math"

	"github.com/lemiex-tech/stitchview/stitch"
)

const nativeBaseScale = 0.35

// point is a stitch rewritten into device (pixel) space.
type point struct {
	X, Y    float64
	Command stitch.Command
}

// transformResult carries everything downstream rendering needs from the
// coordinate pass.
type transformResult struct {
	points        []point
	canvasW       int
	canvasH       int
	lineWidth     int
	scaleExplicit bool
}

// transform rewrites p.Stitches into pixel space per opt, and computes
// the canvas dimensions and effective stroke width.
func transform(p *stitch.Pattern, opt Options) transformResult {
	minX, minY := p.Bounds.MinX, p.Bounds.MinY
	w := float64(p.Bounds.Width())
	h := float64(p.Bounds.Height())
	maxDim := math.Max(w, h)

	scale := opt.Scale
	switch {
	case opt.NativeSize:
		if maxDim > 0 {
			usable := math.Max(1, float64(opt.MaxSize-2*opt.Margin))
			fit := usable / maxDim
			scale = math.Max(nativeBaseScale, fit)
		} else {
			scale = nativeBaseScale
		}
	case scale == 0:
		if maxDim > 0 {
			usable := math.Max(1, float64(opt.MaxSize-2*opt.Margin))
			scale = usable / maxDim
		} else {
			scale = 1.0
		}
	}

	margin := float64(opt.Margin)
	pts := make([]point, len(p.Stitches))
	for i, s := range p.Stitches {
		pts[i] = point{
			X:       float64(s.X-minX)*scale + margin,
			Y:       float64(s.Y-minY)*scale + margin,
			Command: s.Command,
		}
	}

	var pMinX, pMaxX, pMinY, pMaxY float64
	if len(pts) > 0 {
		pMinX, pMaxX = pts[0].X, pts[0].X
		pMinY, pMaxY = pts[0].Y, pts[0].Y
		for _, pt := range pts[1:] {
			pMinX = math.Min(pMinX, pt.X)
			pMaxX = math.Max(pMaxX, pt.X)
			pMinY = math.Min(pMinY, pt.Y)
			pMaxY = math.Max(pMaxY, pt.Y)
		}
	}

	canvasW := int(math.Max(1, math.Ceil(pMaxX-pMinX+2*margin+2)))
	canvasH := int(math.Max(1, math.Ceil(pMaxY-pMinY+2*margin+2)))

	lw := opt.LineWidth
	if lw == 0 {
		lw = 2
	}
	if opt.NativeSize {
		lw = int(math.Max(1, math.Round(float64(lw)*scale/nativeBaseScale)))
	}

	return transformResult{points: pts, canvasW: canvasW, canvasH: canvasH, lineWidth: lw}
}

package trueview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/lemiex-tech/stitchview/stitch"
)

// RenderError wraps a rendering failure with the stage it occurred in.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("trueview: %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

type renderBlock struct {
	points []point
	rgb    color.RGBA
}

// segmentForRender mirrors package blocks' walk, but keeps each block's
// actual pixel-space points instead of just a stitch count, since
// rendering needs geometry. COLOR_CHANGE and STOP points terminate and
// are included in the block they close, matching the reference
// renderer's stream-ordered stitch blocks.
func segmentForRender(p *stitch.Pattern, pts []point) []renderBlock {
	var out []renderBlock
	threadIdx := 0
	var cur []point

	threadColor := func(idx int) color.RGBA {
		if len(p.Threads) == 0 {
			return color.RGBA{A: 255}
		}
		if idx > len(p.Threads)-1 {
			idx = len(p.Threads) - 1
		}
		rgbInt := p.Threads[idx].Color
		return color.RGBA{
			R: uint8((rgbInt >> 16) & 0xFF),
			G: uint8((rgbInt >> 8) & 0xFF),
			B: uint8(rgbInt & 0xFF),
			A: 255,
		}
	}

	emit := func() {
		out = append(out, renderBlock{points: cur, rgb: threadColor(threadIdx)})
		cur = nil
	}

walk:
	for i, s := range p.Stitches {
		switch s.Command {
		case stitch.STITCH, stitch.JUMP, stitch.TRIM, stitch.APPLIQUE:
			cur = append(cur, pts[i])
		case stitch.STOP:
			cur = append(cur, pts[i])
			emit()
		case stitch.COLOR_CHANGE:
			cur = append(cur, pts[i])
			emit()
			threadIdx++
		case stitch.END:
			break walk
		}
	}
	if len(cur) > 0 {
		emit()
	}
	return out
}

// Render rasterizes p into an RGBA image per opt.
func Render(p *stitch.Pattern, opt Options) (*image.RGBA, error) {
	bg, err := parseBackground(opt.Background)
	if err != nil {
		return nil, &RenderError{Stage: "background", Err: err}
	}

	tr := transform(p, opt)
	img := image.NewRGBA(image.Rect(0, 0, tr.canvasW, tr.canvasH))
	fillBackground(img, bg)

	for _, b := range segmentForRender(p, tr.points) {
		if len(b.points) < 2 {
			continue
		}
		renderBlockInto(img, b, tr.lineWidth)
	}

	return img, nil
}

func fillBackground(img *image.RGBA, bg color.RGBA) {
	if bg.A == 0 && bg.R == 0 && bg.G == 0 && bg.B == 0 {
		return // already zero-valued/transparent
	}
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
}

func renderBlockInto(img *image.RGBA, b renderBlock, lw int) {
	m, columns := classify(b.points)
	switch m {
	case modeSatin:
		renderSatin(img, columns, b.rgb, lw)
	case modeTatami:
		renderTatami(img, b.points, b.rgb, lw)
	default:
		renderRunning(img, b.points, b.rgb, lw)
	}
}

func renderSatin(img *image.RGBA, columns [][2]point, rgb color.RGBA, lw int) {
	steps := 2 * lw
	if steps < 8 {
		steps = 8
	}
	if steps > 24 {
		steps = 24
	}

	const dark, bright = 0.55, 1.65

	for _, col := range columns {
		left, right := col[0], col[1]
		for i := 0; i < steps; i++ {
			t0 := float64(i) / float64(steps)
			t1 := float64(i+1) / float64(steps)
			mid := (t0 + t1) / 2
			k := 1 - math.Abs(mid-0.5)*2
			factor := dark + (bright-dark)*k

			x0 := left.X + (right.X-left.X)*t0
			y0 := left.Y + (right.Y-left.Y)*t0
			x1 := left.X + (right.X-left.X)*t1
			y1 := left.Y + (right.Y-left.Y)*t1

			strokeSegment(img, x0, y0, x1, y1, applyShade(rgb, factor), lw)
		}
	}
}

func renderTatami(img *image.RGBA, pts []point, rgb color.RGBA, lw int) {
	if len(pts) < 2 {
		return
	}
	shades := [2]float64{0.92, 1.0}
	runIdx := 0
	haveLast := false
	var lastDir vec

	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		dx, dy := b.X-a.X, b.Y-a.Y
		mag := math.Hypot(dx, dy)
		if mag == 0 {
			continue
		}
		dir := vec{dx / mag, dy / mag}
		if haveLast {
			dot := dir.X*lastDir.X + dir.Y*lastDir.Y
			if dot < -0.2 {
				runIdx ^= 1
			}
		}
		lastDir = dir
		haveLast = true

		strokeSegment(img, a.X, a.Y, b.X, b.Y, applyShade(rgb, shades[runIdx]), lw)
	}
}

func renderRunning(img *image.RGBA, pts []point, rgb color.RGBA, lw int) {
	if len(pts) < 2 {
		return
	}

	segLens := make([]float64, len(pts)-1)
	total := 0.0
	for i := 0; i+1 < len(pts); i++ {
		dx, dy := pts[i+1].X-pts[i].X, pts[i+1].Y-pts[i].Y
		segLens[i] = math.Hypot(dx, dy)
		total += segLens[i]
	}
	if total == 0 {
		return
	}

	cum := 0.0
	for i := 0; i+1 < len(pts); i++ {
		segLen := segLens[i]
		if segLen == 0 {
			continue
		}
		a, b := pts[i], pts[i+1]
		t0 := cum / total
		cum += segLen
		t1 := cum / total
		mid := (t0 + t1) / 2

		base := gradientFactor(mid)
		gain := directionGain(b.X-a.X, b.Y-a.Y)
		shade := math.Max(0.2, math.Min(base*gain, 1.8))

		strokeSegment(img, a.X, a.Y, b.X, b.Y, applyShade(rgb, shade), lw)
	}
}

// EncodePNG encodes img as an 8-bit-per-channel PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &RenderError{Stage: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

// Package trueview rasterizes a stitch pattern into an RGBA PNG that
// mimics the sheen of real embroidered thread: satin columns get a
// cross-column highlight, tatami fills alternate two flat shades, and
// running stitches get a directional-lighting gradient along the path.
package trueview

import "image/color"

// Options controls the coordinate transform and stroke appearance.
type Options struct {
	// Background is a "#RRGGBB" or "#AARRGGBB" hex string. Empty means
	// fully transparent.
	Background string

	// LineWidth is the base stroke width in pixels before native-mode
	// scaling is applied.
	LineWidth int

	// Scale, when non-zero, is used verbatim (explicit-scale mode).
	Scale float64

	// NativeSize selects native mode: render at a 0.35 baseline scale,
	// growing only as far as needed to fit MaxSize.
	NativeSize bool

	Margin  int
	MaxSize int
}

// DefaultOptions matches the reference renderer's defaults.
func DefaultOptions() Options {
	return Options{
		LineWidth: 2,
		Margin:    20,
		MaxSize:   1200,
	}
}

func parseBackground(hexStr string) (color.RGBA, error) {
	if hexStr == "" {
		return color.RGBA{}, nil
	}
	hs := hexStr
	if len(hs) > 0 && hs[0] == '#' {
		hs = hs[1:]
	}
	switch len(hs) {
	case 6:
		r, err := hexByte(hs[0:2])
		if err != nil {
			return color.RGBA{}, err
		}
		g, err := hexByte(hs[2:4])
		if err != nil {
			return color.RGBA{}, err
		}
		b, err := hexByte(hs[4:6])
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	case 8:
		a, err := hexByte(hs[0:2])
		if err != nil {
			return color.RGBA{}, err
		}
		r, err := hexByte(hs[2:4])
		if err != nil {
			return color.RGBA{}, err
		}
		g, err := hexByte(hs[4:6])
		if err != nil {
			return color.RGBA{}, err
		}
		b, err := hexByte(hs[6:8])
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{R: r, G: g, B: b, A: a}, nil
	default:
		return color.RGBA{}, &ColorError{Value: hexStr}
	}
}

// ColorError reports an unparseable background color string.
type ColorError struct{ Value string }

func (e *ColorError) Error() string {
	return "trueview: invalid background color " + e.Value
}

func hexByte(s string) (uint8, error) {
	var v uint8
	for _, r := range s {
		var d uint8
		switch {
		case r >= '0' && r <= '9':
			d = uint8(r - '0')
		case r >= 'a' && r <= 'f':
			d = uint8(r-'a') + 10
		case r >= 'A' && r <= 'F':
			d = uint8(r-'A') + 10
		default:
			return 0, &ColorError{Value: s}
		}
		v = v*16 + d
	}
	return v, nil
}

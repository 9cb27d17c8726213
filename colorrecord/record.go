// Package colorrecord builds the metrics and per-color descriptors that
// make up most of a design record: everything except the needle
// assignment table, which package needle fills in afterward.
package colorrecord

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lemiex-tech/stitchview/blocks"
	"github.com/lemiex-tech/stitchview/stitch"
)

// Metrics holds the geometry and command-count metrics computed from the
// raw stitch stream.
type Metrics struct {
	WidthMM      float64
	HeightMM     float64
	AreaMM2      float64
	ColorChanges int
	Stops        int
	Trims        int
	Appliques    int
}

// ComputeMetrics scans every point in the stream once. Width/height/area
// are zero for an empty pattern.
func ComputeMetrics(p *stitch.Pattern) Metrics {
	if len(p.Stitches) == 0 {
		return Metrics{}
	}

	minX, maxX := p.Stitches[0].X, p.Stitches[0].X
	minY, maxY := p.Stitches[0].Y, p.Stitches[0].Y
	var m Metrics

	for _, s := range p.Stitches {
		if s.X < minX {
			minX = s.X
		}
		if s.X > maxX {
			maxX = s.X
		}
		if s.Y < minY {
			minY = s.Y
		}
		if s.Y > maxY {
			maxY = s.Y
		}
		switch s.Command {
		case stitch.COLOR_CHANGE:
			m.ColorChanges++
		case stitch.STOP:
			m.Stops++
		case stitch.TRIM:
			m.Trims++
		case stitch.APPLIQUE:
			m.Appliques++
		}
	}

	m.WidthMM = round1(float64(maxX-minX) / 10)
	m.HeightMM = round1(float64(maxY-minY) / 10)
	m.AreaMM2 = round1(m.WidthMM * m.HeightMM)
	return m
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ColorDescriptor is the per-block output descriptor (spec §4.3). Sequence
// is 1-based. NeedleNumber starts nil and is filled in by package needle.
type ColorDescriptor struct {
	Sequence     int
	OriginalCode string
	DisplayCode  string
	ColorWay     string
	Name         string
	Chart        string
	RGBInt       int
	RGBHex       string
	StitchCount  int
	StopFlag     bool
	NeedleNumber *int
}

// metroProCharts are the catalog charts whose "<a>-<b>" codes collapse to
// min(a, b) for display — a Lemiex/Metro Pro house convention, not a
// general embroidery one.
var metroProCharts = map[string]bool{
	"Metro Pro": true,
	"Lemiex":    true,
}

// BuildColors converts segmented blocks into color descriptors, in block
// (stream) order.
func BuildColors(bl []blocks.Block) []ColorDescriptor {
	out := make([]ColorDescriptor, len(bl))
	for i, b := range bl {
		code := b.Thread.CatalogNumber

		colorWay := code
		if strings.Contains(code, "-") {
			if parts := strings.Split(code, "-"); len(parts) > 1 {
				colorWay = parts[1]
			}
		}

		displayCode := code
		if metroProCharts[b.Thread.Brand] {
			if parts := strings.Split(code, "-"); len(parts) == 2 {
				if a, err := strconv.Atoi(parts[0]); err == nil {
					if c, err := strconv.Atoi(parts[1]); err == nil {
						displayCode = strconv.Itoa(min(a, c))
					}
				}
			}
		}

		name := b.Thread.Description
		if b.StopFlag {
			if name != "" {
				name = name + ", Stop"
			} else {
				name = "Stop"
			}
		}

		out[i] = ColorDescriptor{
			Sequence:     i + 1,
			OriginalCode: code,
			DisplayCode:  displayCode,
			ColorWay:     colorWay,
			Name:         name,
			Chart:        b.Thread.Brand,
			RGBInt:       b.Thread.Color,
			RGBHex:       rgbHex(b.Thread.Color),
			StitchCount:  b.StitchCount,
			StopFlag:     b.StopFlag,
		}
	}
	return out
}

func rgbHex(rgb int) string {
	r := (rgb >> 16) & 0xFF
	g := (rgb >> 8) & 0xFF
	b := rgb & 0xFF
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// DistinctColorCount returns the number of distinct thread hex colors in
// the design's full thread list (not the block count — a thread can repeat
// across blocks, and the thread list can be longer than the block list).
func DistinctColorCount(threads []stitch.Thread) int {
	seen := make(map[string]struct{}, len(threads))
	for _, t := range threads {
		seen[rgbHex(t.Color)] = struct{}{}
	}
	return len(seen)
}

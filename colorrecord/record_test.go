package colorrecord

import (
	"testing"

	"github.com/lemiex-tech/stitchview/blocks"
	"github.com/lemiex-tech/stitchview/stitch"
)

func TestComputeMetricsEmptyPattern(t *testing.T) {
	got := ComputeMetrics(&stitch.Pattern{})
	if got != (Metrics{}) {
		t.Fatalf("ComputeMetrics(empty) = %+v, want zero value", got)
	}
}

func TestComputeMetricsWidthHeightArea(t *testing.T) {
	p := &stitch.Pattern{
		Stitches: []stitch.Point{
			{X: 0, Y: 0, Command: stitch.STITCH},
			{X: 100, Y: 0, Command: stitch.STITCH},
			{X: 100, Y: 250, Command: stitch.STITCH},
			{X: 100, Y: 250, Command: stitch.COLOR_CHANGE},
			{X: 0, Y: 0, Command: stitch.TRIM},
			{X: 0, Y: 0, Command: stitch.STOP},
		},
	}

	got := ComputeMetrics(p)
	if got.WidthMM != 10 {
		t.Errorf("WidthMM = %v, want 10", got.WidthMM)
	}
	if got.HeightMM != 25 {
		t.Errorf("HeightMM = %v, want 25", got.HeightMM)
	}
	if got.AreaMM2 != 250 {
		t.Errorf("AreaMM2 = %v, want 250", got.AreaMM2)
	}
	if got.ColorChanges != 1 || got.Trims != 1 || got.Stops != 1 {
		t.Errorf("command counts = %+v, want 1/1/1", got)
	}
}

func TestBuildColorsSequenceIsOneBased(t *testing.T) {
	bl := []blocks.Block{
		{Thread: stitch.Thread{Color: 0xFF0000}, StitchCount: 3},
		{Thread: stitch.Thread{Color: 0x00FF00}, StitchCount: 5},
		{Thread: stitch.Thread{Color: 0x0000FF}, StitchCount: 1, StopFlag: true},
	}

	got := BuildColors(bl)
	for i, c := range got {
		if c.Sequence != i+1 {
			t.Errorf("colors[%d].Sequence = %d, want %d", i, c.Sequence, i+1)
		}
	}
}

func TestBuildColorsColorWaySplitsOnFirstHyphen(t *testing.T) {
	bl := []blocks.Block{
		{Thread: stitch.Thread{CatalogNumber: "200-7-A"}},
		{Thread: stitch.Thread{CatalogNumber: "NoHyphen"}},
		{Thread: stitch.Thread{CatalogNumber: ""}},
	}

	got := BuildColors(bl)
	if got[0].ColorWay != "7" {
		t.Errorf("ColorWay = %q, want %q (segment between 1st and 2nd hyphen)", got[0].ColorWay, "7")
	}
	if got[1].ColorWay != "NoHyphen" {
		t.Errorf("ColorWay = %q, want unchanged code when no hyphen present", got[1].ColorWay)
	}
	if got[2].ColorWay != "" {
		t.Errorf("ColorWay = %q, want empty for empty code", got[2].ColorWay)
	}
}

func TestBuildColorsMetroProDisplayCodeIsMin(t *testing.T) {
	bl := []blocks.Block{
		{Thread: stitch.Thread{CatalogNumber: "12-4", Brand: "Metro Pro"}},
		{Thread: stitch.Thread{CatalogNumber: "4-12", Brand: "Lemiex"}},
		{Thread: stitch.Thread{CatalogNumber: "12-4", Brand: "Other Chart"}},
	}

	got := BuildColors(bl)
	if got[0].DisplayCode != "4" {
		t.Errorf("DisplayCode = %q, want %q", got[0].DisplayCode, "4")
	}
	if got[1].DisplayCode != "4" {
		t.Errorf("DisplayCode = %q, want %q", got[1].DisplayCode, "4")
	}
	if got[2].DisplayCode != "12-4" {
		t.Errorf("DisplayCode = %q, want unchanged code for non-Metro-Pro chart", got[2].DisplayCode)
	}
}

func TestBuildColorsStopFlagAppendsToName(t *testing.T) {
	bl := []blocks.Block{
		{Thread: stitch.Thread{Description: "Fire Red"}, StopFlag: true},
		{Thread: stitch.Thread{Description: ""}, StopFlag: true},
		{Thread: stitch.Thread{Description: "Ocean Blue"}, StopFlag: false},
	}

	got := BuildColors(bl)
	if got[0].Name != "Fire Red, Stop" {
		t.Errorf("Name = %q, want %q", got[0].Name, "Fire Red, Stop")
	}
	if got[1].Name != "Stop" {
		t.Errorf("Name = %q, want %q", got[1].Name, "Stop")
	}
	if got[2].Name != "Ocean Blue" {
		t.Errorf("Name = %q, want unchanged when StopFlag is false", got[2].Name)
	}
}

func TestBuildColorsRGBHex(t *testing.T) {
	bl := []blocks.Block{{Thread: stitch.Thread{Color: 0x1A2B3C}}}
	got := BuildColors(bl)
	if got[0].RGBHex != "#1A2B3C" {
		t.Errorf("RGBHex = %q, want %q", got[0].RGBHex, "#1A2B3C")
	}
}

func TestDistinctColorCountDedupesAcrossRepeatedThreads(t *testing.T) {
	threads := []stitch.Thread{
		{Color: 0xFF0000},
		{Color: 0x00FF00},
		{Color: 0xFF0000},
	}
	if got := DistinctColorCount(threads); got != 2 {
		t.Errorf("DistinctColorCount = %d, want 2", got)
	}
}

func TestBuildFileInfoStopsIsBlockCount(t *testing.T) {
	p := &stitch.Pattern{
		Stitches: []stitch.Point{
			{Command: stitch.STITCH},
			{Command: stitch.STOP},
			{Command: stitch.STITCH},
			{Command: stitch.STOP},
			{Command: stitch.STITCH},
		},
	}
	m := ComputeMetrics(p)
	colors := []ColorDescriptor{{}, {}} // two blocks, independent of metrics.Stops

	fi := BuildFileInfo("design.stitchfixture", "deadbeef", p.CountStitches(), m, DistinctColorCount(p.Threads), colors)

	if fi.Stops != len(colors) {
		t.Errorf("Stops = %d, want len(colors) = %d (not metrics.Stops = %d)", fi.Stops, len(colors), m.Stops)
	}
	if fi.StitchCount != 3 {
		t.Errorf("StitchCount = %d, want 3", fi.StitchCount)
	}
	if fi.Filename != "design.stitchfixture" || fi.Hash8 != "deadbeef" {
		t.Errorf("FileInfo identity fields = %+v", fi)
	}
}

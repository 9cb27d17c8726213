package blocks

import (
	"testing"

	"github.com/lemiex-tech/stitchview/stitch"
)

func TestSegmentTinyTwoColorRunningDesign(t *testing.T) {
	p := &stitch.Pattern{
		Stitches: []stitch.Point{
			{X: 0, Y: 0, Command: stitch.STITCH},
			{X: 100, Y: 0, Command: stitch.STITCH},
			{X: 100, Y: 100, Command: stitch.STITCH},
			{X: 100, Y: 100, Command: stitch.COLOR_CHANGE},
			{X: 200, Y: 100, Command: stitch.STITCH},
			{X: 200, Y: 200, Command: stitch.STITCH},
			{X: 0, Y: 0, Command: stitch.END},
		},
		Threads: []stitch.Thread{{Color: 0xFF0000}, {Color: 0x0000FF}},
	}

	got := Segment(p)
	if len(got) != 2 {
		t.Fatalf("len(blocks) = %d, want 2", len(got))
	}
	if got[0].StitchCount != 3 || got[0].StopFlag {
		t.Errorf("block 0 = %+v, want {StitchCount:3 StopFlag:false}", got[0])
	}
	if got[1].StitchCount != 2 || got[1].StopFlag {
		t.Errorf("block 1 = %+v, want {StitchCount:2 StopFlag:false}", got[1])
	}
	if got[0].Thread.Color != 0xFF0000 || got[1].Thread.Color != 0x0000FF {
		t.Errorf("threads not assigned in stream order: %+v", got)
	}
}

func TestSegmentStopDoesNotAdvanceThread(t *testing.T) {
	p := &stitch.Pattern{
		Stitches: []stitch.Point{
			{Command: stitch.STITCH},
			{Command: stitch.STOP},
			{Command: stitch.STITCH},
			{Command: stitch.STOP},
		},
		Threads: []stitch.Thread{{Color: 1}, {Color: 2}},
	}

	got := Segment(p)
	if len(got) != 2 {
		t.Fatalf("len(blocks) = %d, want 2", len(got))
	}
	for i, b := range got {
		if !b.StopFlag {
			t.Errorf("block %d StopFlag = false, want true", i)
		}
		if b.Thread.Color != 1 {
			t.Errorf("block %d thread = %+v, want Color 1 (STOP must not advance thread index)", i, b.Thread)
		}
	}
}

func TestSegmentEndDropsTrailingPartialBlock(t *testing.T) {
	p := &stitch.Pattern{
		Stitches: []stitch.Point{
			{Command: stitch.STITCH},
			{Command: stitch.STITCH},
			{Command: stitch.END},
			{Command: stitch.STITCH}, // ignored: walk already broke
		},
	}

	got := Segment(p)
	if len(got) != 0 {
		t.Fatalf("len(blocks) = %d, want 0 (END drops trailing, does not emit)", len(got))
	}
}

func TestSegmentTrailingStitchesWithoutTerminator(t *testing.T) {
	p := &stitch.Pattern{
		Stitches: []stitch.Point{
			{Command: stitch.STITCH},
			{Command: stitch.STITCH},
			{Command: stitch.STITCH},
		},
	}

	got := Segment(p)
	if len(got) != 1 {
		t.Fatalf("len(blocks) = %d, want 1", len(got))
	}
	if got[0].StitchCount != 3 {
		t.Errorf("StitchCount = %d, want 3", got[0].StitchCount)
	}
}

func TestSegmentThreadListShorterThanBlockCount(t *testing.T) {
	p := &stitch.Pattern{
		Stitches: []stitch.Point{
			{Command: stitch.STITCH},
			{Command: stitch.COLOR_CHANGE},
			{Command: stitch.STITCH},
			{Command: stitch.COLOR_CHANGE},
			{Command: stitch.STITCH},
		},
		Threads: []stitch.Thread{{Color: 0xAAAAAA}},
	}

	got := Segment(p)
	if len(got) != 3 {
		t.Fatalf("len(blocks) = %d, want 3", len(got))
	}
	for i, b := range got {
		if b.Thread.Color != 0xAAAAAA {
			t.Errorf("block %d thread = %+v, want clamped to last thread", i, b.Thread)
		}
	}
}

func TestSegmentEmptyPattern(t *testing.T) {
	got := Segment(&stitch.Pattern{})
	if len(got) != 0 {
		t.Fatalf("len(blocks) = %d, want 0", len(got))
	}
}

func TestSegmentSingleStitch(t *testing.T) {
	p := &stitch.Pattern{Stitches: []stitch.Point{{Command: stitch.STITCH}}}
	got := Segment(p)
	if len(got) != 1 || got[0].StitchCount != 1 {
		t.Fatalf("got %+v, want one block with StitchCount=1", got)
	}
}

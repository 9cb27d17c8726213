// Package blocks implements the Block Segmenter: a single forward walk of
// a stitch stream that splits it into color blocks separated by STOP or
// COLOR_CHANGE commands.
package blocks

import "github.com/lemiex-tech/stitchview/stitch"

// Block is one run of stitches sharing a single thread.
type Block struct {
	Thread      stitch.Thread
	StopFlag    bool
	StitchCount int
}

// Segment walks p.Stitches once, in order, and returns the color blocks it
// produced. A trailing run of STITCH commands with no terminating STOP or
// COLOR_CHANGE becomes a final, non-stopped block; an END command breaks
// the walk immediately, so commands after it are ignored, while stitches
// counted before it still form that final block.
func Segment(p *stitch.Pattern) []Block {
	var out []Block
	threadIdx := 0
	stitchCount := 0

	threadAt := func(idx int) stitch.Thread {
		if len(p.Threads) == 0 {
			return stitch.Thread{}
		}
		if idx > len(p.Threads)-1 {
			idx = len(p.Threads) - 1
		}
		return p.Threads[idx]
	}

	emit := func(stop bool) {
		out = append(out, Block{
			Thread:      threadAt(threadIdx),
			StopFlag:    stop,
			StitchCount: stitchCount,
		})
		stitchCount = 0
	}

walk:
	for _, pt := range p.Stitches {
		switch pt.Command {
		case stitch.STITCH:
			stitchCount++
		case stitch.STOP:
			emit(true)
		case stitch.COLOR_CHANGE:
			emit(false)
			threadIdx++
		case stitch.END:
			break walk
		}
	}

	if stitchCount > 0 {
		emit(false)
	}

	return out
}
